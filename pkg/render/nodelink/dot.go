package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bracketmaker/pkg/ladder"
)

// DefaultPixelsPerInch converts ladder canvas units to Graphviz inches.
const DefaultPixelsPerInch = 96.0

// Options configures node-link diagram rendering.
type Options struct {
	// PixelsPerInch scales canvas positions. Zero means DefaultPixelsPerInch.
	PixelsPerInch float64

	// Detailed adds the canvas position and team acronyms to each label.
	Detailed bool
}

// ToDOT converts a ladder document to Graphviz DOT source with every node
// pinned at its canvas position. Canvas y grows downward, Graphviz y upward,
// so y is negated.
func ToDOT(doc ladder.Document, opts Options) string {
	scale := opts.PixelsPerInch
	if scale <= 0 {
		scale = DefaultPixelsPerInch
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, width=1.6, height=0.5, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, m := range doc.Matches {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(m, opts.Detailed)),
			fmt.Sprintf("pos=\"%s,%s!\"", inches(m.Position.X, scale), inches(-m.Position.Y, scale)),
		}
		if m.Losers {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(m.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, p := range doc.Progressions {
		if p.Losers {
			fmt.Fprintf(&buf, "  %s -> %s [style=dashed, color=red];\n", nodeID(p.SourceID), nodeID(p.TargetID))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(p.SourceID), nodeID(p.TargetID))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return "m" + strconv.Itoa(id) }

func inches(px int, scale float64) string {
	return strconv.FormatFloat(float64(px)/scale, 'f', 3, 64)
}

func fmtLabel(m ladder.Match, detailed bool) string {
	label := "#" + strconv.Itoa(m.ID)
	if m.Losers {
		label += " (L)"
	}
	if !detailed {
		return label
	}
	label += fmt.Sprintf("\n%d,%d", m.Position.X, m.Position.Y)
	if len(m.Acronyms) > 0 {
		label += "\n" + strings.Join(m.Acronyms, " vs ")
	}
	return label
}

// RenderSVG lays out and renders a DOT graph to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out and renders a DOT graph to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a unitless one
// so the diagram scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
