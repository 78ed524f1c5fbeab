// Package nodelink renders generated brackets as node-link diagrams.
//
// # Overview
//
// Matches become boxes and progressions become arrows. Boxes are pinned at
// the positions the layout engine assigned, so the picture matches what the
// ladder editor will show after import. It is a quick visual check that the
// generated topology is the one you expect.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Styling
//
// Winners-bracket matches are white, losers-bracket matches light grey.
// Winner progressions are solid black; loser drops are dashed red.
//
// # Dependencies
//
// Rendering runs Graphviz in-process via [github.com/goccy/go-graphviz] with
// the neato engine, so no system Graphviz install is needed.
package nodelink
