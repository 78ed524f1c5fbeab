package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bracketmaker/pkg/ladder"
	"github.com/matzehuels/bracketmaker/pkg/render/nodelink"
)

// RenderFormat produces one artifact from a document without caching.
func RenderFormat(ctx context.Context, doc ladder.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ladder.Marshal(doc)
	case FormatDOT:
		return []byte(nodelink.ToDOT(doc, nodelinkOptions(opts))), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(doc, nodelinkOptions(opts)))
	case FormatPNG:
		return nodelink.RenderPNG(ctx, nodelink.ToDOT(doc, nodelinkOptions(opts)))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed}
}
