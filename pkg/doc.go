// Package pkg is the root of bracketmaker's public library packages.
//
// Bracketmaker generates double-elimination bracket topologies for the
// ladder editor: every match, where each match sits on the canvas, and
// where winners and losers progress. It can also turn a signup sheet into
// the team list a ladder needs.
//
// # Quick Start
//
// Build a 16-team bracket and write it as ladder JSON:
//
//	b, err := bracket.Generate(16, bracket.Options{})
//	if err != nil {
//	    return err
//	}
//	err = ladder.WriteFile(ladder.FromBracket(b), "bracket.json")
//
// Or run the cached pipeline used by both the CLI and the HTTP API:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Capacity: 16, Formats: []string{"json", "svg"}})
//
// # Packages
//
// [bracket] - Topology generation: the winners bracket, the interleaved
// losers bracket, canvas layout and progression linking.
//
// [roster] - Signup sheet parsing and acronym assignment.
//
// [ladder] - The ladder document format, including merging generated
// matches into an existing file.
//
// [render/nodelink] - DOT, SVG and PNG diagrams of a bracket via Graphviz.
//
// [pipeline] - Generate, render and cache in one call.
//
// [cache] - File, Redis and no-op caches with content-addressed keys.
//
// [config] - TOML configuration and environment settings.
//
// [server] - The HTTP API.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [observability] - Hooks for cache and request events.
//
// [bracket]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/bracket
// [roster]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/roster
// [ladder]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/ladder
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bracketmaker/pkg/observability
package pkg
