package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/ladder"
	"github.com/matzehuels/bracketmaker/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string // output file (single format) or base path
	formats   string // comma-separated: json, dot, svg, png
	teams     string // roster CSV whose teams go into the document
	mergeInto string // existing bracket.json to update in place
	date      string // placeholder match date
	lenient   bool
	noCache   bool
	detailed  bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <capacity>",
		Short: "Generate a double-elimination bracket",
		Long: `Generate the matches and progressions of a double-elimination bracket for
capacity teams. Capacity must be a power of two no larger than 4096.

Larger capacities (32 and up) have losers-bracket rules that point at slots
the bracket never creates. They fail unless --lenient is given, which drops
the affected edges and logs each one.`,
		Example: `  bracketmaker generate 16
  bracketmaker generate 16 -f json,svg -o out/bracket
  bracketmaker generate 32 --lenient --teams signups.csv
  bracketmaker generate 8 --merge-into ~/tournament/bracket.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := bmerrors.ParseCapacity(args[0])
			if err != nil {
				return err
			}
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			popts := c.pipelineOptions(cmd, capacity, formats, &opts)
			writeArtifacts := opts.mergeInto == "" || cmd.Flags().Changed("format")
			return c.runGenerate(cmd.Context(), popts, &opts, writeArtifacts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default bracket-<capacity>)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.teams, "teams", "", "roster CSV to fill the Teams array from")
	cmd.Flags().StringVar(&opts.mergeInto, "merge-into", "", "update Matches, Progressions and Teams of an existing bracket.json")
	cmd.Flags().StringVar(&opts.date, "date", "", "placeholder match date (default from config)")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "skip progressions whose target slot does not exist")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label losers matches in dot/svg/png output")

	return cmd
}

// pipelineOptions merges config file settings with flags. Flags win when set.
func (c *CLI) pipelineOptions(cmd *cobra.Command, capacity int, formats []string, opts *generateOpts) pipeline.Options {
	popts := pipeline.Options{
		Capacity: capacity,
		Lenient:  c.cfg.Lenient,
		Layout:   c.cfg.Layout,
		Date:     c.cfg.Date,
		Formats:  formats,
		Detailed: opts.detailed,
		Refresh:  opts.noCache,
		Logger:   loggerFromContext(cmd.Context()),
	}
	if cmd.Flags().Changed("lenient") {
		popts.Lenient = opts.lenient
	}
	if opts.date != "" {
		popts.Date = opts.date
	}
	return popts
}

func (c *CLI) runGenerate(ctx context.Context, popts pipeline.Options, opts *generateOpts, writeArtifacts bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if opts.teams != "" {
		res, err := c.loadTeams(ctx, runner, opts.teams, c.cfg.Roster)
		if err != nil {
			return err
		}
		reportTeams(res)
		popts.Teams = res.Teams
	}

	prog := newProgress(logger)
	var spinner *Spinner
	if slices.Contains(popts.Formats, pipeline.FormatSVG) || slices.Contains(popts.Formats, pipeline.FormatPNG) {
		spinner = newSpinner(ctx, "Rendering bracket...")
		spinner.Start()
	}
	res, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d-team bracket", popts.Capacity))
	printStats(res.Stats.Matches, res.Stats.Progressions, res.Stats.Teams, res.CacheInfo.GenerateHit && res.CacheInfo.RenderHit)

	if writeArtifacts {
		base := basePath(opts.output, popts.Capacity)
		for _, format := range popts.Formats {
			path := base + pipeline.Extensions[format]
			if err := writeOutput(path, res.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
	}
	if opts.mergeInto != "" {
		if err := ladder.MergeFile(opts.mergeInto, res.Document); err != nil {
			return err
		}
		printSuccess("Updated %s", opts.mergeInto)
	}

	printNextStep("Browse it", fmt.Sprintf("%s preview %d", appName, popts.Capacity))
	return nil
}

// basePath derives the output path without extension. An empty output means
// bracket-<capacity> in the working directory; a known format extension on
// output is stripped.
func basePath(output string, capacity int) string {
	if output == "" {
		return fmt.Sprintf("bracket-%d", capacity)
	}
	ext := strings.ToLower(filepath.Ext(output))
	for _, known := range pipeline.Extensions {
		if ext == known {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
