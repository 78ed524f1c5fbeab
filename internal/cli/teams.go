package cli

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/pipeline"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

type teamsOpts struct {
	output  string
	noCache bool
	id      int
	name    int
	team    int
	acronym int
}

func (c *CLI) teamsCommand() *cobra.Command {
	var opts teamsOpts
	defaults := roster.DefaultColumns()

	cmd := &cobra.Command{
		Use:   "teams <roster.csv>",
		Short: "Build team records from a sign-up sheet",
		Long: `Read a CSV export of a sign-up sheet, group participants by team and give
every team a unique acronym. Columns are zero-based; rows whose id cell is not
a number (headers, notes) are skipped.

The team records are printed as JSON, or written to --output.`,
		Example: `  bracketmaker teams signups.csv
  bracketmaker teams signups.csv --id 0 --name 1 --team 2 --acronym 3 -o teams.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols := c.cfg.Roster
			flags := cmd.Flags()
			if flags.Changed("id") {
				cols.ID = opts.id
			}
			if flags.Changed("name") {
				cols.Name = opts.name
			}
			if flags.Changed("team") {
				cols.Team = opts.team
			}
			if flags.Changed("acronym") {
				cols.Acronym = opts.acronym
			}
			return c.runTeams(cmd.Context(), args[0], cols, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the records to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&opts.id, "id", defaults.ID, "column of the participant id")
	cmd.Flags().IntVar(&opts.name, "name", defaults.Name, "column of the participant name")
	cmd.Flags().IntVar(&opts.team, "team", defaults.Team, "column of the team name")
	cmd.Flags().IntVar(&opts.acronym, "acronym", defaults.Acronym, "column of a team acronym, -1 for none")

	return cmd
}

func (c *CLI) runTeams(ctx context.Context, path string, cols roster.Columns, opts *teamsOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := c.loadTeams(ctx, runner, path, cols)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(res.Teams, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if opts.output == "" {
		_, err = out.Write(data)
		return err
	}
	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	reportTeams(res)
	printFile(opts.output)
	return nil
}

// loadTeams reads a roster file and builds its team records through the
// runner's cache.
func (c *CLI) loadTeams(ctx context.Context, runner *pipeline.Runner, path string, cols roster.Columns) (*pipeline.TeamsResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bmerrors.Wrap(bmerrors.ErrCodeInvalidRoster, err, "read %s", path)
	}
	res, err := runner.Teams(ctx, data, cols)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("loaded roster", "path", path, "teams", len(res.Teams), "players", res.Players)
	return res, nil
}

func reportTeams(res *pipeline.TeamsResult) {
	printSuccess("Loaded %d teams with %d players", len(res.Teams), res.Players)
	if len(res.Duplicates) > 0 {
		printWarning("Acronyms used by more than one team: %s", strings.Join(res.Duplicates, ", "))
	}
	if len(res.Skipped) > 0 {
		printDetail("Skipped %d rows", len(res.Skipped))
	}
}
