package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
)

func (c *CLI) previewCommand() *cobra.Command {
	var (
		lenient bool
		static  bool
	)

	cmd := &cobra.Command{
		Use:   "preview <capacity>",
		Short: "Browse a bracket stage by stage in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := bmerrors.ParseCapacity(args[0])
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			opts := c.cfg.BracketOptions()
			if cmd.Flags().Changed("lenient") {
				opts.Lenient = lenient
			}
			opts.Logger = logger.Warnf

			b, err := bracket.Generate(capacity, opts)
			if err != nil {
				return err
			}

			model := NewPreviewModel(b)
			if static {
				for stage := 0; stage < b.Stages(); stage++ {
					fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("Stage %d", stage+1)))
					fmt.Fprintln(out, model.stageTable(stage))
				}
				return nil
			}

			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip progressions whose target slot does not exist")
	cmd.Flags().BoolVar(&static, "print", false, "print every stage and exit instead of starting the browser")

	return cmd
}
