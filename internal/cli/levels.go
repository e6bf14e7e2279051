package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/theoryflash/internal/app"
)

func newLevelsCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the level table",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, a *app.App, _ []string) error {
			w := newTable(cmd.OutOrStdout(), "Level", "Name", "Min XP")
			for _, l := range a.ProgressService.Levels() {
				fmt.Fprintf(w, "%d\t%s\t%d\n", l.Level, l.Name, l.MinXP)
			}
			return w.Flush()
		}),
	}
}
