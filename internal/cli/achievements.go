package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/theoryflash/internal/app"
)

func newAchievementsCommand(run runner) *cobra.Command {
	var unlockedOnly bool

	cmd := &cobra.Command{
		Use:   "achievements <profile>",
		Short: "List achievements and which ones a profile has unlocked",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := resolveProfile(cmd, a, args[0])
			if err != nil {
				return err
			}
			views, err := a.ProgressService.Achievements(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			w := newTable(cmd.OutOrStdout(), "ID", "Name", "Category", "Points", "Unlocked")
			for _, v := range views {
				if unlockedOnly && !v.Unlocked {
					continue
				}
				mark := "no"
				if v.Unlocked {
					mark = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", v.ID, v.Name, v.Category, v.Points, mark)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().BoolVar(&unlockedOnly, "unlocked", false, "only show unlocked achievements")
	return cmd
}
