package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/theoryflash/internal/app"
)

func newDueCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "due <profile>",
		Short: "Show questions due for review",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := resolveProfile(cmd, a, args[0])
			if err != nil {
				return err
			}
			items, err := a.ProgressService.DueReviews(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Nothing due for review.")
				return nil
			}
			fmt.Fprintf(out, "%d questions due for review:\n\n", len(items))

			w := newTable(out, "Question", "Reps", "Interval", "Ease", "Next Review")
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%d\t%gd\t%.2f\t%s\n",
					it.ID, it.Repetitions, it.IntervalDays, it.EaseFactor, it.NextReviewAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		}),
	}
}
