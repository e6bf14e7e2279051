package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/theoryflash/internal/app"
	"github.com/vytor/theoryflash/internal/models"
)

func newHistoryCommand(run runner) *cobra.Command {
	var (
		limit     int
		category  string
		onlyWrong bool
		since     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history <profile>",
		Short: "Show recently answered questions",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := resolveProfile(cmd, a, args[0])
			if err != nil {
				return err
			}

			filter := models.AnswerHistoryFilter{
				ProfileID: p.ID,
				Category:  category,
				OnlyWrong: onlyWrong,
				Limit:     limit,
			}
			if since > 0 {
				from := time.Now().Add(-since)
				filter.Since = &from
			}

			entries, total, err := a.ProgressService.History(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No answers recorded.")
				return nil
			}

			w := newTable(out, "When", "Question", "Category", "Selected", "Result")
			for _, e := range entries {
				result := "wrong"
				if e.Correct {
					result = "correct"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					e.AnsweredAt.Local().Format("2006-01-02 15:04"), e.QuestionID, e.Category, e.Selected, result)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nShowing %d of %d answers\n", len(entries), total)
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of answers to show")
	cmd.Flags().StringVar(&category, "category", "", "only show answers from this category")
	cmd.Flags().BoolVar(&onlyWrong, "wrong", false, "only show wrong answers")
	cmd.Flags().DurationVar(&since, "since", 0, "only show answers newer than this, e.g. 72h")
	return cmd
}
