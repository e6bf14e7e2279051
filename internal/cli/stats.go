package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/theoryflash/internal/app"
)

func newStatsCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <profile>",
		Short: "Show a progress summary for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := resolveProfile(cmd, a, args[0])
			if err != nil {
				return err
			}
			s, err := a.ProgressService.Summary(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			level := fmt.Sprintf("%d %s (%d XP)", s.Level.Current.Level, s.Level.Current.Name, s.Level.TotalXP)
			if s.Level.Next != nil {
				level = fmt.Sprintf("%d %s (%d XP, %d to %s)", s.Level.Current.Level, s.Level.Current.Name,
					s.Level.TotalXP, s.Level.XPToNextLevel, s.Level.Next.Name)
			}
			goal := fmt.Sprintf("%d/%d", s.DailyGoal.QuestionsAnswered, s.DailyGoalTarget)
			if s.DailyGoal.Completed {
				goal += " (done)"
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Profile:\t%s\n", p.Username)
			fmt.Fprintf(w, "Level:\t%s\n", level)
			fmt.Fprintf(w, "Answered:\t%d (%.0f%% correct)\n", s.QuestionsAnswered, s.OverallAccuracy)
			fmt.Fprintf(w, "Mastered:\t%d\n", s.MasteredQuestions)
			fmt.Fprintf(w, "Due reviews:\t%d\n", s.DueReviews)
			fmt.Fprintf(w, "Open mistakes:\t%d\n", s.OpenMistakes)
			fmt.Fprintf(w, "Quizzes:\t%d\n", s.QuizzesCompleted)
			fmt.Fprintf(w, "Exams passed:\t%d\n", s.ExamsPassed)
			fmt.Fprintf(w, "Streak:\t%d days (longest %d)\n", s.Streak.Current, s.Streak.Longest)
			fmt.Fprintf(w, "Daily goal:\t%s\n", goal)
			fmt.Fprintf(w, "Achievements:\t%d/%d (%d XP)\n", s.UnlockedAchievements, s.TotalAchievements, s.AchievementXP)
			return w.Flush()
		}),
	}
}
