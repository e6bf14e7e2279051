package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/theoryflash/internal/app"
	"github.com/vytor/theoryflash/internal/config"
	"github.com/vytor/theoryflash/internal/models"
)

// Opener builds the application stack for a command run.
type Opener func(cfg config.Config) (*app.App, error)

// NewRootCommand returns the theoryctl command tree. cfg supplies the
// defaults; --db overrides the database path.
func NewRootCommand(cfg config.Config, open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "theoryctl",
		Short: "Inspect driving-theory learners and their progress",
		Long: `theoryctl reads the theoryflash database and prints learner progress:
review schedules, achievements, levels and the answer history.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite database")

	run := func(fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			a, err := open(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return fn(cmd, a, args)
		}
	}

	root.AddCommand(
		newProfilesCommand(run),
		newStatsCommand(run),
		newDueCommand(run),
		newAchievementsCommand(run),
		newLevelsCommand(run),
		newHistoryCommand(run),
	)
	return root
}

type runner func(fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error

func newTable(out io.Writer, headers ...string) *tabwriter.Writer {
	rules := make([]string, len(headers))
	for i, h := range headers {
		rules[i] = strings.Repeat("-", len(h))
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	fmt.Fprintln(w, strings.Join(rules, "\t"))
	return w
}

func resolveProfile(cmd *cobra.Command, a *app.App, ref string) (*models.Profile, error) {
	return a.ProfileService.FindProfile(cmd.Context(), ref)
}
