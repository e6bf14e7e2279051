package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/theoryflash/internal/app"
)

func newProfilesCommand(run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List learner profiles",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, a *app.App, _ []string) error {
			profiles, err := a.ProfileService.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No profiles yet.")
				return nil
			}

			w := newTable(out, "ID", "Username", "Created", "Last Active")
			for _, p := range profiles {
				lastActive := "never"
				if p.LastActiveAt != nil {
					lastActive = p.LastActiveAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Username, p.CreatedAt.Format("2006-01-02"), lastActive)
			}
			return w.Flush()
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <username>",
		Short: "Create a profile, or show the existing one with that name",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := a.ProfileService.CreateProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q has id %d\n", p.Username, p.ID)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <profile>",
		Short: "Delete a profile with all of its progress",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := resolveProfile(cmd, a, args[0])
			if err != nil {
				return err
			}
			if err := a.ProfileService.DeleteProfile(cmd.Context(), p.ID); err != nil {
				return err
			}
			a.ProgressService.Forget(p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", p.Username)
			return nil
		}),
	})

	return cmd
}
