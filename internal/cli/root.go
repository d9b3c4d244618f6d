// Package cli implements the gymctl command line client.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"gymstream/client"
	"gymstream/client/store"
)

var (
	apiClient *client.Client
	sessions  *client.Manager
)

// Execute runs the gymctl root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gymctl",
		Short:         "Command line client for the gymstream backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := client.LoadConfig()
			if err != nil {
				return err
			}
			st := store.New(afero.NewOsFs(), cfg.StateDir)
			apiClient = client.New(cfg, st, client.WithUnauthorizedHook(func() {
				fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
			}))
			sessions = client.NewManager(apiClient)
			return nil
		},
	}

	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newUsersCmd())
	root.AddCommand(newClassesCmd())
	root.AddCommand(newDashboardCmd())
	return root
}

// requireLogin guards commands that need a session, mirroring what the UI's
// route guard would do.
func requireLogin() error {
	if client.NewGuard(sessions).Check() != client.Allow {
		return fmt.Errorf("not logged in, run: gymctl login <username>")
	}
	return nil
}
