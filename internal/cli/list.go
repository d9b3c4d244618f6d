package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	var trainersOnly bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			list := apiClient.Users.List
			if trainersOnly {
				list = apiClient.Users.Trainers
			}
			users, err := list(cmd.Context())
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			fmt.Printf("%-5s  %-16s  %-28s  %-8s  %s\n", "ID", "USERNAME", "EMAIL", "ROLE", "NAME")
			for _, u := range users {
				fmt.Printf("%-5d  %-16s  %-28s  %-8s  %s\n", u.ID, u.Username, u.Email, u.Role, u.FullName())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trainersOnly, "trainers", false, "Only list trainers")
	return cmd
}

func newClassesCmd() *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List gym classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			list := apiClient.GymClasses.List
			if availableOnly {
				list = apiClient.GymClasses.ListAvailable
			}
			classes, err := list(cmd.Context())
			if err != nil {
				return fmt.Errorf("list classes: %w", err)
			}
			if len(classes) == 0 {
				fmt.Println("No classes found.")
				return nil
			}

			fmt.Printf("%-5s  %-24s  %-18s  %-8s  %s\n", "ID", "NAME", "TYPE", "STATUS", "ENROLLED")
			for _, c := range classes {
				fmt.Printf("%-5d  %-24s  %-18s  %-8s  %d/%d\n",
					c.ID, c.Name, c.Type, c.Status, c.CurrentEnrollment, c.MaxCapacity)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&availableOnly, "available", false, "Only list classes with open spots")
	return cmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the front-desk overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			d, err := apiClient.Dashboard(cmd.Context())
			if err != nil {
				return fmt.Errorf("load dashboard: %w", err)
			}

			fmt.Printf("Active memberships:     %d\n", d.ActiveMemberships)
			fmt.Printf("Active classes:         %d\n", d.ActiveClasses)
			fmt.Printf("Upcoming sessions:      %d\n", d.UpcomingSessions)
			fmt.Printf("Overdue payments:       %d\n", d.OverduePayments)
			fmt.Printf("Equipment maintenance:  %d\n", d.EquipmentMaintenance)
			return nil
		},
	}
}
