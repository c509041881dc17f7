package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confwatch/confwatch/cmd/confwatch/app"
)

// NewBackupsCommand creates the backups command group.
func NewBackupsCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Manage catalog backups",
	}

	cmd.AddCommand(newBackupsListCommand(a))
	cmd.AddCommand(newBackupsRestoreCommand(a))

	return cmd
}

func newBackupsListCommand(a *app.App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog backups, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			backups, err := client.Backups(limit)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println("No backups found")
				return nil
			}
			for _, b := range backups {
				fmt.Println(b)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of backups to list")

	return cmd
}

func newBackupsRestoreCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the catalog from a backup",
		Long: `Restore replaces the catalog data file with the given backup. The
current contents are backed up first, so a restore can itself be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			if err := client.Restore(args[0]); err != nil {
				return err
			}
			fmt.Printf("Catalog restored from %s\n", args[0])
			return nil
		},
	}
}
