package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/people-notes-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the person and note tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			if err := a.Migrate(); err != nil {
				return err
			}
			cmd.Println("INFO: Done.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
