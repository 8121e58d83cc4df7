package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/people-notes-backend/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		return a.Run(ctx)
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
