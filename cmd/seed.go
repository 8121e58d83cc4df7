package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/people-notes-backend/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Drop all data and load the sample people and notes",
	Long: `seed drops the person and note tables, recreates them and loads three
sample people (Fairy, Ruprecht, Bunny) with their notes. Existing data is lost.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Seed(ctx); err != nil {
				return err
			}
			cmd.Println("INFO: Done.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
