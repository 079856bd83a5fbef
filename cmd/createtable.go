package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/StevenKehrli/Trelnex-sub007/internal/config"
	"github.com/StevenKehrli/Trelnex-sub007/internal/dynamox"
)

var createTableCmd = &cobra.Command{
	Use:   "createtable",
	Short: "provisions the trelnex-auth table and waits for it to become active",
	Run: func(cmd *cobra.Command, args []string) {
		createTable(cmd.Context(), globalCfg)
	},
}

func init() {
	rootCmd.AddCommand(createTableCmd)
}

func createTable(ctx context.Context, cfg *config.AppConfig) {
	client, err := dynamox.NewClient(ctx, cfg.DynamoDB, false)
	if err != nil {
		logger.Fatalw("unable to initialize dynamodb client", "error", err)
	}

	if err := client.CreateTable(ctx); err != nil {
		logger.Fatalw("unable to create table", "table", cfg.DynamoDB.Table, "error", err)
	}

	logger.Infow("table is active", "table", cfg.DynamoDB.Table)
}
