package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/StevenKehrli/Trelnex-sub007/internal/config"
	"github.com/StevenKehrli/Trelnex-sub007/internal/dynamox"
	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "applies a YAML document of resources, scopes, and roles",
	Run: func(cmd *cobra.Command, args []string) {
		seed(cmd.Context(), globalCfg)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedFile, "file", "", "path to the seed document")

	if err := seedCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

type seedResource struct {
	Name   string   `yaml:"name"`
	Scopes []string `yaml:"scopes"`
	Roles  []string `yaml:"roles"`
}

type seedDocument struct {
	Resources []seedResource `yaml:"resources"`
}

// seed applies the document idempotently: entities that already exist are
// left in place.
func seed(ctx context.Context, cfg *config.AppConfig) {
	raw, err := os.ReadFile(seedFile)
	if err != nil {
		logger.Fatalw("unable to read seed document", "file", seedFile, "error", err)
	}

	var doc seedDocument

	if err := yaml.Unmarshal(raw, &doc); err != nil {
		logger.Fatalw("unable to parse seed document", "file", seedFile, "error", err)
	}

	client, err := dynamox.NewClient(ctx, cfg.DynamoDB, false)
	if err != nil {
		logger.Fatalw("unable to initialize dynamodb client", "error", err)
	}

	engine := query.NewEngine(client, query.WithLogger(logger))

	for _, resource := range doc.Resources {
		created, err := engine.CreateResource(ctx, resource.Name)

		switch {
		case err == nil:
			logger.Infow("created resource", "resource", created.Name)
		case errors.Is(err, query.ErrResourceAlreadyExists):
		default:
			logger.Fatalw("unable to create resource", "resource", resource.Name, "error", err)
		}

		for _, scope := range resource.Scopes {
			_, err := engine.CreateScope(ctx, resource.Name, scope)

			switch {
			case err == nil:
				logger.Infow("created scope", "resource", resource.Name, "scope", scope)
			case errors.Is(err, query.ErrScopeAlreadyExists):
			default:
				logger.Fatalw("unable to create scope", "resource", resource.Name, "scope", scope, "error", err)
			}
		}

		for _, role := range resource.Roles {
			_, err := engine.CreateRole(ctx, resource.Name, role)

			switch {
			case err == nil:
				logger.Infow("created role", "resource", resource.Name, "role", role)
			case errors.Is(err, query.ErrRoleAlreadyExists):
			default:
				logger.Fatalw("unable to create role", "resource", resource.Name, "role", role, "error", err)
			}
		}
	}
}
