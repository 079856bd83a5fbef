package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.infratographer.com/x/echojwtx"
	"go.infratographer.com/x/echox"
	"go.infratographer.com/x/otelx"
	"go.infratographer.com/x/versionx"
	"go.uber.org/zap"

	"github.com/StevenKehrli/Trelnex-sub007/internal/api"
	"github.com/StevenKehrli/Trelnex-sub007/internal/config"
	"github.com/StevenKehrli/Trelnex-sub007/internal/dynamox"
	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
)

var apiDefaultListen = "0.0.0.0:7602"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "starts the trelnex-auth server",
	Run: func(cmd *cobra.Command, args []string) {
		serve(cmd.Context(), globalCfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	v := viper.GetViper()

	echox.MustViperFlags(v, serverCmd.Flags(), apiDefaultListen)
	otelx.MustViperFlags(v, serverCmd.Flags())
	echojwtx.MustViperFlags(v, serverCmd.Flags())
}

func serve(ctx context.Context, cfg *config.AppConfig) {
	err := otelx.InitTracer(cfg.Tracing, appName, logger)
	if err != nil {
		logger.Fatalw("unable to initialize tracing system", "error", err)
	}

	client, err := dynamox.NewClient(ctx, cfg.DynamoDB, cfg.Tracing.Enabled)
	if err != nil {
		logger.Fatalw("unable to initialize dynamodb client", "error", err)
	}

	engine := query.NewEngine(client, query.WithLogger(logger))

	srv, err := echox.NewServer(
		logger.Desugar(),
		echox.Config{
			Listen:              viper.GetString("server.listen"),
			ShutdownGracePeriod: viper.GetDuration("server.shutdown-grace-period"),
		},
		versionx.BuildDetails(),
	)
	if err != nil {
		logger.Fatalw("unable to initialize server", "error", err)
	}

	r, err := api.NewRouter(cfg.OIDC, engine, api.WithLogger(logger))
	if err != nil {
		logger.Fatalw("unable to initialize router", "error", err)
	}

	srv.AddHandler(r)
	srv.AddReadinessCheck("dynamodb", dynamox.Healthcheck(client))

	if err := srv.Run(); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}
