// Package cmd implements the trelnex-auth command line.
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.infratographer.com/x/loggingx"
	"go.infratographer.com/x/versionx"
	"go.uber.org/zap"

	"github.com/StevenKehrli/Trelnex-sub007/internal/config"
	"github.com/StevenKehrli/Trelnex-sub007/internal/dynamox"
)

var (
	appName   = "trelnex-auth"
	cfgFile   string
	logger    *zap.SugaredLogger
	globalCfg *config.AppConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Trelnex authorization service",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/trelnex/trelnex-auth.yaml)")
	loggingx.MustViperFlags(viper.GetViper(), rootCmd.PersistentFlags())

	// Storage flags
	dynamox.MustViperFlags(viper.GetViper(), rootCmd.PersistentFlags())

	// Add version command
	versionx.RegisterCobraCommand(rootCmd, func() { versionx.PrintVersion(logger) })
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("/etc/trelnex/")
		viper.SetConfigType("yaml")
		viper.SetConfigName(appName)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("trelnexauth")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()

	var settings config.AppConfig

	if err := viper.Unmarshal(&settings); err != nil {
		log.Fatalf("unable to process app config, error: %s", err.Error())
	}

	logger = loggingx.InitLogger(appName, settings.Logging)

	if err == nil {
		logger.Infow("using config file",
			"file", viper.ConfigFileUsed(),
		)
	}

	globalCfg = &settings
}
