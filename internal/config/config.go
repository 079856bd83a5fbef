// Package config defines the application configuration
package config

import (
	"go.infratographer.com/x/echojwtx"
	"go.infratographer.com/x/echox"
	"go.infratographer.com/x/loggingx"
	"go.infratographer.com/x/otelx"

	"github.com/StevenKehrli/Trelnex-sub007/internal/dynamox"
)

// AppConfig is the struct used for configuring the app
type AppConfig struct {
	OIDC     echojwtx.AuthConfig
	Logging  loggingx.Config
	Server   echox.Config
	DynamoDB dynamox.Config
	Tracing  otelx.Config
}
