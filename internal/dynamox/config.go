package dynamox

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.infratographer.com/x/viperx"
)

// Config values for the DynamoDB connection.
type Config struct {
	Table    string
	Region   string
	Endpoint string
}

// MustViperFlags registers the DynamoDB flags and binds them to viper.
func MustViperFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.String("dynamodb-table", "trelnex-auth", "dynamodb table name")
	viperx.MustBindFlag(v, "dynamodb.table", flags.Lookup("dynamodb-table"))

	flags.String("dynamodb-region", "", "aws region for the dynamodb table")
	viperx.MustBindFlag(v, "dynamodb.region", flags.Lookup("dynamodb-region"))

	flags.String("dynamodb-endpoint", "", "dynamodb endpoint override (local development)")
	viperx.MustBindFlag(v, "dynamodb.endpoint", flags.Lookup("dynamodb-endpoint"))
}
