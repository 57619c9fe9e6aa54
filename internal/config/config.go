package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	ledgerconfig "github.com/openmint/platform-ledger/modules/ledger/config"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
	"github.com/openmint/platform-ledger/pkg/middleware/requestcontext"
	"github.com/openmint/platform-ledger/pkg/middleware/requestlogger"
	"github.com/openmint/platform-ledger/pkg/reportingclient"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		HTTPServer: HTTPServer{
			Port: 8080,
		},
	}
)

type Config struct {
	APIOnly    bool                   `mapstructure:"api_only"`
	Logger     logger.Config          `mapstructure:"logger"`
	HTTPServer HTTPServer             `mapstructure:"http_server"`
	Reporting  reportingclient.Config `mapstructure:"reporting"`
	Modules    Modules                `mapstructure:"modules"`
}

type HTTPServer struct {
	Port      int                               `mapstructure:"port"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
}

type Modules struct {
	Ledger ledgerconfig.Config `mapstructure:"ledger"`
}

// BindPFlag binds a specific viper config key to a pflag. Must be called
// before the first Load.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("failed to bind pflag", slogx.String("key", key), slogx.Error(err))
	}
}

// Parse loads the configuration, reading from configFile when one is given
// instead of searching the working directory.
func Parse(configFile string) Config {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}
	return Load()
}

// Load loads the configuration from the config file and environment
// variables. Subsequent calls return the first result.
func Load() Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "config file not found, use default value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "failed to unmarshal config", slogx.Error(err))
		}
		logger.InfoContext(ctx, "loaded config successfully")
	})

	return *config
}
