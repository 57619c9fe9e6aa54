package cmd

import (
	"context"
	"log/slog"

	"github.com/openmint/platform-ledger/internal/config"
	"github.com/openmint/platform-ledger/pkg/logger"
	"github.com/openmint/platform-ledger/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:  "ledgerd",
	Long: `OpenMint platform ledger service`,
}

func init() {
	var configFile string

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		conf := config.Parse(configFile)

		if err := logger.Init(conf.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", conf.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands and handlers
	rootCmd.AddCommand(
		NewRunCommand(),
		NewVersionCommand(),
		NewMigrateCommand(),
	)

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
