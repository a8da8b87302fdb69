package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/magicboy5300/exchange/internal/config"
	"github.com/magicboy5300/exchange/internal/logger"
)

type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "exchange",
		Short:         "Currency exchange rate service",
		Version:       "v1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger.New(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to config file (yaml, json or toml)")

	rootCmd.AddCommand(
		serveCmd(a),
		migrateCmd(a),
		pruneCmd(a),
		ratesCmd(a),
		convertCmd(a),
	)
	return rootCmd
}

func Execute() error {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return err
	}
	return nil
}
