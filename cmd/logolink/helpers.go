package cmd

import (
	"github.com/kerbaras/logolink/pkg/config"
	"github.com/kerbaras/logolink/pkg/data"
	"github.com/kerbaras/logolink/pkg/logging"
	"github.com/kerbaras/logolink/pkg/services"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// appFs is the filesystem every command works on.
var appFs afero.Fs = afero.NewOsFs()

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(viper.New(), cmd.Flags(), ".")
}

// newController wires the controller for cmd. The returned cleanup closes the
// ledger and flushes the logger.
func newController(cmd *cobra.Command, withLedger bool) (*services.Controller, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(cfg.Verbose)
	opts := []services.Option{services.WithLogger(logger)}
	cleanup := func() { _ = logger.Sync() }

	if withLedger && cfg.Ledger != "" {
		repo, err := data.OpenLedger(cfg.Ledger)
		if err != nil {
			logger.Warn("Ledger unavailable, run will not be recorded",
				zap.String("path", cfg.Ledger), zap.Error(err))
		} else {
			opts = append(opts, services.WithLedger(repo))
			cleanup = func() {
				repo.Close()
				_ = logger.Sync()
			}
		}
	}

	return services.NewController(appFs, cfg, opts...), cleanup, nil
}
