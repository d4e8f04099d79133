package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cloud-wave-best-zizon/order-console/internal/client"
	"github.com/cloud-wave-best-zizon/order-console/internal/console"
	"github.com/cloud-wave-best-zizon/order-console/internal/form"
	"github.com/cloud-wave-best-zizon/order-console/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what the subcommands share once the root has loaded config.
type app struct {
	verbose bool
	apiURL  string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "order-console",
		Short:         "Form-driven console for the orders REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "orders API base URL (overrides ORDER_API_URL)")

	root.AddCommand(
		newOrderCmd(a),
		newItemCmd(a),
		newTUICmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIBaseURL = a.apiURL
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func (a *app) newClient(logger *zap.Logger) *client.Client {
	var opts []client.Option
	if a.cfg.APITimeout > 0 {
		opts = append(opts, client.WithTimeout(a.cfg.APITimeout))
	}
	if a.cfg.TracingEnabled {
		opts = append(opts, client.WithTracing())
	}
	return client.New(a.cfg.APIBaseURL, logger, opts...)
}

func (a *app) newConsole(logger *zap.Logger) *console.Console {
	return console.New(a.newClient(logger), logger)
}

// layout reads FORM_LAYOUT_FILE when set.
func (a *app) layout() (form.Layout, error) {
	if a.cfg.LayoutFile == "" {
		return form.DefaultLayout(), nil
	}
	data, err := os.ReadFile(a.cfg.LayoutFile)
	if err != nil {
		return form.Layout{}, fmt.Errorf("read form layout: %w", err)
	}
	return form.LoadLayout(data)
}
