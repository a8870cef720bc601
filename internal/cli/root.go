// Package cli holds the smartchef cobra commands.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/config"
	"github.com/smartchef/smartchef/internal/logger"
	"github.com/smartchef/smartchef/internal/service"
)

var (
	backendURL string
	relayURL   string
	logFile    string
	logLevel   string
	timeout    time.Duration
)

// Clients injected by SetClients take precedence over ones built from config.
var (
	backendClient service.BackendAPI
	detailsClient service.DetailsGenerator
	log           = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "smartchef",
	Short: "Find recipes from the ingredients you have",
	Long: `SmartChef matches the ingredients you have on hand against a recipe
catalog and fills in recipe details with AI.

Run without a subcommand to start the interactive terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&backendURL, "backend-url", "", "recipe backend base URL (default from BACKEND_URL)")
	flags.StringVar(&relayURL, "relay-url", "", "recipe details relay URL (default from RELAY_URL)")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&logLevel, "log-level", "info", "log level")
	flags.DurationVar(&timeout, "timeout", 0, "per-request timeout (0 uses client defaults)")
}

// SetClients overrides the backend and relay clients.
func SetClients(backend service.BackendAPI, details service.DetailsGenerator) {
	backendClient = backend
	detailsClient = details
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	if logFile != "" {
		l, err := logger.New(logger.Config{Level: logLevel, Format: "json", OutputPath: logFile})
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		log = l
	}

	if backendClient != nil && detailsClient != nil {
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if relayURL != "" {
		cfg.RelayURL = relayURL
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}

	opts := []service.ClientOption{service.WithLogger(log)}
	if timeout > 0 {
		opts = append(opts, service.WithTimeout(timeout))
	}
	if backendClient == nil {
		backendClient = service.NewBackendClient(cfg.BackendURL, opts...)
	}
	if detailsClient == nil {
		detailsClient = service.NewDetailsClient(cfg.RelayURL, cfg.RelayAPIKey, opts...)
	}
	log.Debug("clients configured",
		zap.String("backend", cfg.BackendURL),
		zap.String("relay", cfg.RelayURL))
	return nil
}
