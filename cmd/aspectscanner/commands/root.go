package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"AspectScanner/internal/app"
	"AspectScanner/internal/config"
	"AspectScanner/internal/logging"
)

var configPath *string

var rootCmd = &cobra.Command{
	Use:   "aspectscanner",
	Short: "aspectscanner extracts and classifies verb occurrences from a corpus web application.",
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (default $ASPECT_SCANNER_CONFIG, then ./config.yaml).")
}

// ExecuteContext runs the CLI with the given base context.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildApp loads configuration and wires the application. Missing
// required config keys are fatal here, before any browser is launched.
func buildApp() (*app.Application, error) {
	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, logger), nil
}
