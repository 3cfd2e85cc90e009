// Package main provides the semowl binary entry point.
// Semowl validates, reasons over and converts OWL 2 ontologies.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semowl/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semowl"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// app loads configuration and builds the App for one command.
func (g *globalFlags) app(cmd *cobra.Command) (*App, error) {
	logger := newLogger(g.logLevel, cmd.ErrOrStderr())
	cfg, err := loadConfig(g.configPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewApp(cfg, logger, cmd.OutOrStdout()), nil
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "OWL 2 ontology toolkit",
		Long: `Semowl validates, reasons over and converts OWL 2 ontologies.

It provides:
- Forward-chaining inference with SWRL rule support
- Validation of consistency and modeling issues
- SKOS, OWL-Time and GeoSPARQL vocabulary extensions
- Export to OWL/XML, Turtle, N-Triples and JSON-LD`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		validateCmd(flags),
		reasonCmd(flags),
		convertCmd(flags),
		watchCmd(flags),
		storeCmd(flags),
		vocabCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func newLogger(logLevel string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath == "" {
		return config.NewLoader(logger).Load()
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("Loaded config", "path", configPath)
	return cfg, nil
}
