package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/modem-tools/modemsms/internal/catalog"
	"github.com/modem-tools/modemsms/internal/modem"
)

var (
	cfgFile     string
	catalogPath string
	baseURL     string
	verbose     bool

	// Version is set by the main package via ldflags.
	Version = "dev"
)

// NewRootCmd creates the root modemsms command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "modemsms",
		Short:        "Send and manage SMS through a modem's web interface",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "command catalog file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "device base URL (overrides the catalog's Host header)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newInboxCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newErrcodeCmd())
	rootCmd.AddCommand(newMCPCmd())

	return rootCmd
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
	).Level(level).With().Timestamp().Logger()
}

// newClient loads the config and catalog and builds a modem client.
func newClient() (*modem.Client, error) {
	cfg, err := modem.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if catalogPath != "" {
		cfg.Catalog = catalogPath
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	return modem.New(cat, cfg, newLogger()), nil
}

func printBody(res *modem.Result) error {
	data, err := json.MarshalIndent(res.Body, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
