// Command tradelens extracts trade history from broker report exports and
// serves the trade statistics viewer.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tradelens/internal/config"
	"tradelens/internal/infrastructure"
	"tradelens/pkg/contracts"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	source     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tradelens",
		Short: "Extract trade history from broker report exports",
		Long: `tradelens reads MetaTrader-style trade history reports (HTML or XLSX),
classifies their rows into sections and derives trade statistics.

Use "tradelens extract" for one-shot JSON output or "tradelens serve" to
run the HTTP viewer.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.source, "source", "", "Report document served by the viewer (overrides report.source_path)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newExtractCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig resolves configuration for a subcommand
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.source != "" {
		cfg.Report.SourcePath = o.source
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := infrastructure.NewLogger(cfg.Logging, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
			return err
		},
	}
}
