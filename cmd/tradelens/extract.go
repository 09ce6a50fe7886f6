package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tradelens/internal/exporter"
	"tradelens/internal/files"
	"tradelens/internal/infrastructure"
	"tradelens/internal/services"
	"tradelens/internal/validation"
	"tradelens/pkg/contracts/domain"
)

type extractOptions struct {
	pretty bool
	stats  bool
	shape  string
	csvDir string
	bom    bool
}

// documentResult is one entry of the multi-document output
type documentResult struct {
	Document string      `json:"document"`
	Result   interface{} `json:"result"`
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract PATH...",
		Short: "Extract trade history from report files as JSON",
		Long: `Extract classifies every row of each report and prints the trade history
as JSON. A PATH may be a file, a directory or a glob pattern; directories
contribute the report documents they contain. With several documents the
output is an array in argument order.

Supported formats: .html, .htm, .xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Include trade statistics alongside the trade data")
	cmd.Flags().StringVar(&opts.shape, "shape", "", "Trade data shape: sections or records (default from config)")
	cmd.Flags().StringVar(&opts.csvDir, "csv-dir", "", "Also write each non-empty section as CSV into this directory")
	cmd.Flags().BoolVar(&opts.bom, "bom", false, "Prefix CSV files with a UTF-8 byte order mark")
	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions, args []string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	paths, err := files.NewDiscovery("").Expand(args)
	if err != nil {
		return err
	}

	shapeName := opts.shape
	if shapeName == "" {
		shapeName = cfg.Report.DefaultShape
	}
	shape, ok := domain.ParseShape(shapeName)
	if !ok {
		return fmt.Errorf("invalid shape %q: must be sections or records", opts.shape)
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if opts.csvDir != "" {
		if err := validation.NewFileValidator(logger).ValidateOutputDirectory(opts.csvDir); err != nil {
			return err
		}
	}

	service := services.NewReportService(cfg.Report, nil, nil, nil, logger)

	results := make([]interface{}, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Report.Concurrency)

	for i, file := range paths {
		g.Go(func() error {
			ext, err := service.ExtractFile(infrastructure.EnsureTraceID(ctx), file)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			if opts.csvDir != "" {
				prefix := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				if _, err := exporter.ExportSections(opts.csvDir, prefix, ext.History, exporter.WriteOptions{BOMPrefix: opts.bom}); err != nil {
					return fmt.Errorf("csv export failed: %w", err)
				}
			}

			results[i] = projectExtraction(ext, shape, opts.stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var out interface{} = results[0]
	if len(paths) > 1 {
		docs := make([]documentResult, len(paths))
		for i, file := range paths {
			docs[i] = documentResult{Document: file, Result: results[i]}
		}
		out = docs
	}
	return writeJSON(cmd.OutOrStdout(), out, opts.pretty)
}

func projectExtraction(ext *services.Extraction, shape domain.Shape, withStats bool) interface{} {
	if withStats {
		return ext.Report(shape)
	}
	if shape == domain.ShapeRecords {
		return ext.History.RecordsOnly()
	}
	return ext.History
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
