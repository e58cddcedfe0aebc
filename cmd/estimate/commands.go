package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/reno.works/internal/format"
	"github.com/Simplici0/reno.works/internal/logging"
	"github.com/Simplici0/reno.works/internal/metrics"
	"github.com/Simplici0/reno.works/internal/pricing"
	"github.com/Simplici0/reno.works/internal/report"
)

type rootOptions struct {
	priceBook string
	logLevel  string
}

type runOptions struct {
	input  string
	format string
	out    string
	locale string
	title  string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "estimate",
		Short:        "Price renovation projects as an itemized bill of quantities",
		SilenceUsage: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.priceBook, "pricebook", os.Getenv("PRICEBOOK_PATH"), "JSON or YAML price book replacing the built-in catalog")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(opts), newCatalogCmd(opts), newOptionsCmd(opts))
	return root
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Estimate a project described by a JSON input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "project input JSON file, - for stdin")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json, text or xlsx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write output to this file instead of stdout")
	cmd.Flags().StringVar(&opts.locale, "locale", "es-ES", "display locale for text output")
	cmd.Flags().StringVar(&opts.title, "title", "", "title printed above the bill of quantities")
	return cmd
}

func runEstimate(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	logger := newLogger(root.logLevel)
	defer logger.Sync()

	switch opts.format {
	case "json", "text", "xlsx":
	default:
		return fmt.Errorf("unknown format %q (want json, text or xlsx)", opts.format)
	}
	if opts.format == "xlsx" && opts.out == "" {
		return errors.New("xlsx output needs --out")
	}

	in, err := readInput(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}
	if err := pricing.ValidateInput(in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	engine, err := loadEngine(root.priceBook)
	if err != nil {
		return err
	}

	timer := metrics.NewTimer()
	result := engine.Estimate(in)

	for _, d := range result.Diagnostics {
		logger.Warn("estimate diagnostic", zap.String("code", d.Code), zap.String("message", d.Message))
	}
	logger.Debug("estimate computed",
		zap.Int("rooms", len(result.Rooms)),
		zap.Int("line_items", len(result.LineItems)),
		zap.Float64("total", result.Summary.Total),
		zap.Duration("elapsed", timer.Duration()),
	)

	var data []byte
	meta := report.Meta{Title: opts.title}
	switch opts.format {
	case "json":
		data, err = json.MarshalIndent(result, "", "  ")
		data = append(data, '\n')
	case "text":
		var f *format.Formatter
		f, err = format.New(opts.locale)
		if err != nil {
			return err
		}
		var text string
		text, err = report.Text(result, meta, f)
		data = []byte(text)
	case "xlsx":
		data, err = report.Excel(result, meta)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}

	return writeOutput(cmd.OutOrStdout(), opts.out, data)
}

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the catalog items prices are built from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := loadEngine(root.priceBook)
			if err != nil {
				return err
			}
			items := engine.Catalog().Items()
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(items)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "CODE\tNAME\tCATEGORY\tUNIT\tCOST (%s)\tWASTE\n", engine.Currency())
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.0f%%\n",
					it.Code, it.Name, it.Category, it.Unit, it.BaseUnitCost, it.DefaultWastePct*100)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newOptionsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the selectable values for every input field as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := loadEngine(root.priceBook)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(engine.Options())
		},
	}
}

func newLogger(level string) *zap.Logger {
	// Logs go to stderr so stdout stays a clean document.
	return logging.Must(logging.Config{
		Level:      level,
		Format:     "console",
		OutputPath: "stderr",
		Fields:     map[string]string{"service": "reno-estimate"},
	})
}

func loadEngine(priceBookPath string) (*pricing.Engine, error) {
	if priceBookPath == "" {
		return pricing.NewEngine()
	}
	book, err := pricing.LoadBook(priceBookPath)
	if err != nil {
		return nil, err
	}
	return pricing.NewEngine(pricing.WithBook(book))
}

func readInput(stdin io.Reader, path string) (pricing.ProjectInput, error) {
	var r io.Reader = stdin
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return pricing.ProjectInput{}, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var in pricing.ProjectInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return pricing.ProjectInput{}, fmt.Errorf("decode input %s: %w", strings.TrimSpace(path), err)
	}
	return in, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
