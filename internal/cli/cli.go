// Package cli provides the command-line interface for the RAML converter.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/raml-converter/internal/adapters/exporters"
	"github.com/GabrielNunesIT/raml-converter/internal/config"
	"github.com/GabrielNunesIT/raml-converter/internal/domain"
	"github.com/GabrielNunesIT/raml-converter/internal/importer"
	"github.com/GabrielNunesIT/raml-converter/internal/store"
)

// Logger is the logging surface the CLI needs.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// CLI holds the command-line interface configuration.
type CLI struct {
	log     Logger
	fs      afero.Fs
	store   *store.Store
	rootCmd *cobra.Command

	inputPath     string
	outputDir     string
	format        string
	flat          bool
	deterministic bool
	skipMethods   []string
	serverAddr    string
}

// New creates a new CLI instance.
func New(log logger.ILogger, cfg *config.Config) *CLI {
	return newCLI(log, cfg, afero.NewOsFs())
}

func newCLI(log Logger, cfg *config.Config, fs afero.Fs) *CLI {
	if cfg == nil {
		defaults := config.Defaults()
		cfg = &defaults
	}

	cli := &CLI{
		log:   log,
		fs:    fs,
		store: store.New(fs),
	}
	if _, ok := fs.(*afero.OsFs); ok {
		cli.store = store.NewOSStore()
	}

	cli.rootCmd = &cobra.Command{
		Use:   "raml-converter",
		Short: "Convert RAML specifications to request collections",
		Long: "A CLI tool that converts RAML 0.8 and 1.0 specifications into a request collection " +
			"and a companion environment holding the URI parameters.",
		SilenceUsage: true,
		RunE:         cli.run,
	}

	cli.setupFlags(cfg)
	cli.rootCmd.AddCommand(cli.validateCommand(), cli.serveCommand(cfg))

	return cli
}

func (c *CLI) setupFlags(cfg *config.Config) {
	flags := c.rootCmd.Flags()
	flags.StringVarP(&c.inputPath, "input", "i", "", "Path to the root RAML file or to a folder containing it (required)")
	flags.StringVarP(&c.outputDir, "output", "o", cfg.OutputDir, "Directory the collection and environment are written to")
	flags.StringVarP(&c.format, "format", "f", cfg.Format, "Output format: json, yaml, pdf, docx, confluence")
	flags.BoolVar(&c.flat, "flat", strings.EqualFold(cfg.FolderStrategy, importer.FolderStrategyFlat), "List every request at the top level instead of grouping them in folders")
	flags.BoolVar(&c.deterministic, "deterministic", cfg.DeterministicIDs, "Emit empty ids and zero timestamps")
	flags.StringSliceVar(&c.skipMethods, "skip-method", nil, "HTTP method to leave out of the collection (repeatable)")

	_ = c.rootCmd.MarkFlagRequired("input")
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the running command.
func (c *CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.rootCmd.ExecuteContext(ctx)
}

func (c *CLI) run(cmd *cobra.Command, _ []string) error {
	exporter, err := exporters.New(c.format)
	if err != nil {
		return err
	}

	input, err := c.input(c.inputPath)
	if err != nil {
		return err
	}

	imp, err := importer.New(importer.WithStore(c.store), importer.WithLogger(c.log))
	if err != nil {
		return err
	}

	result := imp.Convert(cmd.Context(), input, c.conversionOptions())
	if !result.Result {
		return fmt.Errorf("conversion failed: %s", result.Reason)
	}

	c.log.Infof("Writing %s output to: %s", exporter.Format(), c.outputDir)

	if err := c.fs.MkdirAll(c.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, out := range result.Output {
		path := filepath.Join(c.outputDir, exporters.FileName(out, exporter))
		if err := c.write(exporter, out, path); err != nil {
			return err
		}

		c.log.Infof("Successfully created: %s", path)
	}

	return nil
}

func (c *CLI) write(exporter domain.Exporter, out domain.Output, path string) error {
	outputFile, err := c.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outputFile.Close()

	if err := exporter.Export(out, outputFile); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	return nil
}

func (c *CLI) conversionOptions() map[string]any {
	strategy := importer.FolderStrategyPaths
	if c.flat {
		strategy = importer.FolderStrategyFlat
	}

	skip := make([]any, len(c.skipMethods))
	for i, m := range c.skipMethods {
		skip[i] = m
	}

	return map[string]any{
		importer.OptionFolderStrategy:   strategy,
		importer.OptionDeterministicIDs: c.deterministic,
		importer.OptionSkipMethods:      skip,
	}
}

// input turns a path into a file input, or into a fileset input holding every
// regular file below it when path is a directory.
func (c *CLI) input(path string) (domain.Input, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return domain.Input{}, fmt.Errorf("failed to read input: %w", err)
	}

	if !info.IsDir() {
		c.log.Infof("Loading RAML specification from: %s", path)
		return domain.FileInput(path), nil
	}

	var files []domain.File
	err = afero.Walk(c.fs, path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.Mode().IsRegular() {
			files = append(files, domain.File{Path: p})
		}
		return nil
	})
	if err != nil {
		return domain.Input{}, fmt.Errorf("failed to list %s: %w", path, err)
	}

	c.log.Infof("Loading RAML specification folder: %s (%d files)", path, len(files))

	return domain.FileSetInput(files...), nil
}
