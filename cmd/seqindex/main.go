// Package main implements the seqindex command line tool.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/seqindex/internal/config"
	"github.com/taigrr/seqindex/internal/exporter"
	"github.com/taigrr/seqindex/internal/preprocess"
	"github.com/taigrr/seqindex/internal/types"
)

// options holds the raw flag values. Only flags the user set override the
// loaded config.
type options struct {
	configPath string
	verbose    bool

	directory string
	suffix    string
	pathsOut  string
	namesOut  string

	pathsIn    string
	lengthOut  string
	dataOut    string
	recordSize int
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "seqindex",
		Short: "Export path and name manifests for FASTA files",
		Long: `seqindex lists the files with a given suffix (default .fasta) in one
directory and writes two aligned manifests: the joined path of every
match, one per line, and its name with the suffix removed.

The preprocess subcommand packs the sequences named in the paths
manifest into fixed-size records for downstream tools.`,
		Example: `seqindex --directory ~/genomes
seqindex -d ./data --suffix .fa --paths-out fa_path.txt --names-out fa_name.txt
seqindex preprocess --record-size 32768`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.BoolVar(&opts.verbose, "verbose", false, "log every step to stderr")
	pf.StringVarP(&opts.directory, "directory", "d", config.DefaultDirectory, "directory to scan")
	pf.StringVarP(&opts.suffix, "suffix", "s", config.DefaultSuffix, "case-sensitive file name suffix to match")
	pf.StringVar(&opts.pathsOut, "paths-out", config.DefaultPathsOut, "output file for joined paths")
	pf.StringVar(&opts.namesOut, "names-out", config.DefaultNamesOut, "output file for names without the suffix")

	cmd.AddCommand(
		newPreprocessCmd(opts),
		newConfigCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func newPreprocessCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Pack the sequences listed in a paths manifest into fixed-size records",
		Long: `preprocess reads every FASTA file named in the paths manifest, skips its
header line and concatenates the sequence lines up to the first blank
line or next header. It writes one length per line to the length file
and one zero-padded record of --record-size bytes per file to the data
file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocess(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.pathsIn, "paths-in", config.DefaultPathsOut, "paths manifest to read")
	f.StringVar(&opts.lengthOut, "length-out", config.DefaultLengthOut, "output file for sequence lengths")
	f.StringVar(&opts.dataOut, "data-out", config.DefaultDataOut, "output file for packed sequences")
	f.IntVar(&opts.recordSize, "record-size", config.DefaultRecordSize, "bytes per packed record")
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func runExport(cmd *cobra.Command, opts *options) error {
	cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	svc := exporter.New(newLogger(cmd.ErrOrStderr(), opts.verbose))
	result, err := svc.Export(exportParams(cfg))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s and %s\n", result.Count, result.PathsOut, result.NamesOut)
	return nil
}

func runPreprocess(cmd *cobra.Command, opts *options) error {
	cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	svc, err := preprocess.New(cfg.Preprocess.RecordSize, newLogger(cmd.ErrOrStderr(), opts.verbose))
	if err != nil {
		return err
	}

	result, err := svc.Preprocess(preprocessParams(cfg, opts.pathsIn, cmd.Flags().Changed("paths-in")))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "packed %d records (%d bases, %d bytes each)\n", result.Records, result.TotalBases, svc.RecordSize())
	return nil
}

// loadSettings reads the config file and applies the flags the user set.
func loadSettings(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("directory") {
		cfg.Directory = opts.directory
	}
	if flags.Changed("suffix") {
		cfg.Suffix = opts.suffix
	}
	if flags.Changed("paths-out") {
		cfg.PathsOut = opts.pathsOut
	}
	if flags.Changed("names-out") {
		cfg.NamesOut = opts.namesOut
	}
	if flags.Changed("length-out") {
		cfg.Preprocess.LengthOut = opts.lengthOut
	}
	if flags.Changed("data-out") {
		cfg.Preprocess.DataOut = opts.dataOut
	}
	if flags.Changed("record-size") {
		cfg.Preprocess.RecordSize = opts.recordSize
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func exportParams(cfg config.Config) types.ExportParams {
	return types.ExportParams{
		Directory: cfg.Directory,
		Suffix:    cfg.Suffix,
		PathsOut:  cfg.PathsOut,
		NamesOut:  cfg.NamesOut,
	}
}

// preprocessParams reads the manifest export wrote unless another one is named.
func preprocessParams(cfg config.Config, pathsIn string, override bool) types.PreprocessParams {
	if !override {
		pathsIn = cfg.PathsOut
	}
	return types.PreprocessParams{
		PathsIn:   pathsIn,
		LengthOut: cfg.Preprocess.LengthOut,
		DataOut:   cfg.Preprocess.DataOut,
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
