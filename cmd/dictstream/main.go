package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/dictstream/internal/snapshot"
	"github.com/ajitpratap0/dictstream/pkg/arrowconv"
	"github.com/ajitpratap0/dictstream/pkg/blockstream"
	"github.com/ajitpratap0/dictstream/pkg/column"
	"github.com/ajitpratap0/dictstream/pkg/config"
	"github.com/ajitpratap0/dictstream/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "dictstream",
		Short: "dictstream - columnar block streaming over dictionary snapshots",
		Long: `dictstream converts a dictionary snapshot into a stream of fixed-size
columnar blocks. Snapshots are addressed either by dense numeric id or by
composite key; blocks can be emitted as JSON lines or an Arrow IPC file.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dictstream v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Schema command: print a snapshot's descriptor set
	var schemaSnapshotFile string
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the descriptor set of a dictionary snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(schemaSnapshotFile)
			if err != nil {
				return err
			}
			if id := snap.Structure.ID; id != nil {
				fmt.Printf("id:  %s (UInt64)\n", id.Name)
			}
			for _, k := range snap.Structure.Key {
				fmt.Printf("key: %s (%s)\n", k.Name, k.Underlying)
			}
			for _, a := range snap.Structure.Attributes {
				fmt.Printf("attr: %s (%s, logical %s)\n", a.Name, a.Underlying, a.LogicalType())
			}
			fmt.Printf("entries: %d\n", snap.TotalRows())
			return nil
		},
	}
	schemaCmd.Flags().StringVarP(&schemaSnapshotFile, "snapshot", "s", "", "Path to dictionary snapshot JSON file (required)")
	_ = schemaCmd.MarkFlagRequired("snapshot")
	root.AddCommand(schemaCmd)

	// Stream command
	var configFile, snapshotFile, outPath, format string
	var columns []string
	var blockSize int
	var strict bool
	var logLevel string

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "Stream a dictionary snapshot as columnar blocks",
		Long: `Stream a dictionary snapshot as columnar blocks of bounded size.

Example:
  dictstream stream --snapshot cities.json --columns id,name,population --block-size 4096`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configFile, snapshotFile, outPath, format, columns, blockSize, strict)
			if err != nil {
				return err
			}
			if err := logger.Init(logger.Config{
				Level:    logLevel,
				Encoding: cfg.Logging.Encoding,
			}); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return runStream(cfg)
		},
	}

	streamCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file (optional)")
	streamCmd.Flags().StringVarP(&snapshotFile, "snapshot", "s", "", "Path to dictionary snapshot JSON file")
	streamCmd.Flags().StringSliceVar(&columns, "columns", nil, "Column names to project (default: all)")
	streamCmd.Flags().IntVar(&blockSize, "block-size", 0, "Maximum rows per block")
	streamCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default: stdout)")
	streamCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: jsonl or arrow")
	streamCmd.Flags().BoolVar(&strict, "strict", false, "Fail on requested columns missing from the schema")
	streamCmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	root.AddCommand(streamCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges the optional YAML config file with command line
// flags; explicitly set flags win.
func resolveConfig(configFile, snapshotFile, outPath, format string, columns []string, blockSize int, strict bool) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		if err := config.Load(configFile, cfg); err != nil {
			return nil, err
		}
	}
	if snapshotFile != "" {
		cfg.Snapshot = snapshotFile
	}
	if len(columns) > 0 {
		cfg.Stream.Columns = columns
	}
	if blockSize > 0 {
		cfg.Stream.MaxBlockSize = blockSize
	}
	if outPath != "" {
		cfg.Output.Path = outPath
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if strict {
		cfg.Stream.StrictProjection = true
	}
	if cfg.Snapshot == "" {
		return nil, fmt.Errorf("a snapshot file is required (--snapshot or config)")
	}
	return cfg, cfg.Validate()
}

// runStream loads the snapshot, builds the stream and writes every block.
func runStream(cfg *config.Config) error {
	snap, err := snapshot.Load(cfg.Snapshot)
	if err != nil {
		return err
	}

	names := cfg.Stream.Columns
	if len(names) == 0 {
		names = snap.AllColumnNames()
	}

	var opts []blockstream.Option
	if cfg.Stream.StrictProjection {
		opts = append(opts, blockstream.WithProjectionPolicy(blockstream.ProjectionStrict))
	}

	var stream *blockstream.Stream
	if snap.Flat != nil {
		stream, err = blockstream.NewIDStream(snap.Flat, cfg.Stream.MaxBlockSize, snap.Flat.IDs(), names, opts...)
	} else {
		stream, err = blockstream.NewKeyStream(snap.Complex, cfg.Stream.MaxBlockSize, snap.Complex.Keys(), names, opts...)
	}
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Output.Path)
	if err != nil {
		return err
	}
	defer closeOut()

	logger.Info("streaming blocks",
		zap.String("stream", stream.Name()),
		zap.Int("rows", stream.Total()),
		zap.Int("max_block_size", stream.MaxBlockSize()),
		zap.String("format", cfg.Output.Format))

	reader := blockstream.NewReader(stream)
	switch cfg.Output.Format {
	case "arrow":
		writer := arrowconv.NewIPCWriter(out)
		if err := reader.Process(writer.Write); err != nil {
			return err
		}
		return writer.Close()
	default:
		return reader.Process(func(b *column.Block) error {
			return writeJSONLines(out, b)
		})
	}
}

// openOutput resolves the output path; "-" or empty means stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path) //nolint:gosec // G304: path comes from CLI flags
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// writeJSONLines emits one JSON object per block row.
func writeJSONLines(w io.Writer, b *column.Block) error {
	row := make(map[string]interface{}, b.NumColumns())
	for i := 0; i < b.Rows(); i++ {
		for _, c := range b.Columns() {
			row[c.Name] = c.Column.Value(i)
		}
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}
