// swf-dump prints the header and records of one or more movies.
//
// Usage:
//
//	swf-dump [--format text|yaml|json|cbor] [--strict] [--log-level debug]
//	         [--max-body-size BYTES] FILE...
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/simonhull/swfkit"
)

// defaultMaxBodySize caps decompressed bodies so a small CWS file cannot
// expand without bound.
const defaultMaxBodySize = 256 << 20

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		format       string
		strict       bool
		logLevel     string
		littleEndian bool
		showVersion  bool
		maxBodySize  int64
	)

	flagSet := pflag.NewFlagSet("swf-dump", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&format, "format", "f", "text", "output format: text, yaml, json or cbor")
	flagSet.BoolVar(&strict, "strict", false, "fail on any decode warning")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.BoolVar(&littleEndian, "little-endian", false, "read multi-byte fields as little-endian")
	flagSet.Int64Var(&maxBodySize, "max-body-size", defaultMaxBodySize, "largest decompressed body in bytes, 0 for no limit")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "usage: swf-dump [flags] FILE...\n\n%s", flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Fprintln(stdout, "swf-dump", swfkit.GetVersionInfo())
		return nil
	}

	if err := checkFormat(format); err != nil {
		return err
	}
	if maxBodySize < 0 {
		return fmt.Errorf("--max-body-size must not be negative (got %d)", maxBodySize)
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		flagSet.Usage()
		return errors.New("no movie given")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []swfkit.Option{swfkit.WithLogger(logger), swfkit.WithMaxBodySize(maxBodySize)}
	if strict {
		opts = append(opts, swfkit.WithStrictParsing())
	}
	if littleEndian {
		opts = append(opts, swfkit.WithByteOrder(swfkit.LittleEndian))
	}

	reports := make([]Report, 0, len(paths))
	for _, path := range paths {
		movie, err := swfkit.OpenContext(ctx, path, opts...)
		if err != nil {
			return err
		}
		report, err := NewReport(movie)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("dumped movie", "path", path, "records", len(report.Records), "digest", report.Digest)
		reports = append(reports, report)
	}

	return writeReports(stdout, format, reports)
}
