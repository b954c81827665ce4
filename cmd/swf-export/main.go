// swf-export builds a movie holding the export and import tables
// described by a JSONC manifest.
//
// Usage:
//
//	swf-export --manifest exports.jsonc [--config profile.yaml] --out movie.swf
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/simonhull/swfkit"
	"github.com/simonhull/swfkit/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		manifestPath string
		configPath   string
		outPath      string
		backup       string
		logLevel     string
	)

	flagSet := pflag.NewFlagSet("swf-export", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&manifestPath, "manifest", "m", "", "JSONC manifest of exports and imports (required)")
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML movie profile (default: $"+config.EnvProfile+")")
	flagSet.StringVarP(&outPath, "out", "o", "", "output movie path (required)")
	flagSet.StringVar(&backup, "backup", "", "keep an existing output file under this suffix")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if manifestPath == "" || outPath == "" {
		return errors.New("--manifest and --out are required")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	profile, err := config.Load(configPath)
	if err != nil {
		return err
	}
	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		return err
	}

	movie, err := profile.NewMovie(swfkit.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := manifest.Build(movie); err != nil {
		return err
	}

	saveOpts := []swfkit.SaveOption{swfkit.WithValidation()}
	if backup != "" {
		saveOpts = append(saveOpts, swfkit.WithBackup(backup))
	}
	if err := movie.SaveAs(outPath, saveOpts...); err != nil {
		return fmt.Errorf("%s: %w", outPath, err)
	}

	digest, err := movie.Digest()
	if err != nil {
		return err
	}
	logger.Info("wrote movie", "path", outPath, "records", movie.Len(), "format", movie.Format().String())
	fmt.Fprintf(stdout, "%s  %s\n", digest, outPath)
	return nil
}
