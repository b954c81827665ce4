package swfkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the movie back to the path it was opened from.
//
// This is an atomic operation: the movie is written to a temporary file
// first, then renamed over the original. If any step fails, the original
// file remains unchanged.
//
//	err := movie.Save(
//	    swfkit.WithBackup(".bak"),
//	    swfkit.WithValidation(),
//	)
func (m *Movie) Save(opts ...SaveOption) error {
	if m.Path == "" {
		return errors.New("save: movie has no path, use SaveAs")
	}
	return m.SaveAs(m.Path, opts...)
}

// SaveAs writes the movie to outputPath atomically. Any partially written
// data is cleaned up on failure. On success the movie's Path is set to
// outputPath.
func (m *Movie) SaveAs(outputPath string, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	var origInfo os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(outputPath); err == nil {
			origInfo = info
		}
	}

	// Same directory as the output so the rename stays on one filesystem.
	tempFile, err := os.CreateTemp(filepath.Dir(outputPath), ".swfkit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := m.Encode(tempFile); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(outputPath); err == nil {
			if err := os.Rename(outputPath, outputPath+options.backupSuffix); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true
	m.Path = outputPath

	if origInfo != nil {
		_ = os.Chtimes(outputPath, origInfo.ModTime(), origInfo.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if options.validate {
		if err := m.validateWrittenFile(outputPath); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// validateWrittenFile re-opens the file and compares digests.
func (m *Movie) validateWrittenFile(path string) error {
	written, err := Open(path, WithByteOrder(m.byteOrder))
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}

	want, err := m.Digest()
	if err != nil {
		return err
	}
	got, err := written.Digest()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("digest mismatch: got %s, want %s", got, want)
	}
	return nil
}
