package swfkit

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	_ "github.com/simonhull/swfkit/internal/compress" // registers body codecs
)

// Open reads and decodes the movie at path.
//
// The whole movie is decoded before Open returns and the file is closed,
// so there is nothing to release afterwards. Non-fatal issues are
// collected in Movie.Warnings unless WithStrictParsing turns them into
// errors:
//
//	movie, err := swfkit.Open("intro.swf", swfkit.WithStrictParsing())
//	if err != nil {
//		return err
//	}
//	for _, e := range movie.Exports() {
//		fmt.Println(e.Entries())
//	}
func Open(path string, opts ...Option) (*Movie, error) {
	return OpenContext(context.Background(), path, opts...)
}

// OpenContext is Open with cancellation. The context is checked before
// each record is decoded.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return decodeMovie(ctx, f, stat.Size(), path, options)
}

// OpenMany opens multiple movies concurrently.
//
// Movies are decoded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the rest and is returned alone.
//
//	movies, err := swfkit.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*Movie, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Movie, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			movie, err := OpenContext(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = movie
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
