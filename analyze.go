package mp3detect

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Analyze composes session creation, execution, and teardown for callers
// who do not need fine-grained control.
//
// If session creation fails, that error is returned immediately and the
// Source is never read. Otherwise the session is closed exactly once
// regardless of whether the run succeeded, so no backend state leaks on
// any path.
func Analyze(detector *Detector, src Source) (Info, error) {
	session, err := NewSession(detector, src)
	if err != nil {
		return Info{}, err
	}

	info, err := session.Run()
	session.Close()
	return info, err
}

// AnalyzeFile opens path, analyzes it, and closes it again. Unlike Analyze
// over a caller-built Source, the file handle is owned by this function.
func AnalyzeFile(detector *Detector, path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open %s: %w", path, StatusIOError)
	}
	defer f.Close()

	src, err := FileSource(f)
	if err != nil {
		return Info{}, err
	}

	return Analyze(detector, src)
}

// AnalyzeMany analyzes multiple files concurrently, using up to
// runtime.NumCPU() goroutines. Results are returned in the same order as
// the input paths. The first failure cancels the remaining work and is
// returned with the failing path attached.
func AnalyzeMany(ctx context.Context, detector *Detector, paths ...string) ([]Info, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]Info, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			info, err := AnalyzeFile(detector, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
