package snapshot

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"treesnap/pkg/glob"

	"go.uber.org/zap"
)

// A Source produces candidate paths, relative to the project root and
// normalized to forward slashes, in the source's native traversal order.
// It returns once the walk completes, the context is cancelled, or the
// scan fails structurally. Sources send on out and never close it; the
// combiner owns the channel lifecycle.
type Source func(ctx context.Context, out chan<- string) error

// DiscoverSources builds one Source per top-level directory of root plus
// a single Source covering root-level files. A failure to read the root
// itself is structural and aborts the run.
func DiscoverSources(root string, logger *zap.Logger) ([]Source, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read project root %s: %w", root, err)
	}

	var sources []Source
	var rootFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			sources = append(sources, dirSource(root, entry.Name(), logger))
		} else {
			rootFiles = append(rootFiles, entry.Name())
		}
	}
	if len(rootFiles) > 0 {
		sources = append(sources, listSource(rootFiles))
	}
	return sources, nil
}

// dirSource walks one top-level directory. Errors on the directory itself
// are structural; errors deeper in the tree (unreadable subdirectory,
// entry vanished mid-walk) are warned about and skipped, matching the
// recovery rules for per-file failures.
func dirSource(root, dir string, logger *zap.Logger) Source {
	base := filepath.Join(root, dir)
	return func(ctx context.Context, out chan<- string) error {
		return filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == base {
					return fmt.Errorf("failed to scan %s: %w", base, err)
				}
				logger.Warn("Error accessing path during traversal",
					zap.String("path", path),
					zap.Error(err))
				return nil
			}
			if d.IsDir() {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				logger.Warn("Unable to determine relative path",
					zap.String("path", path),
					zap.Error(relErr))
				return nil
			}

			select {
			case out <- glob.Normalize(rel):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
}

// listSource yields a fixed list of already-relative paths.
func listSource(paths []string) Source {
	return func(ctx context.Context, out chan<- string) error {
		for _, p := range paths {
			select {
			case out <- glob.Normalize(p):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
}
