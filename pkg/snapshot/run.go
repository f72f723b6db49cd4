// Package snapshot flattens a source tree into one delimited text
// artifact. Directory scan sources are fanned into a single stream, and
// each candidate passes through exclusion matching, text classification,
// and truncation before being emitted as a delimited block.
package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"treesnap/pkg/console"
	"treesnap/pkg/filelock"
	"treesnap/pkg/glob"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// progressInterval controls how often a console progress line is printed.
const progressInterval = 100

// Summary reports the final per-run counters.
type Summary struct {
	Included  int
	Truncated int
	Excluded  int
}

// Run executes one snapshot pass: compile the rules, fan in the scan
// sources, push every candidate through the decision pipeline, and
// persist the artifact. Per-file failures are recovered and counted;
// only configuration and structural scan errors surface as run failures.
func Run(ctx context.Context, cfg *Config, logger *zap.Logger) (Summary, error) {
	startTime := time.Now()
	logger = logger.With(zap.String("runID", uuid.NewString()))
	logger.Info("Starting snapshot run", zap.String("root", cfg.Root), zap.String("output", cfg.Output))

	rs, err := compileConfig(cfg)
	if err != nil {
		return Summary{}, err
	}

	lock := filelock.New(cfg.Output + ".lock")
	acquired, err := lock.TryLock()
	if err != nil {
		return Summary{}, err
	}
	if !acquired {
		return Summary{}, fmt.Errorf("another snapshot run holds %s", lock.Path())
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logger.Warn("Failed to release run lock", zap.Error(unlockErr))
		}
	}()

	sources, err := DiscoverSources(cfg.Root, logger)
	if err != nil {
		return Summary{}, err
	}

	selfPaths := selfExclusions(cfg, lock.Path())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	candidates, wait := mergeSources(ctx, sources)

	acc := &accumulator{}
	processed := 0
	for rel := range candidates {
		processed++
		if processed%progressInterval == 0 {
			console.Progressf("processed %d files", processed)
		}

		if selfPaths[rel] {
			continue
		}
		if rs.exclude.Matches(rel) {
			acc.skip()
			logger.Debug("Excluded by pattern", zap.String("path", rel))
			continue
		}

		res := classifyFile(filepath.Join(cfg.Root, filepath.FromSlash(rel)))
		switch res.reason {
		case skipNotRegular:
			continue
		case skipBinary:
			acc.skip()
			console.Warnf("skipping %s: binary or non-UTF-8 content", rel)
			logger.Warn("Skipped non-text file", zap.String("path", rel))
			continue
		case skipUnreadable:
			acc.skip()
			console.Warnf("skipping %s: unreadable", rel)
			logger.Warn("Skipped unreadable file", zap.String("path", rel))
			continue
		}

		content, rule := applyTruncation(rs, rel, res.content)
		acc.add(rel, content, rule)
	}
	scanErr := wait()

	// Persist whatever was accumulated even when a source failed late;
	// an empty accumulator never produces an artifact.
	if acc.included > 0 {
		if writeErr := filelock.AtomicWrite(cfg.Output, []byte(acc.render())); writeErr != nil {
			logger.Error("Failed to write artifact", zap.String("output", cfg.Output), zap.Error(writeErr))
			return summaryOf(acc), writeErr
		}
		logger.Info("Wrote artifact",
			zap.String("output", cfg.Output),
			zap.Int("included", acc.included),
			zap.Int("truncated", acc.truncated),
			zap.Int("excluded", acc.excluded),
			zap.Duration("elapsed", time.Since(startTime)))
	} else {
		logger.Info("No files included; artifact not written", zap.Duration("elapsed", time.Since(startTime)))
	}

	if scanErr != nil {
		logger.Error("Directory scan failed", zap.Error(scanErr))
		return summaryOf(acc), fmt.Errorf("directory scan failed: %w", scanErr)
	}
	return summaryOf(acc), nil
}

func summaryOf(acc *accumulator) Summary {
	return Summary{Included: acc.included, Truncated: acc.truncated, Excluded: acc.excluded}
}

// selfExclusions returns the run's own files (artifact, lock file) as
// root-relative normalized paths, so a re-run never snapshots its own
// previous output.
func selfExclusions(cfg *Config, lockPath string) map[string]bool {
	self := make(map[string]bool)
	rootAbs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return self
	}
	for _, p := range []string{cfg.Output, lockPath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(rootAbs, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		self[glob.Normalize(rel)] = true
	}
	return self
}
