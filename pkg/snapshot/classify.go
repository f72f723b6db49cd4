package snapshot

import (
	"bytes"
	"os"
	"unicode/utf8"
)

// skipReason tags why a candidate was rejected by the classifier.
type skipReason int

const (
	skipNone skipReason = iota
	// skipNotRegular covers directories, symlinks, sockets and other
	// non-regular entries. These are skipped silently and not counted.
	skipNotRegular
	// skipBinary covers content that does not decode as UTF-8 text.
	skipBinary
	// skipUnreadable covers stat and read failures (permission denied,
	// file vanished between discovery and load).
	skipUnreadable
)

// loadResult is the tagged outcome of classifying one candidate: either
// accepted text content or a skip reason. Per-file failures never
// propagate as errors; the run always continues.
type loadResult struct {
	content string
	reason  skipReason
}

// classifyFile stats and loads one candidate path. Only regular files
// whose bytes decode as UTF-8 text are accepted.
func classifyFile(absPath string) loadResult {
	info, err := os.Lstat(absPath)
	if err != nil {
		return loadResult{reason: skipUnreadable}
	}
	if !info.Mode().IsRegular() {
		return loadResult{reason: skipNotRegular}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return loadResult{reason: skipUnreadable}
	}
	if !isText(data) {
		return loadResult{reason: skipBinary}
	}
	return loadResult{content: string(data)}
}

// isText reports whether data decodes as UTF-8 text. NUL bytes mark the
// content as binary even when the byte sequence is technically valid
// UTF-8. Empty files are text.
func isText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
