package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// block is one delimited unit of output corresponding to exactly one
// included file.
type block struct {
	path    string
	content string
	rule    *compiledRule // non-nil when the content was truncated
}

// accumulator owns the artifact under construction and the run counters.
// It is created at run start, consumed at run end, and never shared
// between runs. Only the single consumer goroutine touches it, so no
// locking is required.
type accumulator struct {
	blocks    []block
	included  int
	excluded  int
	truncated int
}

// add records an accepted file.
func (a *accumulator) add(relPath, content string, rule *compiledRule) {
	a.blocks = append(a.blocks, block{path: relPath, content: content, rule: rule})
	a.included++
	if rule != nil {
		a.truncated++
	}
}

// skip records an excluded or unreadable file.
func (a *accumulator) skip() {
	a.excluded++
}

// formatBlock renders one file block: a start marker carrying the
// normalized path (and a truncation annotation when one applies), the
// content, and an end marker carrying the same path. A blank line
// follows each block.
func formatBlock(b block) string {
	annotation := ""
	if b.rule != nil {
		annotation = fmt.Sprintf(" (truncated to %d lines)", b.rule.maxLines)
	}
	body := strings.TrimRight(b.content, "\n")
	return fmt.Sprintf("--- START OF FILE %s%s ---\n\n%s\n\n--- END OF FILE %s ---\n\n",
		b.path, annotation, body, b.path)
}

// render produces the full artifact text. Blocks are sorted by path so
// repeated runs over an unchanged tree emit byte-identical artifacts even
// though scan arrival order is race-determined.
func (a *accumulator) render() string {
	sort.Slice(a.blocks, func(i, j int) bool {
		return a.blocks[i].path < a.blocks[j].path
	})

	var sb strings.Builder
	for _, b := range a.blocks {
		sb.WriteString(formatBlock(b))
	}
	return sb.String()
}
