package snapshot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, cfg *Config) *ruleSet {
	t.Helper()
	rs, err := compileConfig(cfg)
	require.NoError(t, err)
	return rs
}

func numberedLines(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	return sb.String()
}

func TestApplyTruncationTrimsToLimit(t *testing.T) {
	rs := mustCompile(t, &Config{Truncate: []Rule{
		{Pattern: "**/gen.ts", MaxLines: 3, Notice: "[cut here]"},
	}})

	got, rule := applyTruncation(rs, "src/gen.ts", numberedLines(5))
	require.NotNil(t, rule)
	assert.Equal(t, "line 1\nline 2\nline 3\n[cut here]\n", got)
	assert.NotContains(t, got, "line 4")
}

func TestApplyTruncationPassesShortContentThrough(t *testing.T) {
	rs := mustCompile(t, &Config{Truncate: []Rule{
		{Pattern: "**/gen.ts", MaxLines: 10, Notice: "[cut]"},
	}})

	content := numberedLines(5)
	got, rule := applyTruncation(rs, "src/gen.ts", content)
	assert.Nil(t, rule)
	assert.Equal(t, content, got)
}

func TestApplyTruncationExactLimitUnchanged(t *testing.T) {
	rs := mustCompile(t, &Config{Truncate: []Rule{
		{Pattern: "gen.ts", MaxLines: 5, Notice: "[cut]"},
	}})

	content := numberedLines(5)
	got, rule := applyTruncation(rs, "gen.ts", content)
	assert.Nil(t, rule)
	assert.Equal(t, content, got)
}

func TestApplyTruncationNoMatchingRule(t *testing.T) {
	rs := mustCompile(t, &Config{Truncate: []Rule{
		{Pattern: "**/gen.ts", MaxLines: 1, Notice: "[cut]"},
	}})

	content := numberedLines(20)
	got, rule := applyTruncation(rs, "src/main.go", content)
	assert.Nil(t, rule)
	assert.Equal(t, content, got)
}

func TestApplyTruncationFirstMatchWins(t *testing.T) {
	rs := mustCompile(t, &Config{Truncate: []Rule{
		{Pattern: "**/*.ts", MaxLines: 4, Notice: "[first]"},
		{Pattern: "**/gen.ts", MaxLines: 2, Notice: "[second]"},
	}})

	got, rule := applyTruncation(rs, "src/gen.ts", numberedLines(10))
	require.NotNil(t, rule)
	assert.Equal(t, 4, rule.maxLines)
	assert.Contains(t, got, "[first]")
	assert.NotContains(t, got, "[second]")
	assert.Contains(t, got, "line 4")
	assert.NotContains(t, got, "line 5")
}

func TestApplyTruncationDeterministic(t *testing.T) {
	rs := mustCompile(t, &Config{Truncate: []Rule{
		{Pattern: "big.txt", MaxLines: 7, Notice: "[cut]"},
	}})

	content := numberedLines(50)
	first, _ := applyTruncation(rs, "big.txt", content)
	second, _ := applyTruncation(rs, "big.txt", content)
	assert.Equal(t, first, second)
}
