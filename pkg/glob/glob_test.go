package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"literal match", "main.go", "main.go", true},
		{"literal mismatch", "main.go", "cmd/main.go", false},
		{"star within segment", "*.go", "main.go", true},
		{"star does not cross segments", "*.go", "cmd/main.go", false},
		{"question mark", "a?.txt", "ab.txt", true},
		{"question mark not slash", "a?b.txt", "a/b.txt", false},
		{"leading doublestar at root", "**/*.env", "secret.env", true},
		{"leading doublestar nested", "**/*.env", "a/b/secret.env", true},
		{"doublestar suffix mismatch", "**/*.env", "a/b/secret.envx", false},
		{"trailing doublestar", "docs/**", "docs/a/b.md", true},
		{"trailing doublestar needs slash", "docs/**", "docs", false},
		{"middle doublestar zero segments", "a/**/b.txt", "a/b.txt", true},
		{"middle doublestar many segments", "a/**/b.txt", "a/x/y/b.txt", true},
		{"middle doublestar wrong leaf", "a/**/b.txt", "a/x/c.txt", false},
		{"dot is literal", "*.env", "xenv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.path),
				"pattern %q against %q", tt.pattern, tt.path)
		})
	}
}

func TestCompileRejectsMalformedPatterns(t *testing.T) {
	for _, pattern := range []string{"", "   ", "a**b", "**x", "x**", "a/b**"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := Compile(pattern)
			assert.Error(t, err)
		})
	}
}

func TestSetMatchesAnyPattern(t *testing.T) {
	s, err := CompileSet([]string{"**/*.env", ".git/**", "*.log"})
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	assert.True(t, s.Matches("deep/nested/secret.env"))
	assert.True(t, s.Matches(".git/HEAD"))
	assert.True(t, s.Matches("run.log"))
	assert.False(t, s.Matches("src/main.go"))
	assert.False(t, s.Matches("nested/run.log"), "*.log is root-only")
}

func TestCompileSetFailsFast(t *testing.T) {
	_, err := CompileSet([]string{"*.go", "bad**pattern"})
	assert.Error(t, err)
}

func TestPatternString(t *testing.T) {
	p, err := Compile("**/*.env")
	require.NoError(t, err)
	assert.Equal(t, "**/*.env", p.String())
}
