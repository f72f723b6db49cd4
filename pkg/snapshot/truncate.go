package snapshot

import (
	"strings"
)

// applyTruncation trims content to the first matching rule's line limit
// and appends the rule's notice. It returns the applied rule when content
// was actually trimmed, nil otherwise. Deterministic: the same input
// always produces the same output.
func applyTruncation(rs *ruleSet, relPath, content string) (string, *compiledRule) {
	rule := rs.firstMatch(relPath)
	if rule == nil {
		return content, nil
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if len(lines) <= rule.maxLines {
		return content, nil
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(lines[:rule.maxLines], "\n"))
	sb.WriteString("\n")
	sb.WriteString(rule.notice)
	sb.WriteString("\n")
	return sb.String(), rule
}
