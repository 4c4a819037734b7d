package scan

import "strings"

// StripCommentLines removes lines that are entirely comments: single-line
// //-prefixed lines and the *-prefixed continuation lines of block comments.
// Trailing comments on code lines are kept; this is a line-granular filter,
// used where a comment-only mention of a pattern must not trip a rule.
func StripCommentLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "/*") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
