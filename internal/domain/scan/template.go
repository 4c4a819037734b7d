// Package scan holds the stateless text scanners the rule battery is built
// from. Everything here approximates source structure with regular
// expressions and single-pass character scans rather than a real parser; the
// patterns are tuned to the project's source conventions and accept a small
// false-negative risk in exchange for having no language front-end.
package scan

import (
	"regexp"
	"strings"
)

// ExtractInlineTemplate returns the first inline template block of a
// component file: the backtick-delimited string following a "template:"
// property. Templates may span many lines. The boolean is false when the
// file has no inline template.
func ExtractInlineTemplate(content string) (string, bool) {
	idx := strings.Index(content, "template:")
	if idx < 0 {
		return "", false
	}

	rest := content[idx+len("template:"):]
	open := strings.IndexByte(rest, '`')
	if open < 0 {
		return "", false
	}

	body := rest[open+1:]
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++ // skip escaped character
		case '`':
			return body[:i], true
		}
	}
	return "", false
}

// ContainsPattern reports whether the literal pattern occurs in the raw
// content or inside the file's inline template block.
func ContainsPattern(content, pattern string) bool {
	if strings.Contains(content, pattern) {
		return true
	}
	if tpl, ok := ExtractInlineTemplate(content); ok {
		return strings.Contains(tpl, pattern)
	}
	return false
}

// interpolationCall matches a template interpolation whose expression
// contains a call. The whole interpolation is the match so the safe-list can
// inspect the surrounding expression.
var interpolationCall = regexp.MustCompile(`\{\{[^}]*[A-Za-z_$][\w$]*\s*\([^}]*\}\}`)

// safeCallMarkers identify matches that look like calls but are accepted:
// piped expressions, loop-index accesses, ternaries, and tracking
// expressions.
var safeCallMarkers = []string{"|", "$index", "?", "track"}

// InterpolationCalls returns every template interpolation that invokes a
// function, minus matches containing a safe-list marker. Used on both
// external template files and inline template blocks.
func InterpolationCalls(template string) []string {
	var calls []string
	for _, m := range interpolationCall.FindAllString(template, -1) {
		if isSafeCall(m) {
			continue
		}
		calls = append(calls, m)
	}
	return calls
}

func isSafeCall(match string) bool {
	for _, marker := range safeCallMarkers {
		if strings.Contains(match, marker) {
			return true
		}
	}
	return false
}
