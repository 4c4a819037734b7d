package scan

import (
	"regexp"
	"strings"
)

// exportDecl matches a primary export statement at line start: classes,
// interfaces, enums, consts, functions, and type aliases.
var exportDecl = regexp.MustCompile(`(?m)^export\s+(?:abstract\s+)?(?:class|interface|enum|const|function|type)\s+([A-Za-z_$][\w$]*)`)

// Exports returns the names of every primary export statement in the file.
func Exports(content string) []string {
	var names []string
	for _, m := range exportDecl.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	return names
}

// Public method shapes: plain method syntax and arrow-function properties,
// in both cases without an access modifier. Accessors and constructors are
// excluded by the modifier group and the keyword filter below.
var (
	publicMethodDecl = regexp.MustCompile(`(?m)^\s*(private\s+|protected\s+|get\s+|set\s+)?(?:static\s+)?(?:async\s+)?([A-Za-z_$][\w$]*)\s*\([^)]*\)\s*[:{]`)
	publicArrowDecl  = regexp.MustCompile(`(?m)^\s*(private\s+|protected\s+|readonly\s+)?([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?\(`)
)

// controlKeywords are statement keywords the method-syntax regex also
// matches; they are never method names.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "return": true, "constructor": true, "super": true,
}

// PublicMethodNames extracts the deduplicated public method names of a file.
// Access-modified members, accessors, constructors, and test-framework
// keywords never count. Names in exclude are dropped, and dropLifecycle
// additionally drops framework lifecycle hooks (the ng-prefixed names).
func PublicMethodNames(content string, exclude map[string]bool, dropLifecycle bool) []string {
	seen := make(map[string]bool)
	var names []string

	record := func(modifier, name string) {
		if modifier != "" {
			return
		}
		if controlKeywords[name] || testKeywords[name] || exclude[name] || seen[name] {
			return
		}
		if dropLifecycle && strings.HasPrefix(name, "ng") {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, m := range publicMethodDecl.FindAllStringSubmatch(content, -1) {
		record(strings.TrimSpace(m[1]), m[2])
	}
	for _, m := range publicArrowDecl.FindAllStringSubmatch(content, -1) {
		record(strings.TrimSpace(m[1]), m[2])
	}

	return names
}
