package auth

import (
	"path"
	"strings"
)

// RouteClassifier decides which request paths need an identity.
// Patterns are checked in order and any match protects the path. Matching
// ignores case, like the fiber router it guards.
type RouteClassifier struct {
	patterns []string
}

// NewRouteClassifier accepts "/prefix/*" families, path.Match globs and exact paths.
func NewRouteClassifier(patterns ...string) *RouteClassifier {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, strings.ToLower(p))
		}
	}
	return &RouteClassifier{patterns: cleaned}
}

// RequiresAuth reports whether p matches any configured pattern.
func (r *RouteClassifier) RequiresAuth(p string) bool {
	if p == "" {
		p = "/"
	}
	p = strings.ToLower(path.Clean(p))
	for _, pattern := range r.patterns {
		if matchPattern(pattern, p) {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the configured patterns.
func (r *RouteClassifier) Patterns() []string {
	return append([]string(nil), r.patterns...)
}

func matchPattern(pattern, p string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok && !strings.ContainsAny(prefix, "*?[") {
		return p == prefix || strings.HasPrefix(p, prefix+"/")
	}
	if strings.ContainsAny(pattern, "*?[") {
		matched, err := path.Match(pattern, p)
		if err != nil {
			// A broken glob protects everything under its literal prefix.
			return strings.HasPrefix(p, literalPrefix(pattern))
		}
		return matched
	}
	return p == path.Clean(pattern)
}

func literalPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, "*?[\\"); i >= 0 {
		return pattern[:i]
	}
	return pattern
}
