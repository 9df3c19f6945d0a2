package shared

import (
	"strings"
	"unicode"
)

// NormalizeKey lowercases s and drops everything that is not a letter or digit,
// so "first_name", "firstName" and "FirstName" share a key.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// TrimSuffixFold removes the first suffix from suffixes that s ends with, ignoring case.
// The suffix is kept when removing it would leave nothing.
func TrimSuffixFold(s string, suffixes ...string) string {
	lower := strings.ToLower(s)
	for _, suffix := range suffixes {
		if len(s) > len(suffix) && strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return s[:len(s)-len(suffix)]
		}
	}
	return s
}

// Singular strips common English plural endings from an already-normalized key.
func Singular(s string) string {
	switch {
	case len(s) > 3 && strings.HasSuffix(s, "ies"):
		return s[:len(s)-3] + "y"
	case len(s) > 4 && (strings.HasSuffix(s, "sses") || strings.HasSuffix(s, "xes") || strings.HasSuffix(s, "ches") || strings.HasSuffix(s, "shes")):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "ss"):
		return s
	case len(s) > 1 && strings.HasSuffix(s, "s"):
		return s[:len(s)-1]
	}
	return s
}

// NormalizePath reduces a route to its comparable shape: lowercased segments with
// leading "api" and version segments dropped and parameters ({id}, :id, <id>) collapsed to "{}".
func NormalizePath(p string) string {
	segments := PathSegments(p)
	return strings.Join(segments, "/")
}

// PathSegments returns the normalized segments of a route. See [NormalizePath].
func PathSegments(p string) []string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	var segments []string
	leading := true
	for _, seg := range strings.Split(p, "/") {
		seg = strings.ToLower(strings.TrimSpace(seg))
		if seg == "" {
			continue
		}
		if leading && (seg == "api" || isVersionSegment(seg)) {
			continue
		}
		leading = false
		if isParamSegment(seg) {
			seg = "{}"
		}
		segments = append(segments, seg)
	}
	return segments
}

func isVersionSegment(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

func isParamSegment(seg string) bool {
	return strings.HasPrefix(seg, ":") ||
		(strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")) ||
		(strings.HasPrefix(seg, "<") && strings.HasSuffix(seg, ">"))
}
