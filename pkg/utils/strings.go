package utils

import (
	"path/filepath"
	"strings"
)

// Truncate returns at most maxRunes runes of s, cutting on rune boundaries.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if len(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// TruncateWithEllipsis shortens a string for display by keeping the end
// and adding ellipsis at the beginning if it exceeds maxLen runes
func TruncateWithEllipsis(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 4 {
		maxLen = 4
	}
	return "..." + string(r[len(r)-maxLen+3:])
}

// TruncateEnd shortens a string for display by keeping the beginning
// and adding ellipsis at the end if it exceeds maxLen runes
func TruncateEnd(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// PathTail keeps the last n elements of a slash-separated path.
//
//	PathTail("/Users/jane/src/app/main.go", 2) == "app/main.go"
func PathTail(p string, n int) string {
	p = strings.TrimRight(filepath.ToSlash(p), "/")
	if p == "" || n <= 0 {
		return p
	}
	parts := strings.Split(p, "/")
	if len(parts) <= n {
		return p
	}
	return strings.Join(parts[len(parts)-n:], "/")
}

// SingleLine collapses all whitespace runs, newlines included, to one space.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
