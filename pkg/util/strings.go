package util

import (
	"strconv"
	"strings"
)

// NormalizeToken lowercases and trims a user-supplied identifier
// (asset ids, frequency names) so lookups are case-insensitive.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
