package db

import (
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// IsPostgresDSN reports whether the configured DSN targets postgres — either
// URL form or a lib/pq key=value list. Anything else is treated as a sqlite
// file path.
func IsPostgresDSN(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") {
		return true
	}
	return kvPairRegex.MatchString(s)
}

// NormalizePostgresDSN trims quotes and whitespace and, for key=value form,
// supplements sslmode when missing.
func NormalizePostgresDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// NormalizeSQLiteDSN makes a sqlite DSN safe for concurrent placements:
// foreign keys enforced on every pooled connection, write transactions taking
// their lock up front, and a busy timeout so a second writer waits instead of
// failing immediately.
func NormalizeSQLiteDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	for _, param := range []string{"_foreign_keys=on", "_busy_timeout=5000", "_txlock=immediate"} {
		key := param[:strings.Index(param, "=")+1]
		if strings.Contains(s, key) {
			continue
		}
		if strings.Contains(s, "?") {
			s += "&" + param
		} else {
			s += "?" + param
		}
	}
	return s
}
