package db

import (
	"os"
	"regexp"
	"strings"
)

var (
	urlPasswordRe = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	kvPasswordRe  = regexp.MustCompile(`(password=)(\S+)`)
)

// osGetenv indirection keeps migrate.go free of a direct os dependency
// and lets tests override the environment lookup if needed.
var osGetenv = os.Getenv

// NormalizeDSN trims quotes and whitespace. URL-style DSNs
// (postgres://, file:) pass through; a bare path is treated as a
// sqlite file.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	return s
}

// IsPostgres reports whether the DSN targets postgres.
func IsPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// MaskDSN hides the password portion of a DSN for logging.
func MaskDSN(dsn string) string {
	masked := urlPasswordRe.ReplaceAllString(dsn, "://${1}:***@")
	return kvPasswordRe.ReplaceAllString(masked, "${1}***")
}
