package db

import "strings"

// IsUniqueViolation reports whether err is a Postgres unique violation.
// With a constraintName it matches that specific constraint; without
// one it matches any duplicate-key failure. SQLite's equivalent message
// also contains "UNIQUE constraint failed", covered by the generic case
// in tests.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
