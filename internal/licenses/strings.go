package licenses

import "strings"

// CleanString collapses runs of whitespace to single spaces and trims
// the ends, so titles pulled from translated sources compare cleanly.
func CleanString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
