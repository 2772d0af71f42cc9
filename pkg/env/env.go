package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or fallback when it is unset or blank.
// Values copied from a .env file often carry stray whitespace.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Lower is Get folded to lower case, for switches such as LOG_FORMAT.
func Lower(key, fallback string) string {
	return strings.ToLower(Get(key, fallback))
}
