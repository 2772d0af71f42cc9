package instance

import "os"

// GetID returns the process instance identifier used in logs. It prefers an
// explicit QUOTATION_INSTANCE_ID, then the platform dyno name, then fallback.
func GetID(fallback string) string {
	for _, key := range []string{"QUOTATION_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return fallback
}
