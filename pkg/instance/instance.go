package instance

import "os"

// GetID identifies this worker process in logs. Deployments set
// LEGALTOOLS_INSTANCE_ID; local runs get a stable default.
func GetID() string {
	if id := os.Getenv("LEGALTOOLS_INSTANCE_ID"); id != "" {
		return id
	}
	return "worker-0"
}
