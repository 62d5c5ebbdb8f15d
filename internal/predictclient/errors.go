package predictclient

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for client errors.
var (
	ErrNoFixtures = errors.New("no fixtures")
	ErrUnhealthy  = errors.New("service not ready")
	ErrRun        = errors.New("some predictions failed")
)

// APIError is an error reply of the service.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	if len(e.Details) > 0 {
		msg += " (" + strings.Join(e.Details, "; ") + ")"
	}
	return msg
}

// Rejected reports whether the service refused the fixture itself rather
// than failing to answer it.
func (e *APIError) Rejected() bool {
	return e.Status >= 400 && e.Status < 500
}
