// Package predictclient posts fixture files to a running scoreline server
// and reports the predicted scorelines.
package predictclient

import (
	"time"

	"github.com/okian/scoreline/internal/domain/types"
)

// Config holds configuration for a prediction run.
type Config struct {
	BaseURL string        // Base URL of the service
	Files   []string      // Fixture files (YAML)
	Workers int           // Number of concurrent requests
	Timeout time.Duration // HTTP request timeout
	JSON    bool          // Print raw JSON responses
	Verbose bool          // Enable verbose logging
}

// Fixture is one match to predict, read from a fixture file.
type Fixture struct {
	Source  string
	Request types.PredictRequest
}

// Outcome is the answer to one fixture.
type Outcome struct {
	Fixture  Fixture
	Response types.PredictResponse
	Err      error
}

// Stats holds run statistics.
type Stats struct {
	Fixtures  int
	Succeeded int
	Rejected  int
	Failed    int
	StartTime time.Time
	Duration  time.Duration
}
