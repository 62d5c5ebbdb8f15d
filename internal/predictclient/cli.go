package predictclient

import (
	"fmt"
	"os"

	"github.com/okian/scoreline/pkg/logger"
)

// SetupLogging initialises the logger for the CLI. Logs go to stderr so the
// report on stdout stays clean.
func SetupLogging(verbose bool) error {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the predict tool.
func ShowHelp() {
	os.Stdout.WriteString(`Scoreline Predict Tool
======================

Posts fixture files to a running scoreline server and prints the predicted
scorelines.

Usage:
  go run ./cmd/predict [options] fixture.yaml [more.yaml ...]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -workers int
        Number of concurrent requests (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -json
        Print raw JSON responses
  -verbose
        Enable verbose logging
  -help
        Show this help message

Fixture file:
  home_team: Lyon
  home_players: ["Anthony Lopes (GK)", "Corentin Tolisso (MF)", ...]
  away_team: Lens
  away_players: [...]

  or a list of such entries under "fixtures:".
`)
}
