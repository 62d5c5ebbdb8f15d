package predictclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/okian/scoreline/pkg/logger"
)

// Run loads every fixture file, checks service health, predicts the
// fixtures concurrently and writes one report per fixture to out, in file
// order. It fails when any fixture could not be predicted.
func Run(ctx context.Context, config *Config, out io.Writer) (*Stats, error) {
	log := logger.Get().Named("predict")
	stats := &Stats{StartTime: time.Now()}

	var fixtures []Fixture
	for _, path := range config.Files {
		f, err := LoadFixtures(path)
		if err != nil {
			return stats, err
		}
		fixtures = append(fixtures, f...)
	}
	if len(fixtures) == 0 {
		return stats, ErrNoFixtures
	}
	stats.Fixtures = len(fixtures)

	log.Info(ctx, "starting prediction run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("fixtures", len(fixtures)),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := NewClient(config.BaseURL, config.Timeout)
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	outcomes := predictAll(ctx, client, fixtures, config.Workers)

	for _, o := range outcomes {
		var apiErr *APIError
		switch {
		case o.Err == nil:
			stats.Succeeded++
		case errors.As(o.Err, &apiErr) && apiErr.Rejected():
			stats.Rejected++
		default:
			stats.Failed++
		}
		if config.Verbose && o.Err != nil {
			log.Warn(ctx, "fixture not predicted", logger.String("fixture", o.Fixture.Source), logger.Error(o.Err))
		}
		if err := writeOutcome(out, o, config.JSON); err != nil {
			return stats, fmt.Errorf("write report: %w", err)
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "final statistics",
		logger.Int("fixtures", stats.Fixtures),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()))

	if stats.Rejected+stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrRun, stats.Rejected+stats.Failed, stats.Fixtures)
	}
	return stats, nil
}

// predictAll posts fixtures through a bounded worker pool. Outcomes keep
// the fixture order.
func predictAll(ctx context.Context, client *Client, fixtures []Fixture, workers int) []Outcome {
	if workers < 1 {
		workers = 1
	}
	outcomes := make([]Outcome, len(fixtures))
	jobs := make(chan int, workers*WorkerChannelMultiplier)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				f := fixtures[idx]
				resp, err := client.Predict(ctx, f.Request)
				outcomes[idx] = Outcome{Fixture: f, Response: resp, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range fixtures {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	for i := range outcomes {
		if outcomes[i].Fixture.Source == "" {
			outcomes[i] = Outcome{Fixture: fixtures[i], Err: ctx.Err()}
		}
	}
	return outcomes
}

func writeOutcome(w io.Writer, o Outcome, asJSON bool) error {
	if asJSON {
		if o.Err != nil {
			return json.NewEncoder(w).Encode(map[string]string{"fixture": o.Fixture.Source, "error": o.Err.Error()})
		}
		return json.NewEncoder(w).Encode(o.Response)
	}

	req := o.Fixture.Request
	if o.Err != nil {
		_, err := fmt.Fprintf(w, "%s: %s vs %s: %v\n", o.Fixture.Source, req.HomeTeam, req.AwayTeam, o.Err)
		return err
	}

	r := o.Response
	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1f - %.1f %s (%s)\n", r.HomeTeam, r.HomeGoals, r.AwayGoals, r.AwayTeam, r.Outcome)
	if len(r.HomeMissing) > 0 {
		fmt.Fprintf(&b, "  %s players scored with the mean rating: %s\n", r.HomeTeam, strings.Join(r.HomeMissing, ", "))
	}
	if len(r.AwayMissing) > 0 {
		fmt.Fprintf(&b, "  %s players scored with the mean rating: %s\n", r.AwayTeam, strings.Join(r.AwayMissing, ", "))
	}
	if !r.Features.H2HGoalDiffSum.Valid {
		b.WriteString("  no head-to-head history\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
