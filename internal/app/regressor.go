package service

import (
	"context"
	"time"

	"github.com/okian/scoreline/internal/domain/prediction"
	"github.com/okian/scoreline/pkg/metrics"
)

// timedRegressor records latency and failures of one side's model.
type timedRegressor struct {
	side  string
	model prediction.Regressor
}

func (r timedRegressor) Predict(ctx context.Context, row []float64) (float64, error) {
	start := time.Now()
	v, err := r.model.Predict(ctx, row)
	latency := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordModelLatency(r.side, latency)
	if err != nil {
		metrics.RecordModelError(r.side)
		metrics.RecordErrorByComponent("model", r.side)
		metrics.RecordErrorLatency("model", r.side, latency)
	}
	return v, err
}
