// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/scoreline/internal/domain/types"
	"github.com/okian/scoreline/pkg/logger"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TeamDependencies
	LeagueDependencies
	H2HDependencies
	LineupDependencies
	PredictDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	teamsHandler   *TeamsHandler
	leaguesHandler *LeaguesHandler
	h2hHandler     *H2HHandler
	lineupHandler  *LineupHandler
	predictHandler *PredictHandler
}

// Option configures the Server.
type Option func(*serverOptions)

type serverOptions struct {
	logger logger.Logger
}

// WithLogger sets the logger used by the handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	v := newValidator()
	return &Server{
		healthHandler:  NewHealthHandler(statsProvider),
		statsHandler:   NewStatsHandler(statsProvider),
		teamsHandler:   NewTeamsHandler(deps),
		leaguesHandler: NewLeaguesHandler(deps),
		h2hHandler:     NewH2HHandler(deps),
		lineupHandler:  NewLineupHandler(deps, v),
		predictHandler: NewPredictHandler(deps, v, o.logger),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /teams", MetricsMiddleware(s.teamsHandler.HandleTeams, "teams"))
	mux.HandleFunc("GET /teams/{team}/players", MetricsMiddleware(s.teamsHandler.HandleRoster, "team_players"))
	mux.HandleFunc("GET /teams/{team}/stats", MetricsMiddleware(s.teamsHandler.HandleStats, "team_stats"))
	mux.HandleFunc("GET /teams/{team}/matches", MetricsMiddleware(s.teamsHandler.HandleMatches, "team_matches"))
	mux.HandleFunc("GET /leagues", MetricsMiddleware(s.leaguesHandler.HandleLeagues, "leagues"))
	mux.HandleFunc("GET /leagues/{league}/standings", MetricsMiddleware(s.leaguesHandler.HandleStandings, "standings"))
	mux.HandleFunc("GET /h2h", MetricsMiddleware(s.h2hHandler.HandleH2H, "h2h"))
	mux.HandleFunc("POST /lineups/check", MetricsMiddleware(s.lineupHandler.HandleCheck, "lineups_check"))
	mux.HandleFunc("POST /predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error, details ...string) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, types.ErrorResponse{Code: code, Message: msg, Details: details})
}

// writeFailure classifies err and writes the matching error reply.
func writeFailure(w http.ResponseWriter, err error, details ...string) {
	status, code := classify(err)
	writeError(w, status, code, err, details...)
}

// decodeJSON reads a bounded JSON body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := v.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}
