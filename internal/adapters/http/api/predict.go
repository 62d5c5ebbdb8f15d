package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/okian/scoreline/internal/domain/lineup"
	"github.com/okian/scoreline/internal/domain/prediction"
	"github.com/okian/scoreline/internal/domain/types"
	"github.com/okian/scoreline/pkg/logger"
)

// requestIDHeader carries the prediction request id.
const requestIDHeader = "X-Request-ID"

// PredictDependencies defines the interface for predictions.
type PredictDependencies interface {
	CheckLineup(ctx context.Context, labels []string) (lineup.Checked, error)
	Predict(ctx context.Context, req prediction.Request) (prediction.Result, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps     PredictDependencies
	validate *validator.Validate
	logger   logger.Logger
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies, v *validator.Validate, l logger.Logger) *PredictHandler {
	return &PredictHandler{deps: deps, validate: v, logger: l}
}

// HandlePredict handles POST /predict requests. Each side's selection goes
// through the lineup rules first; the predictor only runs on two complete
// lineups.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	ctx := r.Context()
	requestID := uuid.New().String()
	w.Header().Set(requestIDHeader, requestID)

	var req types.PredictRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	home, err := h.deps.CheckLineup(ctx, req.HomePlayers)
	if err != nil {
		writeFailure(w, Wrap(op, fmt.Errorf("home lineup: %w", err)), home.Warnings...)
		return
	}
	away, err := h.deps.CheckLineup(ctx, req.AwayPlayers)
	if err != nil {
		writeFailure(w, Wrap(op, fmt.Errorf("away lineup: %w", err)), away.Warnings...)
		return
	}

	res, err := h.deps.Predict(ctx, prediction.Request{
		HomeTeam:    req.HomeTeam,
		HomePlayers: home.Players,
		AwayTeam:    req.AwayTeam,
		AwayPlayers: away.Players,
	})
	if err != nil {
		h.logger.Error(ctx, "prediction failed", logger.String("request_id", requestID), logger.Error(err))
		writeFailure(w, Wrap(op, err))
		return
	}
	if !res.Valid {
		writeFailure(w, WrapKind(op, ErrInvalidTeam, errors.New(res.Reason)))
		return
	}

	homeColor, awayColor := res.Colors()
	resp := types.PredictResponse{
		RequestID: requestID,
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		HomeGoals: res.HomeGoals.Value,
		AwayGoals: res.AwayGoals.Value,
		Outcome:   string(res.Outcome()),
		HomeColor: homeColor,
		AwayColor: awayColor,
		Features: types.Features{
			HomeTeam:         res.Features.HomeTeam.Name,
			HomeTeamCode:     res.Features.HomeTeam.Code,
			AwayTeam:         res.Features.AwayTeam.Name,
			AwayTeamCode:     res.Features.AwayTeam.Code,
			H2HGoalDiffSum:   res.Features.H2HGoalDiffSum,
			H2HXGDiffSum:     res.Features.H2HXGDiffSum,
			HomePlayersScore: res.Features.HomePlayersScore,
			AwayPlayersScore: res.Features.AwayPlayersScore,
		},
		HomeMissing: nonNil(res.Home.Missing),
		AwayMissing: nonNil(res.Away.Missing),
	}
	resp.Warnings = append(resp.Warnings, home.Warnings...)
	resp.Warnings = append(resp.Warnings, away.Warnings...)

	h.logger.Info(ctx, "prediction served",
		logger.String("request_id", requestID),
		logger.String("home_team", req.HomeTeam),
		logger.String("away_team", req.AwayTeam),
		logger.Float64("home_goals", resp.HomeGoals),
		logger.Float64("away_goals", resp.AwayGoals),
	)
	writeJSON(w, http.StatusOK, resp)
}
