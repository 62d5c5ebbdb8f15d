package prediction

import "errors"

// Sentinel kinds for prediction errors.
var (
	ErrUnknownTeam = errors.New("unknown team")
	ErrModel       = errors.New("model evaluation failed")
)
