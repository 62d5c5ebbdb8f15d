package xgb

import "errors"

// Sentinel kinds for model errors.
var (
	ErrModelFormat     = errors.New("malformed model")
	ErrUnsupported     = errors.New("unsupported model")
	ErrFeatureMismatch = errors.New("model features do not match schema")
	ErrFeatureCount    = errors.New("wrong number of features")
)
