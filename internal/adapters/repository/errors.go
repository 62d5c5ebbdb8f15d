package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrNotLoaded     = errors.New("dataset not loaded")
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyFile     = errors.New("empty file")
	ErrMalformedRow  = errors.New("malformed row")
)
