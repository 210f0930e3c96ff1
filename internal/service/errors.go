package service

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the failure taxonomy of the pipeline. Callers
// match with errors.Is; the HTTP layer maps each to a fixed response shape.
var (
	// ErrCompanyNotFound means the ticker has no company record; nothing
	// was fetched or written.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrSourceUnavailable means the news source call failed; nothing was
	// persisted.
	ErrSourceUnavailable = errors.New("news source unavailable")

	// ErrModelInference means a summarization batch failed; its articles
	// remain unprocessed and the batch can be retried.
	ErrModelInference = errors.New("summarization model failure")

	// ErrStore wraps any persistence failure. Not retried internally.
	ErrStore = errors.New("store failure")

	// ErrInvalidRange means the requested summary date range is not one
	// of the supported named ranges.
	ErrInvalidRange = errors.New("invalid date range")
)

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStore, err)
}
