package domain

import "errors"

// Error kinds surfaced by the scoring engine. None of these are recovered
// internally; they propagate to the caller for presentation.
var (
	// ErrInputTooShort indicates the normalized text is under the minimum
	// length. User-correctable, surfaced as a client error.
	ErrInputTooShort = errors.New("text too short after normalization")

	// ErrInvalidWeight indicates a text weight outside [0,1]. Caller bug.
	ErrInvalidWeight = errors.New("text weight must be within [0,1]")

	// ErrModelUnavailable indicates the classifier dependency is not ready.
	// Callers should re-check readiness rather than retry blindly.
	ErrModelUnavailable = errors.New("classification model unavailable")

	// ErrExtractionFailed wraps any fetch/parse failure from the article
	// extractor. The cause is opaque to the scoring engine.
	ErrExtractionFailed = errors.New("article extraction failed")
)
