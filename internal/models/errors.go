package models

import "errors"

var (
	// ErrInvalidInput marks caller mistakes: empty content, malformed thresholds, bad fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExternalSignalUnavailable marks a web or video collaborator that is missing or failed.
	// It never escapes the signals package as a request failure.
	ErrExternalSignalUnavailable = errors.New("external signal unavailable")

	// ErrCorpusUnavailable marks a corpus provider failure on the registry path.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a resource that exists but belongs to someone else.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a write that collides with an existing unique value.
	ErrConflict = errors.New("conflict")

	// ErrUnsupportedMediaType marks uploads the detector cannot analyse, such as images.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
