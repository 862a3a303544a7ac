package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is across layers.
var (
	// ErrCapabilityUnavailable means the language-model gateway cannot be
	// reached. Fatal for any operation that needs it.
	ErrCapabilityUnavailable = errors.New("language model gateway unavailable")

	// ErrNoToolsIndexed means the catalog holds zero usable tool records.
	// Recoverable by running a catalog build.
	ErrNoToolsIndexed = errors.New("no tools indexed")

	// ErrMalformedResponse means the model output could not be parsed as a
	// plan. Aborts the current query only.
	ErrMalformedResponse = errors.New("malformed model response")
)

// MalformedResponse wraps ErrMalformedResponse with a truncated preview of
// the offending model output for the user-facing message.
func MalformedResponse(raw string) error {
	const previewLimit = 200
	preview := raw
	if len(preview) > previewLimit {
		preview = preview[:previewLimit] + "..."
	}
	return fmt.Errorf("%w: %s", ErrMalformedResponse, preview)
}
