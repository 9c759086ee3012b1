package types

import "github.com/m-mizutani/goerr/v2"

// Error tags used by the HTTP layer to map failures to status codes
var (
	// ErrTagBadRequest marks client-side validation failures (HTTP 400)
	ErrTagBadRequest = goerr.NewTag("bad_request")

	// ErrTagTooLarge marks uploads over the configured size limit (HTTP 413)
	ErrTagTooLarge = goerr.NewTag("too_large")

	// ErrTagUpstream marks LLM API transport failures (HTTP 502)
	ErrTagUpstream = goerr.NewTag("upstream")
)
