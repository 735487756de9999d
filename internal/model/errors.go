package model

import "errors"

// Error taxonomy shared by the catalog client and the battle engine.
// Callers match with errors.Is; messages carry the offending name or ref
// via fmt.Errorf wrapping at the call site.
var (
	// ErrNotFound means the catalog has no entry for the requested name.
	ErrNotFound = errors.New("pokemon not found")

	// ErrUpstreamUnavailable means the catalog could not be reached or
	// answered with a non-OK status. Retryable from the caller's side.
	ErrUpstreamUnavailable = errors.New("catalog unavailable")

	// ErrIncompleteData means a fetched combatant is missing one of the
	// canonical stats. Not retryable: the upstream data shape changed.
	ErrIncompleteData = errors.New("combatant data incomplete")
)
