package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingRequiredField indicates a source document lacks an ID or
	// title. The builder skips such documents; it never aborts the batch.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMalformedArtifact indicates the index artifact violates the wire
	// format (bad JSON, wrong types, missing required keys). Fatal to the
	// load attempt.
	ErrMalformedArtifact = errors.New("malformed index artifact")

	// ErrEmptyArtifact indicates the artifact decoded to zero documents.
	// An empty index is valid; it silences all queries.
	ErrEmptyArtifact = errors.New("empty index artifact")

	// ErrSearchUnavailable indicates the query engine has no usable index.
	// Distinct from "no matches": the engine failed to load, it did not
	// find nothing.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrDuplicateID indicates two documents in one build share an ID.
	ErrDuplicateID = errors.New("duplicate document id")
)
