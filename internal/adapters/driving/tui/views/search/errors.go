package search

import "errors"

// ErrNoSearchService indicates the view was wired without an engine.
var ErrNoSearchService = errors.New("no search service configured")
