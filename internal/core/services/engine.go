package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aqz-saito/blogsearch/internal/artifact"
	"github.com/aqz-saito/blogsearch/internal/core/domain"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driving"
	"github.com/aqz-saito/blogsearch/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.SearchService = (*QueryEngine)(nil)

// QueryEngine answers fuzzy queries against a loaded search index.
// The index is immutable once loaded; Search takes only a read lock,
// so concurrent queries never contend with each other. Replacing the
// artifact goes through Load again.
type QueryEngine struct {
	fetcher driven.ArtifactFetcher
	matcher driven.Matcher
	opts    domain.MatchOptions

	mu     sync.RWMutex
	state  domain.EngineState
	docs   []domain.IndexedDocument
	meta   domain.IndexMetadata
	fields map[domain.Field]*fieldIndex
}

// NewQueryEngine creates an engine in the Unloaded state.
func NewQueryEngine(fetcher driven.ArtifactFetcher, matcher driven.Matcher, opts domain.MatchOptions) *QueryEngine {
	return &QueryEngine{
		fetcher: fetcher,
		matcher: matcher,
		opts:    opts,
		state:   domain.StateUnloaded,
	}
}

// Load fetches and decodes the artifact, then builds the per-field
// indexes. On any failure the engine ends in Failed, which is
// distinguishable from "no matches": Failed answers no queries until
// a new Load is requested.
func (e *QueryEngine) Load(ctx context.Context) error {
	e.setState(domain.StateLoading)
	logger.Section("Index Load")

	if e.fetcher == nil {
		e.setState(domain.StateFailed)
		return fmt.Errorf("load index: %w", domain.ErrSearchUnavailable)
	}

	data, err := e.fetcher.Fetch(ctx)
	if err != nil {
		e.setState(domain.StateFailed)
		return fmt.Errorf("fetch artifact: %w", err)
	}
	logger.Debug("Fetched artifact: %d bytes", len(data))

	docs, err := artifact.Decode(data)
	if err != nil && !errors.Is(err, domain.ErrEmptyArtifact) {
		e.setState(domain.StateFailed)
		return fmt.Errorf("decode artifact: %w", err)
	}
	if errors.Is(err, domain.ErrEmptyArtifact) {
		// Valid terminal state: an empty index silences all queries.
		logger.Info("Artifact contains no documents")
	}

	fields := buildFieldIndexes(docs)

	e.mu.Lock()
	e.docs = docs
	e.meta = domain.IndexMetadata{DocumentCount: len(docs), SchemaVersion: artifact.SchemaVersion}
	e.fields = fields
	e.state = domain.StateReady
	e.mu.Unlock()

	logger.Info("Index ready: %d documents", len(docs))
	return nil
}

// buildFieldIndexes prepares the lowercased field texts and trigram
// posting lists. Runs once per load, never per query.
func buildFieldIndexes(docs []domain.IndexedDocument) map[domain.Field]*fieldIndex {
	titles := make([]string, len(docs))
	tags := make([]string, len(docs))
	contents := make([]string, len(docs))

	for i, doc := range docs {
		titles[i] = strings.ToLower(doc.Title)
		tags[i] = strings.ToLower(strings.Join(doc.Tags, " "))
		contents[i] = strings.ToLower(strings.TrimSpace(doc.Description + "\n" + doc.Content))
	}

	return map[domain.Field]*fieldIndex{
		domain.FieldTitle:   newFieldIndex(titles),
		domain.FieldTags:    newFieldIndex(tags),
		domain.FieldContent: newFieldIndex(contents),
	}
}

// Ready reports whether the engine can answer queries.
func (e *QueryEngine) Ready() bool {
	return e.State() == domain.StateReady
}

// State returns the current lifecycle state.
func (e *QueryEngine) State() domain.EngineState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Metadata returns the metadata of the loaded index.
func (e *QueryEngine) Metadata() domain.IndexMetadata {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.meta
}

func (e *QueryEngine) setState(s domain.EngineState) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// hit accumulates the per-document outcome across fields.
type hit struct {
	ord       int
	score     float64
	bestField domain.Field
	fields    []domain.Field
}

// Search returns ranked, deduplicated results for the query. It never
// returns an error: short queries, an unready engine and internal
// faults all yield an empty slice so the caller's input handler can
// never break on user input.
func (e *QueryEngine) Search(query string) (results []domain.QueryResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Search recovered from panic: %v", r)
			results = []domain.QueryResult{}
		}
	}()

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < e.opts.MinQueryLength {
		return []domain.QueryResult{}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.state != domain.StateReady || len(e.docs) == 0 {
		return []domain.QueryResult{}
	}

	pattern := e.matcher.Compile(query, e.opts.Threshold)
	lowered := strings.ToLower(query)

	hits := make(map[int]*hit)
	for _, field := range domain.SearchFields() {
		idx := e.fields[field]
		for _, ord := range idx.candidates(lowered) {
			score, ok := pattern.Score(idx.texts[ord])
			if !ok {
				continue
			}

			h, seen := hits[ord]
			if !seen {
				h = &hit{ord: ord, score: score, bestField: field}
				hits[ord] = h
			} else if score < h.score {
				h.score = score
				h.bestField = field
			}
			h.fields = append(h.fields, field)
		}
	}

	ranked := make([]*hit, 0, len(hits))
	for _, h := range hits {
		ranked = append(ranked, h)
	}

	// Lower distance first; ties by field weight (title above tags
	// above content); final ties by index order for determinism.
	weights := e.opts.Weights
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score < ranked[j].score
		}
		wi, wj := weights.Weight(ranked[i].bestField), weights.Weight(ranked[j].bestField)
		if wi != wj {
			return wi > wj
		}
		return ranked[i].ord < ranked[j].ord
	})

	if e.opts.Limit > 0 && len(ranked) > e.opts.Limit {
		ranked = ranked[:e.opts.Limit]
	}

	results = make([]domain.QueryResult, len(ranked))
	for i, h := range ranked {
		results[i] = domain.QueryResult{
			Document:      e.docs[h.ord],
			Score:         h.score,
			MatchedFields: h.fields,
		}
	}

	logger.Debug("Query %q: %d results", query, len(results))
	return results
}
