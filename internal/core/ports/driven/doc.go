// Package driven defines the interfaces the core depends on.
// Adapters (content sources, artifact stores, matchers) implement
// these so the services stay independent of infrastructure.
package driven
