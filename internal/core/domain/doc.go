// Package domain contains the core types of the search subsystem:
// source and indexed documents, the search index, query results and
// the query engine lifecycle. It has no dependencies on adapters.
package domain
