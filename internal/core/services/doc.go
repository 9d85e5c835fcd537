// Package services implements the core use cases: building the search
// index offline and answering fuzzy queries at runtime.
package services
