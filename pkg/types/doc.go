// Package types defines the shared data model of the retrieval engine:
// search requests and their filters, query variants, retrieval candidates,
// stored documents, and the externally visible search results.
//
// All values here are created per request and discarded once the response
// is returned. The engine never mutates a stored Document; the backing
// stores are read-only collaborators.
package types
