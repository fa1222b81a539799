// Package source produces retrieval candidates from the dense vector index
// and the sparse lexical store, and fuses the two result sets into a single
// hybrid-scored candidate list.
//
// A failing source degrades to an empty candidate list instead of failing
// the search: the orchestrator keeps whatever the healthy source returned.
package source
