// Package daleel is a hybrid retrieval and ranking engine for a multilingual
// corpus of educational content (Arabic, French, English).
//
// A query flows through normalization and optional LLM refinement, then a
// waterfall of retrieval strategies that trade precision for recall: strict
// filtered hybrid search, filter relaxation, keyword search, unfiltered
// search, and a single-keyword last resort. Candidates from the winning tier
// are reranked with a cross-encoder, deduplicated, and returned with an
// extracted excerpt and the strategy that produced them.
//
// The Client in this package wires the engine from configuration. Callers
// that need finer control can assemble pkg/orchestrator directly.
package daleel
