// Package embedder provides text embedding clients for vector
// representations of queries and documents.
//
// Two production backends are supported: a local multilingual model via
// go-embedeverything, and OpenAI-compatible embeddings APIs. A
// deterministic mock backs the test suites. Clients are process-wide
// singletons created once at startup and shared read-only across requests.
package embedder
