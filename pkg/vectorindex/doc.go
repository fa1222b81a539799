// Package vectorindex stores document embeddings and answers filtered
// nearest-neighbour queries over them.
//
// Two implementations are provided: a BadgerDB-backed index for persistent
// deployments and an in-memory index for tests and small corpora. Both scan
// candidate vectors with cosine similarity and keep the top K with a bounded
// heap, which is adequate for corpora in the tens of thousands of items.
package vectorindex
