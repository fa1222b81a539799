// Package keywords extracts salient subject terms from a query. The
// last-resort retrieval tier searches on these terms alone after every
// stricter tier has come back empty.
//
// The heuristic extractor works from the normalizer's dictionaries and is
// always available. The NER extractor runs a local rust-bert token
// classification model and falls back to the heuristic when the model fails
// to load or predict.
package keywords
