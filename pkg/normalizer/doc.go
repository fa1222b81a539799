// Package normalizer expands a raw free-text query into an ordered list of
// normalized variants.
//
// The pipeline is pure and deterministic: Arabic digit and letter folding,
// word-for-word French/English to Arabic translation of educational terms,
// typo-dictionary correction, table-driven Arabic stemming, and stop-word /
// metadata stripping. Each stage appends a new variant only when it changed
// the text, so the first variant stays closest to user intent (preferred for
// dense search) and the last is the most aggressively cleaned (preferred for
// keyword search).
//
// The dictionaries live in tables.yaml and are embedded at build time; the
// functions consuming them are stateless.
package normalizer
