// Package contentstore owns the persisted educational documents and serves
// lexical (sparse) retrieval over them.
//
// The PostgreSQL implementation ranks with ts_rank over a "simple"
// configuration tsvector, since the built-in language configurations do not
// stem Arabic, and falls back to token ILIKE matching when the tsquery finds
// nothing. The in-memory implementation scores by folded token overlap and
// backs tests and demo deployments.
package contentstore
