// Package orchestrator runs the retrieval waterfall. Tiers execute
// sequentially, strictest first, and the waterfall short-circuits on the
// first tier that produces enough candidates: strict needs three, every
// relaxation tier needs one. The winning tier's candidates are reranked,
// deduplicated and excerpted, and the results carry the tier's strategy tag
// so callers can tell the user when filters were relaxed.
package orchestrator
