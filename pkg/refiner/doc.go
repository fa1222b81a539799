// Package refiner rewrites colloquial queries into formal academic phrasing
// with an LLM. Refinement is strictly best-effort: the engine works on the
// original query whenever the refiner is unconfigured, rate limited, or
// returns garbage, so a refiner outage never takes search down with it.
package refiner
