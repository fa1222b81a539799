package refiner

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures the refiner circuit breaker.
type BreakerConfig struct {
	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state, in seconds.
	Interval int
	// Timeout is how long the breaker stays open before probing, in seconds.
	Timeout int
	// ReadyToTripRatio is the failure ratio that opens the breaker.
	ReadyToTripRatio float64
}

// DefaultBreakerConfig returns the default breaker configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         60,
		Timeout:          30,
		ReadyToTripRatio: 0.6,
	}
}

// BreakerRefiner wraps a Refiner with circuit breaking so a struggling LLM
// endpoint stops being called instead of adding its timeout to every search.
type BreakerRefiner struct {
	inner Refiner
	cb    *gobreaker.CircuitBreaker
}

var _ Refiner = (*BreakerRefiner)(nil)

// NewBreakerRefiner wraps inner with a circuit breaker.
func NewBreakerRefiner(inner Refiner, cfg BreakerConfig, logger *slog.Logger) *BreakerRefiner {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        "refiner",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("refiner circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerRefiner{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(st),
	}
}

// Refine implements Refiner.
func (b *BreakerRefiner) Refine(ctx context.Context, query string) (*Refinement, error) {
	resp, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Refine(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return resp.(*Refinement), nil
}

// Close implements Refiner.
func (b *BreakerRefiner) Close() error {
	return b.inner.Close()
}
