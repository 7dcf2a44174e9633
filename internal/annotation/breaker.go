package annotation

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/genomic-vcf-service/internal/domain"
)

// BreakerSource decorates an annotation source with a circuit breaker.
// Network-backed sources can fail slowly under outage; once the breaker
// opens, lookups fail fast and the classifier's per-variant skip path takes
// over instead of every record waiting out a timeout.
type BreakerSource struct {
	inner   domain.AnnotationSource
	breaker *gobreaker.CircuitBreaker
}

type lookupResult struct {
	status    domain.ClinVarStatus
	frequency float64
}

// NewBreakerSource wraps inner with a circuit breaker tuned by cfg.
func NewBreakerSource(inner domain.AnnotationSource, cfg domain.BreakerConfig, logger *logrus.Logger) *BreakerSource {
	settings := gobreaker.Settings{
		Name:        "annotation-lookup",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Annotation circuit breaker state change")
		},
	}

	return &BreakerSource{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Lookup executes the inner lookup through the breaker. An open breaker
// returns gobreaker.ErrOpenState, which callers treat as any other
// per-variant lookup failure.
func (b *BreakerSource) Lookup(ctx context.Context, variantID string) (domain.ClinVarStatus, float64, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		status, frequency, err := b.inner.Lookup(ctx, variantID)
		if err != nil {
			return nil, err
		}
		return lookupResult{status: status, frequency: frequency}, nil
	})
	if err != nil {
		return "", 0, err
	}

	r := result.(lookupResult)
	return r.status, r.frequency, nil
}

// IsCancerRiskGene delegates to the inner source; category checks are local
// and never trip the breaker.
func (b *BreakerSource) IsCancerRiskGene(gene string) bool {
	return b.inner.IsCancerRiskGene(gene)
}

// IsPharmacogenomicGene delegates to the inner source.
func (b *BreakerSource) IsPharmacogenomicGene(gene string) bool {
	return b.inner.IsPharmacogenomicGene(gene)
}

// State exposes the current breaker state for health reporting.
func (b *BreakerSource) State() gobreaker.State {
	return b.breaker.State()
}
