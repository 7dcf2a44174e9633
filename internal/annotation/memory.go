package annotation

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/genomic-vcf-service/internal/domain"
)

// MemoryStore is an in-process annotation source seeded with the bundled
// clinical dataset. Identifiers without a seeded entry fall back to a
// heuristic: rs-prefixed IDs resolve to Uncertain Significance with a
// common-variant frequency, custom IDs to a random status with a
// rare-variant frequency. The fallback is non-deterministic by construction;
// inject a fixed seed to make it reproducible in tests.
type MemoryStore struct {
	GeneCatalog

	entries map[string]Entry

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMemoryStore creates a memory store seeded with the bundled dataset.
// A non-zero seed makes the fallback deterministic.
func NewMemoryStore(seed int64) *MemoryStore {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MemoryStore{
		entries: SeedData(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// fallbackStatuses are the statuses assigned to unknown custom identifiers.
var fallbackStatuses = []domain.ClinVarStatus{
	domain.ClinVarUncertain,
	domain.ClinVarLikelyBenign,
	domain.ClinVarLikelyPathogenic,
}

// Lookup resolves clinical status and population frequency for a variant
// identifier. Never fails: unknown identifiers get fallback values.
func (s *MemoryStore) Lookup(_ context.Context, variantID string) (domain.ClinVarStatus, float64, error) {
	if entry, ok := s.entries[variantID]; ok {
		return entry.Status, entry.Frequency, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.HasPrefix(variantID, "rs") {
		// Real rs numbers without seeded data are typically common variants.
		return domain.ClinVarUncertain, s.uniform(0.01, 0.3), nil
	}

	status := fallbackStatuses[s.rng.Intn(len(fallbackStatuses))]
	return status, s.uniform(0.0001, 0.01), nil
}

// uniform draws from [min, max). Callers must hold s.mu.
func (s *MemoryStore) uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Entries returns a copy of the seeded dataset, used to populate the
// persistent store backends.
func (s *MemoryStore) Entries() map[string]Entry {
	out := make(map[string]Entry, len(s.entries))
	for id, e := range s.entries {
		out[id] = e
	}
	return out
}
