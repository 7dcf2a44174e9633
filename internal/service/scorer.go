package service

import (
	"github.com/genomic-vcf-service/internal/domain"
)

// Significance scoring weights. The score is an additive ranking heuristic,
// not a statistical estimate; the rubric is fixed for compatibility and must
// be reproduced exactly.
const (
	scoreClassPathogenic = 100.0
	scoreClassUncertain  = 50.0
	scoreClassBenign     = 10.0

	scoreClinVarPathogenic       = 50.0
	scoreClinVarLikelyPathogenic = 30.0
	scoreClinVarUncertain        = 20.0
	scoreClinVarLikelyBenign     = 5.0

	scoreImpactHigh     = 40.0
	scoreImpactModerate = 20.0
	scoreImpactLow      = 5.0

	scoreFreqVeryRare = 30.0
	scoreFreqRare     = 20.0
	scoreFreqLow      = 10.0

	freqBandVeryRare = 0.001
	freqBandRare     = 0.01
	freqBandLow      = 0.05

	scoreCancerRiskGene      = 25.0
	scorePharmacogenomicGene = 15.0

	scoreQualityHigh     = 10.0
	scoreQualityModerate = 5.0

	qualityBandHigh     = 1000.0
	qualityBandModerate = 500.0
)

// Scorer computes the significance score of a classified variant. Each
// factor contributes its first matching band; gene-category and quality
// bonuses stack independently of each other and of all other factors.
type Scorer struct {
	source domain.AnnotationSource
}

// NewScorer creates a scorer bound to an annotation source for its
// gene-category predicates.
func NewScorer(source domain.AnnotationSource) *Scorer {
	return &Scorer{source: source}
}

// Score computes the non-negative significance score for a variant given
// its record, annotation and final classification. Deterministic: the same
// input always yields the same score.
func (s *Scorer) Score(record *domain.VariantRecord, status domain.ClinVarStatus, frequency float64, classification domain.Classification) float64 {
	score := 0.0

	switch classification {
	case domain.LikelyPathogenic:
		score += scoreClassPathogenic
	case domain.Uncertain:
		score += scoreClassUncertain
	case domain.LikelyBenign:
		score += scoreClassBenign
	}

	switch status {
	case domain.ClinVarPathogenic:
		score += scoreClinVarPathogenic
	case domain.ClinVarLikelyPathogenic:
		score += scoreClinVarLikelyPathogenic
	case domain.ClinVarUncertain:
		score += scoreClinVarUncertain
	case domain.ClinVarLikelyBenign:
		score += scoreClinVarLikelyBenign
	}

	switch record.Impact {
	case domain.ImpactHigh:
		score += scoreImpactHigh
	case domain.ImpactModerate:
		score += scoreImpactModerate
	case domain.ImpactLow:
		score += scoreImpactLow
	}

	// Rarer variants rank higher; first matching band only.
	switch {
	case frequency < freqBandVeryRare:
		score += scoreFreqVeryRare
	case frequency < freqBandRare:
		score += scoreFreqRare
	case frequency < freqBandLow:
		score += scoreFreqLow
	}

	if s.source.IsCancerRiskGene(record.Gene) {
		score += scoreCancerRiskGene
	}
	if s.source.IsPharmacogenomicGene(record.Gene) {
		score += scorePharmacogenomicGene
	}

	if record.Quality != nil {
		switch {
		case *record.Quality > qualityBandHigh:
			score += scoreQualityHigh
		case *record.Quality > qualityBandModerate:
			score += scoreQualityModerate
		}
	}

	return score
}
