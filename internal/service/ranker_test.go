package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomic-vcf-service/internal/domain"
)

func classifiedVariant(id, gene string, impact domain.Impact, classification domain.Classification, score float64) domain.ClassifiedVariant {
	return domain.ClassifiedVariant{
		Record: domain.VariantRecord{
			Chrom:  "1",
			Pos:    100,
			ID:     id,
			Ref:    "A",
			Alt:    "T",
			Gene:   gene,
			Impact: impact,
		},
		ClinVarStatus:  domain.ClinVarUncertain,
		Classification: classification,
		Score:          score,
	}
}

func TestRanker_TopVariants(t *testing.T) {
	ranker := NewRanker(newFakeSource())

	classified := []domain.ClassifiedVariant{
		classifiedVariant("rs1", "GENE1", domain.ImpactNone, domain.Uncertain, 70),
		classifiedVariant("rs2", "GENE2", domain.ImpactNone, domain.LikelyPathogenic, 250),
		classifiedVariant("rs3", "GENE3", domain.ImpactNone, domain.LikelyBenign, 15),
		classifiedVariant("rs4", "GENE4", domain.ImpactNone, domain.Uncertain, 120),
	}

	top := ranker.TopVariants(classified, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "rs2", top[0].VariantID)
	assert.Equal(t, "rs4", top[1].VariantID)
	assert.Equal(t, "rs1", top[2].VariantID)

	// The input slice is left untouched.
	assert.Equal(t, "rs1", classified[0].Record.ID)
}

// Equal scores keep their input order.
func TestRanker_TopVariants_StableTies(t *testing.T) {
	ranker := NewRanker(newFakeSource())

	classified := []domain.ClassifiedVariant{
		classifiedVariant("first", "G1", domain.ImpactNone, domain.Uncertain, 100),
		classifiedVariant("second", "G2", domain.ImpactNone, domain.Uncertain, 100),
		classifiedVariant("third", "G3", domain.ImpactNone, domain.Uncertain, 100),
	}

	top := ranker.TopVariants(classified, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "first", top[0].VariantID)
	assert.Equal(t, "second", top[1].VariantID)
	assert.Equal(t, "third", top[2].VariantID)
}

func TestRanker_TopVariants_LimitHandling(t *testing.T) {
	ranker := NewRanker(newFakeSource())

	classified := []domain.ClassifiedVariant{
		classifiedVariant("rs1", "G1", domain.ImpactNone, domain.Uncertain, 10),
		classifiedVariant("rs2", "G2", domain.ImpactNone, domain.Uncertain, 20),
	}

	// Limit above length returns everything.
	assert.Len(t, ranker.TopVariants(classified, 50), 2)

	// Non-positive limit falls back to the default.
	assert.Len(t, ranker.TopVariants(classified, 0), 2)
	assert.Len(t, ranker.TopVariants(classified, -1), 2)

	// Empty input yields an empty, non-nil slice.
	assert.Empty(t, ranker.TopVariants(nil, 10))
}

func TestRanker_Summarize(t *testing.T) {
	ranker := NewRanker(newFakeSource())

	classified := []domain.ClassifiedVariant{
		classifiedVariant("rs1", "BRCA1", domain.ImpactHigh, domain.LikelyPathogenic, 250),
		classifiedVariant("rs2", "TPMT", domain.ImpactModerate, domain.Uncertain, 85),
		classifiedVariant("rs3", "COMT", domain.ImpactLow, domain.LikelyBenign, 20),
		classifiedVariant("rs4", "BRCA1", domain.ImpactHigh, domain.LikelyPathogenic, 245),
		classifiedVariant("rs5", "", domain.ImpactNone, domain.Uncertain, 50),
	}

	summary := ranker.Summarize(classified)

	assert.Equal(t, 5, summary.TotalVariants)
	assert.Equal(t, 2, summary.PathogenicVariants)
	assert.Equal(t, 1, summary.BenignVariants)
	assert.Equal(t, 2, summary.UncertainVariants)
	assert.Equal(t, 2, summary.HighImpactVariants)
	// TPMT is pharmacogenomic in the fake source.
	assert.Equal(t, 1, summary.DrugResponseVariants)
	// Empty gene never counts; BRCA1 counts once.
	assert.Equal(t, 3, summary.UniqueGenes)

	// The counting invariant holds however the classifications fall.
	assert.Equal(t, summary.TotalVariants,
		summary.PathogenicVariants+summary.BenignVariants+summary.UncertainVariants)
}

// Gene identifiers are case-sensitive in the unique-gene count.
func TestRanker_Summarize_GeneCaseSensitivity(t *testing.T) {
	ranker := NewRanker(newFakeSource())

	classified := []domain.ClassifiedVariant{
		classifiedVariant("rs1", "brca1", domain.ImpactNone, domain.Uncertain, 50),
		classifiedVariant("rs2", "BRCA1", domain.ImpactNone, domain.Uncertain, 50),
	}

	summary := ranker.Summarize(classified)
	assert.Equal(t, 2, summary.UniqueGenes)
}

func TestRanker_Summarize_Empty(t *testing.T) {
	ranker := NewRanker(newFakeSource())
	summary := ranker.Summarize(nil)

	assert.Equal(t, domain.Summary{}, summary)
}
