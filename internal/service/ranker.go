package service

import (
	"sort"

	"github.com/genomic-vcf-service/internal/domain"
)

// Ranker sorts classified variants by descending significance score and
// computes aggregate statistics. Stateless: a pure aggregation over an
// already-fully-materialized sequence.
type Ranker struct {
	source domain.AnnotationSource
}

// NewRanker creates a ranker bound to an annotation source for the
// pharmacogenomic summary count.
func NewRanker(source domain.AnnotationSource) *Ranker {
	return &Ranker{source: source}
}

// DefaultTopN bounds the result set when the caller does not override it.
const DefaultTopN = 10

// TopVariants returns the limit highest-scoring variants as flat result
// rows. The sort is stable: among equal scores, the variant appearing
// earlier in input order ranks first.
func (r *Ranker) TopVariants(classified []domain.ClassifiedVariant, limit int) []domain.VariantResult {
	if limit <= 0 {
		limit = DefaultTopN
	}

	ordered := make([]domain.ClassifiedVariant, len(classified))
	copy(ordered, classified)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	if limit > len(ordered) {
		limit = len(ordered)
	}

	results := make([]domain.VariantResult, 0, limit)
	for i := 0; i < limit; i++ {
		results = append(results, ordered[i].ResultRow())
	}
	return results
}

// Summarize computes the batch summary. The uncertain count is defined as
// total minus the pathogenic and benign counts; since every variant carries
// exactly one classification from the closed set, both counting paths agree.
func (r *Ranker) Summarize(classified []domain.ClassifiedVariant) domain.Summary {
	summary := domain.Summary{TotalVariants: len(classified)}
	genes := make(map[string]struct{})

	for i := range classified {
		cv := &classified[i]

		switch cv.Classification {
		case domain.LikelyPathogenic:
			summary.PathogenicVariants++
		case domain.LikelyBenign:
			summary.BenignVariants++
		}

		if cv.Record.Impact == domain.ImpactHigh {
			summary.HighImpactVariants++
		}
		if r.source.IsPharmacogenomicGene(cv.Record.Gene) {
			summary.DrugResponseVariants++
		}
		// Gene identifiers are counted case-sensitively, as given.
		if cv.Record.Gene != "" {
			genes[cv.Record.Gene] = struct{}{}
		}
	}

	summary.UncertainVariants = summary.TotalVariants - summary.PathogenicVariants - summary.BenignVariants
	summary.UniqueGenes = len(genes)
	return summary
}
