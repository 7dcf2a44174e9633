package domain

import (
	"errors"
	"fmt"
)

// VariantRecord represents one data row of a VCF input file after parsing.
// Optional fields use pointer or zero-value representations: Gene and
// Clinical are empty strings when the INFO field carried no annotation,
// Quality is nil when the source marked it absent ("."), and Impact is
// ImpactNone when no impact was recorded.
type VariantRecord struct {
	Chrom        string         `json:"chrom"`
	Pos          int64          `json:"pos"`
	ID           string         `json:"variant_id"`
	Ref          string         `json:"ref"`
	Alt          string         `json:"alt"`
	Gene         string         `json:"gene,omitempty"`
	Impact       Impact         `json:"impact,omitempty"`
	Quality      *float64       `json:"quality,omitempty"`
	FilterStatus string         `json:"filter_status"`
	Clinical     string         `json:"clinical,omitempty"`
	Info         map[string]string `json:"-"`
	InfoFlags    map[string]bool   `json:"-"`
}

// Validate ensures the record meets the parser's invariants before it enters
// the classification pipeline: position positive, core alleles non-empty.
func (v *VariantRecord) Validate() error {
	if v.Chrom == "" {
		return fmt.Errorf("variant validation: %w", errors.New("chromosome is required"))
	}
	if v.Pos <= 0 {
		return fmt.Errorf("variant validation: %w", errors.New("position must be positive"))
	}
	if v.Ref == "" {
		return fmt.Errorf("variant validation: %w", errors.New("reference allele is required"))
	}
	if v.Alt == "" {
		return fmt.Errorf("variant validation: %w", errors.New("alternate allele is required"))
	}
	if v.Quality != nil && *v.Quality < 0 {
		return fmt.Errorf("variant validation: %w", errors.New("quality must be non-negative"))
	}
	if !v.Impact.IsValid() {
		return fmt.Errorf("variant validation: invalid impact %q", v.Impact)
	}
	return nil
}

// HasQuality reports whether the source recorded a quality score.
func (v *VariantRecord) HasQuality() bool {
	return v.Quality != nil
}

// ClassifiedVariant is a VariantRecord joined with its annotation and the
// pipeline's classification and significance score. Created once per input
// record that survives parsing and annotation lookup; immutable thereafter
// and owned exclusively by the invocation that produced it.
type ClassifiedVariant struct {
	Record         VariantRecord  `json:"variant"`
	ClinVarStatus  ClinVarStatus  `json:"clinvar_status"`
	Frequency      float64        `json:"population_frequency"`
	Classification Classification `json:"classification"`
	Score          float64        `json:"significance_score"`
}

// VariantResult is the flat result row exposed for each top variant.
// No nested structures; downstream consumers read it directly.
type VariantResult struct {
	VariantID      string         `json:"variant_id"`
	Gene           string         `json:"gene,omitempty"`
	Chrom          string         `json:"chrom"`
	Pos            int64          `json:"pos"`
	Ref            string         `json:"ref"`
	Alt            string         `json:"alt"`
	ClinVarStatus  ClinVarStatus  `json:"clinvar_status"`
	Frequency      float64        `json:"population_frequency"`
	Classification Classification `json:"classification"`
	Score          float64        `json:"significance_score"`
	Impact         Impact         `json:"impact,omitempty"`
	Clinical       string         `json:"clinical,omitempty"`
}

// ResultRow flattens a classified variant into its exposed result shape.
func (cv *ClassifiedVariant) ResultRow() VariantResult {
	return VariantResult{
		VariantID:      cv.Record.ID,
		Gene:           cv.Record.Gene,
		Chrom:          cv.Record.Chrom,
		Pos:            cv.Record.Pos,
		Ref:            cv.Record.Ref,
		Alt:            cv.Record.Alt,
		ClinVarStatus:  cv.ClinVarStatus,
		Frequency:      cv.Frequency,
		Classification: cv.Classification,
		Score:          cv.Score,
		Impact:         cv.Record.Impact,
		Clinical:       cv.Record.Clinical,
	}
}

// Summary holds aggregate counts over a batch of classified variants.
// Derived, recomputed per request, never persisted. The invariant
// Pathogenic + Benign + Uncertain == Total always holds: the uncertain
// count is defined as the remainder.
type Summary struct {
	TotalVariants        int `json:"total_variants"`
	PathogenicVariants   int `json:"pathogenic_variants"`
	BenignVariants       int `json:"benign_variants"`
	UncertainVariants    int `json:"uncertain_variants"`
	HighImpactVariants   int `json:"high_impact_variants"`
	DrugResponseVariants int `json:"drug_response_variants"`
	UniqueGenes          int `json:"unique_genes"`
}

// BatchResult is the output of one pipeline invocation: the ranked top-N
// result rows plus the batch summary. TotalParsed counts records that
// survived parsing, including those later skipped on annotation failure.
type BatchResult struct {
	TopVariants []VariantResult `json:"top_variants"`
	Summary     Summary         `json:"summary"`
	TotalParsed int             `json:"total_parsed"`
}

// FileMetadata carries informational VCF header values extracted during
// parsing. Used for diagnostics only; field extraction never depends on it.
type FileMetadata struct {
	FileFormat string   `json:"fileformat,omitempty"`
	FileDate   string   `json:"file_date,omitempty"`
	Source     string   `json:"source,omitempty"`
	Reference  string   `json:"reference,omitempty"`
	Columns    []string `json:"columns,omitempty"`
}
