package domain

import (
	"context"
)

// AnnotationSource is the port the classifier consults per variant. A real
// deployment may back it with a network-backed clinical database, so Lookup
// must be treated as potentially latent and fallible; the pipeline tolerates
// per-variant failures without aborting the batch. Implementations must be
// safe for concurrent read access.
type AnnotationSource interface {
	// Lookup resolves the clinical status and population frequency for a
	// variant identifier. Frequency is in [0,1].
	Lookup(ctx context.Context, variantID string) (ClinVarStatus, float64, error)

	// IsCancerRiskGene reports whether the gene is in the cancer-risk
	// category. An empty gene is never in any category.
	IsCancerRiskGene(gene string) bool

	// IsPharmacogenomicGene reports whether the gene is in the
	// pharmacogenomic category. An empty gene is never in any category.
	IsPharmacogenomicGene(gene string) bool
}

// VariantPipeline is the batch entry point exposed to the service layer.
type VariantPipeline interface {
	// ClassifyBatch runs parse, annotate, classify, score and rank over raw
	// VCF content. A batch that parses zero usable records is a valid empty
	// result; only structural input failures return an error.
	ClassifyBatch(ctx context.Context, rawContent string, topN int) (*BatchResult, error)
}

// ConfigManager provides access to validated application configuration.
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetAnnotationConfig() *AnnotationConfig
	GetUploadConfig() *UploadConfig
	Validate() error
	IsProduction() bool
}
