// Package domain contains core business entities and types for the genomic
// VCF processing service: variant records, ACMG-inspired classifications,
// clinical significance statuses and the ports the pipeline depends on.
//
// The classification logic is loosely modeled on the ACMG guidelines for
// sequence variant interpretation, simplified into fixed numeric thresholds.
package domain

import (
	"strings"
)

// ClinVarStatus represents the clinical significance of a variant as
// reported by a ClinVar-like annotation source. This is a closed set;
// annotation sources must not invent new statuses.
type ClinVarStatus string

const (
	ClinVarPathogenic       ClinVarStatus = "Pathogenic"
	ClinVarLikelyPathogenic ClinVarStatus = "Likely Pathogenic"
	ClinVarUncertain        ClinVarStatus = "Uncertain Significance"
	ClinVarLikelyBenign     ClinVarStatus = "Likely Benign"
	ClinVarBenign           ClinVarStatus = "Benign"
	ClinVarConflicting      ClinVarStatus = "Conflicting Interpretations"
)

// IsValid validates that the status belongs to the closed ClinVar set.
// Critical for medical software: only known statuses may enter the
// classification pipeline.
func (s ClinVarStatus) IsValid() bool {
	switch s {
	case ClinVarPathogenic, ClinVarLikelyPathogenic, ClinVarUncertain,
		ClinVarLikelyBenign, ClinVarBenign, ClinVarConflicting:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
// Required for proper logging and audit trails.
func (s ClinVarStatus) String() string {
	return string(s)
}

// IsPathogenicLike reports whether the status counts as pathogenic
// evidence under the classification rules (Pathogenic or Likely Pathogenic).
func (s ClinVarStatus) IsPathogenicLike() bool {
	return s == ClinVarPathogenic || s == ClinVarLikelyPathogenic
}

// IsBenignLike reports whether the status counts as benign evidence
// under the classification rules (Benign or Likely Benign).
func (s ClinVarStatus) IsBenignLike() bool {
	return s == ClinVarBenign || s == ClinVarLikelyBenign
}

// Classification represents the ACMG-inspired classification emitted by the
// rule engine. Exactly one classification is assigned per variant; it is a
// total function of the variant record, its annotation and the gene-category
// flags.
type Classification string

const (
	LikelyPathogenic Classification = "Likely Pathogenic"
	LikelyBenign     Classification = "Likely Benign"
	Uncertain        Classification = "Uncertain"
)

// IsValid validates that the classification belongs to the closed set.
func (c Classification) IsValid() bool {
	switch c {
	case LikelyPathogenic, LikelyBenign, Uncertain:
		return true
	default:
		return false
	}
}

// String returns the string representation of the classification.
func (c Classification) String() string {
	return string(c)
}

// LogFields returns structured logging fields for audit trails.
func (c Classification) LogFields() map[string]any {
	return map[string]any{
		"classification":  string(c),
		"is_valid":        c.IsValid(),
		"requires_review": c.RequiresClinicalReview(),
	}
}

// RequiresClinicalReview determines if the classification warrants clinical
// follow-up. Used for triage in reporting layers.
func (c Classification) RequiresClinicalReview() bool {
	switch c {
	case LikelyPathogenic:
		return true
	case LikelyBenign:
		return false
	default:
		return true // Uncertain and unknown values stay on the review list
	}
}

// Impact represents the functional-severity tier of a variant as annotated
// in the VCF INFO field. An absent impact is represented by the zero value
// ImpactNone, which is distinct from an explicit MODIFIER annotation.
type Impact string

const (
	ImpactNone     Impact = ""
	ImpactHigh     Impact = "HIGH"
	ImpactModerate Impact = "MODERATE"
	ImpactLow      Impact = "LOW"
	ImpactModifier Impact = "MODIFIER"
)

// IsValid validates the impact tier. ImpactNone is valid: it records that
// the source carried no impact annotation.
func (i Impact) IsValid() bool {
	switch i {
	case ImpactNone, ImpactHigh, ImpactModerate, ImpactLow, ImpactModifier:
		return true
	default:
		return false
	}
}

// String returns the string representation of the impact tier.
func (i Impact) String() string {
	return string(i)
}

// ParseImpact normalizes a raw INFO impact value into an Impact tier.
// Matching is case-insensitive; MOD is accepted as an alias for MODERATE.
// Unknown or empty values yield ImpactNone.
func ParseImpact(raw string) Impact {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "HIGH":
		return ImpactHigh
	case "MODERATE", "MOD":
		return ImpactModerate
	case "LOW":
		return ImpactLow
	case "MODIFIER":
		return ImpactModifier
	default:
		return ImpactNone
	}
}
