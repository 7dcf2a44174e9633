package service

import (
	"github.com/sirupsen/logrus"

	"github.com/genomic-vcf-service/internal/domain"
)

// Classification thresholds. These are fixed for compatibility with the
// reference rule set and must not be tuned without revalidating the rules.
const (
	// PathogenicFreqThreshold: variants rarer than this may be pathogenic.
	PathogenicFreqThreshold = 0.01
	// BenignFreqThreshold: variants more common than this are likely benign.
	BenignFreqThreshold = 0.05
	// ModerateFreqFloor: tie-break floor for the low-impact benign rule.
	ModerateFreqFloor = 0.02
)

// RuleInput is the complete input of one classification decision: the parsed
// record plus its resolved annotation. Classification is a total, pure
// function of this value and the engine's gene-category predicates.
type RuleInput struct {
	Record    *domain.VariantRecord
	Status    domain.ClinVarStatus
	Frequency float64
}

// ClassificationRule is one entry of the ordered rule list: a predicate and
// the classification it yields when matched. Rules are evaluated
// top-to-bottom with first-match semantics, so list order is part of the
// contract.
type ClassificationRule struct {
	Name      string
	Condition string
	Result    domain.Classification
	matches   func(in RuleInput) bool
}

// RuleEngine applies the ACMG-inspired decision rules. It holds no mutable
// state; re-running it on the same input is idempotent.
type RuleEngine struct {
	logger *logrus.Logger
	source domain.AnnotationSource
	rules  []ClassificationRule
}

// NewRuleEngine creates a rule engine bound to an annotation source for its
// gene-category predicates.
func NewRuleEngine(logger *logrus.Logger, source domain.AnnotationSource) *RuleEngine {
	e := &RuleEngine{logger: logger, source: source}
	e.rules = e.buildRules()
	return e
}

// buildRules assembles the ordered rule list. The high-frequency benign rule
// is evaluated before all gene/impact criteria, so rules below it can never
// see a frequency above BenignFreqThreshold; their frequency guards beyond
// that point are an intentional dead range, kept for auditability.
func (e *RuleEngine) buildRules() []ClassificationRule {
	return []ClassificationRule{
		{
			Name:      "Pathogenic with low frequency",
			Condition: "frequency < 0.01 AND ClinVar is Pathogenic/Likely Pathogenic",
			Result:    domain.LikelyPathogenic,
			matches: func(in RuleInput) bool {
				return in.Frequency < PathogenicFreqThreshold && in.Status.IsPathogenicLike()
			},
		},
		{
			Name:      "High frequency benign",
			Condition: "frequency > 0.05",
			Result:    domain.LikelyBenign,
			matches: func(in RuleInput) bool {
				return in.Frequency > BenignFreqThreshold
			},
		},
		{
			Name:      "High impact pathogenic",
			Condition: "HIGH impact AND frequency < 0.01",
			Result:    domain.LikelyPathogenic,
			matches: func(in RuleInput) bool {
				return in.Record.Impact == domain.ImpactHigh && in.Frequency < PathogenicFreqThreshold
			},
		},
		{
			Name:      "Cancer risk gene",
			Condition: "cancer risk gene AND pathogenic ClinVar status",
			Result:    domain.LikelyPathogenic,
			matches: func(in RuleInput) bool {
				return e.source.IsCancerRiskGene(in.Record.Gene) && in.Status.IsPathogenicLike()
			},
		},
		{
			Name:      "Pharmacogenomic with clinical note",
			Condition: "pharmacogenomic gene AND clinical note present AND frequency < 0.01",
			Result:    domain.LikelyPathogenic,
			matches: func(in RuleInput) bool {
				return e.source.IsPharmacogenomicGene(in.Record.Gene) &&
					in.Record.Clinical != "" &&
					in.Frequency < PathogenicFreqThreshold
			},
		},
		{
			Name:      "Benign ClinVar status",
			Condition: "ClinVar is Benign/Likely Benign",
			Result:    domain.LikelyBenign,
			matches: func(in RuleInput) bool {
				return in.Status.IsBenignLike()
			},
		},
		{
			Name:      "Low impact with moderate frequency",
			Condition: "LOW/MODIFIER impact AND frequency > 0.02",
			Result:    domain.LikelyBenign,
			matches: func(in RuleInput) bool {
				return (in.Record.Impact == domain.ImpactLow || in.Record.Impact == domain.ImpactModifier) &&
					in.Frequency > ModerateFreqFloor
			},
		},
		{
			Name:      "Default",
			Condition: "all other cases",
			Result:    domain.Uncertain,
			matches:   func(RuleInput) bool { return true },
		},
	}
}

// Classify evaluates the rule list top-to-bottom and returns the result of
// the first matching rule. The trailing default rule makes this total.
func (e *RuleEngine) Classify(in RuleInput) domain.Classification {
	for _, rule := range e.rules {
		if rule.matches(in) {
			return rule.Result
		}
	}
	// Unreachable: the default rule always matches.
	return domain.Uncertain
}

// MatchedRule returns the name of the first rule that matches the input.
// Used for diagnostics and rule-by-rule testing.
func (e *RuleEngine) MatchedRule(in RuleInput) string {
	for _, rule := range e.rules {
		if rule.matches(in) {
			return rule.Name
		}
	}
	return ""
}

// Rules returns the ordered rule list for introspection. The returned slice
// must not be mutated.
func (e *RuleEngine) Rules() []ClassificationRule {
	return e.rules
}
