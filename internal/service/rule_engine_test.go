package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genomic-vcf-service/internal/domain"
)

func ruleInput(gene string, impact domain.Impact, clinical string, status domain.ClinVarStatus, freq float64) RuleInput {
	return RuleInput{
		Record: &domain.VariantRecord{
			Chrom:    "1",
			Pos:      100,
			ID:       "rsTest",
			Ref:      "A",
			Alt:      "T",
			Gene:     gene,
			Impact:   impact,
			Clinical: clinical,
		},
		Status:    status,
		Frequency: freq,
	}
}

func TestRuleEngine_Classify(t *testing.T) {
	engine := NewRuleEngine(newTestLogger(), newFakeSource())

	tests := []struct {
		name     string
		in       RuleInput
		expected domain.Classification
		rule     string
	}{
		{
			name:     "rare pathogenic",
			in:       ruleInput("GJB2", domain.ImpactNone, "", domain.ClinVarPathogenic, 0.0001),
			expected: domain.LikelyPathogenic,
			rule:     "Pathogenic with low frequency",
		},
		{
			name:     "rare likely pathogenic",
			in:       ruleInput("", domain.ImpactNone, "", domain.ClinVarLikelyPathogenic, 0.005),
			expected: domain.LikelyPathogenic,
			rule:     "Pathogenic with low frequency",
		},
		{
			name:     "high frequency is benign",
			in:       ruleInput("", domain.ImpactNone, "", domain.ClinVarUncertain, 0.12),
			expected: domain.LikelyBenign,
			rule:     "High frequency benign",
		},
		{
			name:     "high impact rare",
			in:       ruleInput("UNKNOWN", domain.ImpactHigh, "", domain.ClinVarUncertain, 0.001),
			expected: domain.LikelyPathogenic,
			rule:     "High impact pathogenic",
		},
		{
			name:     "cancer gene with pathogenic status above rare threshold",
			in:       ruleInput("BRCA1", domain.ImpactModerate, "", domain.ClinVarPathogenic, 0.02),
			expected: domain.LikelyPathogenic,
			rule:     "Cancer risk gene",
		},
		{
			name:     "pharmacogenomic with clinical note",
			in:       ruleInput("CYP2C9", domain.ImpactModerate, "warfarin_sensitivity", domain.ClinVarUncertain, 0.004),
			expected: domain.LikelyPathogenic,
			rule:     "Pharmacogenomic with clinical note",
		},
		{
			name:     "pharmacogenomic without clinical note falls through",
			in:       ruleInput("CYP2C9", domain.ImpactNone, "", domain.ClinVarUncertain, 0.004),
			expected: domain.Uncertain,
			rule:     "Default",
		},
		{
			name:     "benign status",
			in:       ruleInput("", domain.ImpactNone, "", domain.ClinVarBenign, 0.03),
			expected: domain.LikelyBenign,
			rule:     "Benign ClinVar status",
		},
		{
			name:     "low impact moderate frequency",
			in:       ruleInput("", domain.ImpactLow, "", domain.ClinVarUncertain, 0.03),
			expected: domain.LikelyBenign,
			rule:     "Low impact with moderate frequency",
		},
		{
			name:     "modifier impact moderate frequency",
			in:       ruleInput("", domain.ImpactModifier, "", domain.ClinVarUncertain, 0.04),
			expected: domain.LikelyBenign,
			rule:     "Low impact with moderate frequency",
		},
		{
			name:     "nothing matches",
			in:       ruleInput("", domain.ImpactModerate, "", domain.ClinVarUncertain, 0.015),
			expected: domain.Uncertain,
			rule:     "Default",
		},
		{
			name:     "conflicting status defaults",
			in:       ruleInput("", domain.ImpactNone, "", domain.ClinVarConflicting, 0.015),
			expected: domain.Uncertain,
			rule:     "Default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.Classify(tt.in))
			assert.Equal(t, tt.rule, engine.MatchedRule(tt.in))
		})
	}
}

// The high-frequency benign rule outranks every later pathogenic criterion:
// even a Pathogenic ClinVar status in a cancer gene classifies benign when
// the population frequency exceeds the benign threshold.
func TestRuleEngine_Classify_FrequencyPrecedence(t *testing.T) {
	engine := NewRuleEngine(newTestLogger(), newFakeSource())

	in := ruleInput("BRCA1", domain.ImpactHigh, "breast_cancer", domain.ClinVarPathogenic, 0.06)
	assert.Equal(t, domain.LikelyBenign, engine.Classify(in))
	assert.Equal(t, "High frequency benign", engine.MatchedRule(in))
}

func TestRuleEngine_Classify_ThresholdBoundaries(t *testing.T) {
	engine := NewRuleEngine(newTestLogger(), newFakeSource())

	// Exactly 0.01 is not below the pathogenic threshold.
	atPathogenic := ruleInput("", domain.ImpactNone, "", domain.ClinVarPathogenic, 0.01)
	assert.Equal(t, domain.Uncertain, engine.Classify(atPathogenic))

	// Exactly 0.05 is not above the benign threshold.
	atBenign := ruleInput("", domain.ImpactNone, "", domain.ClinVarUncertain, 0.05)
	assert.Equal(t, domain.Uncertain, engine.Classify(atBenign))

	// Exactly 0.02 is not above the moderate-frequency floor.
	atFloor := ruleInput("", domain.ImpactLow, "", domain.ClinVarUncertain, 0.02)
	assert.Equal(t, domain.Uncertain, engine.Classify(atFloor))
}

func TestRuleEngine_Classify_Deterministic(t *testing.T) {
	engine := NewRuleEngine(newTestLogger(), newFakeSource())
	in := ruleInput("TPMT", domain.ImpactModerate, "thiopurine", domain.ClinVarLikelyPathogenic, 0.002)

	first := engine.Classify(in)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, engine.Classify(in))
	}
}

func TestRuleEngine_Rules_OrderIsStable(t *testing.T) {
	engine := NewRuleEngine(newTestLogger(), newFakeSource())
	rules := engine.Rules()

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{
		"Pathogenic with low frequency",
		"High frequency benign",
		"High impact pathogenic",
		"Cancer risk gene",
		"Pharmacogenomic with clinical note",
		"Benign ClinVar status",
		"Low impact with moderate frequency",
		"Default",
	}, names)
}
