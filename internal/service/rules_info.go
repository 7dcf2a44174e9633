package service

import (
	"github.com/genomic-vcf-service/internal/domain"
)

// RuleDescription is one entry of the human-readable rule listing.
type RuleDescription struct {
	Rule           string `json:"rule"`
	Condition      string `json:"condition"`
	Classification string `json:"classification"`
}

// RulesInfo is a static, read-only description of the thresholds, rule list
// and scoring weights, exposed for documentation and debugging.
type RulesInfo struct {
	FrequencyThresholds map[string]float64            `json:"frequency_thresholds"`
	Rules               []RuleDescription             `json:"rules"`
	ScoringFactors      map[string]map[string]float64 `json:"scoring_factors"`
}

// DescribeRules builds the rules introspection document from the engine's
// ordered rule list and the scoring constants. No side effects.
func DescribeRules(engine *RuleEngine) RulesInfo {
	rules := engine.Rules()
	descriptions := make([]RuleDescription, 0, len(rules))
	for _, r := range rules {
		descriptions = append(descriptions, RuleDescription{
			Rule:           r.Name,
			Condition:      r.Condition,
			Classification: r.Result.String(),
		})
	}

	return RulesInfo{
		FrequencyThresholds: map[string]float64{
			"pathogenic":          PathogenicFreqThreshold,
			"benign":              BenignFreqThreshold,
			"moderate_freq_floor": ModerateFreqFloor,
		},
		Rules: descriptions,
		ScoringFactors: map[string]map[string]float64{
			"classification": {
				domain.LikelyPathogenic.String(): scoreClassPathogenic,
				domain.Uncertain.String():        scoreClassUncertain,
				domain.LikelyBenign.String():     scoreClassBenign,
			},
			"clinvar_status": {
				domain.ClinVarPathogenic.String():       scoreClinVarPathogenic,
				domain.ClinVarLikelyPathogenic.String(): scoreClinVarLikelyPathogenic,
				domain.ClinVarUncertain.String():        scoreClinVarUncertain,
				domain.ClinVarLikelyBenign.String():     scoreClinVarLikelyBenign,
			},
			"impact": {
				domain.ImpactHigh.String():     scoreImpactHigh,
				domain.ImpactModerate.String(): scoreImpactModerate,
				domain.ImpactLow.String():      scoreImpactLow,
			},
			"frequency": {
				"< 0.001": scoreFreqVeryRare,
				"< 0.01":  scoreFreqRare,
				"< 0.05":  scoreFreqLow,
			},
			"gene_type": {
				"cancer_risk":     scoreCancerRiskGene,
				"pharmacogenomic": scorePharmacogenomicGene,
			},
			"quality": {
				"> 1000": scoreQualityHigh,
				"> 500":  scoreQualityModerate,
			},
		},
	}
}
