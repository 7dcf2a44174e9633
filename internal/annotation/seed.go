package annotation

import (
	"github.com/genomic-vcf-service/internal/domain"
)

// Entry is one seeded annotation record: clinical status plus population
// frequency for a known variant identifier.
type Entry struct {
	Status    domain.ClinVarStatus
	Frequency float64
}

// SeedData returns the bundled clinical dataset keyed by variant identifier.
// The map is rebuilt on each call so callers may mutate their copy.
func SeedData() map[string]Entry {
	data := make(map[string]Entry, len(seedStatus))
	for id, status := range seedStatus {
		data[id] = Entry{Status: status, Frequency: seedFrequency[id]}
	}
	return data
}

// seedStatus maps variant identifiers to ClinVar clinical significance.
var seedStatus = map[string]domain.ClinVarStatus{
	// High-impact pathogenic variants
	"rs121913530": domain.ClinVarPathogenic, // MLH1 - Lynch syndrome
	"rs80359507":  domain.ClinVarPathogenic, // GJB2 - Deafness
	"rs80359550":  domain.ClinVarPathogenic, // BRCA2 - Breast cancer
	"rs121913529": domain.ClinVarPathogenic, // KRAS - Lung cancer
	"rs28897756":  domain.ClinVarPathogenic, // BRCA1 - Breast/ovarian cancer
	"rs80357906":  domain.ClinVarPathogenic, // BRCA1 - Breast/ovarian cancer
	"rs80356898":  domain.ClinVarPathogenic, // BRCA1 - Breast/ovarian cancer
	"rs104894790": domain.ClinVarPathogenic, // DMD - Duchenne muscular dystrophy
	"rs3810526":   domain.ClinVarPathogenic, // G6PD - G6PD deficiency
	"rs6025":      domain.ClinVarPathogenic, // F5 - Factor V Leiden

	// Likely pathogenic variants
	"rs1801133":   domain.ClinVarLikelyPathogenic, // MTHFR
	"rs1805087":   domain.ClinVarLikelyPathogenic, // MTR
	"rs1800460":   domain.ClinVarLikelyPathogenic, // TPMT
	"rs1799853":   domain.ClinVarLikelyPathogenic, // CYP2C9
	"rs16969968":  domain.ClinVarLikelyPathogenic, // CHRNA5
	"rs1800562":   domain.ClinVarLikelyPathogenic, // HFE
	"rs1800888":   domain.ClinVarLikelyPathogenic, // CFTR
	"rs1126809":   domain.ClinVarLikelyPathogenic, // NAT2
	"rs61750900":  domain.ClinVarLikelyPathogenic, // CYP2C9
	"rs4986893":   domain.ClinVarLikelyPathogenic, // CYP2C19
	"rs1800497":   domain.ClinVarLikelyPathogenic, // DRD2
	"rs267606617": domain.ClinVarLikelyPathogenic, // LRP5
	"rs4149056":   domain.ClinVarLikelyPathogenic, // SLCO1B1
	"rs3745274":   domain.ClinVarLikelyPathogenic, // CYP2B6
	"rs9934438":   domain.ClinVarLikelyPathogenic, // VKORC1
	"rs429358":    domain.ClinVarLikelyPathogenic, // APOE
	"rs7412":      domain.ClinVarLikelyPathogenic, // APOE - protective
	"rs1131691":   domain.ClinVarLikelyPathogenic, // OPN1MW

	// Benign variants
	"rs2691305":  domain.ClinVarBenign,
	"rs1873778":  domain.ClinVarBenign, // PDGFRA
	"rs10455872": domain.ClinVarBenign, // LPA
	"rs1799998":  domain.ClinVarBenign, // ABCB1
	"rs1045642":  domain.ClinVarBenign, // ABCB1
	"rs2470893":  domain.ClinVarBenign, // CYP1A1
	"rs2472297":  domain.ClinVarBenign, // CYP4F2
	"rs2267437":  domain.ClinVarBenign, // COMT
	"rs4680":     domain.ClinVarBenign, // CYP1B1

	// Likely benign variants
	"rs1057910":   domain.ClinVarLikelyBenign, // MTHFR
	"rs4988235":   domain.ClinVarLikelyBenign, // MCM6
	"rs671":       domain.ClinVarLikelyBenign, // ALDH2
	"rs5030655":   domain.ClinVarLikelyBenign, // UGT1A1
	"rs1042713":   domain.ClinVarLikelyBenign, // ADRB2
	"rs113994105": domain.ClinVarLikelyBenign, // APC
	"rs2032582":   domain.ClinVarLikelyBenign, // ABCB1
	"rs1042522":   domain.ClinVarLikelyBenign, // TP53
	"rs16942":     domain.ClinVarLikelyBenign, // BRCA1
}

// seedFrequency maps variant identifiers to gnomAD-like population
// frequencies in [0,1].
var seedFrequency = map[string]float64{
	// Rare variants (pathogenic)
	"rs121913530": 0.0001,
	"rs80359507":  0.0002,
	"rs80359550":  0.0001,
	"rs121913529": 0.0001,
	"rs28897756":  0.0001,
	"rs80357906":  0.0001,
	"rs80356898":  0.0001,
	"rs104894790": 0.0001,
	"rs3810526":   0.0001,
	"rs6025":      0.0001,

	// Low frequency variants
	"rs1801133":   0.005,
	"rs1805087":   0.003,
	"rs1800460":   0.002,
	"rs1799853":   0.004,
	"rs16969968":  0.006,
	"rs1800562":   0.002,
	"rs1800888":   0.003,
	"rs1126809":   0.004,
	"rs61750900":  0.002,
	"rs4986893":   0.003,
	"rs1800497":   0.005,
	"rs267606617": 0.001,
	"rs4149056":   0.004,
	"rs3745274":   0.003,
	"rs9934438":   0.004,
	"rs429358":    0.008,
	"rs7412":      0.006,
	"rs1131691":   0.002,

	// Common variants (benign)
	"rs2691305":  0.15,
	"rs1873778":  0.12,
	"rs10455872": 0.08,
	"rs1799998":  0.10,
	"rs1045642":  0.09,
	"rs2470893":  0.11,
	"rs2472297":  0.07,
	"rs2267437":  0.13,
	"rs4680":     0.14,

	// Moderate frequency variants
	"rs1057910":   0.03,
	"rs4988235":   0.04,
	"rs671":       0.02,
	"rs5030655":   0.03,
	"rs1042713":   0.02,
	"rs113994105": 0.01,
	"rs2032582":   0.03,
	"rs1042522":   0.05,
	"rs16942":     0.02,
}
