// Package annotation provides implementations of the pipeline's annotation
// port: a seeded in-memory store, SQLite- and PostgreSQL-backed stores, and
// caching / circuit-breaker decorators that can wrap any of them.
package annotation

import (
	"strings"
)

// GeneCatalog answers gene-category membership questions. Category sets are
// fixed upstream knowledge, not per-variant data, so every store embeds the
// same catalog instead of persisting it. Matching case-folds internally;
// the rest of the pipeline treats gene symbols case-sensitively.
type GeneCatalog struct{}

var cancerRiskGenes = map[string]struct{}{
	"BRCA1": {}, "BRCA2": {}, "MLH1": {}, "MSH2": {}, "MSH6": {}, "PMS2": {},
	"TP53": {}, "KRAS": {}, "APC": {}, "PTEN": {}, "ATM": {}, "CHEK2": {},
	"PALB2": {}, "BARD1": {}, "BRIP1": {}, "RAD51C": {}, "RAD51D": {},
}

var pharmacogenomicGenes = map[string]struct{}{
	"CYP2C9": {}, "CYP2C19": {}, "CYP2D6": {}, "CYP3A4": {}, "CYP2B6": {},
	"CYP1A1": {}, "CYP1B1": {}, "CYP4F2": {}, "TPMT": {}, "NAT2": {},
	"UGT1A1": {}, "SLCO1B1": {}, "VKORC1": {}, "ABCB1": {}, "MTHFR": {}, "MTR": {},
}

// IsCancerRiskGene reports membership in the cancer-risk category.
func (GeneCatalog) IsCancerRiskGene(gene string) bool {
	if gene == "" {
		return false
	}
	_, ok := cancerRiskGenes[strings.ToUpper(gene)]
	return ok
}

// IsPharmacogenomicGene reports membership in the pharmacogenomic category.
func (GeneCatalog) IsPharmacogenomicGene(gene string) bool {
	if gene == "" {
		return false
	}
	_, ok := pharmacogenomicGenes[strings.ToUpper(gene)]
	return ok
}

// GeneClinicalInfo returns a short clinical description for known genes,
// used for reporting. Empty string when unknown.
func (GeneCatalog) GeneClinicalInfo(gene string) string {
	if gene == "" {
		return ""
	}
	return geneClinicalInfo[strings.ToUpper(gene)]
}

var geneClinicalInfo = map[string]string{
	"BRCA1":   "Breast/ovarian cancer risk",
	"BRCA2":   "Breast cancer risk",
	"MLH1":    "Lynch syndrome",
	"KRAS":    "Lung cancer",
	"GJB2":    "Deafness",
	"DMD":     "Duchenne muscular dystrophy",
	"G6PD":    "G6PD deficiency",
	"F5":      "Factor V Leiden thrombophilia",
	"MTHFR":   "Homocysteinuria risk",
	"TPMT":    "Azathioprine sensitivity",
	"CYP2C9":  "Warfarin sensitivity",
	"CYP2C19": "Clopidogrel resistance",
	"HFE":     "Hemochromatosis",
	"CFTR":    "Cystic fibrosis",
	"NAT2":    "Isoniazid metabolism",
	"SLCO1B1": "Statin myopathy",
	"VKORC1":  "Warfarin sensitivity",
	"APOE":    "Alzheimer disease risk",
	"OPN1MW":  "Color blindness",
	"ALDH2":   "Alcohol flush reaction",
	"UGT1A1":  "Gilbert syndrome",
	"CHRNA5":  "Nicotine dependence",
	"ADRB2":   "Asthma response",
	"DRD2":    "Antipsychotic response",
	"LRP5":    "Osteoporosis",
	"COMT":    "Pain sensitivity",
	"CYP1B1":  "Glaucoma",
	"TP53":    "Li-Fraumeni syndrome",
	"PDGFRA":  "Gastrointestinal stromal tumor",
	"LPA":     "Cardiovascular risk",
	"ABCB1":   "Drug response",
	"CYP1A1":  "Xenobiotic metabolism",
	"CYP4F2":  "Warfarin dose requirement",
	"CYP2B6":  "Efavirenz metabolism",
	"MCM6":    "Lactose intolerance",
	"MTR":     "Homocysteine metabolism",
	"APC":     "Familial adenomatous polyposis",
}
