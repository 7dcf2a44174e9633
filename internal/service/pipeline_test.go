package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genomic-vcf-service/internal/domain"
)

// fakeSource is a deterministic in-memory annotation source for tests.
type fakeSource struct {
	entries map[string]fakeEntry
	failIDs map[string]bool
	cancer  map[string]bool
	pharma  map[string]bool
}

type fakeEntry struct {
	status domain.ClinVarStatus
	freq   float64
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		entries: make(map[string]fakeEntry),
		failIDs: make(map[string]bool),
		cancer:  map[string]bool{"BRCA1": true, "TP53": true, "MLH1": true},
		pharma:  map[string]bool{"CYP2C9": true, "TPMT": true, "VKORC1": true},
	}
}

func (f *fakeSource) add(id string, status domain.ClinVarStatus, freq float64) *fakeSource {
	f.entries[id] = fakeEntry{status: status, freq: freq}
	return f
}

func (f *fakeSource) Lookup(_ context.Context, variantID string) (domain.ClinVarStatus, float64, error) {
	if f.failIDs[variantID] {
		return "", 0, errors.New("lookup backend unavailable")
	}
	if e, ok := f.entries[variantID]; ok {
		return e.status, e.freq, nil
	}
	return domain.ClinVarUncertain, 0.5, nil
}

func (f *fakeSource) IsCancerRiskGene(gene string) bool      { return f.cancer[gene] }
func (f *fakeSource) IsPharmacogenomicGene(gene string) bool { return f.pharma[gene] }

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

const pipelineTestVCF = "##fileformat=VCFv4.2\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
	"17\t43044295\trs1\tA\tG\t1200.0\tPASS\tGENE=BRCA1;IMPACT=HIGH\n" +
	"1\t11796321\trs2\tG\tA\t600.0\tPASS\tGENE=MTHFR;IMPACT=MODERATE\n" +
	"22\t19963748\trs3\tG\tA\t300.0\tPASS\tGENE=COMT;IMPACT=LOW\n"

func TestPipeline_ClassifyBatch(t *testing.T) {
	source := newFakeSource().
		add("rs1", domain.ClinVarPathogenic, 0.0001).
		add("rs2", domain.ClinVarUncertain, 0.03).
		add("rs3", domain.ClinVarBenign, 0.12)

	pipeline := NewPipeline(newTestLogger(), source)

	result, err := pipeline.ClassifyBatch(context.Background(), pipelineTestVCF, 10)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalParsed)
	assert.Equal(t, 3, result.Summary.TotalVariants)
	assert.Len(t, result.TopVariants, 3)

	// rs1: pathogenic, rare, BRCA1, high impact, high quality ranks first.
	assert.Equal(t, "rs1", result.TopVariants[0].VariantID)
	assert.Equal(t, domain.LikelyPathogenic, result.TopVariants[0].Classification)

	assert.Equal(t, 1, result.Summary.PathogenicVariants)
	assert.Equal(t, 1, result.Summary.BenignVariants)
	assert.Equal(t, 1, result.Summary.UncertainVariants)
}

func TestPipeline_ClassifyBatch_SkipsFailedLookups(t *testing.T) {
	source := newFakeSource().
		add("rs1", domain.ClinVarPathogenic, 0.0001).
		add("rs3", domain.ClinVarBenign, 0.12)
	source.failIDs["rs2"] = true

	pipeline := NewPipeline(newTestLogger(), source)

	result, err := pipeline.ClassifyBatch(context.Background(), pipelineTestVCF, 10)
	require.NoError(t, err)

	// The failed lookup drops the variant, not the batch.
	assert.Equal(t, 3, result.TotalParsed)
	assert.Equal(t, 2, result.Summary.TotalVariants)
	for _, v := range result.TopVariants {
		assert.NotEqual(t, "rs2", v.VariantID)
	}
}

func TestPipeline_ClassifyBatch_InvalidInput(t *testing.T) {
	pipeline := NewPipeline(newTestLogger(), newFakeSource())

	tests := []struct {
		name    string
		content string
	}{
		{"empty content", ""},
		{"whitespace only", "   \n\t\n"},
		{"no header no records", "this is not a vcf file\njust some text\n"},
		{"invalid utf8", "##fileformat=VCFv4.2\n\xff\xfe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.ClassifyBatch(context.Background(), tt.content, 10)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInputFormat)
		})
	}
}

func TestPipeline_ClassifyBatch_HeaderOnlyIsValidEmpty(t *testing.T) {
	pipeline := NewPipeline(newTestLogger(), newFakeSource())

	content := "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"
	result, err := pipeline.ClassifyBatch(context.Background(), content, 10)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalParsed)
	assert.Equal(t, 0, result.Summary.TotalVariants)
	assert.Empty(t, result.TopVariants)
}

// Full pipeline over a single known record: a rare pathogenic BRCA1 variant
// with HIGH impact and quality 900 must classify Likely Pathogenic and score
// 100 + 50 + 40 + 30 + 25 + 5 = 250.
func TestPipeline_ClassifyBatch_KnownVariantScore(t *testing.T) {
	source := newFakeSource().add("rs28897756", domain.ClinVarPathogenic, 0.0001)
	pipeline := NewPipeline(newTestLogger(), source)

	content := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"17\t41197701\trs28897756\tA\tG\t900\t.\tGENE=BRCA1;IMPACT=HIGH\n"

	result, err := pipeline.ClassifyBatch(context.Background(), content, 10)
	require.NoError(t, err)
	require.Len(t, result.TopVariants, 1)

	top := result.TopVariants[0]
	assert.Equal(t, domain.LikelyPathogenic, top.Classification)
	assert.Equal(t, 250.0, top.Score)
	assert.Equal(t, "rs28897756", top.VariantID)
	assert.Equal(t, "BRCA1", top.Gene)
	assert.Equal(t, domain.ImpactHigh, top.Impact)
}

func TestPipeline_ClassifyBatch_TopNLimit(t *testing.T) {
	source := newFakeSource().
		add("rs1", domain.ClinVarPathogenic, 0.0001).
		add("rs2", domain.ClinVarUncertain, 0.03).
		add("rs3", domain.ClinVarBenign, 0.12)

	pipeline := NewPipeline(newTestLogger(), source)

	result, err := pipeline.ClassifyBatch(context.Background(), pipelineTestVCF, 2)
	require.NoError(t, err)

	assert.Len(t, result.TopVariants, 2)
	// The summary still covers the whole batch.
	assert.Equal(t, 3, result.Summary.TotalVariants)
}
