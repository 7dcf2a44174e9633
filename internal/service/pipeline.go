package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/genomic-vcf-service/internal/domain"
)

// Pipeline wires the parser, rule engine, scorer and ranker into the batch
// entry point. One pipeline instance is safe for concurrent use: it holds no
// state across invocations, and the annotation source is required to be safe
// for concurrent reads.
type Pipeline struct {
	logger *logrus.Logger
	source domain.AnnotationSource
	parser *VCFParser
	engine *RuleEngine
	scorer *Scorer
	ranker *Ranker
}

// NewPipeline creates the processing pipeline around an annotation source.
func NewPipeline(logger *logrus.Logger, source domain.AnnotationSource) *Pipeline {
	return &Pipeline{
		logger: logger,
		source: source,
		parser: NewVCFParser(logger),
		engine: NewRuleEngine(logger, source),
		scorer: NewScorer(source),
		ranker: NewRanker(source),
	}
}

// ClassifyBatch runs the full parse, annotate, classify, score and rank
// sequence over raw VCF content. Per-record failures (malformed lines,
// annotation lookup errors) are recovered locally; only a structural
// input-format failure propagates as an error. A batch yielding zero usable
// records is a valid empty result.
func (p *Pipeline) ClassifyBatch(ctx context.Context, rawContent string, topN int) (*domain.BatchResult, error) {
	parsed, err := p.parser.Parse(rawContent)
	if err != nil {
		return nil, err
	}

	classified := p.classifyRecords(ctx, parsed.Records)

	result := &domain.BatchResult{
		TopVariants: p.ranker.TopVariants(classified, topN),
		Summary:     p.ranker.Summarize(classified),
		TotalParsed: len(parsed.Records),
	}

	p.logger.WithFields(logrus.Fields{
		"parsed":     result.TotalParsed,
		"classified": result.Summary.TotalVariants,
		"top_n":      len(result.TopVariants),
	}).Info("Completed batch classification")

	return result, nil
}

// classifyRecords resolves annotation, classification and score per record,
// preserving input order. A variant whose annotation lookup fails is
// excluded from the classified output; the batch continues.
func (p *Pipeline) classifyRecords(ctx context.Context, records []domain.VariantRecord) []domain.ClassifiedVariant {
	classified := make([]domain.ClassifiedVariant, 0, len(records))

	for i := range records {
		record := &records[i]

		status, frequency, err := p.source.Lookup(ctx, record.ID)
		if err != nil {
			annErr := &domain.AnnotationError{VariantID: record.ID, Err: err}
			p.logger.WithError(annErr).WithField("variant_id", record.ID).
				Warn("Skipping variant: annotation lookup failed")
			continue
		}

		in := RuleInput{Record: record, Status: status, Frequency: frequency}
		classification := p.engine.Classify(in)
		score := p.scorer.Score(record, status, frequency, classification)

		classified = append(classified, domain.ClassifiedVariant{
			Record:         *record,
			ClinVarStatus:  status,
			Frequency:      frequency,
			Classification: classification,
			Score:          score,
		})
	}

	p.logger.WithField("classified", len(classified)).Debug("Classified variant records")
	return classified
}

// ParseOnly exposes the parser stage for metadata inspection without running
// classification.
func (p *Pipeline) ParseOnly(rawContent string) (*ParseResult, error) {
	return p.parser.Parse(rawContent)
}

// Engine returns the underlying rule engine, used by the rules
// introspection endpoint.
func (p *Pipeline) Engine() *RuleEngine {
	return p.engine
}
