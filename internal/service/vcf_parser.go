// Package service implements the VCF processing pipeline: record parsing,
// rule-based classification, significance scoring and ranking.
package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/genomic-vcf-service/internal/domain"
)

const minVCFFields = 8

// VCFParser turns raw tabular VCF text into structured variant records.
// Malformed lines are skipped with a warning; they never abort the batch.
type VCFParser struct {
	logger *logrus.Logger
}

// NewVCFParser creates a new VCF parser.
func NewVCFParser(logger *logrus.Logger) *VCFParser {
	return &VCFParser{logger: logger}
}

// ParseResult holds the ordered records of one parse run plus header
// metadata and diagnostics.
type ParseResult struct {
	Records      []domain.VariantRecord
	Metadata     domain.FileMetadata
	SkippedLines int
}

// Parse splits raw content into variant records, preserving input line
// order. It returns domain.ErrInputFormat when the content is not
// VCF-shaped at all; a well-formed file yielding zero records is a valid
// empty result, not an error.
func (p *VCFParser) Parse(content string) (*ParseResult, error) {
	if !utf8.ValidString(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", domain.ErrInputFormat)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty input", domain.ErrInputFormat)
	}

	result := &ParseResult{}
	sawHeader := false

	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "##"):
			sawHeader = true
			p.collectMetadata(line, &result.Metadata)
			continue
		case strings.HasPrefix(line, "#CHROM"):
			// Column header: retained for diagnostics only; field
			// extraction relies on fixed column order.
			sawHeader = true
			result.Metadata.Columns = strings.Split(line, "\t")
			continue
		case strings.HasPrefix(line, "#"):
			sawHeader = true
			continue
		}

		record, err := p.parseRecordLine(line, lineNo)
		if err != nil {
			result.SkippedLines++
			p.logger.WithFields(logrus.Fields{
				"line":    lineNo,
				"content": truncateLine(line),
			}).WithError(err).Warn("Skipping malformed variant line")
			continue
		}
		result.Records = append(result.Records, *record)
	}

	if !sawHeader && len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: no VCF header or parseable records found", domain.ErrInputFormat)
	}

	p.logger.WithFields(logrus.Fields{
		"records": len(result.Records),
		"skipped": result.SkippedLines,
	}).Info("Parsed VCF content")

	return result, nil
}

// parseRecordLine parses a single data line. Any failure, including a panic
// from unexpected field content, drops the line rather than the batch.
func (p *VCFParser) parseRecordLine(line string, lineNo int) (record *domain.VariantRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = &domain.ParseError{Line: lineNo, Message: fmt.Sprintf("panic while parsing: %v", r)}
		}
	}()

	fields := strings.Split(line, "\t")
	if len(fields) < minVCFFields {
		return nil, &domain.ParseError{
			Line:    lineNo,
			Message: fmt.Sprintf("expected at least %d tab-separated fields, found %d", minVCFFields, len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &domain.ParseError{Line: lineNo, Message: fmt.Sprintf("invalid position %q", fields[1])}
	}

	chrom, ref, alt := fields[0], fields[3], fields[4]

	id := fields[2]
	if id == "." {
		id = fmt.Sprintf("%s_%d_%s_%s", chrom, pos, ref, alt)
	}

	var quality *float64
	if fields[5] != "." {
		q, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, &domain.ParseError{Line: lineNo, Message: fmt.Sprintf("invalid quality %q", fields[5])}
		}
		quality = &q
	}

	filterStatus := fields[6]
	if filterStatus == "." {
		filterStatus = "PASS"
	}

	info, flags := parseInfoField(fields[7])

	rec := &domain.VariantRecord{
		Chrom:        chrom,
		Pos:          pos,
		ID:           id,
		Ref:          ref,
		Alt:          alt,
		Gene:         info["GENE"],
		Impact:       domain.ParseImpact(info["IMPACT"]),
		Quality:      quality,
		FilterStatus: filterStatus,
		Clinical:     info["CLINICAL"],
		Info:         info,
		InfoFlags:    flags,
	}

	if err := rec.Validate(); err != nil {
		return nil, &domain.ParseError{Line: lineNo, Message: err.Error()}
	}

	return rec, nil
}

// parseInfoField splits a semicolon-delimited INFO string into KEY=VALUE
// pairs and bare flag tokens. Flags are present-but-valueless; unknown keys
// are retained but unused downstream.
func parseInfoField(info string) (map[string]string, map[string]bool) {
	values := make(map[string]string)
	flags := make(map[string]bool)

	if info == "" || info == "." {
		return values, flags
	}

	for _, token := range strings.Split(info, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if key, value, found := strings.Cut(token, "="); found {
			values[key] = value
		} else {
			flags[token] = true
		}
	}

	return values, flags
}

// collectMetadata extracts informational header values from a ## line.
func (p *VCFParser) collectMetadata(line string, meta *domain.FileMetadata) {
	assign := func(prefix string, dst *string) bool {
		if strings.HasPrefix(line, prefix) {
			*dst = strings.TrimPrefix(line, prefix)
			return true
		}
		return false
	}

	_ = assign("##fileformat=", &meta.FileFormat) ||
		assign("##fileDate=", &meta.FileDate) ||
		assign("##source=", &meta.Source) ||
		assign("##reference=", &meta.Reference)
}

// truncateLine bounds diagnostic log output for very long lines.
func truncateLine(line string) string {
	const max = 200
	if len(line) <= max {
		return line
	}
	return line[:max] + "..."
}
