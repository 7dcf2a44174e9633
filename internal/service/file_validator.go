package service

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/genomic-vcf-service/internal/domain"
)

// headerScanLimit bounds how many leading lines are scanned for #CHROM.
const headerScanLimit = 20

// requiredColumns are the VCF columns the header line must declare.
var requiredColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT"}

// validExtensions lists accepted upload extensions.
var validExtensions = []string{".vcf", ".vcf.gz"}

// FileValidator validates uploaded VCF files before they reach the
// pipeline: extension, size and header shape.
type FileValidator struct {
	logger      *logrus.Logger
	maxFileSize int64
}

// NewFileValidator creates a file validator with the given size cap.
func NewFileValidator(logger *logrus.Logger, maxFileSize int64) *FileValidator {
	return &FileValidator{logger: logger, maxFileSize: maxFileSize}
}

// ValidateFilename checks the upload's extension against the accepted set.
func (v *FileValidator) ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("no filename provided")
	}

	lower := strings.ToLower(filename)
	for _, ext := range validExtensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return fmt.Errorf("invalid file extension %q: supported formats are %s",
		filepath.Ext(lower), strings.Join(validExtensions, ", "))
}

// ValidateSize checks the declared upload size against the configured cap.
func (v *FileValidator) ValidateSize(size int64) error {
	if size > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes exceeds limit of %d bytes", size, v.maxFileSize)
	}
	return nil
}

// ValidateHeader scans the first lines of the content for a #CHROM header
// line declaring the required columns. A missing or malformed header means
// the input is not VCF-shaped: callers should reject it before parsing.
func (v *FileValidator) ValidateHeader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	// VCF data lines can be long; the default token limit is too small.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < headerScanLimit && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#CHROM") {
			continue
		}

		columns := strings.Split(line, "\t")
		present := make(map[string]bool, len(columns))
		for _, c := range columns {
			present[c] = true
		}

		var missing []string
		for _, required := range requiredColumns {
			if !present[required] {
				missing = append(missing, required)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: header missing required columns %v", domain.ErrInputFormat, missing)
		}

		v.logger.WithField("columns", len(columns)).Debug("VCF header validation passed")
		return nil
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInputFormat, err)
	}
	return fmt.Errorf("%w: no #CHROM header line found in first %d lines", domain.ErrInputFormat, headerScanLimit)
}

// SupportedFormats returns the accepted upload extensions.
func (v *FileValidator) SupportedFormats() []string {
	formats := make([]string, len(validExtensions))
	copy(formats, validExtensions)
	return formats
}
