package service

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/gradehist-backend/internal/config"
	"github.com/stemsi/gradehist-backend/internal/csvcodec"
	"github.com/stemsi/gradehist-backend/internal/gradesheet"
	"github.com/stemsi/gradehist-backend/internal/model"
	"github.com/stemsi/gradehist-backend/internal/pdftext"
)

// ErrFileTooLarge is returned when an upload exceeds the configured cap.
var ErrFileTooLarge = errors.New("file too large")

// GradesheetService orchestrates the two ingestion paths (PDF raw text, exported
// CSV) and the export paths back to CSV. It holds no state between calls.
type GradesheetService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewGradesheetService creates a new GradesheetService.
func NewGradesheetService(cfg *config.Config, log zerolog.Logger) *GradesheetService {
	return &GradesheetService{
		cfg: cfg,
		log: log.With().Str("component", "gradesheet_service").Logger(),
	}
}

// ParseUpload dispatches an uploaded file on its filename extension: PDF goes
// through extract/normalize/segment/parse, CSV through the codec. An
// unsupported extension yields an empty record list, not an error — the table
// simply renders with no rows. A PDF or CSV that cannot be read at all is
// treated the same way; per-row failures inside either path are already
// swallowed at the row boundary.
func (s *GradesheetService) ParseUpload(file multipart.File, header *multipart.FileHeader) ([]model.CourseRecord, error) {
	if header.Size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".pdf":
		text, err := pdftext.Extract(file, header.Size)
		if err != nil {
			s.log.Warn().Err(err).Str("filename", header.Filename).Msg("PDF text extraction failed")
			return []model.CourseRecord{}, nil
		}
		records := gradesheet.ParseDocument(text)
		s.log.Info().Str("filename", header.Filename).Int("records", len(records)).Msg("Parsed grade history PDF")
		return records, nil

	case ".csv":
		records, err := csvcodec.Decode(file)
		if err != nil {
			s.log.Warn().Err(err).Str("filename", header.Filename).Msg("CSV decode failed")
			return []model.CourseRecord{}, nil
		}
		s.log.Info().Str("filename", header.Filename).Int("records", len(records)).Msg("Parsed exported CSV")
		return records, nil

	default:
		s.log.Debug().Str("filename", header.Filename).Msg("Unsupported upload type")
		return []model.CourseRecord{}, nil
	}
}

// EncodeEditedRows rebuilds ordered rows from edited-table form values keyed
// by (row index, field name), then encodes them. Cells stay raw strings so
// user edits survive byte for byte; fully blank rows are dropped by the codec.
func (s *GradesheetService) EncodeEditedRows(rows map[int]map[string]string) ([]byte, error) {
	indices := make([]int, 0, len(rows))
	for idx := range rows {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	cells := make([][]string, 0, len(indices))
	for _, idx := range indices {
		row := rows[idx]
		line := make([]string, len(model.RecordFieldNames))
		for i, field := range model.RecordFieldNames {
			line[i] = strings.TrimSpace(row[field])
		}
		cells = append(cells, line)
	}

	var buf bytes.Buffer
	if err := csvcodec.EncodeRaw(&buf, cells); err != nil {
		return nil, fmt.Errorf("encode edited rows: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeRecords encodes typed records to the canonical CSV.
func (s *GradesheetService) EncodeRecords(records []model.CourseRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := csvcodec.Encode(&buf, records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateCSV returns the header-only canonical CSV for manual editing.
func (s *GradesheetService) TemplateCSV() []byte {
	var buf bytes.Buffer
	// Encoding an empty record set can only fail on the writer, and a
	// bytes.Buffer never does.
	_ = csvcodec.Encode(&buf, nil)
	return buf.Bytes()
}
