// Package csvcodec serializes course records to the canonical exported CSV
// and parses that same CSV back. The encoded form is the round-trip source of
// truth for the edit workflow: Decode(Encode(records)) reproduces records for
// any record set whose fields already satisfy the type constraints.
package csvcodec

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/stemsi/gradehist-backend/internal/model"
)

// Header is the canonical exported column set, in field order. Decode keys
// rows by these names, so the two directions can never drift apart.
var Header = []string{
	"Sl.No",
	"Course Code",
	"Course Title",
	"Course Type",
	"Credits",
	"Grade",
	"Exam Month",
	"Result Declared On",
	"Course Option",
	"Course Distribution",
}

// Encode writes the header plus one row per record in canonical column order.
// Zero-valued records are omitted, guarding against stray fully-blank edited
// rows.
func Encode(w io.Writer, records []model.CourseRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		if rec == (model.CourseRecord{}) {
			continue
		}
		rows = append(rows, cellsOf(rec))
	}
	return EncodeRaw(w, rows)
}

// EncodeRaw writes already-stringified cells in canonical column order,
// dropping rows whose every cell is blank. The form export path uses this
// directly so that user-entered text survives byte for byte.
func EncodeRaw(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, cells := range rows {
		if isBlankRow(cells) {
			continue
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode parses a previously exported CSV back into records. Failures are
// per-row and silent: blank rows, rows with a blank or non-integer Sl.No and
// structurally malformed rows are skipped, never fatal. Credits default to 0
// when the cell is blank. Only an unreadable stream returns an error.
func Decode(r io.Reader) ([]model.CourseRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var records []model.CourseRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return records, err
		}
		if isBlankRow(row) {
			continue
		}

		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		slStr := cell("Sl.No")
		if slStr == "" {
			continue
		}
		slNo, err := strconv.Atoi(slStr)
		if err != nil {
			continue
		}

		credits := 0.0
		if cs := cell("Credits"); cs != "" {
			f, err := strconv.ParseFloat(cs, 64)
			if err != nil {
				continue
			}
			credits = f
		}

		records = append(records, model.CourseRecord{
			SlNo:               slNo,
			CourseCode:         cell("Course Code"),
			CourseTitle:        cell("Course Title"),
			CourseType:         cell("Course Type"),
			Credits:            credits,
			Grade:              cell("Grade"),
			ExamMonth:          cell("Exam Month"),
			ResultDeclaredOn:   cell("Result Declared On"),
			CourseOption:       cell("Course Option"),
			CourseDistribution: cell("Course Distribution"),
		})
	}
	return records, nil
}

func cellsOf(rec model.CourseRecord) []string {
	return []string{
		strconv.Itoa(rec.SlNo),
		rec.CourseCode,
		rec.CourseTitle,
		rec.CourseType,
		strconv.FormatFloat(rec.Credits, 'g', -1, 64),
		rec.Grade,
		rec.ExamMonth,
		rec.ResultDeclaredOn,
		rec.CourseOption,
		rec.CourseDistribution,
	}
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
