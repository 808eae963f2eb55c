package gradesheet

import (
	"strconv"
	"strings"

	"github.com/stemsi/gradehist-backend/internal/model"
)

// A logical row needs the serial number, the course code, at least one title
// token and the seven trailing fields.
const minRowTokens = 10

// ParseRow splits a logical row into the ten record fields. The serial number
// and course code anchor the row from the left; the seven trailing fields are
// counted from the right, so the variable-width title is whatever remains in
// the middle. Rows that fail any part of the grammar yield no record at all —
// a partially valid row is never kept.
//
// Known limitation: a title containing a token that lines up with a trailing
// field position (for example a bare number where credits are expected once
// the row is short enough) will misparse. The grammar has no layout
// information to resolve that case.
func ParseRow(row string) (model.CourseRecord, bool) {
	tokens := strings.Fields(row)
	if len(tokens) < minRowTokens {
		return model.CourseRecord{}, false
	}

	slNo, err := strconv.Atoi(tokens[0])
	if err != nil {
		return model.CourseRecord{}, false
	}

	n := len(tokens)
	credits, err := strconv.ParseFloat(tokens[n-6], 64)
	if err != nil {
		return model.CourseRecord{}, false
	}

	return model.CourseRecord{
		SlNo:               slNo,
		CourseCode:         tokens[1],
		CourseTitle:        strings.Join(tokens[2:n-7], " "),
		CourseType:         tokens[n-7],
		Credits:            credits,
		Grade:              tokens[n-5],
		ExamMonth:          tokens[n-4],
		ResultDeclaredOn:   tokens[n-3],
		CourseOption:       tokens[n-2],
		CourseDistribution: tokens[n-1],
	}, true
}

// ParseDocument runs the full raw-text pipeline: normalize, segment, parse.
// Rows that fail to parse are dropped; the remaining rows keep document order.
func ParseDocument(raw string) []model.CourseRecord {
	var records []model.CourseRecord
	for _, row := range Segment(Normalize(raw)) {
		if rec, ok := ParseRow(row); ok {
			records = append(records, rec)
		}
	}
	return records
}
