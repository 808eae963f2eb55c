package gradesheet

import (
	"regexp"
	"strings"
)

// FooterMarker is the page footer the university's PDF export glues onto the
// last data row of every page.
const FooterMarker = "UNOFFICIALProvisional Grade History"

// A row anchor is a serial number followed by a course code at the very start
// of the line. Requiring line start keeps titles that happen to contain a
// similar shape from being mis-segmented.
var rowAnchorPattern = regexp.MustCompile(`^\d+\s+[A-Z]{3}\d{4}\b`)

// isRowAnchor reports whether line begins a new course record.
func isRowAnchor(line string) bool {
	return rowAnchorPattern.MatchString(line)
}

// stripFooter removes the footer marker and everything after it, then trims
// surrounding whitespace.
func stripFooter(line string) string {
	if i := strings.Index(line, FooterMarker); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Segment walks normalized text line by line and returns one string per
// logical row. Wrapped continuation lines are merged into the row they belong
// to; stray lines before the first anchor are dropped.
func Segment(normalized string) []string {
	var rows []string
	current := ""

	for _, raw := range strings.Split(normalized, "\n") {
		line := stripFooter(raw)
		if line == "" {
			continue
		}

		switch {
		case isRowAnchor(line):
			if current != "" {
				rows = append(rows, current)
			}
			current = line
		case current != "":
			current += " " + line
		}
	}

	if current != "" {
		rows = append(rows, current)
	}
	return rows
}
