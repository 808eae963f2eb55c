// Package gradesheet reconstructs course records from the raw text that a PDF
// extractor produces for a provisional grade history. The extractor gives no
// layout coordinates, so the pipeline works purely on text: Normalize repairs
// glued tokens, Segment reassembles wrapped rows, ParseRow applies the fixed
// field grammar.
package gradesheet

import "regexp"

// The extractor sometimes drops the space between a 1-2 digit serial number
// and a course code ("6HUM1021"), and between a course code and the first
// letter of the title ("CSE1001Problem"). The inserted space removes the
// trigger, so both rewrites are idempotent.
var (
	gluedSlNoPattern  = regexp.MustCompile(`\b(\d{1,2})([A-Z]{3}\d{4})`)
	gluedTitlePattern = regexp.MustCompile(`([A-Z]{3}\d{4})([A-Za-z])`)
)

// Normalize inserts the whitespace a PDF extractor dropped between known token
// boundaries. It is total over any input and never modifies other tokens.
func Normalize(raw string) string {
	text := gluedSlNoPattern.ReplaceAllString(raw, "$1 $2")
	text = gluedTitlePattern.ReplaceAllString(text, "$1 $2")
	return text
}
