package gradesheet

import (
	"testing"

	"github.com/stemsi/gradehist-backend/internal/model"
)

func TestParseRowRightAnchoredTitle(t *testing.T) {
	rec, ok := ParseRow("3 CSE1001 Intro to Systems REG 4.0 A MAY2023 JUN2023 FULL DIST1")
	if !ok {
		t.Fatal("expected row to parse")
	}

	if rec.SlNo != 3 {
		t.Errorf("SlNo = %d, want 3", rec.SlNo)
	}
	if rec.CourseTitle != "Intro to Systems" {
		t.Errorf("CourseTitle = %q, want %q", rec.CourseTitle, "Intro to Systems")
	}
	if rec.Credits != 4.0 {
		t.Errorf("Credits = %v, want 4.0", rec.Credits)
	}
	if rec.CourseType != "REG" {
		t.Errorf("CourseType = %q, want REG", rec.CourseType)
	}
	if rec.Grade != "A" || rec.ExamMonth != "MAY2023" || rec.ResultDeclaredOn != "JUN2023" {
		t.Errorf("trailing fields misassigned: %+v", rec)
	}
	if rec.CourseOption != "FULL" || rec.CourseDistribution != "DIST1" {
		t.Errorf("option/distribution misassigned: %+v", rec)
	}
}

func TestParseRowSingleWordTitle(t *testing.T) {
	rec, ok := ParseRow("1 MAT1002 Calculus L 3.5 B+ MAY2023 JUN2023 FULL DIST2")
	if !ok {
		t.Fatal("expected row to parse")
	}
	if rec.CourseTitle != "Calculus" {
		t.Errorf("CourseTitle = %q, want Calculus", rec.CourseTitle)
	}
	if rec.Credits != 3.5 {
		t.Errorf("Credits = %v, want 3.5", rec.Credits)
	}
}

func TestParseRowRejectsMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
	}{
		{"too few tokens", "1 CSE1001 Intro A 4.0 A MAY2023 JUN2023 FULL"},
		{"non-integer serial", "one CSE1001 Intro X A 4.0 A MAY2023 JUN2023 FULL DIST1"},
		{"non-numeric credits", "1 CSE1001 Intro X A x.y A MAY2023 JUN2023 FULL DIST1"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec, ok := ParseRow(tc.row); ok {
				t.Errorf("expected no record, got %+v", rec)
			}
		})
	}
}

func TestParseDocumentEndToEnd(t *testing.T) {
	raw := "6HUM1021Engineering Mechanics L 3.0 B MAY2023 JUN2023 FULL DIST2"

	records := ParseDocument(raw)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	want := model.CourseRecord{
		SlNo:               6,
		CourseCode:         "HUM1021",
		CourseTitle:        "Engineering Mechanics",
		CourseType:         "L",
		Credits:            3.0,
		Grade:              "B",
		ExamMonth:          "MAY2023",
		ResultDeclaredOn:   "JUN2023",
		CourseOption:       "FULL",
		CourseDistribution: "DIST2",
	}
	if records[0] != want {
		t.Errorf("record = %+v, want %+v", records[0], want)
	}
}

func TestParseDocumentMalformedRowDoesNotAbortSiblings(t *testing.T) {
	raw := "1 CSE1001 Intro REG 4.0 A MAY2023 JUN2023 FULL DIST1\n" +
		"2 MAT1002 Broken Credits REG x.y A MAY2023 JUN2023 FULL DIST1\n" +
		"3 PHY1003 Waves REG 3.0 S MAY2023 JUN2023 FULL DIST1"

	records := ParseDocument(raw)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].SlNo != 1 || records[1].SlNo != 3 {
		t.Errorf("unexpected surviving rows: %+v", records)
	}
}

func TestParseDocumentPreservesDocumentOrder(t *testing.T) {
	raw := "2 CSE1001 Intro REG 4.0 A MAY2023 JUN2023 FULL DIST1\n" +
		"1 MAT1002 Calculus REG 3.0 B MAY2023 JUN2023 FULL DIST1"

	records := ParseDocument(raw)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Output order is document order, not serial-number order.
	if records[0].SlNo != 2 || records[1].SlNo != 1 {
		t.Errorf("document order not preserved: %+v", records)
	}
}
