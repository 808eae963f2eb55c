// Command parse converts a grade history PDF, or a previously exported CSV,
// into the canonical CSV on stdout. Useful for batch work without running the
// server.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stemsi/gradehist-backend/internal/csvcodec"
	"github.com/stemsi/gradehist-backend/internal/gradesheet"
	"github.com/stemsi/gradehist-backend/internal/model"
	"github.com/stemsi/gradehist-backend/internal/pdftext"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: parse <grade-history.pdf | exported.csv>")
		os.Exit(2)
	}
	path := os.Args[1]

	var records []model.CourseRecord

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := pdftext.ExtractFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse: %v\n", err)
			os.Exit(1)
		}
		records = gradesheet.ParseDocument(text)

	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse: %v\n", err)
			os.Exit(1)
		}
		records, err = csvcodec.Decode(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "parse: unsupported file type (want .pdf or .csv)")
		os.Exit(2)
	}

	if err := csvcodec.Encode(os.Stdout, records); err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(1)
	}
}
