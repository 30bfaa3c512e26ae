// Command convert batch-converts legacy Bijoy spreadsheets to Unicode
// without the web server. It reads an .xlsx or .csv file, normalizes every
// header and cell, and writes <stem>_unicode.csv and <stem>_unicode.xlsx
// next to the input.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shoumique/employee-reporter/adapters/bijoy"
	"github.com/shoumique/employee-reporter/adapters/excel"
	"github.com/shoumique/employee-reporter/domain/bangla"
	"github.com/shoumique/employee-reporter/domain/table"
)

func main() {
	var (
		input  = flag.String("in", "", "input spreadsheet (.xlsx or .csv)")
		outDir = flag.String("out", "", "output directory (defaults to the input's directory)")
		csvOut = flag.Bool("csv", true, "write a _unicode.csv alongside the workbook")
	)
	flag.Parse()

	if *input == "" {
		// Positional form: convert file.xlsx
		if flag.NArg() == 1 {
			*input = flag.Arg(0)
		} else {
			flag.Usage()
			os.Exit(2)
		}
	}

	if err := run(*input, *outDir, *csvOut); err != nil {
		log.Fatalf("convert: %v", err)
	}
}

func run(input, outDir string, writeCSV bool) error {
	raw, err := excel.NewReader(input).Read()
	if err != nil {
		return err
	}

	gate := bangla.NewGate(bijoy.New())
	normalized, stats := table.Normalize(raw, gate)
	log.Printf("[convert] %s: %d converted, %d rejected, %d passthrough",
		filepath.Base(input), stats.Converted, stats.Rejected, stats.Passthrough)

	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	xlsxPath := filepath.Join(outDir, stem+"_unicode.xlsx")
	data, err := excel.NewWriter().Write(normalized, stem)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
		return err
	}
	log.Printf("[convert] wrote %s", xlsxPath)

	if writeCSV {
		csvPath := filepath.Join(outDir, stem+"_unicode.csv")
		if err := writeCSVFile(csvPath, normalized); err != nil {
			return err
		}
		log.Printf("[convert] wrote %s", csvPath)
	}
	return nil
}

// writeCSVFile emits a UTF-8 CSV with a BOM so Excel opens the Bengali
// text correctly.
func writeCSVFile(path string, t table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	for r := range t.Rows {
		row := make([]string, len(t.Headers))
		for c := range t.Headers {
			row[c] = t.Cell(r, c)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
