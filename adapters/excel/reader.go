package excel

import (
	"bytes"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"trialstat/domain/trial"
	"trialstat/internal/errors"
)

// Config holds workbook extraction settings: where to find treatments, which
// measurement columns to look for, and which sheets to leave alone.
type Config struct {
	TreatmentColumn  string
	ParameterColumns []string
	ExcludedSuffix   string
	LegendSheet      string
}

// Reader extracts per-(trial, parameter) tables from an uploaded workbook.
// Each sheet is one trial; each recognized parameter column present on the
// sheet yields one candidate table.
type Reader struct {
	config Config
}

// NewReader creates a workbook reader
func NewReader(config Config) *Reader {
	return &Reader{config: config}
}

// ReadWorkbook opens workbook bytes and returns every extractable parameter
// table in deterministic order: sheet order, then configured parameter column
// order. Rows with a missing treatment or an unparseable value are dropped
// silently; a (trial, parameter) combination is kept only with at least 2
// distinct treatments and 3 rows.
func (r *Reader) ReadWorkbook(raw []byte) ([]*trial.ParameterTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.WorkbookError("failed to open workbook", err)
	}
	defer f.Close()

	var tables []*trial.ParameterTable
	for _, sheet := range f.GetSheetList() {
		if r.excluded(sheet) {
			log.Printf("[WorkbookReader] Skipping excluded sheet %q", sheet)
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Printf("[WorkbookReader] Failed to read sheet %q: %v", sheet, err)
			continue
		}
		if len(rows) < 2 {
			continue
		}

		tables = append(tables, r.extractSheet(sheet, rows)...)
	}

	log.Printf("[WorkbookReader] %d extractable (trial, parameter) tables", len(tables))
	return tables, nil
}

// excluded reports whether a sheet is reserved and must not be processed.
func (r *Reader) excluded(sheet string) bool {
	if r.config.LegendSheet != "" && sheet == r.config.LegendSheet {
		return true
	}
	return r.config.ExcludedSuffix != "" && strings.HasSuffix(sheet, r.config.ExcludedSuffix)
}

// extractSheet builds one table per recognized parameter column present on
// the sheet. The sheet name is the trial name.
func (r *Reader) extractSheet(sheet string, rows [][]string) []*trial.ParameterTable {
	header := rows[0]
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	treatmentIdx, ok := columns[r.config.TreatmentColumn]
	if !ok {
		log.Printf("[WorkbookReader] Sheet %q has no %q column, skipping",
			sheet, r.config.TreatmentColumn)
		return nil
	}

	var tables []*trial.ParameterTable
	for _, parameter := range r.config.ParameterColumns {
		valueIdx, ok := columns[parameter]
		if !ok {
			continue
		}

		table := &trial.ParameterTable{Trial: sheet, Parameter: parameter}
		for _, row := range rows[1:] {
			obs, ok := parseObservation(row, treatmentIdx, valueIdx)
			if !ok {
				continue
			}
			table.Rows = append(table.Rows, obs)
		}

		if !table.Analyzable() {
			log.Printf("[WorkbookReader] Sheet %q parameter %q has insufficient data (%d rows)",
				sheet, parameter, len(table.Rows))
			continue
		}
		tables = append(tables, table)
	}
	return tables
}

// parseObservation decodes one data row. Missing treatments and non-numeric
// values drop the row, never the sheet.
func parseObservation(row []string, treatmentIdx, valueIdx int) (trial.Observation, bool) {
	if treatmentIdx >= len(row) || valueIdx >= len(row) {
		return trial.Observation{}, false
	}
	treatment := strings.TrimSpace(row[treatmentIdx])
	if treatment == "" {
		return trial.Observation{}, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
	if err != nil {
		return trial.Observation{}, false
	}
	return trial.Observation{Treatment: treatment, Value: value}, true
}
