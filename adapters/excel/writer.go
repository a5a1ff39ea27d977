package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"trialstat/domain/trial"
)

// WriteRecords renders parsed rich-text records as workbook bytes for
// download. Column order matches the parsed table: Treatment, Mean, Group.
func WriteRecords(records []trial.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeHeader(f, sheet, []string{"Treatment", "Mean", "Group"}); err != nil {
		return nil, err
	}
	for i, rec := range records {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{rec.Treatment, rec.Mean, rec.Group}); err != nil {
			return nil, fmt.Errorf("failed to write record row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteConsolidated renders a consolidated result as workbook bytes with two
// sheets: the full table and the p<0.05 filtered view. The column order is
// the stable export order.
func WriteConsolidated(all, significant *trial.ConsolidatedResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	resultsSheet := f.GetSheetName(0)
	if err := f.SetSheetName(resultsSheet, "Results"); err != nil {
		return nil, fmt.Errorf("failed to rename results sheet: %w", err)
	}
	if err := writeMeansRows(f, "Results", all.Rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Significant"); err != nil {
		return nil, fmt.Errorf("failed to create significant sheet: %w", err)
	}
	if err := writeMeansRows(f, "Significant", significant.Rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMeansRows(f *excelize.File, sheet string, rows []trial.MeansRow) error {
	if err := writeHeader(f, sheet, trial.Header()); err != nil {
		return err
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row.Treatment, row.Mean, row.Group, row.Parameter, row.Trial, row.PValue}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write result row %d: %w", i, err)
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}
