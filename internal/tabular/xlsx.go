package tabular

import (
	"os"

	"loctab/internal/report"
	"loctab/internal/table"

	"github.com/xuri/excelize/v2"
)

func readXLSX(path string, rep report.Reporter) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return buildTable(rows, rep)
}

func writeXLSX(path string, t *table.Table) error {
	return writeAtomic(path, func(tmp string) error {
		f := excelize.NewFile()
		defer f.Close()

		sheetName := f.GetSheetName(0)
		if err := setRecord(f, sheetName, 1, headerFor(t)); err != nil {
			return err
		}
		for i, row := range t.Rows {
			if err := setRecord(f, sheetName, i+2, recordFor(t, row)); err != nil {
				return err
			}
		}

		// SaveAs rejects the temp file's extension, so stream the workbook
		// to the file ourselves.
		out, err := os.Create(tmp)
		if err != nil {
			return err
		}
		if err := f.Write(out); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}

func setRecord(f *excelize.File, sheetName string, rowNum int, record []string) error {
	for col, cell := range record {
		name, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, name, cell); err != nil {
			return err
		}
	}
	return nil
}
