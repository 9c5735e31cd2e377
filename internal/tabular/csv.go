package tabular

import (
	"encoding/csv"
	"os"

	"loctab/internal/report"
	"loctab/internal/table"
)

func readCSV(path string, rep report.Reporter) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return buildTable(records, rep)
}

func writeCSV(path string, t *table.Table) error {
	return writeAtomic(path, func(tmp string) error {
		f, err := os.Create(tmp)
		if err != nil {
			return err
		}
		defer f.Close()

		w := csv.NewWriter(f)
		records := [][]string{headerFor(t)}
		for _, row := range t.Rows {
			records = append(records, recordFor(t, row))
		}
		if err := w.WriteAll(records); err != nil {
			return err
		}
		return w.Error()
	})
}

// writeAtomic writes through a temporary sibling file and renames it over
// the destination on success.
func writeAtomic(path string, write func(tmp string) error) error {
	tmp := path + ".tmp"
	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
