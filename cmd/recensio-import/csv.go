package main

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSVFile reads a CSV file with a header row and returns one map per
// record, keyed by column name.
func readCSVFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, col := range header {
			record[col] = row[i]
		}
		records = append(records, record)
	}
	return records, nil
}

// field returns a named column from a record, erroring on absent columns so
// a malformed file fails fast instead of importing empty values.
func field(record map[string]string, name string) (string, error) {
	value, ok := record[name]
	if !ok {
		return "", fmt.Errorf("missing column %q", name)
	}
	return value, nil
}
