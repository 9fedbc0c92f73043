// Package csvfile reads the raw input CSV and writes the pipeline's output
// files. All writers truncate their target: outputs are fully regenerated
// each run.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/skybatch/weather-etl/internal/domain"
)

// Read loads a CSV file into a raw table. The first row is the header.
// Rows may be ragged; short rows are handed to the loader as-is, which
// treats absent cells as missing.
func Read(path string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read input: %w", err)
	}
	if len(all) == 0 {
		return domain.RawTable{}, fmt.Errorf("input %s has no header row", path)
	}

	return domain.RawTable{Header: all[0], Rows: all[1:]}, nil
}
