// Package dataset loads tabular training data from CSV files into gonum
// matrices. Files are expected to carry a header row; every data cell must
// parse as a float64. There is no schema validation beyond that.
package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/mlstack/entrain/pkg/errors"
)

// LoadMatrix reads a CSV file with a header row into a dense feature matrix.
func LoadMatrix(path string) (*mat.Dense, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewModelError("dataset.LoadMatrix", "no data rows in "+path, errors.ErrEmptyData)
	}

	nRows := len(records)
	nCols := len(records[0])
	data := make([]float64, 0, nRows*nCols)
	for i, record := range records {
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: %s: row %d col %d: cannot parse %q", path, i+2, j+1, cell)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(nRows, nCols, data), nil
}

// LoadVector reads a single-column CSV file with a header row into a dense
// vector. A file with more than one column is rejected: silently flattening
// a multi-column target row-major would merge unrelated values.
func LoadVector(path string) (*mat.VecDense, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewModelError("dataset.LoadVector", "no data rows in "+path, errors.ErrEmptyData)
	}
	if len(records[0]) != 1 {
		return nil, errors.NewDimensionError("dataset.LoadVector", 1, len(records[0]), 1)
	}

	data := make([]float64, len(records))
	for i, record := range records {
		v, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: %s: row %d: cannot parse %q", path, i+2, record[0])
		}
		data[i] = v
	}

	return mat.NewVecDense(len(data), data), nil
}

// readRecords reads all CSV records from path and drops the header row.
// The csv reader enforces a consistent field count across rows.
func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: cannot open %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: cannot parse %s", path)
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}
