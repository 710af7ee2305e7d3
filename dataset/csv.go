package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/YuminosukeSato/loessgo/pkg/errors"
)

// CSVOptions controls delimited-text loading.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// HasHeader skips the first record when true.
	HasHeader bool
	// SkipInvalid drops records whose x or y field does not parse as a
	// float instead of failing the whole load. Missing-value markers in
	// teaching datasets ("NA", empty field) are handled this way.
	SkipInvalid bool
}

// FromCSV reads a delimited-text stream and builds a Dataset from the given
// x and y column indices.
func FromCSV(r io.Reader, xCol, yCol int, opts CSVOptions) (Dataset, error) {
	if xCol < 0 || yCol < 0 {
		return nil, errors.NewValueError("dataset.FromCSV", "column indices must be non-negative")
	}

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1

	var data Dataset
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "dataset.FromCSV: read")
		}
		if first {
			first = false
			if opts.HasHeader {
				continue
			}
		}

		maxCol := xCol
		if yCol > maxCol {
			maxCol = yCol
		}
		if maxCol >= len(record) {
			if opts.SkipInvalid {
				continue
			}
			return nil, errors.Newf("dataset.FromCSV: record has %d fields, need column %d", len(record), maxCol)
		}

		x, errX := strconv.ParseFloat(record[xCol], 64)
		y, errY := strconv.ParseFloat(record[yCol], 64)
		if errX != nil || errY != nil {
			if opts.SkipInvalid {
				continue
			}
			if errX != nil {
				return nil, errors.Wrapf(errX, "dataset.FromCSV: parse x field %q", record[xCol])
			}
			return nil, errors.Wrapf(errY, "dataset.FromCSV: parse y field %q", record[yCol])
		}

		data = append(data, Sample{X: x, Y: y})
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}
