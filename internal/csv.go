package internal

import (
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"
)

type CSVRecord[T any] struct {
	Value T
	Error error
}

// ParseCSV streams records from reader, applying parse to each row. When
// hasHeader is set, the first row is consumed and passed to parse as the
// headers argument. The channel closes after the last row or on the
// first read error.
func ParseCSV[T any](reader io.Reader, hasHeader bool, parse func(record, headers []string) (T, error)) <-chan CSVRecord[T] {
	ch := make(chan CSVRecord[T])

	go func() {
		defer close(ch)

		r := csv.NewReader(reader)
		r.TrimLeadingSpace = true

		var headers []string
		if hasHeader {
			row, err := r.Read()
			if err != nil {
				var zero T
				ch <- CSVRecord[T]{Value: zero, Error: errors.Wrap(err, "failed to read CSV header")}
				return
			}
			headers = row
		}

		for {
			row, err := r.Read()
			if err == io.EOF {
				return
			}
			var rec CSVRecord[T]
			if err != nil {
				rec.Error = errors.Wrap(err, "failed to read CSV record")
				ch <- rec
				return
			}
			rec.Value, rec.Error = parse(row, headers)
			ch <- rec
		}
	}()

	return ch
}
