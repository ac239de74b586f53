package export

import "errors"

// ErrNoHeaders is returned by every exporter for a dataset without columns.
var ErrNoHeaders = errors.New("dataset requires at least one header")

// Dataset defines tabular export content. Caption is a one-line subtitle used by document formats.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	Caption string
}

func (d Dataset) validate() error {
	if len(d.Headers) == 0 {
		return ErrNoHeaders
	}
	return nil
}

// record lays row out in header order; missing columns become empty cells.
func (d Dataset) record(row map[string]string) []string {
	out := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		out[i] = row[header]
	}
	return out
}
