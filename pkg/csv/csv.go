package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/yurifrl/termsheet/pkg/models"
)

type FilterFunc func(models.Field) bool

// Create renders the fields kept by filter as a header row of keys followed
// by one row of values. A nil filter keeps every field.
func Create(reg *models.Registry, filter FilterFunc) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, reg, filter); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the same two rows as Create to out.
func Write(out io.Writer, reg *models.Registry, filter FilterFunc) error {
	var keys, values []string
	for _, f := range reg.Fields() {
		if filter == nil || filter(f) {
			keys = append(keys, f.Key)
			values = append(values, f.Value)
		}
	}

	w := csv.NewWriter(out)
	if err := w.Write(keys); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	if err := w.Write(values); err != nil {
		return fmt.Errorf("error writing values: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error flushing csv: %w", err)
	}
	return nil
}
