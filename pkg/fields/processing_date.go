package fields

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/termsheet/pkg/models"
)

// ErrInvalidProcessingDate is returned when a processing date is not
// YYYY-MM-DD.
var ErrInvalidProcessingDate = errors.New("invalid processing date")

const (
	processingDateLayout = "2006-01-02"
	longDateLayout       = "02 January, 2006"
)

var processingDigits = [8]string{"D1", "D2", "M1", "M2", "Y1", "Y2", "Y3", "Y4"}

// ProcessingDateFields expands a YYYY-MM-DD date supplied by the caller into
// the calendar fields written beside the extracted terms.
func ProcessingDateFields(date string) ([]models.Field, error) {
	t, err := time.Parse(processingDateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidProcessingDate, date, err)
	}

	compact := t.Format(compactLayout)
	out := []models.Field{
		{Key: "processing_date", Value: date},
		{Key: "processing_date_formatted", Value: compact},
		{Key: "processing_date_string", Value: t.Format(longDateLayout)},
	}
	for _, d := range digitFields(compact, processingDigits) {
		out = append(out, models.Field{Key: d[0], Value: d[1]})
	}
	return out, nil
}

// InjectProcessingDate adds the processing date fields to reg. A malformed
// date is logged and leaves reg untouched.
func InjectProcessingDate(reg *models.Registry, date string, logger *log.Logger) bool {
	fields, err := ProcessingDateFields(date)
	if err != nil {
		logger.Warn("skipping processing date", "date", date, "err", err)
		return false
	}

	for _, f := range fields {
		reg.Set(f.Key, f.Value)
	}
	logger.Debug("added processing date", "date", date)
	return true
}
