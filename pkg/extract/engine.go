// Package extract turns the rows of term-sheet tables into a flat field
// registry using an ordered chain of row heuristics.
package extract

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/termsheet/pkg/models"
)

const (
	couponDataKey   = "coupon_data"
	couponKey       = "Coupon"
	secondCouponKey = "Coupon_1"
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithDebug enables the debug trace.
func WithDebug(enabled bool) Option {
	return func(e *Extractor) {
		e.debug = enabled
	}
}

// WithStrategies replaces the default strategy chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// Extractor applies the strategy chain to every row of a document. It keeps
// no per-document state, so one value can serve concurrent conversions.
type Extractor struct {
	logger     *log.Logger
	debug      bool
	strategies []Strategy
}

// New creates an Extractor using DefaultStrategies.
func New(logger *log.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		logger:     logger,
		strategies: DefaultStrategies,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract folds every row of tables into a fresh term sheet.
func (e *Extractor) Extract(tables []models.Table) *models.TermSheet {
	sheet := models.NewTermSheet()

	for ti, table := range tables {
		e.logger.Debug("processing table", "table", ti+1, "rows", len(table.Rows))

		for ri, raw := range table.Rows {
			cells := NormalizeRow(raw)
			e.logger.Debug("row", "row", ri+1, "columns", len(cells), "non_empty", countNonEmpty(cells))

			if Skip(cells) {
				continue
			}

			e.apply(sheet, ti, ri, cells, e.match(cells))
		}
	}

	return sheet
}

func (e *Extractor) match(cells models.Row) Result {
	for _, s := range e.strategies {
		if res := s(cells); res.Matched() {
			return res
		}
	}
	return Result{}
}

func (e *Extractor) apply(sheet *models.TermSheet, ti, ri int, cells models.Row, res Result) {
	switch res.Kind {
	case KeyValue:
		key := strings.TrimSpace(res.Key)
		if key == "" {
			return
		}
		value := strings.TrimSpace(res.Value)
		if value == "" {
			value = models.PresentValue
		}
		key = sheet.Fields.Add(key, value)
		e.logger.Debug("field extracted", "method", res.Method, "key", key, "value", preview(value))
		e.trace(sheet, ti, ri, res.Method, key, value, cells)

	case CouponEntry:
		sheet.Coupons = append(sheet.Coupons, res.Value)
		sheet.Fields.Set(couponDataKey, strings.Join(sheet.Coupons, "\n"))

		key := couponKey
		if sheet.Fields.Has(couponKey) {
			key = secondCouponKey
		}
		sheet.Fields.Set(key, res.Value)
		e.logger.Debug("coupon extracted", "key", key, "value", preview(res.Value))
		e.trace(sheet, ti, ri, res.Method, key, res.Value, cells)
	}
}

func (e *Extractor) trace(sheet *models.TermSheet, ti, ri int, method, key, value string, cells models.Row) {
	if !e.debug {
		return
	}
	sheet.Debug = append(sheet.Debug, models.NewDebugEntry(ti, ri, method, key, value, cells))
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= 50 {
		return s
	}
	return string(runes[:50]) + "..."
}
