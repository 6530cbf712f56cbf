// Package fields derives normalized fields (numbers, amounts, dates) from the
// raw values extracted out of a term sheet.
package fields

import (
	"github.com/charmbracelet/log"
	"github.com/yurifrl/termsheet/pkg/models"
)

// Raw fields the processors read.
const (
	ProductCode      = "Product Code"
	IssueSizeField   = "Issue Size"
	TenorInDays      = "Tenor In Days"
	FaceValueField   = "Face Value"
	Discount         = "Discount at which security is issued"
	IssuePrice       = "Issue Price"
	IssueOpeningDate = "Issue Opening Date"
)

// Derived fields the processors write.
const (
	SeriesNumberKey       = "series_number"
	IssueSizeNumKey       = "issue_size_num"
	TotalAmountKey        = "total_amount"
	TenorDaysNumKey       = "tenor_days_num"
	FaceValueNumKey       = "face_value_num"
	FaceValueFmtKey       = "formatted_face_value"
	DiscountNumKey        = "discount_value_num"
	DiscountFmtKey        = "formatted_discount_value"
	IssuePriceNumKey      = "issue_price_num"
	IssuePriceFmtKey      = "formatted_issue_price"
	AmountRaisedKey       = "amount_raised"
	legacyIssueSizeNumKey = "issue_size_number"
)

var openingDateDigits = [8]string{"d1", "d2", "m1", "m2", "y1", "y2", "y3", "y4"}

type step struct {
	trigger string
	run     func(p *Processor, reg *models.Registry, raw string)
}

// Per-field steps, run in this order when their trigger field is present.
var steps = []step{
	{ProductCode, (*Processor).productCode},
	{IssueSizeField, (*Processor).issueSize},
	{TenorInDays, (*Processor).tenorDays},
	{FaceValueField, (*Processor).faceValue},
	{Discount, (*Processor).discount},
	{IssuePrice, (*Processor).issuePrice},
	{IssueOpeningDate, (*Processor).issueOpeningDate},
}

// Processor appends derived fields to a registry.
type Processor struct {
	logger *log.Logger
}

// New creates a Processor.
func New(logger *log.Logger) *Processor {
	return &Processor{logger: logger}
}

// Process runs every derived-field step against reg. Values that cannot be
// parsed degrade to empty or raw strings and never fail the run.
func (p *Processor) Process(reg *models.Registry) {
	for _, s := range steps {
		raw, ok := reg.Get(s.trigger)
		if !ok {
			continue
		}
		s.run(p, reg, raw)
	}

	p.dates(reg)
	p.amountRaised(reg)
}

func (p *Processor) productCode(reg *models.Registry, raw string) {
	series := SeriesNumber(raw)
	reg.Set(SeriesNumberKey, series)
	p.logger.Debug("extracted series number", "value", series)
}

func (p *Processor) issueSize(reg *models.Registry, raw string) {
	size, total := IssueSize(raw)
	reg.Set(IssueSizeNumKey, size)
	reg.Set(TotalAmountKey, total)
	p.logger.Debug("extracted issue size", "size", size, "total", total)
}

func (p *Processor) tenorDays(reg *models.Registry, raw string) {
	days := TenorDays(raw)
	reg.Set(TenorDaysNumKey, days)
	p.logger.Debug("extracted tenor days", "value", days)
}

func (p *Processor) faceValue(reg *models.Registry, raw string) {
	num, formatted := FaceValue(raw)
	reg.Set(FaceValueNumKey, num)
	reg.Set(FaceValueFmtKey, formatted)
	p.logger.Debug("extracted face value", "value", num, "formatted", formatted)
}

func (p *Processor) discount(reg *models.Registry, raw string) {
	num, formatted := RupeeAmount(raw)
	reg.Set(DiscountNumKey, num)
	reg.Set(DiscountFmtKey, formatted)
	p.logger.Debug("extracted discount value", "value", num, "formatted", formatted)
}

func (p *Processor) issuePrice(reg *models.Registry, raw string) {
	num, formatted := RupeeAmount(raw)
	reg.Set(IssuePriceNumKey, num)
	reg.Set(IssuePriceFmtKey, formatted)
	p.logger.Debug("extracted issue price", "value", num, "formatted", formatted)
}

func (p *Processor) issueOpeningDate(reg *models.Registry, raw string) {
	compact, ok := CompactDate(raw)
	if !ok {
		p.logger.Debug("could not parse issue opening date", "value", raw)
		return
	}
	for _, d := range digitFields(compact, openingDateDigits) {
		reg.Set(d[0], d[1])
	}
	reg.Set(FormattedKey(IssueOpeningDate), compact)
}

func (p *Processor) dates(reg *models.Registry) {
	for _, field := range DateFields {
		raw := reg.Value(field)
		if raw == "" {
			continue
		}
		compact, ok := CompactDate(raw)
		if !ok {
			p.logger.Debug("could not parse date field", "field", field, "value", raw)
			continue
		}
		reg.Set(FormattedKey(field), compact)
		p.logger.Debug("processed date field", "field", field, "value", raw, "formatted", compact)
	}
}

func (p *Processor) amountRaised(reg *models.Registry) {
	size, ok := reg.Get(IssueSizeNumKey)
	if !ok {
		size, ok = reg.Get(legacyIssueSizeNumKey)
	}
	face, hasFace := reg.Get(FaceValueNumKey)
	if !ok || !hasFace {
		return
	}

	amount := AmountRaised(size, face)
	reg.Set(AmountRaisedKey, amount)
	p.logger.Debug("computed amount raised", "value", amount)
}
