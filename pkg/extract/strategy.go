package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yurifrl/termsheet/pkg/models"
)

// Kind tags the outcome of a strategy.
type Kind int

const (
	NoMatch Kind = iota
	KeyValue
	CouponEntry
)

func (k Kind) String() string {
	switch k {
	case KeyValue:
		return "key_value"
	case CouponEntry:
		return "coupon"
	default:
		return "no_match"
	}
}

// CouponMethod tags rows handled by the coupon special case.
const CouponMethod = "Coupon_Special"

// Result is what a strategy produced for one row. Strategies never touch the
// registry; the Extractor applies results.
type Result struct {
	Kind   Kind
	Key    string
	Value  string
	Method string
}

// Matched reports whether the result should stop the chain.
func (r Result) Matched() bool {
	return r.Kind != NoMatch
}

// Strategy turns a normalized row into a Result.
type Strategy func(cells models.Row) Result

// DefaultStrategies is the chain applied to every row, in order.
var DefaultStrategies = []Strategy{AdjacentColumns, SingleColumn, CouponRow}

var (
	adjacentSkipPhrases = []string{"terms of issue", "terms and conditions", ">>", "***", "*****"}
	adjacentHeaders     = []string{
		"issue price",
		"issue opening date",
		"issue closing date",
		"discount at which security is issued",
		"coupon",
	}

	singleSkipPhrases = []string{"terms of issue", "terms and conditions", "***", ">>>"}
	singleHeaders     = []string{
		"issue price",
		"issue opening date",
		"issue closing date",
		"discount at which security is issued",
	}
)

// minSingleLen is the length a lone cell has to exceed to become a field.
const minSingleLen = 3

// AdjacentColumns reads the first acceptable non-empty cell as the key and
// the column after it as the value. Rows with three or more columns take
// their value from columns two and three when both are filled.
func AdjacentColumns(cells models.Row) Result {
	n := len(cells)
	if n < 2 {
		return Result{}
	}

	for i := 0; i < n-1; i++ {
		key := strings.TrimSpace(cells[i])
		if key == "" {
			continue
		}
		lower := strings.ToLower(cells[i])
		if containsAny(lower, adjacentSkipPhrases) && !containsAny(lower, adjacentHeaders) {
			continue
		}

		value := strings.TrimSpace(cells[i+1])
		c1, c2 := strings.TrimSpace(cells[1]), ""
		if n > 2 {
			c2 = strings.TrimSpace(cells[2])
		}
		if n > 2 && c1 != "" && c2 != "" {
			value = c1
			if c1 != c2 {
				value = c1 + " | " + c2
			}
		}

		return Result{
			Kind:   KeyValue,
			Key:    key,
			Value:  value,
			Method: fmt.Sprintf("Strategy1_Col%d→Col%d", i+1, i+2),
		}
	}
	return Result{}
}

// SingleColumn uses a meaningful cell as both key and value. Every cell is
// inspected and the last qualifying one wins.
func SingleColumn(cells models.Row) Result {
	var res Result
	for i, c := range cells {
		cell := strings.TrimSpace(c)
		lower := strings.ToLower(cell)

		qualifies := (cell != "" && !containsAny(lower, singleSkipPhrases)) ||
			containsAny(lower, singleHeaders)
		if !qualifies || utf8.RuneCountInString(cell) <= minSingleLen {
			continue
		}

		res = Result{
			Kind:   KeyValue,
			Key:    cell,
			Value:  cell,
			Method: fmt.Sprintf("Single_Col%d", i+1),
		}
	}
	return res
}

// CouponRow handles rows whose first cell is exactly "coupon". The
// description and value columns are combined into one coupon entry.
func CouponRow(cells models.Row) Result {
	if len(cells) < 3 {
		return Result{}
	}
	if strings.ToLower(strings.TrimSpace(cells[0])) != "coupon" {
		return Result{}
	}

	combined := combine(strings.TrimSpace(cells[1]), strings.TrimSpace(cells[2]))
	if combined == "" {
		return Result{}
	}
	return Result{Kind: CouponEntry, Value: combined, Method: CouponMethod}
}

func combine(description, value string) string {
	switch {
	case description != "" && value != "":
		return description + " | " + value
	case description != "":
		return description
	default:
		return value
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
