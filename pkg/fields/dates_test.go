package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"April 9, 2025", "09042025", true},
		{"April 9,2025", "09042025", true},
		{"9 April 2025", "09042025", true},
		{"09/04/2025", "09042025", true},
		{"9/4/2025", "09042025", true},
		{"2025-04-09", "09042025", true},
		{"2025-4-9", "09042025", true},
		{"APRIL 19, 2025", "19042025", true},
		{"sometime next year", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CompactDate(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormattedKey(t *testing.T) {
	assert.Equal(t, "issue_opening_date_formatted", FormattedKey("Issue Opening Date"))
	assert.Equal(t, "pay-in-date_formatted", FormattedKey("Pay-in-Date"))
	assert.Equal(t, "coupon_/_dividend_payment_dates_formatted", FormattedKey("Coupon / Dividend payment dates"))
}
