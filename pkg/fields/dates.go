package fields

import (
	"strings"
	"time"
)

// compactLayout renders a date as DDMMYYYY.
const compactLayout = "02012006"

// Layouts tried in order when reading a date out of a term sheet.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2,2006",
	"2 January 2006",
	"2/1/2006",
	"2006-01-02",
	"2006-1-2",
}

// DateFields are the raw fields reformatted as DDMMYYYY.
var DateFields = []string{
	"Issue Opening Date",
	"Issue Closing Date",
	"Pay-in-Date",
	"Date of Allotment",
	"Deemed Date of Allotment",
	"Initial Fixing Date",
	"Final Fixing Date",
	"Redemption Date",
	"Coupon / Dividend payment dates",
}

// ParseDate reads s with the first layout that accepts it.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CompactDate reformats s as DDMMYYYY.
func CompactDate(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(compactLayout), true
}

// FormattedKey names the derived field holding the DDMMYYYY form of field.
func FormattedKey(field string) string {
	return strings.ToLower(strings.ReplaceAll(field, " ", "_")) + "_formatted"
}

// digitFields pairs each character of a DDMMYYYY string with a field name.
func digitFields(compact string, names [8]string) [][2]string {
	out := make([][2]string, 0, len(names))
	for i, name := range names {
		if i >= len(compact) {
			break
		}
		out = append(out, [2]string{name, compact[i : i+1]})
	}
	return out
}
