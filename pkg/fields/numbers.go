package fields

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	numberPattern  = regexp.MustCompile(`\d+\.?\d*`)
	integerPattern = regexp.MustCompile(`\d+`)
	rupeePattern   = regexp.MustCompile(`(?:Rs\.?\s*)?(\d+(?:,\d+)*(?:\.\d+)?)`)

	crore = decimal.New(1, 7)
)

// zeroCrores is reported when the amount raised cannot be computed.
const zeroCrores = "Rs 0 crores"

// SeriesNumber derives the series label from a product code such as
// "NCD 129" or "NCD Series-129".
func SeriesNumber(productCode string) string {
	parts := strings.Fields(productCode)
	if len(parts) == 0 {
		return ""
	}

	last := parts[len(parts)-1]
	if strings.Contains(strings.ToLower(last), "series") {
		return last
	}
	if isDigits(last) {
		return "Series " + last
	}
	return ""
}

// IssueSize returns the first number of an issue size description and, when
// the text carries at least four numbers, the fourth one Indian-grouped as
// the total amount.
func IssueSize(text string) (size, total string) {
	numbers := numberPattern.FindAllString(strings.ReplaceAll(text, ",", ""), -1)
	if len(numbers) == 0 {
		return "", ""
	}

	size = numbers[0]
	if len(numbers) >= 4 {
		if digits, ok := truncate(numbers[3]); ok {
			total = groupIndian(digits)
		}
	}
	return size, total
}

// TenorDays returns the first integer found in text.
func TenorDays(text string) string {
	return integerPattern.FindString(text)
}

// FaceValue returns the first number of text truncated to an integer, both
// plain and Indian-grouped. If the number cannot be coerced the raw match is
// returned for both.
func FaceValue(text string) (num, formatted string) {
	match := numberPattern.FindString(strings.ReplaceAll(text, ",", ""))
	if match == "" {
		return "", ""
	}

	digits, ok := truncate(match)
	if !ok {
		return match, match
	}
	return digits, groupIndian(digits)
}

// RupeeAmount extracts the first rupee amount of text such as
// "Rs. 95,500/- per Debenture". num keeps any decimals; formatted is the
// integer part Indian-grouped.
func RupeeAmount(text string) (num, formatted string) {
	m := rupeePattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}

	num = strings.ReplaceAll(m[1], ",", "")
	digits, ok := truncate(num)
	if !ok {
		return num, num
	}
	return num, groupIndian(digits)
}

// AmountRaised multiplies issue size by face value and reports the result in
// crores, e.g. "Rs 7.50 crores".
func AmountRaised(issueSize, faceValue string) string {
	size, err := decimal.NewFromString(strings.TrimSpace(issueSize))
	if err != nil {
		return zeroCrores
	}
	face, err := decimal.NewFromString(strings.TrimSpace(faceValue))
	if err != nil {
		return zeroCrores
	}

	amount, _ := size.Mul(face).Div(crore).Float64()
	return message.NewPrinter(language.English).Sprintf("Rs %.2f crores", amount)
}

// truncate drops the fractional part of a decimal string and returns the
// remaining integer digits.
func truncate(s string) (string, bool) {
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return "", false
	}
	return d.Truncate(0).String(), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
