package fields

import (
	"strconv"
	"strings"
)

// FormatIndian groups the digits of n the Indian way: the last three digits
// stay together and the rest are split in pairs, so 7162500 is "71,62,500".
func FormatIndian(n int64) string {
	if n < 0 {
		return "-" + groupIndian(strconv.FormatUint(uint64(-n), 10))
	}
	return groupIndian(strconv.FormatInt(n, 10))
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	groups = append(groups, head)

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		b.WriteByte(',')
	}
	b.WriteString(tail)
	return b.String()
}
