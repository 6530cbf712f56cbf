package fields

import "testing"

func TestFormatIndian(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{999, "999"},
		{1000, "1,000"},
		{45000, "45,000"},
		{100000, "1,00,000"},
		{7162500, "71,62,500"},
		{10000000, "1,00,00,000"},
		{123456789, "12,34,56,789"},
		{-100000, "-1,00,000"},
	}

	for _, tt := range tests {
		if got := FormatIndian(tt.in); got != tt.want {
			t.Errorf("FormatIndian(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
