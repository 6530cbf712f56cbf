package extract

import (
	"testing"

	"github.com/yurifrl/termsheet/pkg/models"
)

func TestNormalizeRow(t *testing.T) {
	raw := models.Row{"  Issue\nPrice\t ", "Rs.\t\t95,500/-   per  Debenture", "", " \n "}
	got := NormalizeRow(raw)
	want := models.Row{"Issue Price", "Rs. 95,500/- per Debenture", "", ""}

	if len(got) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name  string
		cells models.Row
		want  bool
	}{
		{"all empty", models.Row{"", ""}, true},
		{"no cells", models.Row{}, true},
		{"section header", models.Row{"Summary Terms of Issue", ""}, true},
		{"header in later cell", models.Row{"", "TERMS OF ISSUE - SERIES 129"}, true},
		{"data row", models.Row{"Issue Size", "75"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Skip(tt.cells); got != tt.want {
				t.Errorf("Skip(%q) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}
