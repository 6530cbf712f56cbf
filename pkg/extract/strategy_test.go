package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yurifrl/termsheet/pkg/models"
)

func TestAdjacentColumns(t *testing.T) {
	tests := []struct {
		name  string
		cells models.Row
		want  Result
	}{
		{
			name:  "two columns",
			cells: models.Row{"Issue Size", "75 Debentures"},
			want:  Result{Kind: KeyValue, Key: "Issue Size", Value: "75 Debentures", Method: "Strategy1_Col1→Col2"},
		},
		{
			name:  "three columns combine value",
			cells: models.Row{"Coupon", "if X>Y", "then Z%"},
			want:  Result{Kind: KeyValue, Key: "Coupon", Value: "if X>Y | then Z%", Method: "Strategy1_Col1→Col2"},
		},
		{
			name:  "merged value columns",
			cells: models.Row{"Face Value", "Rs. 1,00,000", "Rs. 1,00,000"},
			want:  Result{Kind: KeyValue, Key: "Face Value", Value: "Rs. 1,00,000", Method: "Strategy1_Col1→Col2"},
		},
		{
			name:  "third column empty",
			cells: models.Row{"Tenor In Days", "730", ""},
			want:  Result{Kind: KeyValue, Key: "Tenor In Days", Value: "730", Method: "Strategy1_Col1→Col2"},
		},
		{
			name:  "leading empty cell",
			cells: models.Row{"", "Product Code", "Series 129"},
			want:  Result{Kind: KeyValue, Key: "Product Code", Value: "Product Code | Series 129", Method: "Strategy1_Col2→Col3"},
		},
		{
			name:  "skip phrase",
			cells: models.Row{">> see annexure", "details"},
			want:  Result{},
		},
		{
			name:  "valid header overrides skip phrase",
			cells: models.Row{">> Issue Price", "Rs. 95,500"},
			want:  Result{Kind: KeyValue, Key: ">> Issue Price", Value: "Rs. 95,500", Method: "Strategy1_Col1→Col2"},
		},
		{
			name:  "single cell",
			cells: models.Row{"Issue Size"},
			want:  Result{},
		},
		{
			name:  "only last cell filled",
			cells: models.Row{"", "Listed on NSE"},
			want:  Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjacentColumns(tt.cells))
		})
	}
}

func TestSingleColumn(t *testing.T) {
	tests := []struct {
		name  string
		cells models.Row
		want  Result
	}{
		{
			name:  "meaningful cell",
			cells: models.Row{"Listed on NSE"},
			want:  Result{Kind: KeyValue, Key: "Listed on NSE", Value: "Listed on NSE", Method: "Single_Col1"},
		},
		{
			name:  "too short",
			cells: models.Row{"N/A"},
			want:  Result{},
		},
		{
			name:  "skip phrase",
			cells: models.Row{"*** Confidential ***"},
			want:  Result{},
		},
		{
			name:  "double chevron is not skipped here",
			cells: models.Row{">> Note"},
			want:  Result{Kind: KeyValue, Key: ">> Note", Value: ">> Note", Method: "Single_Col1"},
		},
		{
			name:  "valid header overrides skip phrase",
			cells: models.Row{"Terms and Conditions: Issue Price"},
			want: Result{
				Kind:   KeyValue,
				Key:    "Terms and Conditions: Issue Price",
				Value:  "Terms and Conditions: Issue Price",
				Method: "Single_Col1",
			},
		},
		{
			name:  "last qualifying cell wins",
			cells: models.Row{"", "***", "First note", "Second note"},
			want:  Result{Kind: KeyValue, Key: "Second note", Value: "Second note", Method: "Single_Col4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SingleColumn(tt.cells))
		})
	}
}

func TestCouponRow(t *testing.T) {
	tests := []struct {
		name  string
		cells models.Row
		want  Result
	}{
		{
			name:  "description and value",
			cells: models.Row{"Coupon", "if X>Y", "then Z%"},
			want:  Result{Kind: CouponEntry, Value: "if X>Y | then Z%", Method: CouponMethod},
		},
		{
			name:  "value only",
			cells: models.Row{" coupon ", "", "8.5% p.a."},
			want:  Result{Kind: CouponEntry, Value: "8.5% p.a.", Method: CouponMethod},
		},
		{
			name:  "description only",
			cells: models.Row{"COUPON", "Linked to Nifty", ""},
			want:  Result{Kind: CouponEntry, Value: "Linked to Nifty", Method: CouponMethod},
		},
		{
			name:  "nothing to store",
			cells: models.Row{"Coupon", "", ""},
			want:  Result{},
		},
		{
			name:  "different first cell",
			cells: models.Row{"Coupon Rate", "a", "b"},
			want:  Result{},
		},
		{
			name:  "too few columns",
			cells: models.Row{"Coupon", "8%"},
			want:  Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CouponRow(tt.cells))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "no_match", NoMatch.String())
	assert.Equal(t, "key_value", KeyValue.String())
	assert.Equal(t, "coupon", CouponEntry.String())
}
