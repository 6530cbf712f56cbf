package models

// TermSheet is the result of converting one document.
type TermSheet struct {
	Fields  *Registry    `json:"fields"`
	Coupons []string     `json:"coupons,omitempty"`
	Debug   []DebugEntry `json:"debug,omitempty"`
}

// NewTermSheet returns a term sheet with an empty registry.
func NewTermSheet() *TermSheet {
	return &TermSheet{Fields: NewRegistry()}
}
