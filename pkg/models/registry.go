package models

import (
	"encoding/json"
	"fmt"
)

// PresentValue is stored when a row names a field but carries no value.
const PresentValue = "Present"

// Field is one key/value pair of a Registry.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Registry is an insertion-ordered string map holding one document's
// extracted term sheet.
type Registry struct {
	keys   []string
	values map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]string)}
}

// NextFreeKey returns candidate if it is unused, otherwise the first of
// candidate_1, candidate_2, ... for which exists reports false.
func NextFreeKey(exists func(string) bool, candidate string) string {
	if !exists(candidate) {
		return candidate
	}
	for n := 1; ; n++ {
		key := fmt.Sprintf("%s_%d", candidate, n)
		if !exists(key) {
			return key
		}
	}
}

// Add stores value under key, renaming the key with a numeric suffix when it
// is already taken. The key actually used is returned.
func (r *Registry) Add(key, value string) string {
	if value == "" {
		value = PresentValue
	}
	final := NextFreeKey(r.Has, key)
	r.keys = append(r.keys, final)
	r.values[final] = value
	return final
}

// Set stores value under key. An existing key keeps its position.
func (r *Registry) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Registry) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value stored under key or the empty string.
func (r *Registry) Value(key string) string {
	return r.values[key]
}

// Has reports whether key is present.
func (r *Registry) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Fields returns the key/value pairs in insertion order.
func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.keys))
	for i, k := range r.keys {
		out[i] = Field{Key: k, Value: r.values[k]}
	}
	return out
}

// MarshalJSON encodes the registry as an ordered list of fields.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}
