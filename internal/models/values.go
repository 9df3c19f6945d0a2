package models

import "encoding/json"

// List is a free-form sequence taken verbatim from an input document.
type List []any

// MarshalJSON renders a nil List as an empty array.
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]any(l))
}

// Clone returns a deep copy, never nil.
func (l List) Clone() List {
	out := make(List, len(l))
	for i, v := range l {
		out[i] = cloneValue(v)
	}
	return out
}

// Object is a free-form mapping taken verbatim from an input document.
type Object map[string]any

// MarshalJSON renders a nil Object as an empty object.
func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(o))
}

// Clone returns a deep copy, never nil.
func (o Object) Clone() Object {
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Object(t).Clone())
	case []any:
		return []any(List(t).Clone())
	case Object:
		return t.Clone()
	case List:
		return t.Clone()
	default:
		return v
	}
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// CloneString copies the pointed-to value; nil stays nil.
func CloneString(s *string) *string {
	if s == nil {
		return nil
	}
	return StringPtr(*s)
}

// OptionalString returns *s, or an untyped nil when s is nil.
func OptionalString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// EqualString compares two optional strings. An empty string and an absent one differ.
func EqualString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// nullable encodes s as a JSON string, or null when s is nil.
func nullable(s *string) json.RawMessage {
	if s == nil {
		return json.RawMessage("null")
	}
	data, _ := json.Marshal(*s)
	return data
}
