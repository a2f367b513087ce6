// Package options normalizes user-supplied conversion options against declared defaults.
package options

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Option is a declared conversion option. The set of implementations is closed:
// Boolean, Enum and Array.
type Option interface {
	// Key returns the option id.
	Key() string
	// Type returns the option kind name ("boolean", "enum" or "array").
	Type() string
	isOption()
}

// Boolean is an on/off option.
type Boolean struct {
	ID          string
	Name        string
	Description string
	Default     bool
}

// Enum is an option restricted to a list of values.
type Enum struct {
	ID               string
	Name             string
	Description      string
	Default          any
	AvailableOptions []any
}

// Array is a list-valued option.
type Array struct {
	ID          string
	Name        string
	Description string
	Default     []any
}

func (o Boolean) Key() string { return o.ID }
func (o Enum) Key() string    { return o.ID }
func (o Array) Key() string   { return o.ID }

func (Boolean) Type() string { return "boolean" }
func (Enum) Type() string    { return "enum" }
func (Array) Type() string   { return "array" }

func (Boolean) isOption() {}
func (Enum) isOption()    {}
func (Array) isOption()   {}

// Values is a normalized option map covering exactly the declared ids.
type Values map[string]any

// Normalize merges user options with the declared defaults.
// Values of the wrong kind fall back to the default; unknown user keys are ignored.
func Normalize(declared []Option, user map[string]any) Values {
	values := make(Values, len(declared))

	for _, opt := range declared {
		raw, present := user[opt.Key()]

		switch o := opt.(type) {
		case Boolean:
			values[o.ID] = normalizeBoolean(o, raw, present)
		case Enum:
			values[o.ID] = normalizeEnum(o, raw, present)
		case Array:
			values[o.ID] = normalizeArray(o, raw, present)
		}
	}

	return values
}

func normalizeBoolean(o Boolean, raw any, present bool) bool {
	if b, ok := raw.(bool); ok && present {
		return b
	}
	return o.Default
}

func normalizeEnum(o Enum, raw any, present bool) any {
	if !present {
		return lowerIfString(o.Default)
	}

	if s, ok := raw.(string); ok {
		for _, available := range o.AvailableOptions {
			if as, ok := available.(string); ok && strings.EqualFold(as, s) {
				return strings.ToLower(s)
			}
		}
		return lowerIfString(o.Default)
	}

	for _, available := range o.AvailableOptions {
		if equalValues(available, raw) {
			return raw
		}
	}

	return lowerIfString(o.Default)
}

func normalizeArray(o Array, raw any, present bool) []any {
	if !present || raw == nil {
		return defaultArray(o)
	}

	if s, ok := raw.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return defaultArray(o)
		}
		raw = parsed
	}

	list, ok := toList(raw)
	if !ok {
		return defaultArray(o)
	}

	return list
}

func defaultArray(o Array) []any {
	if o.Default == nil {
		return []any{}
	}
	return append([]any(nil), o.Default...)
}

// toList converts any Go slice or array into []any.
func toList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if list, ok := v.([]any); ok {
		return list, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}

	return list, true
}

func lowerIfString(v any) any {
	if s, ok := v.(string); ok {
		return strings.ToLower(s)
	}
	return v
}

func equalValues(a, b any) bool {
	defer func() { _ = recover() }() // uncomparable values never match
	return a == b
}

// Bool returns a boolean option value.
func (v Values) Bool(id string) bool {
	b, _ := v[id].(bool)
	return b
}

// String returns a string option value.
func (v Values) String(id string) string {
	s, _ := v[id].(string)
	return s
}

// Strings returns the string items of an array option value.
func (v Values) Strings(id string) []string {
	list, _ := v[id].([]any)

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
