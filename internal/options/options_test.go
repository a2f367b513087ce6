package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var declared = []Option{
	Boolean{ID: "deterministicIds", Default: false},
	Enum{ID: "folderStrategy", Default: "Paths", AvailableOptions: []any{"Paths", "Flat"}},
	Enum{ID: "indentSize", Default: 2, AvailableOptions: []any{2, 4}},
	Array{ID: "skipMethods", Default: []any{}},
}

func TestNormalize_Defaults(t *testing.T) {
	values := Normalize(declared, nil)

	require.Len(t, values, 4)
	assert.Equal(t, false, values["deterministicIds"])
	assert.Equal(t, "paths", values["folderStrategy"], "enum string defaults are lower-cased")
	assert.Equal(t, 2, values["indentSize"])
	assert.Equal(t, []any{}, values["skipMethods"])
}

func TestNormalize_Boolean(t *testing.T) {
	tests := []struct {
		name string
		user any
		want bool
	}{
		{name: "bool accepted", user: true, want: true},
		{name: "string rejected", user: "true", want: false},
		{name: "number rejected", user: 1, want: false},
		{name: "nil rejected", user: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Normalize(declared, map[string]any{"deterministicIds": tt.user})
			assert.Equal(t, tt.want, values["deterministicIds"])
		})
	}
}

func TestNormalize_Enum(t *testing.T) {
	tests := []struct {
		name string
		id   string
		user any
		want any
	}{
		{name: "case-insensitive match", id: "folderStrategy", user: "FLAT", want: "flat"},
		{name: "exact match lower-cased", id: "folderStrategy", user: "Paths", want: "paths"},
		{name: "unknown string falls back", id: "folderStrategy", user: "Tags", want: "paths"},
		{name: "non-string against strings falls back", id: "folderStrategy", user: 3, want: "paths"},
		{name: "non-string exact match", id: "indentSize", user: 4, want: 4},
		{name: "non-string mismatch falls back", id: "indentSize", user: 8, want: 2},
		{name: "uncomparable value falls back", id: "indentSize", user: []any{4}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Normalize(declared, map[string]any{tt.id: tt.user})
			assert.Equal(t, tt.want, values[tt.id])
		})
	}
}

func TestNormalize_Array(t *testing.T) {
	tests := []struct {
		name string
		user any
		want []any
	}{
		{name: "slice of any", user: []any{"get"}, want: []any{"get"}},
		{name: "typed slice", user: []string{"get", "post"}, want: []any{"get", "post"}},
		{name: "json text", user: `["delete"]`, want: []any{"delete"}},
		{name: "invalid json text", user: `["delete"`, want: []any{}},
		{name: "json text that is not a list", user: `{"a":1}`, want: []any{}},
		{name: "scalar", user: 42, want: []any{}},
		{name: "nil", user: nil, want: []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Normalize(declared, map[string]any{"skipMethods": tt.user})
			assert.Equal(t, tt.want, values["skipMethods"])
		})
	}
}

func TestNormalize_IgnoresUnknownKeys(t *testing.T) {
	values := Normalize(declared, map[string]any{"unknown": true})

	_, ok := values["unknown"]
	assert.False(t, ok)
	assert.Len(t, values, len(declared))
}

func TestValues_Accessors(t *testing.T) {
	values := Normalize(declared, map[string]any{
		"deterministicIds": true,
		"folderStrategy":   "flat",
		"skipMethods":      []any{"get", 3, "post"},
	})

	assert.True(t, values.Bool("deterministicIds"))
	assert.Equal(t, "flat", values.String("folderStrategy"))
	assert.Equal(t, []string{"get", "post"}, values.Strings("skipMethods"))
	assert.False(t, values.Bool("missing"))
	assert.Empty(t, values.Strings("missing"))
}

func TestDescribe(t *testing.T) {
	infos := Describe(declared)

	require.Len(t, infos, 4)
	assert.Equal(t, "boolean", infos[0].Type)
	assert.Equal(t, "enum", infos[1].Type)
	assert.Equal(t, []any{"Paths", "Flat"}, infos[1].AvailableOptions)
	assert.Equal(t, "array", infos[3].Type)
}
