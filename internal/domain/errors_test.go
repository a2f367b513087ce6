package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{name: "input", err: &InputError{Kind: "zip"}, sentinel: ErrInputType, msg: "input type: zip is not valid"},
		{name: "read", err: &ReadError{Path: "/a.raml", Cause: cause}, sentinel: ErrRead, msg: "unable to read /a.raml: boom"},
		{name: "no root", err: &RootError{}, sentinel: ErrNoRoot, msg: "Imported folder does not contain Root of the RAML Specs."},
		{
			name:     "ambiguous root",
			err:      &RootError{Candidates: []string{"/a.raml", "/b.raml"}},
			sentinel: ErrAmbiguousRoot,
			msg:      "Imported folder contains multiple Root of the RAML Specs: /a.raml, /b.raml.",
		},
		{name: "local reference", err: &ReferenceError{Ref: "/x.json"}, sentinel: ErrUnresolvedReference, msg: "Unable to find file /x.json in uploaded data"},
		{name: "remote reference", err: &ReferenceError{Ref: "http://x/s.json", Remote: true}, sentinel: ErrUnresolvedReference, msg: "cannot fetch http://x/s.json"},
		{name: "parse", err: &ParseError{Path: "/a.raml", Message: "missing title"}, sentinel: ErrParse, msg: "/a.raml: missing title"},
		{name: "parse without message", err: &ParseError{Cause: cause}, sentinel: ErrParse, msg: "parse error: boom"},
		{
			name:     "schema",
			err:      &SchemaValidationError{Schema: "collection", Problems: []string{"name: required", "id: required"}},
			sentinel: ErrSchemaValidation,
			msg:      "generated collection failed schema validation: name: required; id: required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
			assert.EqualError(t, tt.err, tt.msg)
		})
	}

	assert.NotErrorIs(t, &RootError{}, ErrAmbiguousRoot)
	assert.ErrorIs(t, &ReadError{Path: "/a", Cause: cause}, cause)
}

func TestReason(t *testing.T) {
	assert.Empty(t, Reason(nil))
	assert.Equal(t, "External references are not supported yet. cannot fetch https://x/s.json",
		Reason(fmt.Errorf("load: %w", &ReferenceError{Ref: "https://x/s.json", Remote: true})))
	assert.Equal(t, "Unable to find file /x in uploaded data", Reason(&ReferenceError{Ref: "/x"}))
}

func TestResult(t *testing.T) {
	collection := &Collection{Name: "X"}
	env := &Environment{Name: "X's Environment"}

	ok := Success(collection, env)
	assert.True(t, ok.Result)
	assert.Same(t, collection, ok.Collection())
	assert.Same(t, env, ok.Environment())

	failed := Failure(&RootError{})
	assert.False(t, failed.Result)
	assert.Equal(t, "Imported folder does not contain Root of the RAML Specs.", failed.Reason)
	assert.ErrorIs(t, failed.Err, ErrNoRoot)
	assert.Nil(t, failed.Collection())
	assert.Nil(t, failed.Environment())
}

func TestParseInputKind(t *testing.T) {
	tests := []struct {
		in   string
		want InputKind
		ok   bool
	}{
		{in: "text", want: KindText, ok: true},
		{in: "String", want: KindText, ok: true},
		{in: "file", want: KindFile, ok: true},
		{in: " folder ", want: KindFileSet, ok: true},
		{in: "fileset", want: KindFileSet, ok: true},
		{in: "zip", want: InputKind("zip"), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInputKind(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
