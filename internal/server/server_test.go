package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
	"github.com/GabrielNunesIT/raml-converter/internal/importer"
	"github.com/GabrielNunesIT/raml-converter/internal/options"
	"github.com/GabrielNunesIT/raml-converter/internal/store"
)

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

const versionedRAML = "#%RAML 0.8\ntitle: X\nbaseUri: http://x/{version}\n/a:\n  get:\n"

func newServer(t *testing.T) *Server {
	t.Helper()

	imp, err := importer.New(importer.WithStore(store.New(afero.NewReadOnlyFs(afero.NewMemMapFs()))))
	require.NoError(t, err)

	return New(imp, nopLogger{})
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	return rec
}

// convertResponse mirrors domain.Result with decodable outputs.
type convertResponse struct {
	Result bool   `json:"result"`
	Reason string `json:"reason"`
	Output []struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	} `json:"output"`
}

func TestConvert(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodPost, "/convert", map[string]any{
		"type":    "string",
		"data":    versionedRAML,
		"options": map[string]any{"deterministicIds": true},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp convertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Result)
	require.Len(t, resp.Output, 2)
	assert.Equal(t, "collection", resp.Output[0].Type)
	assert.Equal(t, "environment", resp.Output[1].Type)

	var collection domain.Collection
	require.NoError(t, json.Unmarshal(resp.Output[0].Data, &collection))
	assert.Equal(t, "X", collection.Name)
	require.Len(t, collection.Requests, 1)
	assert.Equal(t, "http://x/:version/a", collection.Requests[0].URL)
	assert.Equal(t, "", collection.ID)
}

func TestConvert_FileSet(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodPost, "/convert", map[string]any{
		"type": "folder",
		"files": []map[string]any{
			{"path": "/api/root.raml", "content": "#%RAML 0.8\ntitle: Set\n/a:\n  get:\n    description: !include a.md\n"},
			{"path": "/api/a.md", "content": "About a"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/convert", map[string]any{
		"type":  "fileset",
		"files": []map[string]any{{"path": "/api/notes.md", "content": "nothing"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp convertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Result)
	assert.Equal(t, "Imported folder does not contain Root of the RAML Specs.", resp.Reason)
}

func TestConvert_Failure(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodPost, "/convert", map[string]any{"type": "text", "data": "title: nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp convertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Result)
	assert.NotEmpty(t, resp.Reason)
	assert.Empty(t, resp.Output)
}

func TestConvert_BadRequests(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "malformed JSON", body: "{", want: "invalid request body"},
		{name: "missing type", body: map[string]any{"data": versionedRAML}, want: "validation failed"},
		{name: "unknown type", body: map[string]any{"type": "zip", "data": versionedRAML}, want: "validation failed"},
		{name: "file paths are not served", body: map[string]any{"type": "file", "data": "/etc/passwd"}, want: "validation failed"},
		{name: "text without data", body: map[string]any{"type": "text"}, want: "validation failed"},
		{name: "fileset without files", body: map[string]any{"type": "fileset"}, want: "validation failed"},
		{
			name: "file without content",
			body: map[string]any{"type": "fileset", "files": []map[string]any{{"path": "/a.raml"}}},
			want: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/convert", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodPost, "/validate", map[string]any{"type": "text", "data": versionedRAML})
	require.Equal(t, http.StatusOK, rec.Code)

	var v domain.Validation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.True(t, v.Result)

	rec = do(t, s, http.MethodPost, "/validate", map[string]any{"type": "text", "data": "#%RAML 0.8\n"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.False(t, v.Result)
	assert.Equal(t, "RAML specification must have title property", v.Reason)
}

func TestOptionsAndHealth(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodGet, "/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []options.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 3)
	assert.Equal(t, "folderStrategy", infos[0].ID)

	rec = do(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)

	rec = do(t, s, http.MethodGet, "/convert", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetrics(t *testing.T) {
	s := newServer(t)

	do(t, s, http.MethodPost, "/convert", map[string]any{"type": "text", "data": versionedRAML})
	do(t, s, http.MethodPost, "/convert", map[string]any{"type": "text", "data": "nope"})

	rec := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `raml_converter_conversions_total{input_type="text",result="success"} 1`)
	assert.Contains(t, body, `raml_converter_conversions_total{input_type="text",result="failure"} 1`)
	assert.Contains(t, body, `raml_converter_conversion_duration_seconds_count{input_type="text"} 2`)
}

type panickingImporter struct{}

func (panickingImporter) Convert(context.Context, domain.Input, map[string]any) domain.Result {
	panic("boom")
}

func (panickingImporter) Validate(domain.Input) domain.Validation { return domain.Validation{} }

func (panickingImporter) Options() []options.Option { return nil }

func TestRecoverPanics(t *testing.T) {
	s := New(panickingImporter{}, nopLogger{})

	rec := do(t, s, http.MethodPost, "/convert", map[string]any{"type": "text", "data": versionedRAML})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
