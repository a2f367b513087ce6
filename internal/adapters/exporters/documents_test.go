package exporters

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

func libraryCollection() *domain.Collection {
	return &domain.Collection{
		ID:    "c1",
		Name:  "Library API",
		Order: []string{"r3"},
		Folders: []domain.Folder{
			{ID: "f1", Name: "/books", Order: []string{"r1", "r2"}},
		},
		Requests: []domain.Request{
			{
				ID:          "r1",
				Method:      "get",
				Name:        "/books",
				URL:         "http://library.example.com/:version/books?limit=",
				Headers:     "Accept: application/json\n",
				DataMode:    domain.DataModeParams,
				Data:        []map[string]string{},
				Description: "List <b>all</b> books &amp; magazines\n\n",
			},
			{
				ID:          "r2",
				Method:      "post",
				Name:        "/books",
				URL:         "http://library.example.com/:version/books",
				Headers:     "Content-Type: application/json\n",
				DataMode:    domain.DataModeRaw,
				Data:        []map[string]string{},
				RawModeData: "{\n  \"title\": \"Dune\"\n}",
			},
			{
				ID:       "r3",
				Method:   "put",
				Name:     "/covers",
				URL:      "http://library.example.com/:version/covers",
				DataMode: domain.DataModeParams,
				Data:     []map[string]string{{"file": ""}, {"caption": ""}},
			},
		},
	}
}

func libraryEnvironment() *domain.Environment {
	return &domain.Environment{
		Name: "Library API's Environment",
		Values: []domain.EnvVar{
			{Key: "version", Value: "", Type: "string", Name: "version", Enabled: true},
		},
	}
}

func requestNames(requests []domain.Request) []string {
	names := make([]string, 0, len(requests))
	for _, r := range requests {
		names = append(names, r.Method+" "+r.Name)
	}
	return names
}

func TestReference_Collection(t *testing.T) {
	ref, err := newReference(domain.Output{Type: domain.OutputCollection, Data: libraryCollection()})
	require.NoError(t, err)

	assert.Equal(t, "Library API", ref.title)
	require.Len(t, ref.sections, 2)
	assert.Equal(t, "/books", ref.sections[0].title)
	assert.Equal(t, []string{"get /books", "post /books"}, requestNames(ref.sections[0].requests))
	assert.Equal(t, "Requests", ref.sections[1].title)
	assert.Equal(t, []string{"put /covers"}, requestNames(ref.sections[1].requests))
	assert.Empty(t, ref.variables)
}

func TestReference_DeterministicIDs(t *testing.T) {
	c := libraryCollection()
	for i := range c.Requests {
		c.Requests[i].ID = ""
	}

	ref, err := newReference(domain.Output{Type: domain.OutputCollection, Data: c})
	require.NoError(t, err)

	require.Len(t, ref.sections, 1)
	assert.Equal(t, []string{"get /books", "post /books", "put /covers"}, requestNames(ref.sections[0].requests))
}

func TestReference_Environment(t *testing.T) {
	ref, err := newReference(domain.Output{Type: domain.OutputEnvironment, Data: libraryEnvironment()})
	require.NoError(t, err)

	assert.Equal(t, "Library API's Environment", ref.title)
	assert.Equal(t, "Environment", ref.subtitle)
	assert.Empty(t, ref.sections)
	require.Len(t, ref.variables, 1)

	_, err = newReference(domain.Output{Type: "report", Data: "text"})
	assert.EqualError(t, err, "cannot render report output of type string")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "DELETE", formatMethod("delete"))
	assert.Equal(t, []string{"Accept: application/json", "X-Id: 7"}, formatHeaders("Accept: application/json\n\nX-Id: 7\n"))
	assert.Empty(t, formatHeaders(""))
	assert.Equal(t, []string{"file", "caption", "a: 1", "b"}, formatParameters([]map[string]string{{"file": ""}, {"caption": ""}, {"b": "", "a": "1"}}))

	name, value := splitHeader("Accept: application/json")
	assert.Equal(t, "Accept", name)
	assert.Equal(t, "application/json", value)

	assert.Equal(t, "List all books & magazines", plainText("List <b>all</b> books &amp; magazines\n\n"))
	assert.Equal(t, "a\nb", plainText("a\n\nb"))
}

func TestPDFExporter(t *testing.T) {
	exp := NewPDFExporter()

	for _, out := range []domain.Output{
		{Type: domain.OutputCollection, Data: libraryCollection()},
		{Type: domain.OutputEnvironment, Data: libraryEnvironment()},
		{Type: domain.OutputCollection, Data: &domain.Collection{Name: "Empty Ünïcode API"}},
	} {
		var buf bytes.Buffer
		require.NoError(t, exp.Export(out, &buf))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		assert.Contains(t, buf.String(), "%%EOF")
	}

	err := exp.Export(domain.Output{Type: "report", Data: 1}, io.Discard)
	assert.Error(t, err)
}

func TestDocxExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDocxExporter().Export(domain.Output{Type: domain.OutputCollection, Data: libraryCollection()}, &buf))

	body := docxBody(t, buf.Bytes())
	assert.Contains(t, body, "Library API")
	assert.Contains(t, body, "GET /books")
	assert.Contains(t, body, "http://library.example.com/:version/covers")
	assert.Contains(t, body, "Form Data (params)")
	assert.Contains(t, body, "List all books")

	buf.Reset()
	require.NoError(t, NewDocxExporter().Export(domain.Output{Type: domain.OutputEnvironment, Data: libraryEnvironment()}, &buf))
	assert.Contains(t, docxBody(t, buf.Bytes()), "• version (string)")
}

func docxBody(t *testing.T, data []byte) string {
	t.Helper()

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}

		r, err := f.Open()
		require.NoError(t, err)
		defer r.Close()

		body, err := io.ReadAll(r)
		require.NoError(t, err)

		return string(body)
	}

	require.FailNow(t, "word/document.xml not found")
	return ""
}

func TestADFExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewADFExporter().Export(domain.Output{Type: domain.OutputCollection, Data: libraryCollection()}, &buf))

	var doc adfDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, "doc", doc.Type)

	var headings []string
	var codeBlocks []string
	for _, node := range doc.Content {
		switch node.Type {
		case "heading":
			headings = append(headings, node.Content[0].Text)
		case "codeBlock":
			codeBlocks = append(codeBlocks, node.Content[0].Text)
		}
	}

	assert.Equal(t, []string{
		"Library API",
		"/books",
		"GET /books", "Headers",
		"POST /books", "Headers", "Body",
		"Requests",
		"PUT /covers", "Form Data (params)",
	}, headings)
	assert.Equal(t, []string{"{\n  \"title\": \"Dune\"\n}"}, codeBlocks)

	buf.Reset()
	require.NoError(t, NewADFExporter().Export(domain.Output{Type: domain.OutputEnvironment, Data: libraryEnvironment()}, &buf))
	assert.Contains(t, buf.String(), `"text": "version"`)
	assert.Contains(t, buf.String(), `"text": " (string): version"`)
}
