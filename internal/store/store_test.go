package store

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

func TestStore_ReadAndExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/specs/api.raml", []byte("#%RAML 0.8\ntitle: A\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/specs/dir", 0o755))

	s := New(fs)

	assert.True(t, s.Exists("/specs/api.raml"))
	assert.False(t, s.Exists("/specs/dir"), "directories are not files")
	assert.False(t, s.Exists("/specs/missing.raml"))

	content, err := s.Read("/specs/api.raml")
	require.NoError(t, err)
	assert.Equal(t, "#%RAML 0.8\ntitle: A\n", content)
}

func TestStore_ReadMissing(t *testing.T) {
	s := New(afero.NewMemMapFs())

	_, err := s.Read("/nope.raml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRead))

	var readErr *domain.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "/nope.raml", readErr.Path)
}

func TestStore_CaseInsensitive(t *testing.T) {
	s := New(afero.NewMemMapFs())
	assert.False(t, s.CaseInsensitive())
	assert.True(t, s.WithCaseInsensitive(true).CaseInsensitive())
}
