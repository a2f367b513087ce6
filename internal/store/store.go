// Package store provides the backing file store used to read RAML files.
package store

import (
	"runtime"

	"github.com/spf13/afero"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

// FileStore reads files by path.
type FileStore interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
	// Read returns the content of the file at path.
	Read(path string) (string, error)
	// CaseInsensitive reports whether paths compare case-insensitively.
	CaseInsensitive() bool
}

// Store is a FileStore backed by an afero filesystem.
type Store struct {
	fs              afero.Fs
	caseInsensitive bool
}

// New creates a store over the given filesystem.
func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOSStore creates a store over the operating system filesystem.
func NewOSStore() *Store {
	return &Store{
		fs:              afero.NewOsFs(),
		caseInsensitive: runtime.GOOS == "windows",
	}
}

// WithCaseInsensitive sets whether paths compare case-insensitively.
func (s *Store) WithCaseInsensitive(v bool) *Store {
	s.caseInsensitive = v
	return s
}

// Exists reports whether a regular file exists at path.
func (s *Store) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Read returns the content of the file at path.
func (s *Store) Read(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", &domain.ReadError{Path: path, Cause: err}
	}
	return string(data), nil
}

// CaseInsensitive reports whether paths compare case-insensitively.
func (s *Store) CaseInsensitive() bool {
	return s.caseInsensitive
}

// Fs returns the underlying filesystem.
func (s *Store) Fs() afero.Fs {
	return s.fs
}
