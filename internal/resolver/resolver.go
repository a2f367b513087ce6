// Package resolver supplies the content of files referenced from a root RAML document.
package resolver

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
	"github.com/GabrielNunesIT/raml-converter/internal/store"
)

// Resolver resolves references either against an in-memory file set or
// against the backing store. It is safe for concurrent use.
type Resolver struct {
	store           store.FileStore
	rootDir         string
	files           map[string]domain.File
	caseInsensitive bool
	group           singleflight.Group
}

// NewDisk creates a resolver reading referenced files from the store,
// relative to rootDir when the reference is not found as given.
func NewDisk(fs store.FileStore, rootDir string) *Resolver {
	return &Resolver{
		store:           fs,
		rootDir:         rootDir,
		caseInsensitive: fs != nil && fs.CaseInsensitive(),
	}
}

// NewFileSet creates a resolver restricted to the given files. Files carrying
// content are served from memory; the others are read from the store.
func NewFileSet(fs store.FileStore, rootDir string, files []domain.File) *Resolver {
	r := NewDisk(fs, rootDir)
	r.files = make(map[string]domain.File, len(files))

	for _, f := range files {
		r.files[r.key(f.Path)] = f
	}

	return r
}

// WithCaseInsensitive overrides the path comparison rules of the store.
func (r *Resolver) WithCaseInsensitive(v bool) *Resolver {
	r.caseInsensitive = v
	if r.files != nil {
		files := make(map[string]domain.File, len(r.files))
		for _, f := range r.files {
			files[r.key(f.Path)] = f
		}
		r.files = files
	}
	return r
}

// RootDir returns the directory relative references are resolved against.
func (r *Resolver) RootDir() string {
	return r.rootDir
}

// Resolve returns the content of the referenced file. ref is URL-encoded and
// either absolute or relative to the root directory.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	decoded, err := url.PathUnescape(ref)
	if err != nil {
		decoded = ref
	}

	if IsRemote(decoded) {
		return "", &domain.ReferenceError{Ref: decoded, Remote: true}
	}

	v, err, _ := r.group.Do(r.key(decoded), func() (any, error) {
		return r.resolve(decoded)
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

func (r *Resolver) resolve(path string) (string, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) && r.rootDir != "" {
		candidates = append(candidates, filepath.Join(r.rootDir, path))
	}

	if r.files != nil {
		for _, c := range candidates {
			file, ok := r.files[r.key(c)]
			if !ok {
				continue
			}
			if file.HasContent() {
				return *file.Content, nil
			}
			if r.store != nil {
				return r.store.Read(file.Path)
			}
		}

		return "", &domain.ReferenceError{Ref: r.display(path)}
	}

	if r.store != nil {
		for _, c := range candidates {
			if r.store.Exists(c) {
				return r.store.Read(c)
			}
		}
	}

	return "", &domain.ReferenceError{Ref: r.display(path)}
}

// key normalizes a path the way the backing store compares paths.
func (r *Resolver) key(path string) string {
	path = filepath.Clean(path)
	if r.caseInsensitive {
		path = strings.ReplaceAll(strings.ToLower(path), "/", `\`)
	}
	return path
}

func (r *Resolver) display(path string) string {
	if r.caseInsensitive {
		return r.key(path)
	}
	return path
}

// IsRemote reports whether ref points at a network location.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Encode URL-encodes a filesystem path the way references are handed to Resolve.
// Remote references are returned unchanged.
func Encode(path string) string {
	if IsRemote(path) {
		return path
	}
	return (&url.URL{Path: path}).EscapedPath()
}
