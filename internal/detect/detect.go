// Package detect finds the root RAML document among a set of candidate files.
//
// Detection is textual and line-oriented; it never parses YAML, so files that
// are not valid YAML simply fail classification.
package detect

import (
	"errors"
	"strings"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
	"github.com/GabrielNunesIT/raml-converter/internal/store"
)

// Header markers of root RAML documents.
var headers = []string{"#%RAML 0.8", "#%RAML 1.0"}

var (
	errMissingHeader = errors.New("RAML specification must have #%RAML 0.8 or #%RAML 1.0 at beginning of the file")
	errMissingTitle  = errors.New("RAML specification must have title property")
)

// CheckText reports why text is not a root RAML document, or nil if it is.
func CheckText(text string) error {
	text = strings.TrimLeft(text, " \t\r\n\ufeff")

	header, ok := matchHeader(text)
	if !ok {
		return errMissingHeader
	}

	rest := strings.TrimPrefix(text[len(header):], "\r")
	if strings.HasPrefix(rest, "\ntitle:") {
		return nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "title:") {
			return nil
		}
	}

	return errMissingTitle
}

// IsRoot reports whether text classifies as a root RAML document.
func IsRoot(text string) bool {
	return CheckText(text) == nil
}

// matchHeader returns the header the text starts with. The header line must
// carry nothing else, which rules out RAML 1.0 fragments such as libraries.
func matchHeader(text string) (string, bool) {
	for _, h := range headers {
		if !strings.HasPrefix(text, h) {
			continue
		}

		line := text[len(h):]
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			return h, true
		}
	}

	return "", false
}

// Roots returns every candidate file that classifies as a root document.
// Content comes from the file itself when present, otherwise from the store;
// unreadable files are skipped.
func Roots(files []domain.File, fs store.FileStore) []domain.File {
	var roots []domain.File

	for _, file := range files {
		var content string
		switch {
		case file.HasContent():
			content = *file.Content
		case fs != nil:
			c, err := fs.Read(file.Path)
			if err != nil {
				continue
			}
			content = c
		default:
			continue
		}

		if IsRoot(content) {
			roots = append(roots, domain.File{Path: file.Path, Content: domain.StringPtr(content)})
		}
	}

	return roots
}

// DetectRoot returns the single root document among files.
// It fails with a *domain.RootError when there is no root or more than one.
func DetectRoot(files []domain.File, fs store.FileStore) (domain.File, error) {
	roots := Roots(files, fs)

	switch len(roots) {
	case 0:
		return domain.File{}, &domain.RootError{}
	case 1:
		return roots[0], nil
	default:
		candidates := make([]string, len(roots))
		for i, r := range roots {
			candidates[i] = r.Path
		}
		return domain.File{}, &domain.RootError{Candidates: candidates}
	}
}
