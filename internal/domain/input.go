package domain

import "strings"

// InputKind identifies the shape of a conversion input.
type InputKind string

// Supported input kinds.
const (
	KindText    InputKind = "text"
	KindFile    InputKind = "file"
	KindFileSet InputKind = "fileset"
)

// ParseInputKind maps a textual input type onto an InputKind.
// The legacy names "string" and "folder" are accepted as aliases.
func ParseInputKind(s string) (InputKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return KindText, true
	case "file":
		return KindFile, true
	case "fileset", "folder":
		return KindFileSet, true
	default:
		return InputKind(s), false
	}
}

// File is one candidate file of a fileset input.
// A nil Content means the file is read from the backing store on demand.
type File struct {
	Path    string  `json:"path" validate:"required"`
	Content *string `json:"content,omitempty"`
}

// HasContent reports whether the file carries in-memory content.
func (f File) HasContent() bool {
	return f.Content != nil
}

// Input is a conversion input: a RAML text, a file path, or a set of files.
type Input struct {
	Kind    InputKind
	Content string
	Path    string
	Files   []File
}

// TextInput returns an input carrying RAML text.
func TextInput(content string) Input {
	return Input{Kind: KindText, Content: content}
}

// FileInput returns an input pointing at a RAML file.
func FileInput(path string) Input {
	return Input{Kind: KindFile, Path: path}
}

// FileSetInput returns an input made of several candidate files.
func FileSetInput(files ...File) Input {
	return Input{Kind: KindFileSet, Files: files}
}

// StringPtr is a helper for building File values with in-memory content.
func StringPtr(s string) *string {
	return &s
}
