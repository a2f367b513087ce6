package server

import (
	"fmt"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

// InputRequest is the input of a conversion or validation call.
// Files of a fileset carry their content: the server never reads its own disk.
type InputRequest struct {
	Type  string        `json:"type" validate:"required,oneof=text string fileset folder"`
	Data  string        `json:"data" validate:"required_if=Type text,required_if=Type string"`
	Files []FileRequest `json:"files" validate:"required_if=Type fileset,required_if=Type folder,dive"`
}

// FileRequest is one file of a fileset input.
type FileRequest struct {
	Path    string  `json:"path" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// ConvertRequest is the body of POST /convert.
type ConvertRequest struct {
	InputRequest
	Options map[string]any `json:"options"`
}

// Input maps the request onto a domain input.
func (r InputRequest) Input() (domain.Input, error) {
	kind, ok := domain.ParseInputKind(r.Type)
	if !ok {
		return domain.Input{}, &domain.InputError{Kind: r.Type}
	}

	switch kind {
	case domain.KindText:
		return domain.TextInput(r.Data), nil
	case domain.KindFileSet:
		files := make([]domain.File, len(r.Files))
		for i, f := range r.Files {
			files[i] = domain.File{Path: f.Path, Content: f.Content}
		}
		return domain.FileSetInput(files...), nil
	default:
		return domain.Input{}, fmt.Errorf("input type %s is not served over HTTP", r.Type)
	}
}

// ErrorResponse is the body of failed requests that never reached the importer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
