// Package domain provides core business models and interfaces for the RAML converter.
package domain

// Document represents a parsed RAML specification.
type Document struct {
	Title             string
	Version           string
	BaseURI           string
	MediaType         string
	BaseURIParameters Params
	Resources         []*Resource

	// Named definitions, flattened into a single mapping (later keys win).
	Traits        map[string]any
	Schemas       map[string]any
	ResourceTypes map[string]any
	Types         map[string]any
}

// Resource represents one URI path segment and its nested resources.
type Resource struct {
	RelativeURI       string
	DisplayName       string
	Description       string
	URIParameters     Params
	BaseURIParameters Params
	Methods           []*Method
	Resources         []*Resource
}

// Method represents an HTTP method declared on a resource.
type Method struct {
	Method          string
	Description     string
	Headers         Params
	QueryParameters Params
	Body            []Body
}

// Body represents a request body declared for one media type.
type Body struct {
	MediaType      string
	Example        string
	HasExample     bool
	Schema         string
	FormParameters Params
}

// Param represents a named parameter (URI, header, query or form).
type Param struct {
	Name        string
	DisplayName string
	Type        string
	Description string
	Example     string
	HasExample  bool
	Required    bool
}

// Params is an ordered list of named parameters.
type Params []Param

// Get returns the parameter with the given name.
func (p Params) Get(name string) (Param, bool) {
	for _, param := range p {
		if param.Name == name {
			return param, true
		}
	}

	return Param{}, false
}

// Has reports whether a parameter with the given name is declared.
func (p Params) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}
