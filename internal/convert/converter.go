// Package convert turns a parsed RAML document into a request collection and
// its companion environment.
package convert

import (
	"strings"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

// DefaultCollectionName names collections of documents without a title.
const DefaultCollectionName = "Postman Collection (From RAML0.8)"

const (
	descriptionFormat = "html"
	parametersHeading = "Parameters:\n\n"
)

const (
	mediaTypeURLEncoded = "application/x-www-form-urlencoded"
	mediaTypeMultipart  = "multipart/form-data"
)

// Settings tune a conversion.
type Settings struct {
	// Flat disables folders: every request id goes to the top-level order.
	Flat bool
	// SkipMethods lists verbs, case-insensitive, that produce no request.
	SkipMethods []string
}

// Converter converts one document. A Converter holds no traversal state and
// may be reused, but it is meant to be built per call with the id mode of
// that call.
type Converter struct {
	ids  IDGenerator
	flat bool
	skip map[string]bool
}

// New creates a converter stamping documents with ids from ids.
func New(ids IDGenerator, settings Settings) *Converter {
	if ids == nil {
		ids = RandomIDs{}
	}

	skip := make(map[string]bool, len(settings.SkipMethods))
	for _, m := range settings.SkipMethods {
		skip[strings.ToLower(strings.TrimSpace(m))] = true
	}

	return &Converter{
		ids:  ids,
		flat: settings.Flat,
		skip: skip,
	}
}

// walk is the state threaded through one conversion.
type walk struct {
	collection *domain.Collection
	env        *EnvironmentBuilder
	// baseURI is the document base URI with its parameters substituted.
	baseURI string
}

// CollectionName returns the name of the collection converted from doc.
func CollectionName(doc *domain.Document) string {
	if doc == nil || doc.Title == "" {
		return DefaultCollectionName
	}
	return doc.Title
}

// Convert converts doc into a collection and its environment.
func (c *Converter) Convert(doc *domain.Document) (*domain.Collection, *domain.Environment) {
	if doc == nil {
		doc = &domain.Document{}
	}

	collection := &domain.Collection{
		ID:        c.ids.NewID(),
		Name:      CollectionName(doc),
		Order:     []string{},
		Folders:   []domain.Folder{},
		Requests:  []domain.Request{},
		Timestamp: c.ids.Timestamp(),
	}

	w := &walk{
		collection: collection,
		env:        NewEnvironmentBuilder(),
	}

	w.baseURI = doc.BaseURI
	for _, p := range doc.BaseURIParameters {
		w.baseURI = substitute(w.baseURI, p.Name)
		w.env.AddParam(p)
	}

	for _, res := range doc.Resources {
		c.topLevel(w, res)
	}

	return collection, w.env.Build(collection.Name, c.ids)
}

// topLevel converts a direct child of the document and files the requests it
// produced: several requests make a folder, a single request goes straight to
// the top-level order.
func (c *Converter) topLevel(w *walk, res *domain.Resource) {
	if c.flat {
		w.collection.Order = append(w.collection.Order, c.resource(w, res, w.baseURI)...)
		return
	}

	folder := domain.Folder{
		ID:             c.ids.NewID(),
		Name:           pathTemplate(res.RelativeURI, res.URIParameters),
		CollectionName: w.collection.Name,
		CollectionID:   w.collection.ID,
	}
	folder.Order = c.resource(w, res, w.baseURI)

	switch len(folder.Order) {
	case 0:
	case 1:
		w.collection.Order = append(w.collection.Order, folder.Order[0])
	default:
		w.collection.Folders = append(w.collection.Folders, folder)
	}
}

// resource converts res and its descendants. It returns the ids of the
// requests produced, in traversal order.
func (c *Converter) resource(w *walk, res *domain.Resource, parentURI string) []string {
	var description strings.Builder
	description.WriteString(parametersHeading)

	for _, p := range res.URIParameters {
		w.env.AddParam(p)
		description.WriteString(p.Name + ": " + p.Description + "\n\n")
	}
	relativeURI := pathTemplate(res.RelativeURI, res.URIParameters)

	baseURI := parentURI
	for _, p := range res.BaseURIParameters {
		baseURI = substitute(baseURI, p.Name)
		w.env.AddParam(p)
	}

	resourceURI := baseURI + relativeURI

	var ids []string
	for _, m := range res.Methods {
		if c.skip[strings.ToLower(m.Method)] {
			continue
		}

		req := c.request(w, m, resourceURI, description.String())
		w.collection.Requests = append(w.collection.Requests, req)
		ids = append(ids, req.ID)
	}

	for _, child := range res.Resources {
		ids = append(ids, c.resource(w, child, resourceURI)...)
	}

	return ids
}

func (c *Converter) request(w *walk, m *domain.Method, resourceURI, paramDescription string) domain.Request {
	req := domain.Request{
		ID:                c.ids.NewID(),
		CollectionID:      w.collection.ID,
		Method:            m.Method,
		Name:              strings.TrimPrefix(resourceURI, w.baseURI),
		URL:               resourceURI + queryString(m.QueryParameters),
		DataMode:          domain.DataModeParams,
		Data:              []map[string]string{},
		Description:       m.Description + "\n\n" + paramDescription,
		DescriptionFormat: descriptionFormat,
		PathVariables:     map[string]string{},
		Responses:         []any{},
		Time:              c.ids.Timestamp(),
	}

	var headers strings.Builder
	for _, h := range m.Headers {
		headers.WriteString(h.Name + ": " + h.Example + "\n")
	}

	for _, body := range m.Body {
		switch body.MediaType {
		case mediaTypeURLEncoded:
			req.DataMode = domain.DataModeURLEncoded
			req.Data = appendFormParams(req.Data, body.FormParameters)
		case mediaTypeMultipart:
			req.DataMode = domain.DataModeParams
			req.Data = appendFormParams(req.Data, body.FormParameters)
		default:
			req.DataMode = domain.DataModeRaw
			headers.WriteString("Content-Type: " + body.MediaType + "\n")
			req.RawModeData = body.Example
		}
	}
	req.Headers = headers.String()

	return req
}

func appendFormParams(data []map[string]string, params domain.Params) []map[string]string {
	for _, p := range params {
		data = append(data, map[string]string{p.Name: ""})
	}
	return data
}

// queryString renders query parameters as "?k1=&k2=".
func queryString(params domain.Params) string {
	var sb strings.Builder
	for i, p := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Name + "=")
	}
	return sb.String()
}

// pathTemplate rewrites the {name} placeholders of params as :name.
func pathTemplate(uri string, params domain.Params) string {
	for _, p := range params {
		uri = substitute(uri, p.Name)
	}
	return uri
}

func substitute(uri, name string) string {
	return strings.ReplaceAll(uri, "{"+name+"}", ":"+name)
}
