// Package raml loads RAML 0.8 and 1.0 documents into the domain model.
//
// The loader works on the gopkg.in/yaml.v3 node tree so that declaration order
// of resources, methods and parameters is preserved. It resolves !include
// references through a Resolver, applies resource types and traits, and
// declares implicit URI parameters.
package raml

import (
	"context"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
	"github.com/GabrielNunesIT/raml-converter/internal/resolver"
)

const (
	defaultMaxIncludeDepth = 32
	maxTypeDepth           = 16
	defaultMediaType       = "application/json"
)

var headers = []string{"#%RAML 0.8", "#%RAML 1.0"}

var methodNames = map[string]bool{
	"get": true, "post": true, "put": true, "delete": true, "patch": true,
	"head": true, "options": true, "trace": true, "connect": true,
}

// Resolver supplies the content of referenced files.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Loader parses RAML documents.
type Loader struct {
	resolver        Resolver
	maxIncludeDepth int
}

// NewLoader creates a loader resolving references through r.
func NewLoader(r Resolver) *Loader {
	return &Loader{
		resolver:        r,
		maxIncludeDepth: defaultMaxIncludeDepth,
	}
}

// Parse parses RAML text. Relative references resolve against baseDir.
func (l *Loader) Parse(ctx context.Context, text, baseDir string) (*domain.Document, error) {
	return l.parse(ctx, text, "", baseDir)
}

// ParseFile reads the document at path through the resolver and parses it.
func (l *Loader) ParseFile(ctx context.Context, path string) (*domain.Document, error) {
	content, err := l.resolver.Resolve(ctx, resolver.Encode(path))
	if err != nil {
		return nil, err
	}

	return l.parse(ctx, content, path, filepath.Dir(path))
}

// ParseSource parses text already read from path. Relative references resolve
// against the directory of path.
func (l *Loader) ParseSource(ctx context.Context, path, text string) (*domain.Document, error) {
	return l.parse(ctx, text, path, filepath.Dir(path))
}

func (l *Loader) parse(ctx context.Context, text, path, dir string) (*domain.Document, error) {
	if !hasHeader(text) {
		return nil, &domain.ParseError{Path: path, Message: "The first line must be: '#%RAML 0.8' or '#%RAML 1.0'"}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &domain.ParseError{Path: path, Message: "invalid YAML", Cause: err}
	}
	if len(doc.Content) == 0 || !isMapping(doc.Content[0]) {
		return nil, &domain.ParseError{Path: path, Message: "document must be a mapping"}
	}

	root := doc.Content[0]
	if err := l.resolveIncludes(ctx, root, dir, 0); err != nil {
		return nil, err
	}
	root = clone(root)

	b := newBuilder(root)
	document, err := b.document()
	if err != nil {
		if pe, ok := err.(*domain.ParseError); ok && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}

	return document, nil
}

func hasHeader(text string) bool {
	text = strings.TrimLeft(text, "\ufeff \t\r\n")

	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	line = strings.TrimSpace(line)

	for _, h := range headers {
		if line == h {
			return true
		}
	}

	return false
}

// builder turns a resolved node tree into a domain.Document.
type builder struct {
	root          *yaml.Node
	traits        map[string]*yaml.Node
	resourceTypes map[string]*yaml.Node
	schemas       map[string]*yaml.Node
	types         map[string]*yaml.Node
	mediaType     string
}

func newBuilder(root *yaml.Node) *builder {
	return &builder{
		root:          root,
		traits:        namedNodes(value(root, "traits")),
		resourceTypes: namedNodes(value(root, "resourceTypes")),
		schemas:       namedNodes(value(root, "schemas")),
		types:         namedNodes(value(root, "types")),
		mediaType:     scalarOf(root, "mediaType"),
	}
}

func (b *builder) document() (*domain.Document, error) {
	title := strings.TrimSpace(scalarOf(b.root, "title"))
	if title == "" {
		return nil, &domain.ParseError{Message: "missing title"}
	}

	doc := &domain.Document{
		Title:             title,
		Version:           scalarOf(b.root, "version"),
		BaseURI:           scalarOf(b.root, "baseUri"),
		MediaType:         b.mediaType,
		BaseURIParameters: params(value(b.root, "baseUriParameters")),
		Traits:            decodeAll(b.traits),
		Schemas:           decodeAll(b.schemas),
		ResourceTypes:     decodeAll(b.resourceTypes),
		Types:             decodeAll(b.types),
	}
	doc.BaseURIParameters = withImplicit(doc.BaseURIParameters, doc.BaseURI)

	for _, kv := range pairs(b.root) {
		if !strings.HasPrefix(kv[0].Value, "/") {
			continue
		}

		res, err := b.resource(kv[0].Value, kv[1], "")
		if err != nil {
			return nil, err
		}
		doc.Resources = append(doc.Resources, res)
	}

	return doc, nil
}

func (b *builder) resource(relativeURI string, n *yaml.Node, parentPath string) (*domain.Resource, error) {
	n = asMapping(n)
	resourcePath := parentPath + relativeURI
	tplParams := map[string]string{
		"resourcePath":     resourcePath,
		"resourcePathName": resourcePathName(resourcePath),
	}

	if err := b.applyResourceType(n, tplParams, 0); err != nil {
		return nil, err
	}

	res := &domain.Resource{
		RelativeURI:       relativeURI,
		DisplayName:       scalarOf(n, "displayName"),
		Description:       scalarOf(n, "description"),
		URIParameters:     withImplicit(params(value(n, "uriParameters")), relativeURI),
		BaseURIParameters: params(value(n, "baseUriParameters")),
	}
	resourceTraits := parseRefs(value(n, "is"))

	for _, kv := range pairs(n) {
		key := kv[0].Value

		switch {
		case methodNames[key]:
			m, err := b.method(key, kv[1], resourceTraits, tplParams)
			if err != nil {
				return nil, err
			}
			res.Methods = append(res.Methods, m)
		case strings.HasPrefix(key, "/"):
			child, err := b.resource(key, kv[1], resourcePath)
			if err != nil {
				return nil, err
			}
			res.Resources = append(res.Resources, child)
		}
	}

	return res, nil
}

// applyResourceType merges the resource type named by n's "type" property, and
// the types it inherits from, into n.
func (b *builder) applyResourceType(n *yaml.Node, tplParams map[string]string, depth int) error {
	r, ok := parseRef(value(n, "type"))
	if !ok {
		return nil
	}
	if depth >= maxTypeDepth {
		return &domain.ParseError{Message: "resource type inheritance too deep at " + r.name}
	}

	def, ok := b.resourceTypes[r.name]
	if !ok {
		return &domain.ParseError{Message: "there is no resource type named " + r.name}
	}

	applied := asMapping(clone(def))
	substitute(applied, withParams(tplParams, r.params))
	if err := b.applyResourceType(applied, tplParams, depth+1); err != nil {
		return err
	}

	removeKey(n, "type")
	merge(n, applied)

	return nil
}

func (b *builder) method(verb string, n *yaml.Node, resourceTraits []ref, tplParams map[string]string) (*domain.Method, error) {
	n = asMapping(n)

	traits := append(parseRefs(value(n, "is")), resourceTraits...)
	for _, r := range traits {
		def, ok := b.traits[r.name]
		if !ok {
			return nil, &domain.ParseError{Message: "there is no trait named " + r.name}
		}

		applied := asMapping(clone(def))
		p := withParams(tplParams, r.params)
		p["methodName"] = verb
		substitute(applied, p)
		merge(n, applied)
	}

	return &domain.Method{
		Method:          verb,
		Description:     scalarOf(n, "description"),
		Headers:         params(value(n, "headers")),
		QueryParameters: params(value(n, "queryParameters")),
		Body:            b.bodies(value(n, "body")),
	}, nil
}

func (b *builder) bodies(n *yaml.Node) []domain.Body {
	if !isMapping(n) {
		return nil
	}

	kvs := pairs(n)
	typed := false
	for _, kv := range kvs {
		if strings.Contains(kv[0].Value, "/") {
			typed = true
			break
		}
	}

	if !typed {
		mediaType := b.mediaType
		if mediaType == "" {
			mediaType = defaultMediaType
		}
		return []domain.Body{b.body(mediaType, n)}
	}

	out := make([]domain.Body, 0, len(kvs))
	for _, kv := range kvs {
		out = append(out, b.body(kv[0].Value, kv[1]))
	}

	return out
}

func (b *builder) body(mediaType string, n *yaml.Node) domain.Body {
	body := domain.Body{MediaType: mediaType}
	if !isMapping(n) {
		return body
	}

	if ex := value(n, "example"); ex != nil {
		body.Example, body.HasExample = text(ex), true
	} else if ex, ok := firstExample(value(n, "examples")); ok {
		body.Example, body.HasExample = ex, true
	}

	body.Schema = b.schemaText(value(n, "schema"))
	if body.Schema == "" {
		body.Schema = b.schemaText(value(n, "type"))
	}

	form := value(n, "formParameters")
	if form == nil && isFormMediaType(mediaType) {
		form = value(n, "properties")
	}
	body.FormParameters = params(form)

	return body
}

// schemaText resolves a named schema or type, or returns the inline definition.
func (b *builder) schemaText(n *yaml.Node) string {
	name := scalar(n)
	if def, ok := b.schemas[name]; ok && name != "" {
		return text(def)
	}
	if def, ok := b.types[name]; ok && name != "" {
		return text(def)
	}
	return text(n)
}

func firstExample(n *yaml.Node) (string, bool) {
	for _, kv := range pairs(n) {
		if v := value(kv[1], "value"); v != nil && isMapping(kv[1]) {
			return text(v), true
		}
		return text(kv[1]), true
	}
	return "", false
}

func isFormMediaType(mediaType string) bool {
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// params reads a named-parameter mapping in declaration order.
func params(n *yaml.Node) domain.Params {
	kvs := pairs(n)
	if len(kvs) == 0 {
		return nil
	}

	out := make(domain.Params, 0, len(kvs))
	for _, kv := range kvs {
		name := kv[0].Value
		optional := strings.HasSuffix(name, "?")
		name = strings.TrimSuffix(name, "?")

		def := kv[1]
		if def != nil && def.Kind == yaml.SequenceNode && len(def.Content) > 0 {
			def = deref(def.Content[0])
		}

		p := domain.Param{Name: name}
		switch {
		case isMapping(def):
			p.DisplayName = scalarOf(def, "displayName")
			p.Type = scalarOf(def, "type")
			p.Description = scalarOf(def, "description")
			if ex := value(def, "example"); ex != nil {
				p.Example, p.HasExample = text(ex), true
			}
			p.Required = scalarOf(def, "required") == "true"
		case def != nil && def.Kind == yaml.ScalarNode && !isNull(def):
			p.Type = def.Value
		}
		if optional {
			p.Required = false
		}

		out = append(out, p)
	}

	return out
}

// withImplicit declares the {name} placeholders of uri that are not declared yet.
func withImplicit(declared domain.Params, uri string) domain.Params {
	for _, name := range templateVars(uri) {
		if declared.Has(name) {
			continue
		}
		declared = append(declared, domain.Param{Name: name, Type: "string", Required: true})
	}
	return declared
}

func withParams(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra)+1)
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func removeKey(n *yaml.Node, key string) {
	if !isMapping(n) {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content = append(n.Content[:i], n.Content[i+2:]...)
			return
		}
	}
}

func decodeAll(nodes map[string]*yaml.Node) map[string]any {
	out := make(map[string]any, len(nodes))
	for name, n := range nodes {
		out[name] = decode(n)
	}
	return out
}
