package raml

import (
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
	"gopkg.in/yaml.v3"
)

// templateParam matches <<name>> and <<name | !transform>>.
var templateParam = regexp.MustCompile(`<<\s*([A-Za-z0-9_]+)\s*(?:\|\s*!([A-Za-z]+)\s*)?>>`)

// uriVar matches {name} placeholders of URI templates.
var uriVar = regexp.MustCompile(`\{([^{}]+)\}`)

// ref is a trait or resource type application, optionally with parameters.
type ref struct {
	name   string
	params map[string]string
}

// parseRef reads "name" or "{name: {param: value}}".
func parseRef(n *yaml.Node) (ref, bool) {
	n = deref(n)
	if n == nil || isNull(n) {
		return ref{}, false
	}

	if n.Kind == yaml.ScalarNode {
		return ref{name: n.Value}, true
	}

	for _, kv := range pairs(n) {
		r := ref{name: kv[0].Value, params: make(map[string]string)}
		for _, p := range pairs(kv[1]) {
			r.params[p[0].Value] = text(p[1])
		}
		return r, true
	}

	return ref{}, false
}

// parseRefs reads an "is" list.
func parseRefs(n *yaml.Node) []ref {
	n = deref(n)
	if n == nil {
		return nil
	}

	if n.Kind != yaml.SequenceNode {
		if r, ok := parseRef(n); ok {
			return []ref{r}
		}
		return nil
	}

	refs := make([]ref, 0, len(n.Content))
	for _, item := range n.Content {
		if r, ok := parseRef(item); ok {
			refs = append(refs, r)
		}
	}

	return refs
}

// substitute replaces template parameters in every scalar of the tree, keys included.
func substitute(n *yaml.Node, params map[string]string) {
	if n == nil {
		return
	}

	if n.Kind == yaml.ScalarNode && strings.Contains(n.Value, "<<") {
		n.Value = templateParam.ReplaceAllStringFunc(n.Value, func(match string) string {
			m := templateParam.FindStringSubmatch(match)
			v, ok := params[m[1]]
			if !ok {
				return match
			}
			return transform(v, m[2])
		})
	}

	for _, child := range n.Content {
		substitute(child, params)
	}
}

func transform(v, fn string) string {
	switch strings.ToLower(fn) {
	case "singularize":
		return inflection.Singular(v)
	case "pluralize":
		return inflection.Plural(v)
	case "uppercase":
		return strings.ToUpper(v)
	case "lowercase":
		return strings.ToLower(v)
	default:
		return v
	}
}

// resourcePathName returns the rightmost path segment that is not a URI parameter.
func resourcePathName(resourcePath string) string {
	segments := strings.Split(resourcePath, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" && !strings.Contains(segments[i], "{") {
			return segments[i]
		}
	}
	return ""
}

// templateVars returns the {name} placeholders of a URI template in order.
func templateVars(uri string) []string {
	matches := uriVar.FindAllStringSubmatch(uri, -1)

	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		vars = append(vars, m[1])
	}

	return vars
}
