package raml

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// deref follows YAML aliases.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = deref(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func isMapping(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// pairs returns the key/value nodes of a mapping in declaration order.
func pairs(n *yaml.Node) [][2]*yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	out := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, [2]*yaml.Node{n.Content[i], deref(n.Content[i+1])})
	}

	return out
}

// value returns the value of key in a mapping, or nil.
func value(n *yaml.Node, key string) *yaml.Node {
	for _, kv := range pairs(n) {
		if kv[0].Value == key {
			return kv[1]
		}
	}
	return nil
}

// scalar returns the text of a scalar node, or "" for anything else.
func scalar(n *yaml.Node) string {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

func scalarOf(n *yaml.Node, key string) string {
	return scalar(value(n, key))
}

// text renders a node as text: scalars verbatim, structures as indented JSON.
func text(n *yaml.Node) string {
	n = deref(n)
	if n == nil || isNull(n) {
		return ""
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err == nil {
		var out bytes.Buffer
		if err := json.Indent(&out, buf.Bytes(), "", "  "); err == nil {
			return out.String()
		}
	}

	data, err := yaml.Marshal(n)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// writeJSON encodes a node as JSON, keeping mapping keys in declaration order.
func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	n = deref(n)

	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i, kv := range pairs(n) {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(kv[0].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, kv[1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(data)
	default:
		buf.WriteString("null")
	}

	return nil
}

func decode(n *yaml.Node) any {
	var v any
	if n == nil {
		return nil
	}
	if err := n.Decode(&v); err != nil {
		return nil
	}
	return v
}

// clone deep-copies a node tree. Aliases are resolved into copies.
func clone(n *yaml.Node) *yaml.Node {
	n = deref(n)
	if n == nil {
		return nil
	}

	c := *n
	c.Content = make([]*yaml.Node, len(n.Content))
	for i, child := range n.Content {
		c.Content[i] = clone(child)
	}

	return &c
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// asMapping turns a null node into an empty mapping in place.
func asMapping(n *yaml.Node) *yaml.Node {
	if n == nil {
		return newMapping()
	}
	if isNull(n) {
		*n = *newMapping()
	}
	return n
}

// namedNodes flattens a named-definition section. A sequence of single-key
// mappings (RAML 0.8) and a plain mapping (RAML 1.0) are both accepted; later
// duplicate names overwrite earlier ones.
func namedNodes(n *yaml.Node) map[string]*yaml.Node {
	out := make(map[string]*yaml.Node)

	n = deref(n)
	if n == nil {
		return out
	}

	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Content {
			for _, kv := range pairs(item) {
				out[kv[0].Value] = kv[1]
			}
		}
	case yaml.MappingNode:
		for _, kv := range pairs(n) {
			out[kv[0].Value] = kv[1]
		}
	}

	return out
}

// merge copies into dst every property of src that dst does not declare.
// Nested mappings merge recursively; "is" lists are concatenated; keys ending
// in "?" only apply when dst already declares the property.
func merge(dst, src *yaml.Node) {
	src = deref(src)
	if !isMapping(src) {
		return
	}
	dst = asMapping(dst)
	if dst.Kind != yaml.MappingNode {
		return
	}

	for _, kv := range pairs(src) {
		key := kv[0].Value
		name := strings.TrimSuffix(key, "?")
		optional := name != key

		existing := value(dst, name)
		switch {
		case existing == nil:
			if optional {
				continue
			}
			k := clone(kv[0])
			k.Value = name
			dst.Content = append(dst.Content, k, clone(kv[1]))
		case name == "is" && existing.Kind == yaml.SequenceNode && kv[1].Kind == yaml.SequenceNode:
			for _, item := range kv[1].Content {
				existing.Content = append(existing.Content, clone(item))
			}
		case (isMapping(existing) || isNull(existing)) && isMapping(kv[1]):
			merge(existing, kv[1])
		}
	}
}
