package raml

import (
	"context"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
	"github.com/GabrielNunesIT/raml-converter/internal/resolver"
)

const includeTag = "!include"

// yamlExtensions are included as structured documents; anything else becomes text.
var yamlExtensions = map[string]bool{".raml": true, ".yaml": true, ".yml": true}

// resolveIncludes replaces every !include node of the tree with the referenced
// content. Relative references resolve against dir, the directory of the
// document that contains them.
func (l *Loader) resolveIncludes(ctx context.Context, n *yaml.Node, dir string, depth int) error {
	if n == nil {
		return nil
	}

	if n.Tag == includeTag {
		return l.include(ctx, n, dir, depth)
	}

	for _, child := range n.Content {
		if err := l.resolveIncludes(ctx, child, dir, depth); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) include(ctx context.Context, n *yaml.Node, dir string, depth int) error {
	target := strings.TrimSpace(n.Value)
	if depth >= l.maxIncludeDepth {
		return &domain.ParseError{Path: target, Message: "include depth exceeded"}
	}

	if !resolver.IsRemote(target) && !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}

	content, err := l.resolver.Resolve(ctx, resolver.Encode(target))
	if err != nil {
		return err
	}

	if !yamlExtensions[strings.ToLower(filepath.Ext(target))] {
		*n = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: content, Style: yaml.LiteralStyle}
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return &domain.ParseError{Path: target, Message: "invalid included document", Cause: err}
	}

	if len(doc.Content) == 0 {
		*n = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
		return nil
	}

	inner := doc.Content[0]
	if err := l.resolveIncludes(ctx, inner, filepath.Dir(target), depth+1); err != nil {
		return err
	}

	*n = *inner
	return nil
}
