// # internal/codeparse/annotation.go
package codeparse

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"docwatch/internal/model"
)

// extractionContext carries shared state for one file's walk.
type extractionContext struct {
	source   []byte
	filePath string
	entities []model.CodeEntity
}

func (c *extractionContext) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.source[node.StartByte():node.EndByte()])
}

func (c *extractionContext) location(node *sitter.Node) model.Location {
	return model.Location{
		File: c.filePath,
		Line: int(node.StartPosition().Row) + 1,
	}
}

// docsAnnotation scans the comment block immediately preceding a
// declaration for a `@docs: [id]` annotation. The block must be
// contiguous: a blank line between the comments and the declaration
// (or inside the block) detaches it.
func docsAnnotation(funcNode *sitter.Node, source []byte, commentKinds ...string) string {
	parent := funcNode.Parent()
	if parent == nil {
		return ""
	}

	funcRow := funcNode.StartPosition().Row
	prevRow := funcRow

	for i := int(parent.ChildCount()) - 1; i >= 0; i-- {
		sibling := parent.Child(uint(i))
		row := sibling.StartPosition().Row
		if row >= funcRow {
			continue
		}
		// More than one empty line between consecutive nodes ends the
		// contiguous block.
		if prevRow-row > 2 {
			break
		}
		prevRow = row

		if !isKind(sibling, commentKinds) {
			break
		}
		text := string(source[sibling.StartByte():sibling.EndByte()])
		if id := docsIDFromComment(text); id != "" {
			return id
		}
	}
	return ""
}

func isKind(node *sitter.Node, kinds []string) bool {
	for _, k := range kinds {
		if node.Kind() == k {
			return true
		}
	}
	return false
}

// docsIDFromComment parses `/// @docs: [id]`, `// @docs: id` and
// `# @docs: [id]` comment forms.
func docsIDFromComment(comment string) string {
	content := strings.TrimSpace(comment)
	switch {
	case strings.HasPrefix(content, "///"):
		content = content[3:]
	case strings.HasPrefix(content, "//"):
		content = content[2:]
	case strings.HasPrefix(content, "#"):
		content = content[1:]
	default:
		return ""
	}

	content, ok := strings.CutPrefix(strings.TrimSpace(content), "@docs:")
	if !ok {
		return ""
	}

	id := strings.TrimSpace(content)
	if strings.HasPrefix(id, "[") && strings.HasSuffix(id, "]") {
		id = id[1 : len(id)-1]
	}
	return strings.TrimSpace(id)
}

// walk dispatches nodes of the given kinds to fn, descending into
// everything else.
func walk(node *sitter.Node, kinds map[string]bool, fn func(*sitter.Node)) {
	if kinds[node.Kind()] {
		fn(node)
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), kinds, fn)
	}
}
