// # internal/docparse/docparse.go
//
// Markdown section extractor. A section starts at a hidden
// `<!-- @docs-id: xxx -->` marker and runs until the next marker or the
// end of the document; its title is the nearest following heading.
// Argument lists inside a section are recognized by trying a fixed
// priority of shapes: table, then list, then definition lines.
package docparse

import (
	"os"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"docwatch/internal/errors"
	"docwatch/internal/model"
)

// MaxFileSize caps doc input at 10 MB.
const MaxFileSize = 10 * 1024 * 1024

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// ParseFile reads and parses one markdown file.
func ParseFile(path string) ([]model.DocSection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParseFailure, "stat doc file")
	}
	if info.Size() > MaxFileSize {
		return nil, errors.Newf(errors.CodeParseFailure,
			"doc file too large (%.1f MB, max %d MB): %s",
			float64(info.Size())/(1024*1024), MaxFileSize/(1024*1024), path)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParseFailure, "read doc file")
	}
	return ParseSource(source, path)
}

// ParseSource extracts all marked sections from markdown source.
// A duplicate id within one document is fatal: every link against it
// would be ambiguous.
func ParseSource(source []byte, path string) ([]model.DocSection, error) {
	doc := md.Parser().Parse(text.NewReader(source))
	lines := buildLineOffsets(source)

	var sections []model.DocSection
	seen := make(map[string]model.Location)

	var current *model.DocSection
	var body []ast.Node

	flush := func() {
		if current == nil {
			return
		}
		current.Args = extractArgs(body, source)
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if id, start, ok := markerID(n, source); ok {
			flush()
			loc := model.Location{File: path, Line: offsetToLine(lines, start)}
			if prev, dup := seen[id]; dup {
				return nil, errors.Newf(errors.CodeDuplicateDocID,
					"documentation id %q declared at both %s and %s", id, prev, loc)
			}
			seen[id] = loc
			current = &model.DocSection{ID: id, Location: loc}
			continue
		}

		if current == nil {
			continue
		}
		if h, ok := n.(*ast.Heading); ok && current.Title == "" {
			current.Title = strings.TrimSpace(nodeText(h, source, false))
			continue
		}
		body = append(body, n)
	}
	flush()

	return sections, nil
}

// markerID recognizes a comment block carrying a @docs-id annotation.
func markerID(n ast.Node, source []byte) (string, int, bool) {
	block, ok := n.(*ast.HTMLBlock)
	if !ok || block.HTMLBlockType != ast.HTMLBlockType2 {
		return "", 0, false
	}
	if block.Lines().Len() == 0 {
		return "", 0, false
	}
	seg := block.Lines().At(0)
	raw := strings.TrimSpace(string(source[seg.Start:seg.Stop]))

	inner, ok := strings.CutPrefix(raw, "<!--")
	if !ok {
		return "", 0, false
	}
	inner, ok = strings.CutSuffix(inner, "-->")
	if !ok {
		return "", 0, false
	}
	inner, ok = strings.CutPrefix(strings.TrimSpace(inner), "@docs-id:")
	if !ok {
		return "", 0, false
	}
	id := strings.TrimSpace(inner)
	if id == "" {
		return "", 0, false
	}
	return id, seg.Start, true
}

func buildLineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func offsetToLine(offsets []int, offset int) int {
	return sort.SearchInts(offsets, offset+1)
}

// nodeText flattens the inline text of a node. When wrapCode is set,
// code spans keep their backticks so the argument-line scanners can
// tell terms from prose.
func nodeText(n ast.Node, source []byte, wrapCode bool) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.CodeSpan:
			if wrapCode {
				b.WriteByte('`')
			}
			b.WriteString(string(codeSpanText(t, source)))
			if wrapCode {
				b.WriteByte('`')
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func codeSpanText(n *ast.CodeSpan, source []byte) []byte {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return []byte(b.String())
}
