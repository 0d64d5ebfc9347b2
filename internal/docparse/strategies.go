// # internal/docparse/strategies.go
package docparse

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"docwatch/internal/model"
)

// strategy attempts to read an argument list out of a section body.
// The set is closed and tried in fixed priority order because a body
// can coincidentally satisfy more than one shape; the table form is
// the most structurally explicit and goes first.
type strategy interface {
	extract(body []ast.Node, source []byte) ([]model.Arg, bool)
}

var strategies = []strategy{
	tableStrategy{},
	listStrategy{},
	definitionStrategy{},
}

// extractArgs classifies the first recognizable argument block in the
// body. A section with no such block legitimately has an empty
// argument list, e.g. a parameterless endpoint.
func extractArgs(body []ast.Node, source []byte) []model.Arg {
	for _, s := range strategies {
		if args, ok := s.extract(body, source); ok {
			return args
		}
	}
	return nil
}

// tableStrategy reads `| Param | Type | Description |` tables. A
// param-like header column is required; type and description columns
// are optional.
type tableStrategy struct{}

func (tableStrategy) extract(body []ast.Node, source []byte) ([]model.Arg, bool) {
	for _, n := range body {
		table, ok := n.(*east.Table)
		if !ok {
			continue
		}
		args, ok := parseTable(table, source)
		if ok {
			return args, true
		}
	}
	return nil, false
}

func parseTable(table *east.Table, source []byte) ([]model.Arg, bool) {
	var headers []string
	var rows [][]string

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(nodeText(cell, source, false)))
		}
		if _, isHeader := row.(*east.TableHeader); isHeader {
			headers = cells
		} else {
			rows = append(rows, cells)
		}
	}

	nameCol := findColumn(headers, "param", "name", "arg", "argument", "field")
	if nameCol < 0 {
		return nil, false
	}
	typeCol := findColumn(headers, "type")
	descCol := findColumn(headers, "desc", "description")

	var args []model.Arg
	for _, row := range rows {
		if nameCol >= len(row) {
			continue
		}
		name := strings.Trim(strings.TrimSpace(row[nameCol]), "`")
		if name == "" {
			continue
		}
		arg := model.Arg{Name: name}
		if typeCol >= 0 && typeCol < len(row) {
			arg.RawType = strings.Trim(strings.TrimSpace(row[typeCol]), "`")
		}
		if descCol >= 0 && descCol < len(row) {
			arg.Description = strings.TrimSpace(row[descCol])
		}
		args = append(args, arg)
	}
	return args, len(args) > 0
}

func findColumn(headers []string, names ...string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, name := range names {
			if strings.Contains(lower, name) {
				return i
			}
		}
	}
	return -1
}

// listStrategy reads bulleted items shaped like `name: description`,
// `name (type): description` or `` `name` (`type`): description ``.
type listStrategy struct{}

func (listStrategy) extract(body []ast.Node, source []byte) ([]model.Arg, bool) {
	for _, n := range body {
		list, ok := n.(*ast.List)
		if !ok {
			continue
		}
		var args []model.Arg
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			line := strings.TrimSpace(nodeText(item, source, true))
			if arg, ok := parseArgLine(line, false); ok {
				args = append(args, arg)
			}
		}
		if len(args) > 0 {
			return args, true
		}
	}
	return nil, false
}

// definitionStrategy reads contiguous paragraph lines each beginning
// with a backticked term: `` `name` (`type`): description ``. Requiring
// the backtick keeps prose with colons from reading as arguments.
type definitionStrategy struct{}

func (definitionStrategy) extract(body []ast.Node, source []byte) ([]model.Arg, bool) {
	for _, n := range body {
		para, ok := n.(*ast.Paragraph)
		if !ok {
			continue
		}
		var args []model.Arg
		for _, line := range strings.Split(nodeText(para, source, true), "\n") {
			if arg, ok := parseArgLine(strings.TrimSpace(line), true); ok {
				args = append(args, arg)
			}
		}
		if len(args) > 0 {
			return args, true
		}
	}
	return nil, false
}

// parseArgLine splits one argument line into name, optional
// parenthesized type and description. With strict set, the name must
// be backtick-wrapped (the definition shape); otherwise a bare
// `name: ...` form is accepted too (the list shape).
func parseArgLine(line string, strict bool) (model.Arg, bool) {
	if line == "" || strings.HasPrefix(line, "**") {
		return model.Arg{}, false
	}

	var name, rest string
	if stripped, ok := strings.CutPrefix(line, "`"); ok {
		end := strings.Index(stripped, "`")
		if end < 0 {
			return model.Arg{}, false
		}
		name = strings.TrimSpace(stripped[:end])
		rest = strings.TrimSpace(stripped[end+1:])
	} else {
		if strict {
			return model.Arg{}, false
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			return model.Arg{}, false
		}
		head := strings.TrimSpace(line[:colon])
		if paren := strings.Index(head, "("); paren >= 0 {
			name = strings.TrimSpace(head[:paren])
			rest = strings.TrimSpace(line[paren:])
		} else {
			name = head
			rest = strings.TrimSpace(line[colon:])
		}
	}

	if name == "" || strings.ContainsAny(name, " \t") {
		return model.Arg{}, false
	}

	arg := model.Arg{Name: name}
	switch {
	case strings.HasPrefix(rest, "("):
		end := strings.Index(rest, ")")
		if end < 0 {
			arg.Description = rest
			break
		}
		arg.RawType = strings.Trim(strings.TrimSpace(rest[1:end]), "`")
		arg.Description = trimDescription(rest[end+1:])
	case strings.HasPrefix(rest, ":"):
		arg.Description = strings.TrimSpace(rest[1:])
	case rest == "":
		if strict {
			return model.Arg{}, false
		}
	default:
		if strict {
			return model.Arg{}, false
		}
		arg.Description = rest
	}
	return arg, true
}

func trimDescription(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{":", "—", "-"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	return s
}
