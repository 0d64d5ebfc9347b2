// # internal/scaffold/writer.go
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// commentLeader returns the annotation comment prefix for a source
// file. Rust keeps the doc-comment form so the annotation sits with
// any existing doc comment block.
func commentLeader(path string) string {
	switch filepath.Ext(path) {
	case ".py":
		return "#"
	case ".rs":
		return "///"
	default:
		return "//"
	}
}

// AnnotationLine renders the comment linking an entity to a doc id,
// without indentation.
func AnnotationLine(path, docID string) string {
	return fmt.Sprintf("%s @docs: [%s]", commentLeader(path), docID)
}

// InsertAnnotation writes a @docs annotation directly above the
// declaration at the given 1-based line, reusing that line's
// indentation. The file is rewritten in place.
func InsertAnnotation(path string, line int, docID string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	hadTrailingNewline := strings.HasSuffix(string(data), "\n")
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if line < 1 || line > len(lines) {
		return fmt.Errorf("line %d out of range for %q (%d lines)", line, path, len(lines))
	}

	target := lines[line-1]
	indent := target[:len(target)-len(strings.TrimLeft(target, " \t"))]
	annotation := indent + AnnotationLine(path, docID)

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:line-1]...)
	out = append(out, annotation)
	out = append(out, lines[line-1:]...)

	content := strings.Join(out, "\n")
	if hadTrailingNewline {
		content += "\n"
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}
