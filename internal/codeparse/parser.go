// # internal/codeparse/parser.go
package codeparse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"docwatch/internal/errors"
	"docwatch/internal/model"
)

// MaxFileSize caps source input at 10 MB.
const MaxFileSize = 10 * 1024 * 1024

// Extractor turns a parsed syntax tree into code entities.
type Extractor interface {
	Extract(root *sitter.Node, source []byte, filePath string) ([]model.CodeEntity, error)
}

type Parser struct {
	languages  map[string]*sitter.Language
	extractors map[string]Extractor
	extensions map[string]string
}

func NewParser() *Parser {
	p := &Parser{
		languages:  make(map[string]*sitter.Language),
		extractors: make(map[string]Extractor),
		extensions: map[string]string{
			".go":  "go",
			".py":  "python",
			".rs":  "rust",
			".ts":  "typescript",
			".tsx": "tsx",
			".js":  "javascript",
			".jsx": "javascript",
		},
	}

	p.languages["go"] = sitter.NewLanguage(tree_sitter_go.Language())
	p.languages["python"] = sitter.NewLanguage(tree_sitter_python.Language())
	p.languages["rust"] = sitter.NewLanguage(tree_sitter_rust.Language())
	p.languages["typescript"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	p.languages["tsx"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	p.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())

	p.extractors["go"] = &GoExtractor{}
	p.extractors["python"] = &PythonExtractor{}
	p.extractors["rust"] = &RustExtractor{}
	p.extractors["typescript"] = &TypeScriptExtractor{}
	p.extractors["tsx"] = &TypeScriptExtractor{}
	p.extractors["javascript"] = &JavaScriptExtractor{}

	return p
}

// ParseFile reads and parses one source file, auto-detecting the
// language from the extension.
func (p *Parser) ParseFile(path string) ([]model.CodeEntity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParseFailure, "stat source file")
	}
	if info.Size() > MaxFileSize {
		return nil, errors.Newf(errors.CodeParseFailure,
			"source file too large (%.1f MB, max %d MB): %s",
			float64(info.Size())/(1024*1024), MaxFileSize/(1024*1024), path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParseFailure, "read source file")
	}
	return p.ParseSource(content, path)
}

// ParseSource parses source bytes for the language detected from path.
func (p *Parser) ParseSource(content []byte, path string) ([]model.CodeEntity, error) {
	lang := p.detectLanguage(path)
	if lang == "" {
		return nil, errors.Newf(errors.CodeNotSupported,
			"unsupported file type %q (supported: %s)",
			filepath.Ext(path), strings.Join(p.SupportedExtensions(), " "))
	}

	grammar := p.languages[lang]
	extractor := p.extractors[lang]

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.Newf(errors.CodeParseFailure, "parse failed: %s", path)
	}
	defer tree.Close()

	entities, err := extractor.Extract(tree.RootNode(), content, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParseFailure, "extraction failed")
	}
	return entities, nil
}

func (p *Parser) detectLanguage(path string) string {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}

// IsSupportedPath reports whether a file would be parsed at all.
func (p *Parser) IsSupportedPath(path string) bool {
	return p.detectLanguage(path) != ""
}

func (p *Parser) SupportedExtensions() []string {
	out := make([]string, 0, len(p.extensions))
	for ext := range p.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
