// # internal/codeparse/javascript.go
package codeparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"docwatch/internal/model"
)

// JavaScriptExtractor handles plain JS, where parameters never carry a
// type token and therefore can never trigger a type mismatch.
type JavaScriptExtractor struct{}

func (e *JavaScriptExtractor) Extract(root *sitter.Node, source []byte, filePath string) ([]model.CodeEntity, error) {
	ctx := &extractionContext{source: source, filePath: filePath}
	kinds := map[string]bool{
		"function_declaration": true,
		"method_definition":    true,
		"export_statement":     true,
	}
	walk(root, kinds, func(node *sitter.Node) {
		e.extractCallable(ctx, node)
	})
	return ctx.entities, nil
}

func (e *JavaScriptExtractor) extractCallable(ctx *extractionContext, node *sitter.Node) {
	outer := node
	funcNode := node
	if node.Kind() == "export_statement" {
		funcNode = nil
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "function_declaration" {
				funcNode = child
				break
			}
		}
		if funcNode == nil {
			return
		}
	}

	name := ctx.text(funcNode.ChildByFieldName("name"))
	if name == "" {
		return
	}

	ctx.entities = append(ctx.entities, model.CodeEntity{
		Name:     name,
		Params:   e.extractParams(ctx, funcNode.ChildByFieldName("parameters")),
		DocID:    docsAnnotation(outer, ctx.source, "comment"),
		Location: ctx.location(funcNode),
	})
}

func (e *JavaScriptExtractor) extractParams(ctx *extractionContext, params *sitter.Node) []model.Arg {
	if params == nil {
		return nil
	}

	var args []model.Arg
	for i := uint(0); i < params.ChildCount(); i++ {
		param := params.Child(i)
		if param.Kind() == "identifier" {
			args = append(args, model.Arg{Name: ctx.text(param)})
		}
	}
	return args
}
