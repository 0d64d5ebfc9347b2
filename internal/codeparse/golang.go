// # internal/codeparse/golang.go
package codeparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"docwatch/internal/model"
)

type GoExtractor struct{}

func (e *GoExtractor) Extract(root *sitter.Node, source []byte, filePath string) ([]model.CodeEntity, error) {
	ctx := &extractionContext{source: source, filePath: filePath}
	kinds := map[string]bool{
		"function_declaration": true,
		"method_declaration":   true,
	}
	walk(root, kinds, func(node *sitter.Node) {
		e.extractCallable(ctx, node)
	})
	return ctx.entities, nil
}

func (e *GoExtractor) extractCallable(ctx *extractionContext, node *sitter.Node) {
	name := ctx.text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	entity := model.CodeEntity{
		Name:     name,
		Params:   e.extractParams(ctx, node.ChildByFieldName("parameters")),
		DocID:    docsAnnotation(node, ctx.source, "comment"),
		Location: ctx.location(node),
	}
	if result := node.ChildByFieldName("result"); result != nil {
		entity.ReturnType = ctx.text(result)
	}
	ctx.entities = append(ctx.entities, entity)
}

func (e *GoExtractor) extractParams(ctx *extractionContext, params *sitter.Node) []model.Arg {
	if params == nil {
		return nil
	}

	var args []model.Arg
	for i := uint(0); i < params.ChildCount(); i++ {
		decl := params.Child(i)
		if decl.Kind() != "parameter_declaration" && decl.Kind() != "variadic_parameter_declaration" {
			continue
		}

		rawType := ctx.text(decl.ChildByFieldName("type"))

		// One declaration may bind several names: func f(a, b int).
		for j := uint(0); j < decl.ChildCount(); j++ {
			child := decl.Child(j)
			if child.Kind() == "identifier" {
				args = append(args, model.Arg{Name: ctx.text(child), RawType: rawType})
			}
		}
	}
	return args
}
