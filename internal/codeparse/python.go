// # internal/codeparse/python.go
package codeparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"docwatch/internal/model"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) ([]model.CodeEntity, error) {
	ctx := &extractionContext{source: source, filePath: filePath}
	kinds := map[string]bool{"function_definition": true}
	walk(root, kinds, func(node *sitter.Node) {
		e.extractFunction(ctx, node)
	})
	return ctx.entities, nil
}

func (e *PythonExtractor) extractFunction(ctx *extractionContext, node *sitter.Node) {
	name := ctx.text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	ctx.entities = append(ctx.entities, model.CodeEntity{
		Name:     name,
		Params:   e.extractParams(ctx, node.ChildByFieldName("parameters")),
		DocID:    docsAnnotation(node, ctx.source, "comment"),
		Location: ctx.location(node),
	})
}

func (e *PythonExtractor) extractParams(ctx *extractionContext, params *sitter.Node) []model.Arg {
	if params == nil {
		return nil
	}

	var args []model.Arg
	add := func(name, rawType string) {
		if name == "" || name == "self" || name == "cls" {
			return
		}
		args = append(args, model.Arg{Name: name, RawType: rawType})
	}

	for i := uint(0); i < params.ChildCount(); i++ {
		param := params.Child(i)
		switch param.Kind() {
		case "identifier":
			add(ctx.text(param), "")
		case "typed_parameter", "typed_default_parameter":
			var name string
			for j := uint(0); j < param.ChildCount(); j++ {
				if child := param.Child(j); child.Kind() == "identifier" {
					name = ctx.text(child)
					break
				}
			}
			add(name, ctx.text(param.ChildByFieldName("type")))
		case "default_parameter":
			add(ctx.text(param.ChildByFieldName("name")), "")
		}
	}
	return args
}
