// # internal/codeparse/rust.go
package codeparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"docwatch/internal/model"
)

type RustExtractor struct{}

func (e *RustExtractor) Extract(root *sitter.Node, source []byte, filePath string) ([]model.CodeEntity, error) {
	ctx := &extractionContext{source: source, filePath: filePath}
	kinds := map[string]bool{"function_item": true}
	walk(root, kinds, func(node *sitter.Node) {
		e.extractFunction(ctx, node)
	})
	return ctx.entities, nil
}

func (e *RustExtractor) extractFunction(ctx *extractionContext, node *sitter.Node) {
	name := ctx.text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	entity := model.CodeEntity{
		Name:     name,
		Params:   e.extractParams(ctx, node.ChildByFieldName("parameters")),
		DocID:    docsAnnotation(node, ctx.source, "line_comment", "doc_comment"),
		Location: ctx.location(node),
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		entity.ReturnType = ctx.text(ret)
	}
	ctx.entities = append(ctx.entities, entity)
}

func (e *RustExtractor) extractParams(ctx *extractionContext, params *sitter.Node) []model.Arg {
	if params == nil {
		return nil
	}

	var args []model.Arg
	for i := uint(0); i < params.ChildCount(); i++ {
		param := params.Child(i)
		// self receivers carry no documentable name.
		if param.Kind() != "parameter" {
			continue
		}

		name := ctx.text(param.ChildByFieldName("pattern"))
		if name == "" || name == "self" {
			continue
		}
		args = append(args, model.Arg{
			Name:    name,
			RawType: ctx.text(param.ChildByFieldName("type")),
		})
	}
	return args
}
