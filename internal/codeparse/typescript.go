// # internal/codeparse/typescript.go
package codeparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"docwatch/internal/model"
)

type TypeScriptExtractor struct{}

func (e *TypeScriptExtractor) Extract(root *sitter.Node, source []byte, filePath string) ([]model.CodeEntity, error) {
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

func (e *TypeScriptExtractor) extractCallable(ctx *extractionContext, node *sitter.Node) {
	// For exported functions the annotation comment sits next to the
	// export statement, so scan from the outer node.
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

	entity := model.CodeEntity{
		Name:     name,
		Params:   e.extractParams(ctx, funcNode.ChildByFieldName("parameters")),
		DocID:    docsAnnotation(outer, ctx.source, "comment"),
		Location: ctx.location(funcNode),
	}
	if ret := funcNode.ChildByFieldName("return_type"); ret != nil {
		entity.ReturnType = typeText(ctx, ret)
	}
	ctx.entities = append(ctx.entities, entity)
}

func (e *TypeScriptExtractor) extractParams(ctx *extractionContext, params *sitter.Node) []model.Arg {
	if params == nil {
		return nil
	}

	var args []model.Arg
	for i := uint(0); i < params.ChildCount(); i++ {
		param := params.Child(i)
		if param.Kind() != "required_parameter" && param.Kind() != "optional_parameter" {
			continue
		}

		name := ctx.text(param.ChildByFieldName("pattern"))
		if name == "" {
			continue
		}
		args = append(args, model.Arg{
			Name:    name,
			RawType: typeText(ctx, param.ChildByFieldName("type")),
		})
	}
	return args
}

// typeText strips the leading ":" from a type_annotation node.
func typeText(ctx *extractionContext, annotation *sitter.Node) string {
	if annotation == nil {
		return ""
	}
	for i := uint(0); i < annotation.ChildCount(); i++ {
		child := annotation.Child(i)
		if child.Kind() != ":" {
			return ctx.text(child)
		}
	}
	return ""
}
