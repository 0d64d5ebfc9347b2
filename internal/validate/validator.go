// # internal/validate/validator.go
package validate

import (
	"fmt"

	"docwatch/internal/errors"
	"docwatch/internal/model"
	"docwatch/internal/typenorm"
)

// Validator cross-references code entities against documentation
// sections. It performs no I/O; every outcome is an accumulated
// Finding. The only failure mode is the duplicate-id precondition,
// detected while building the index, before any validation runs.
type Validator struct {
	aliases typenorm.Aliases
}

func New(aliases typenorm.Aliases) *Validator {
	return &Validator{aliases: aliases}
}

// BuildIndex materializes the id -> section lookup. Two distinct
// sections sharing one id make every link against it ambiguous, so the
// collision is fatal for the document rather than a finding.
func BuildIndex(sections []model.DocSection) (map[string]model.DocSection, error) {
	index := make(map[string]model.DocSection, len(sections))
	for _, s := range sections {
		if prev, ok := index[s.ID]; ok {
			return nil, errors.Newf(errors.CodeDuplicateDocID,
				"documentation id %q declared at both %s and %s",
				s.ID, prev.Location, s.Location)
		}
		index[s.ID] = s
	}
	return index, nil
}

// Validate emits findings in deterministic order: entities in source
// order, and within one entity the kind order LinkVerified/LinkMissing,
// MissingArgument (parameter order), GhostArgument (argument order),
// TypeMismatch (parameter order). Repeated runs over unchanged input
// produce identical output, which baseline diffing depends on.
func (v *Validator) Validate(entities []model.CodeEntity, sections []model.DocSection) ([]model.Finding, error) {
	index, err := BuildIndex(sections)
	if err != nil {
		return nil, err
	}

	var findings []model.Finding
	for _, entity := range entities {
		if !entity.Linked() {
			// Unlinked entities are the heuristic matcher's concern.
			continue
		}

		section, ok := index[entity.DocID]
		if !ok {
			findings = append(findings, model.Finding{
				Severity: model.SeverityError,
				Kind:     model.KindLinkMissing,
				Location: entity.Location,
				Entity:   entity.Name,
				DocID:    entity.DocID,
				Message:  fmt.Sprintf("documentation id %q not found in the doc file", entity.DocID),
				Hint:     fmt.Sprintf("add `<!-- @docs-id: %s -->` to the documentation file", entity.DocID),
			})
			continue
		}

		title := section.Title
		if title == "" {
			title = section.ID
		}
		findings = append(findings, model.Finding{
			Severity: model.SeverityInfo,
			Kind:     model.KindLinkVerified,
			Location: entity.Location,
			Entity:   entity.Name,
			DocID:    entity.DocID,
			Message:  fmt.Sprintf("link verified: %s <-> section %q", entity.Name, title),
		})

		findings = append(findings, v.compareArgs(entity, section)...)
	}

	return findings, nil
}

func (v *Validator) compareArgs(entity model.CodeEntity, section model.DocSection) []model.Finding {
	documented := make(map[string]model.Arg, len(section.Args))
	for _, a := range section.Args {
		documented[a.Name] = a
	}
	declared := make(map[string]model.Arg, len(entity.Params))
	for _, p := range entity.Params {
		declared[p.Name] = p
	}

	var findings []model.Finding

	for _, param := range entity.Params {
		if _, ok := documented[param.Name]; ok {
			continue
		}
		findings = append(findings, model.Finding{
			Severity: model.SeverityWarning,
			Kind:     model.KindMissingArgument,
			Location: entity.Location,
			Entity:   entity.Name,
			DocID:    entity.DocID,
			ArgName:  param.Name,
			Message:  fmt.Sprintf("parameter %q exists in code but is not documented", param.Name),
			Hint:     fmt.Sprintf("document %q in section %q", param.Name, entity.DocID),
		})
	}

	for _, arg := range section.Args {
		if _, ok := declared[arg.Name]; ok {
			continue
		}
		findings = append(findings, model.Finding{
			Severity: model.SeverityWarning,
			Kind:     model.KindGhostArgument,
			Location: entity.Location,
			Entity:   entity.Name,
			DocID:    entity.DocID,
			ArgName:  arg.Name,
			Message:  fmt.Sprintf("ghost argument: %q is documented but missing from %s's signature", arg.Name, entity.Name),
			Hint:     fmt.Sprintf("remove %q from the docs or add it to the function signature", arg.Name),
		})
	}

	for _, param := range entity.Params {
		arg, ok := documented[param.Name]
		if !ok || param.RawType == "" || arg.RawType == "" {
			continue
		}
		codeNorm := typenorm.Normalize(param.RawType, v.aliases)
		docNorm := typenorm.Normalize(arg.RawType, v.aliases)
		// Unknown on either side carries no information and must not
		// manufacture a false positive.
		if codeNorm == typenorm.Unknown || docNorm == typenorm.Unknown {
			continue
		}
		if codeNorm != docNorm {
			findings = append(findings, model.Finding{
				Severity: model.SeverityWarning,
				Kind:     model.KindTypeMismatch,
				Location: entity.Location,
				Entity:   entity.Name,
				DocID:    entity.DocID,
				ArgName:  param.Name,
				Message: fmt.Sprintf("type mismatch for %q: code has %q (%s), docs say %q (%s)",
					param.Name, param.RawType, codeNorm, arg.RawType, docNorm),
				Hint: fmt.Sprintf("update the documented type of %q to %q, or add an alias to the config", param.Name, param.RawType),
			})
		}
	}

	return findings
}

// HasBlocking reports whether any finding should fail the run.
func HasBlocking(findings []model.Finding) bool {
	for _, f := range findings {
		if f.Blocking() {
			return true
		}
	}
	return false
}
