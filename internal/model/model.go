// # internal/model/model.go
package model

import "fmt"

// Arg is a named argument on either side of a link: a code parameter or
// a documented argument. RawType is the literal token as written; it is
// empty for untyped languages and for docs that omit types.
type Arg struct {
	Name        string
	RawType     string
	Description string
}

// CodeEntity is a function or method extracted from a source file.
// Entities are created fresh per pipeline run and never persisted.
type CodeEntity struct {
	Name       string
	Params     []Arg
	ReturnType string
	DocID      string // empty when the declaration carries no @docs annotation
	Location   Location
}

// Linked reports whether the entity declares a documentation link.
func (e CodeEntity) Linked() bool { return e.DocID != "" }

// DocSection is a documentation section marked with a @docs-id comment.
// Sections correlate to entities only through the id string.
type DocSection struct {
	ID       string
	Title    string
	Args     []Arg
	Location Location
}

type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	default:
		return "Info"
	}
}

// Kind identifies the validation outcome a finding reports. The
// declaration order is the deterministic emit order within one entity.
type Kind int

const (
	KindLinkVerified Kind = iota
	KindLinkMissing
	KindMissingArgument
	KindGhostArgument
	KindTypeMismatch
)

func (k Kind) String() string {
	switch k {
	case KindLinkVerified:
		return "LinkVerified"
	case KindLinkMissing:
		return "LinkMissing"
	case KindMissingArgument:
		return "MissingArgument"
	case KindGhostArgument:
		return "GhostArgument"
	case KindTypeMismatch:
		return "TypeMismatch"
	default:
		return "Unknown"
	}
}

// Finding is a single validation result. Findings are accumulated
// values, never raised; the validator performs no I/O.
type Finding struct {
	Severity Severity
	Kind     Kind
	Location Location
	Entity   string
	DocID    string
	ArgName  string // the offending argument, for arg-level kinds
	Message  string
	Hint     string

	// Baselined marks a finding that matched the accepted-debt
	// snapshot. OriginalSeverity keeps what it was before demotion.
	Baselined        bool
	OriginalSeverity Severity
}

// Blocking reports whether the finding should fail a check run.
func (f Finding) Blocking() bool {
	return !f.Baselined && f.Severity == SeverityError
}

// Suggestion is a heuristic link proposal between an unlinked entity
// and an untargeted section. Accepting it is a collaborator's concern.
type Suggestion struct {
	Entity   CodeEntity
	Section  DocSection
	Score    float64
	SectionN int // section position in document order, for stable ties
}
