// # internal/scaffold/scaffold.go
package scaffold

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"docwatch/internal/model"
)

// Options control how suggestions are applied.
type Options struct {
	Force  bool // accept every suggestion without asking
	DryRun bool // report what would change, write nothing
}

// Apply writes @docs annotations for the given suggestions. Unless
// Force is set, each suggestion is confirmed interactively first.
// Insertions are applied bottom-up per file so earlier line numbers
// stay valid.
func Apply(suggestions []model.Suggestion, opts Options, out io.Writer) (int, error) {
	accepted := suggestions
	if !opts.Force && !opts.DryRun {
		var err error
		accepted, err = Confirm(suggestions)
		if err != nil {
			return 0, err
		}
	}
	if len(accepted) == 0 {
		return 0, nil
	}

	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].Entity.Location.File != accepted[j].Entity.Location.File {
			return accepted[i].Entity.Location.File < accepted[j].Entity.Location.File
		}
		return accepted[i].Entity.Location.Line > accepted[j].Entity.Location.Line
	})

	written := 0
	for _, s := range accepted {
		if opts.DryRun {
			fmt.Fprintf(out, "would annotate %s with %s\n",
				s.Entity.Location.String(), AnnotationLine(s.Entity.Location.File, s.Section.ID))
			written++
			continue
		}
		if err := InsertAnnotation(s.Entity.Location.File, s.Entity.Location.Line, s.Section.ID); err != nil {
			return written, fmt.Errorf("annotate %s: %w", s.Entity.Location.String(), err)
		}
		slog.Info("annotation written", "entity", s.Entity.Name, "doc_id", s.Section.ID, "location", s.Entity.Location.String())
		written++
	}
	return written, nil
}
