// # internal/report/report.go
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"docwatch/internal/model"
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))
)

// Renderer writes findings to a terminal. With Plain set, styling is
// skipped so output stays grep-friendly in pipes and CI logs.
type Renderer struct {
	Out   io.Writer
	Plain bool
}

func New(out io.Writer, plain bool) *Renderer {
	return &Renderer{Out: out, Plain: plain}
}

func (r *Renderer) severityTag(sev model.Severity) string {
	tag := fmt.Sprintf("[%s]", sev.String())
	if r.Plain {
		return tag
	}
	switch sev {
	case model.SeverityError:
		return errorStyle.Render(tag)
	case model.SeverityWarning:
		return warningStyle.Render(tag)
	default:
		return infoStyle.Render(tag)
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.Plain {
		return text
	}
	return s.Render(text)
}

// RenderFinding prints one finding in the three-line form:
// severity and location, then the explanation, then the hint or the
// linked doc id when one exists.
func (r *Renderer) RenderFinding(f model.Finding) {
	tag := r.severityTag(f.Severity)
	if f.Baselined {
		tag += " (baselined " + f.OriginalSeverity.String() + ")"
	}
	fmt.Fprintf(r.Out, "%s %s\n", tag, r.style(locationStyle, f.Location.String()))
	fmt.Fprintf(r.Out, "  -> %s\n", f.Message)
	switch {
	case f.Hint != "":
		fmt.Fprintf(r.Out, "  -> %s\n", f.Hint)
	case f.DocID != "":
		fmt.Fprintf(r.Out, "  -> linked to doc section %q\n", f.DocID)
	}
}

// RenderFindings prints all findings in the order given.
func (r *Renderer) RenderFindings(findings []model.Finding) {
	for _, f := range findings {
		r.RenderFinding(f)
	}
}

// Clear wipes the terminal between watch runs. A no-op in plain mode
// so piped output stays append-only.
func (r *Renderer) Clear() {
	if r.Plain {
		return
	}
	fmt.Fprint(r.Out, "\033[2J\033[H")
}

// RenderSummary prints severity counts and the overall verdict.
func (r *Renderer) RenderSummary(findings []model.Finding, demoted int) {
	var infos, warnings, errs int
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityError:
			errs++
		case model.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}

	fmt.Fprintf(r.Out, "\n%d error(s), %d warning(s), %d info\n", errs, warnings, infos)
	if demoted > 0 {
		fmt.Fprintf(r.Out, "%d finding(s) matched the baseline\n", demoted)
	}
	if errs == 0 {
		fmt.Fprintln(r.Out, r.style(successStyle, "documentation is in sync"))
	} else {
		fmt.Fprintln(r.Out, r.style(errorStyle, "documentation is out of sync"))
	}
}

// RenderSuggestions prints heuristic link suggestions.
func (r *Renderer) RenderSuggestions(suggestions []model.Suggestion) {
	for _, s := range suggestions {
		fmt.Fprintf(r.Out, "%s %s\n", r.style(warningStyle, "[SUGGEST]"), r.style(locationStyle, s.Entity.Location.String()))
		fmt.Fprintf(r.Out, "  -> %q looks like doc section %q (%.0f%% match)\n",
			s.Entity.Name, s.Section.ID, s.Score*100)
	}
}
