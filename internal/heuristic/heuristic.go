// # internal/heuristic/heuristic.go
package heuristic

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"docwatch/internal/model"
)

// MinScore gates suggestions. Strictly exclusive: a candidate at
// exactly 0.80 is not proposed.
const MinScore = 0.80

// Suggest proposes links between entities lacking a @docs annotation
// and sections no entity targets. For each entity the highest-scoring
// candidate above the gate wins; ties break toward the section that
// appears earliest in the document. Output order follows entity source
// order, so repeated runs are stable.
func Suggest(entities []model.CodeEntity, sections []model.DocSection) []model.Suggestion {
	targeted := make(map[string]bool)
	for _, e := range entities {
		if e.Linked() {
			targeted[e.DocID] = true
		}
	}

	type indexed struct {
		section model.DocSection
		pos     int
	}
	var open []indexed
	for i, s := range sections {
		if !targeted[s.ID] {
			open = append(open, indexed{section: s, pos: i})
		}
	}

	var suggestions []model.Suggestion
	for _, entity := range entities {
		if entity.Linked() {
			continue
		}

		name := normalizeName(entity.Name)
		best := -1
		bestScore := 0.0
		for i, cand := range open {
			score := sectionScore(name, cand.section)
			if score <= MinScore {
				continue
			}
			if best == -1 || score > bestScore ||
				(score == bestScore && cand.pos < open[best].pos) {
				best = i
				bestScore = score
			}
		}

		if best >= 0 {
			suggestions = append(suggestions, model.Suggestion{
				Entity:   entity,
				Section:  open[best].section,
				Score:    bestScore,
				SectionN: open[best].pos,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].SectionN < suggestions[j].SectionN
	})
	return suggestions
}

// sectionScore compares the normalized entity name against both the
// section title and its id, taking the better of the two. Headings are
// often prose while the id mirrors the function name, or vice versa.
func sectionScore(name string, section model.DocSection) float64 {
	score := Similarity(name, normalizeTitle(section.ID))
	if section.Title != "" {
		if s := Similarity(name, normalizeTitle(section.Title)); s > score {
			score = s
		}
	}
	return score
}

// Similarity is normalized Levenshtein similarity in [0,1]: identical
// strings score 1.0, fully disjoint strings approach 0.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// normalizeName splits an identifier on case and word boundaries and
// lowercases it: "createUser", "create_user" and "create-user" all
// normalize to "create user".
func normalizeName(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			if i > 0 && !unicode.IsUpper(runes[i-1]) {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeTitle lowercases and strips punctuation, collapsing runs of
// separators into single spaces.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
