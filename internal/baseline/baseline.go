// # internal/baseline/baseline.go
//
// Accepted-debt snapshot. Dumping the current findings lets a legacy
// codebase reach a passing state immediately; afterwards only findings
// not in the snapshot block a run. The snapshot is the single piece of
// state with a lifetime beyond one run: loaded read-only for
// validation, overwritten only by an explicit dump.
package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"docwatch/internal/errors"
	"docwatch/internal/model"
)

const FormatVersion = 1

// DefaultPath is relative to the project root.
const DefaultPath = ".docwatch/baseline.toml"

// Entry is one accepted finding with minimal provenance.
type Entry struct {
	Fingerprint string `toml:"fingerprint"`
	Kind        string `toml:"kind"`
	Entity      string `toml:"entity,omitempty"`
	DocID       string `toml:"doc_id,omitempty"`
}

type Snapshot struct {
	Version     int     `toml:"version"`
	GeneratedAt string  `toml:"generated_at"`
	Entries     []Entry `toml:"entries"`

	index map[string]bool
}

// Fingerprint reduces a finding to a stable identity: kind, entity,
// doc id and the offending argument. File paths and line numbers are
// deliberately excluded so unrelated churn does not invalidate the
// snapshot.
func Fingerprint(f model.Finding) string {
	return strings.Join([]string{f.Kind.String(), f.Entity, f.DocID, f.ArgName}, "|")
}

// FromFindings builds a snapshot of every non-Info finding.
func FromFindings(findings []model.Finding) *Snapshot {
	s := &Snapshot{
		Version:     FormatVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, f := range findings {
		if f.Severity == model.SeverityInfo {
			continue
		}
		s.Entries = append(s.Entries, Entry{
			Fingerprint: Fingerprint(f),
			Kind:        f.Kind.String(),
			Entity:      f.Entity,
			DocID:       f.DocID,
		})
	}
	return s
}

// Load reads a snapshot from disk. A missing file means cold mode and
// returns (nil, nil). An unreadable or malformed file is fatal; it must
// never be treated as an empty baseline.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeBaselineCorrupt,
			fmt.Sprintf("baseline %s unreadable", path))
	}

	var s Snapshot
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.CodeBaselineCorrupt,
			fmt.Sprintf("baseline %s malformed", path))
	}
	if s.Version != FormatVersion {
		return nil, errors.Newf(errors.CodeBaselineCorrupt,
			"baseline %s has unsupported version %d (expected %d)", path, s.Version, FormatVersion)
	}

	s.index = make(map[string]bool, len(s.Entries))
	for _, e := range s.Entries {
		s.index[e.Fingerprint] = true
	}
	return &s, nil
}

// Save writes the snapshot, creating the parent directory if needed.
// Dumping always succeeds regardless of how many Errors it records.
func (s *Snapshot) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create baseline directory %q: %w", dir, err)
		}
	}

	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(s); err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write baseline %q: %w", path, err)
	}
	return nil
}

func (s *Snapshot) Contains(f model.Finding) bool {
	if s == nil {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]bool, len(s.Entries))
		for _, e := range s.Entries {
			s.index[e.Fingerprint] = true
		}
	}
	return s.index[Fingerprint(f)]
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Reduce applies the snapshot to a finding list. Cold mode (nil
// snapshot) passes everything through unchanged. Warm mode demotes
// matched non-Info findings to Info, marking them baselined; they stay
// in the report but never block. The return counts demoted findings.
func Reduce(findings []model.Finding, s *Snapshot) ([]model.Finding, int) {
	if s == nil {
		return findings, 0
	}

	out := make([]model.Finding, 0, len(findings))
	demoted := 0
	for _, f := range findings {
		if f.Severity != model.SeverityInfo && s.Contains(f) {
			f.Baselined = true
			f.OriginalSeverity = f.Severity
			f.Severity = model.SeverityInfo
			demoted++
		}
		out = append(out, f)
	}
	return out, demoted
}
