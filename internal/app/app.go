package app

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"docwatch/internal/baseline"
	"docwatch/internal/codeparse"
	"docwatch/internal/config"
	"docwatch/internal/docparse"
	"docwatch/internal/heuristic"
	"docwatch/internal/history"
	"docwatch/internal/model"
	"docwatch/internal/observability"
	"docwatch/internal/report"
	"docwatch/internal/validate"
	"docwatch/internal/watcher"
)

// RunResult is the outcome of validating one code/docs pair.
type RunResult struct {
	RunID        string
	Pair         config.Pair
	Findings     []model.Finding
	Suggestions  []model.Suggestion
	Demoted      int
	EntityCount  int
	SectionCount int
	Duration     time.Duration
}

// Blocking reports whether the result should fail a check run.
func (r RunResult) Blocking() bool {
	return validate.HasBlocking(r.Findings)
}

type App struct {
	Config    *config.Config
	Parser    *codeparse.Parser
	Validator *validate.Validator
	Renderer  *report.Renderer

	snapshot *baseline.Snapshot
	store    *history.Store

	// generation invalidates in-flight watch runs when a newer change
	// batch arrives.
	generation atomic.Uint64
	runMu      sync.Mutex
}

func New(cfg *config.Config, renderer *report.Renderer) (*App, error) {
	a := &App{
		Config:    cfg,
		Parser:    codeparse.NewParser(),
		Validator: validate.New(cfg.Types.Aliases),
		Renderer:  renderer,
	}

	snapshot, err := baseline.Load(cfg.Baseline.Path)
	if err != nil {
		return nil, err
	}
	a.snapshot = snapshot
	if snapshot != nil {
		slog.Debug("baseline loaded", "path", cfg.Baseline.Path, "entries", snapshot.Len())
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	return a, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// CheckPair runs the full pipeline for one pair: parse both sides,
// validate, demote baselined findings, and collect link suggestions
// for entities without an annotation.
func (a *App) CheckPair(pair config.Pair) (RunResult, error) {
	start := time.Now()
	result := RunResult{
		RunID: uuid.NewString(),
		Pair:  pair,
	}
	log := slog.With("run_id", result.RunID, "code", pair.Code, "docs", pair.Docs)

	entities, err := a.Parser.ParseFile(pair.Code)
	if err != nil {
		observability.RunsTotal.WithLabelValues("parse_error").Inc()
		return result, err
	}
	sections, err := docparse.ParseFile(pair.Docs)
	if err != nil {
		observability.RunsTotal.WithLabelValues("parse_error").Inc()
		return result, err
	}
	result.EntityCount = len(entities)
	result.SectionCount = len(sections)

	findings, err := a.Validator.Validate(entities, sections)
	if err != nil {
		observability.RunsTotal.WithLabelValues("validation_error").Inc()
		return result, err
	}
	findings, demoted := baseline.Reduce(findings, a.snapshot)
	result.Findings = findings
	result.Demoted = demoted

	result.Suggestions = heuristic.Suggest(entities, sections)
	result.Duration = time.Since(start)

	a.recordRun(result, log)
	log.Debug("pair checked",
		"entities", result.EntityCount,
		"sections", result.SectionCount,
		"findings", len(result.Findings),
		"demoted", result.Demoted,
		"duration", result.Duration,
	)
	return result, nil
}

func (a *App) recordRun(result RunResult, log *slog.Logger) {
	var infos, warnings, errs int
	for _, f := range result.Findings {
		switch f.Severity {
		case model.SeverityError:
			errs++
		case model.SeverityWarning:
			warnings++
		default:
			infos++
		}
		observability.FindingsTotal.WithLabelValues(f.Severity.String()).Inc()
	}
	if result.Demoted > 0 {
		observability.BaselinedTotal.Add(float64(result.Demoted))
	}
	observability.SuggestionsTotal.Add(float64(len(result.Suggestions)))
	observability.RunDuration.Observe(result.Duration.Seconds())
	if errs > 0 {
		observability.RunsTotal.WithLabelValues("out_of_sync").Inc()
	} else {
		observability.RunsTotal.WithLabelValues("in_sync").Inc()
	}

	if a.store == nil {
		return
	}
	err := a.store.SaveRun(history.Run{
		RunID:          result.RunID,
		Timestamp:      time.Now().UTC(),
		Mode:           "check",
		CodeFile:       result.Pair.Code,
		DocsFile:       result.Pair.Docs,
		EntityCount:    result.EntityCount,
		SectionCount:   result.SectionCount,
		InfoCount:      infos,
		WarningCount:   warnings,
		ErrorCount:     errs,
		BaselinedCount: result.Demoted,
		Duration:       result.Duration,
	})
	if err != nil {
		log.Warn("failed to record run history", "error", err)
	}
}

// Check validates every configured pair and renders the combined
// report. It returns true when any finding blocks.
func (a *App) Check() (bool, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	blocking := false
	var all []model.Finding
	demoted := 0
	for _, pair := range a.Config.Pairs {
		result, err := a.CheckPair(pair)
		if err != nil {
			return true, err
		}
		if a.Config.Alerts.Terminal {
			a.Renderer.RenderFindings(result.Findings)
			a.Renderer.RenderSuggestions(result.Suggestions)
		}
		all = append(all, result.Findings...)
		demoted += result.Demoted
		if result.Blocking() {
			blocking = true
		}
	}
	if a.Config.Alerts.Terminal {
		a.Renderer.RenderSummary(all, demoted)
	}
	return blocking, nil
}

// WriteBaseline validates every pair without baseline demotion and
// snapshots the surviving non-Info findings as accepted debt.
func (a *App) WriteBaseline() error {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	var all []model.Finding
	for _, pair := range a.Config.Pairs {
		entities, err := a.Parser.ParseFile(pair.Code)
		if err != nil {
			return err
		}
		sections, err := docparse.ParseFile(pair.Docs)
		if err != nil {
			return err
		}
		findings, err := a.Validator.Validate(entities, sections)
		if err != nil {
			return err
		}
		all = append(all, findings...)
	}

	snapshot := baseline.FromFindings(all)
	if err := snapshot.Save(a.Config.Baseline.Path); err != nil {
		return err
	}
	a.snapshot = snapshot
	slog.Info("baseline written", "path", a.Config.Baseline.Path, "entries", snapshot.Len())
	return nil
}

// Watch re-runs the check whenever a pair file changes. A change that
// arrives while a run is in flight supersedes it: the stale run's
// output is discarded.
func (a *App) Watch() (*watcher.Watcher, error) {
	paths := make([]string, 0, len(a.Config.Pairs)*2)
	for _, pair := range a.Config.Pairs {
		paths = append(paths, pair.Code, pair.Docs)
	}

	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, a.Config.Exclude.Files, a.handleChanges)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(paths); err != nil {
		_ = w.Close()
		return nil, err
	}
	slog.Info("watching", "files", len(paths), "debounce", a.Config.Watch.Debounce)
	return w, nil
}

func (a *App) handleChanges(paths []string) {
	observability.WatcherEventsTotal.Inc()
	gen := a.generation.Add(1)
	slog.Info("detected changes", "count", len(paths))

	go func() {
		a.runMu.Lock()
		defer a.runMu.Unlock()

		cleared := false
		for _, pair := range a.Config.Pairs {
			result, err := a.CheckPair(pair)
			if a.generation.Load() != gen {
				observability.StaleRunsDiscardedTotal.Inc()
				slog.Debug("discarding superseded run")
				return
			}
			if err != nil {
				slog.Error("check failed", "code", pair.Code, "docs", pair.Docs, "error", err)
				continue
			}
			if a.Config.Alerts.Terminal {
				if !cleared {
					a.Renderer.Clear()
					cleared = true
				}
				// watch runs render warnings and errors only
				a.Renderer.RenderFindings(withoutInfo(result.Findings))
				a.Renderer.RenderSuggestions(result.Suggestions)
				a.Renderer.RenderSummary(result.Findings, result.Demoted)
			}
		}
	}()
}

func withoutInfo(findings []model.Finding) []model.Finding {
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Severity == model.SeverityInfo {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Suggestions runs the heuristic matcher over every pair without
// validation, for scaffold mode.
func (a *App) Suggestions() (map[config.Pair][]model.Suggestion, error) {
	out := make(map[config.Pair][]model.Suggestion, len(a.Config.Pairs))
	for _, pair := range a.Config.Pairs {
		entities, err := a.Parser.ParseFile(pair.Code)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", pair.Code, err)
		}
		sections, err := docparse.ParseFile(pair.Docs)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", pair.Docs, err)
		}
		out[pair] = heuristic.Suggest(entities, sections)
	}
	return out, nil
}
