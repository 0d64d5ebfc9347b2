package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"docwatch/internal/config"
	"docwatch/internal/model"
	"docwatch/internal/report"
)

const codeSource = `package auth

// @docs: auth-login
func Login(username, password string) error {
	return nil
}

// @docs: auth-logout
func Logout(token string) {}
`

const docsSource = `# Auth API

<!-- @docs-id: auth-login -->
## Login

| Param    | Type   | Description |
|----------|--------|-------------|
| username | string | account     |
`

func writePair(t *testing.T, code, docs string) (config.Pair, string) {
	t.Helper()
	dir := t.TempDir()
	codePath := filepath.Join(dir, "auth.go")
	docsPath := filepath.Join(dir, "auth.md")
	require.NoError(t, os.WriteFile(codePath, []byte(code), 0o644))
	require.NoError(t, os.WriteFile(docsPath, []byte(docs), 0o644))
	return config.Pair{Code: codePath, Docs: docsPath}, dir
}

func newTestApp(t *testing.T, pair config.Pair, dir string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Pairs = []config.Pair{pair}
	cfg.Baseline.Path = filepath.Join(dir, "baseline.toml")
	cfg.History.Path = filepath.Join(dir, "history.db")

	var out bytes.Buffer
	a, err := New(cfg, report.New(&out, true))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, &out
}

func TestCheckPair(t *testing.T) {
	pair, dir := writePair(t, codeSource, docsSource)
	a, _ := newTestApp(t, pair, dir)

	result, err := a.CheckPair(pair)
	require.NoError(t, err)
	require.Equal(t, 2, result.EntityCount)
	require.Equal(t, 1, result.SectionCount)

	byKind := map[model.Kind]int{}
	for _, f := range result.Findings {
		byKind[f.Kind]++
	}
	// Login links and misses password; Logout's id has no section.
	require.Equal(t, 1, byKind[model.KindLinkVerified])
	require.Equal(t, 1, byKind[model.KindMissingArgument])
	require.Equal(t, 1, byKind[model.KindLinkMissing])
	require.True(t, result.Blocking())
	require.NotEmpty(t, result.RunID)
}

func TestCheckRendersAndBlocks(t *testing.T) {
	pair, dir := writePair(t, codeSource, docsSource)
	a, out := newTestApp(t, pair, dir)

	blocking, err := a.Check()
	require.NoError(t, err)
	require.True(t, blocking)
	require.Contains(t, out.String(), "auth-logout")
	require.Contains(t, out.String(), "out of sync")
}

func TestBaselineRoundTrip(t *testing.T) {
	pair, dir := writePair(t, codeSource, docsSource)
	a, _ := newTestApp(t, pair, dir)

	require.NoError(t, a.WriteBaseline())

	// Same findings again: everything is accepted debt now.
	result, err := a.CheckPair(pair)
	require.NoError(t, err)
	require.False(t, result.Blocking())
	require.Equal(t, 2, result.Demoted)
	for _, f := range result.Findings {
		require.Equal(t, model.SeverityInfo, f.Severity)
	}

	// A fresh instance reloads the snapshot from disk.
	b, _ := newTestApp(t, pair, dir)
	result, err = b.CheckPair(pair)
	require.NoError(t, err)
	require.False(t, result.Blocking())
}

func TestSuggestionsForUnlinkedEntity(t *testing.T) {
	code := `package users

func createUser(name string) {}
`
	docs := `<!-- @docs-id: create-user -->
## Create User
`
	pair, dir := writePair(t, code, docs)
	a, _ := newTestApp(t, pair, dir)

	byPair, err := a.Suggestions()
	require.NoError(t, err)
	suggestions := byPair[pair]
	require.Len(t, suggestions, 1)
	require.Equal(t, "createUser", suggestions[0].Entity.Name)
	require.Equal(t, "create-user", suggestions[0].Section.ID)
}

func TestCheckPairParseErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	codePath := filepath.Join(dir, "auth.css")
	docsPath := filepath.Join(dir, "auth.md")
	require.NoError(t, os.WriteFile(codePath, []byte("body {}"), 0o644))
	require.NoError(t, os.WriteFile(docsPath, []byte("# x"), 0o644))

	pair := config.Pair{Code: codePath, Docs: docsPath}
	a, _ := newTestApp(t, pair, dir)

	_, err := a.CheckPair(pair)
	require.Error(t, err)
}
