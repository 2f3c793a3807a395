package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/diagnostics"
	"github.com/wyldefox/rustlens/internal/engine"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	log := diagnostics.New()
	return engine.New(config.Default(), log)
}

// TestCheckFileValidSource and TestCheckFileSyntaxError mirror
// original_source/src/main.rs's own check_file test pair: one well-formed
// file, one with an unterminated string literal.
func TestCheckFileValidSource(t *testing.T) {
	e := newEngine(t)

	result, err := e.CheckFile("lib.rs", []byte("pub fn greet(name: &str) -> String { format!(\"hi {}\", name) }"))
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "greet", result.Functions[0].Name)
	assert.True(t, result.Functions[0].IsPublic)
}

func TestCheckFileSyntaxError(t *testing.T) {
	e := newEngine(t)

	result, err := e.CheckFile("broken.rs", []byte("fn broken() { let s = \"unterminated; }"))
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "parse_error", result.Diagnostics[0].Kind)
}

func TestIndexWorkspaceThenGotoDefinitionAndFindReferences(t *testing.T) {
	e := newEngine(t)
	dir := t.TempDir()
	writeFile(t, dir, "lib.rs", `
use crate::helper::assist;

pub struct Widget {
    label: String,
}

pub fn build(name: &str) -> Widget {
    assist(name);
    Widget { label: name.to_string() }
}
`)
	writeFile(t, dir, "helper.rs", `
pub fn assist(name: &str) {
    println!("{}", name);
}
`)

	_, err := e.IndexWorkspace(context.Background(), dir)
	require.NoError(t, err)

	defs, err := e.GotoDefinition("Widget")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "lib.rs", defs[0].File)

	refs, err := e.FindReferences("assist")
	require.NoError(t, err)
	require.NotEmpty(t, refs)
}

func TestGotoDefinitionBeforeIndexingIsInvalidInput(t *testing.T) {
	e := newEngine(t)
	_, err := e.GotoDefinition("anything")
	require.Error(t, err)
}

func TestIndexWorkspaceReportsGraphsEntitiesAndSmells(t *testing.T) {
	e := newEngine(t)
	dir := t.TempDir()
	writeFile(t, dir, "lib.rs", `
use crate::helper::assist;

pub struct Widget {
    label: String,
}

pub fn build(name: &str) -> Widget {
    assist(name);
    Widget { label: name.to_string() }
}

fn orphan() {}
`)
	writeFile(t, dir, "helper.rs", `
pub fn assist(name: &str) {
    println!("{}", name);
}
`)

	result, err := e.IndexWorkspace(context.Background(), dir)
	require.NoError(t, err)

	assert.Contains(t, result.Functions, "build")
	assert.Contains(t, result.Structs, "Widget")
	assert.Contains(t, result.Modules, "lib.rs")

	succ, ok := result.CallGraph["build"]
	require.True(t, ok)
	assert.Contains(t, succ, "assist")

	assert.Equal(t, 3, result.Summary.FunctionCount)

	var unused []string
	for _, s := range result.Smells.ByKind["unused_function"] {
		unused = append(unused, s.Symbol)
	}
	assert.Contains(t, unused, "orphan")
	assert.Equal(t, result.Smells.Counts["unused_function"], len(result.Smells.ByKind["unused_function"]))
}

func TestGotoDefinitionFindsModuleByFilePath(t *testing.T) {
	e := newEngine(t)
	dir := t.TempDir()
	writeFile(t, dir, "lib.rs", `pub fn build() {}`)

	_, err := e.IndexWorkspace(context.Background(), dir)
	require.NoError(t, err)

	defs, err := e.GotoDefinition("lib.rs")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "lib.rs", defs[0].File)
	assert.Equal(t, 1, defs[0].Line)
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	abs := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}
