package indexbuild_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wyldefox/rustlens/internal/cache"
	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/indexbuild"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBuildIndexesMultipleFilesAndWiresCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.rs", "pub fn entry() { helper(); }\n")
	writeFile(t, dir, "helper.rs", "fn helper() {}\n")

	src := cache.New()
	idx, err := indexbuild.Build(context.Background(), dir, config.Default(), src)
	require.NoError(t, err)

	require.Len(t, idx.FunctionsNamed("entry"), 1)
	require.Len(t, idx.FunctionsNamed("helper"), 1)
	assert.Equal(t, []string{"helper"}, idx.CallGraph.Successors("entry"))

	text, ok := src.Get("lib.rs")
	require.True(t, ok)
	assert.Contains(t, text, "entry")
}

func TestBuildRecordsSyntaxErrorAsDiagnosticNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.rs", "fn ok() {}\n")
	writeFile(t, dir, "bad.rs", "fn broken( {\n")

	src := cache.New()
	idx, err := indexbuild.Build(context.Background(), dir, config.Default(), src)
	require.NoError(t, err)

	require.Len(t, idx.FunctionsNamed("ok"), 1)

	var sawBad bool
	for _, d := range idx.Diagnostics {
		if d.File == "bad.rs" {
			sawBad = true
		}
	}
	assert.True(t, sawBad)
}

func TestBuildRespectsExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.rs", "fn kept() {}\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "target"), 0o755))
	writeFile(t, dir, "target/generated.rs", "fn dropped() {}\n")

	src := cache.New()
	idx, err := indexbuild.Build(context.Background(), dir, config.Default(), src)
	require.NoError(t, err)

	assert.Len(t, idx.FunctionsNamed("kept"), 1)
	assert.Len(t, idx.FunctionsNamed("dropped"), 0)
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	abs := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}
