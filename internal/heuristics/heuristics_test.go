package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyldefox/rustlens/internal/config"
	"github.com/wyldefox/rustlens/internal/heuristics"
	"github.com/wyldefox/rustlens/internal/types"
	"github.com/wyldefox/rustlens/internal/workspace"
)

func kinds(suggestions []types.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Kind)
	}
	return out
}

func TestAnalyzeFlagsLongFunctionAndHighComplexity(t *testing.T) {
	files := []workspace.FileRecords{
		{
			File: "a.rs",
			Functions: []types.FunctionRecord{
				{Name: "big", Location: types.Location{File: "a.rs", Line: 1, Column: 1}, LineCount: 80, CyclomaticComplexity: 15},
			},
		},
	}
	idx := workspace.Merge(files, nil)
	suggestions := heuristics.Analyze(idx, config.DefaultThresholds())

	assert.Contains(t, kinds(suggestions), "long_function")
	assert.Contains(t, kinds(suggestions), "high_complexity")
}

func TestAnalyzeFlagsUnusedPrivateFunctionIncludingMain(t *testing.T) {
	files := []workspace.FileRecords{
		{
			File: "a.rs",
			Functions: []types.FunctionRecord{
				{Name: "main", Location: types.Location{File: "a.rs", Line: 1, Column: 1}, IsPublic: false},
				{Name: "dead", Location: types.Location{File: "a.rs", Line: 5, Column: 1}, IsPublic: false},
				{Name: "public_api", Location: types.Location{File: "a.rs", Line: 9, Column: 1}, IsPublic: true},
			},
		},
	}
	idx := workspace.Merge(files, nil)
	suggestions := heuristics.Analyze(idx, config.DefaultThresholds())

	var flagged []string
	for _, s := range suggestions {
		if s.Kind == "unused_function" {
			flagged = append(flagged, s.Symbol)
		}
	}
	assert.ElementsMatch(t, []string{"main", "dead"}, flagged)
}

func TestAnalyzeIsSortedByLocationThenKind(t *testing.T) {
	files := []workspace.FileRecords{
		{
			File: "a.rs",
			Functions: []types.FunctionRecord{
				{Name: "second", Location: types.Location{File: "a.rs", Line: 10, Column: 1}, LineCount: 999},
				{Name: "first", Location: types.Location{File: "a.rs", Line: 1, Column: 1}, LineCount: 999},
			},
		},
	}
	idx := workspace.Merge(files, nil)
	suggestions := heuristics.Analyze(idx, config.DefaultThresholds())

	require := assert.New(t)
	require.GreaterOrEqual(len(suggestions), 2)
	require.Equal("first", suggestions[0].Symbol)
}
