package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyldefox/rustlens/internal/types"
	"github.com/wyldefox/rustlens/internal/workspace"
)

func TestMergeBuildsCallGraphAcrossFiles(t *testing.T) {
	files := []workspace.FileRecords{
		{
			File:      "a.rs",
			Functions: []types.FunctionRecord{{Name: "main", Location: types.Location{File: "a.rs", Line: 1, Column: 1}}},
			CallSites: []types.CallSite{{Caller: "main", Callee: "helper", Location: types.Location{File: "a.rs", Line: 2, Column: 5}}},
		},
		{
			File:      "b.rs",
			Functions: []types.FunctionRecord{{Name: "helper", Location: types.Location{File: "b.rs", Line: 1, Column: 1}}},
		},
	}

	idx := workspace.Merge(files, nil)

	assert.ElementsMatch(t, []string{"main", "helper"}, idx.CallGraph.Nodes())
	assert.Equal(t, []string{"helper"}, idx.CallGraph.Successors("main"))
	require.Len(t, idx.FunctionsNamed("helper"), 1)
}

func TestMergeRoutesStructFieldTypeUseToEdgeNotUsedIn(t *testing.T) {
	files := []workspace.FileRecords{
		{
			File: "a.rs",
			Structs: []types.StructRecord{
				{Name: "Outer", Location: types.Location{File: "a.rs", Line: 1, Column: 1}, FieldCount: 1},
				{Name: "Inner", Location: types.Location{File: "a.rs", Line: 5, Column: 1}},
			},
			TypeUses: []types.TypeUse{
				{TypeName: "Inner", Location: types.Location{File: "a.rs", Line: 2, Column: 5}, EnclosingKind: types.EnclosingStructField, EnclosingName: "Outer"},
			},
		},
	}

	idx := workspace.Merge(files, nil)

	assert.Equal(t, []string{"Inner"}, idx.TypeGraph.Successors("Outer"))
	require.Len(t, idx.StructsNamed("Inner"), 1)
	assert.Empty(t, idx.StructsNamed("Inner")[0].UsedIn)
}

func TestMergeRoutesFunctionBodyTypeUseToUsedIn(t *testing.T) {
	files := []workspace.FileRecords{
		{
			File: "a.rs",
			Structs: []types.StructRecord{
				{Name: "Config", Location: types.Location{File: "a.rs", Line: 1, Column: 1}},
			},
			TypeUses: []types.TypeUse{
				{TypeName: "Config", Location: types.Location{File: "a.rs", Line: 10, Column: 5}, EnclosingKind: types.EnclosingFunction, EnclosingName: "load"},
			},
		},
	}

	idx := workspace.Merge(files, nil)

	assert.Empty(t, idx.TypeGraph.Successors("load"))
	require.Len(t, idx.StructsNamed("Config"), 1)
	assert.Equal(t, []types.Location{{File: "a.rs", Line: 10, Column: 5}}, idx.StructsNamed("Config")[0].UsedIn)
}

func TestMergeBuildsModuleGraph(t *testing.T) {
	files := []workspace.FileRecords{
		{File: "a.rs", Module: types.ModuleRecord{Path: "a.rs", Imports: []types.ImportRef{{Path: "std::fmt", Location: types.Location{File: "a.rs", Line: 1, Column: 5}}}}},
	}

	idx := workspace.Merge(files, nil)

	assert.Equal(t, []string{"std::fmt"}, idx.ModuleGraph.Successors("a.rs"))
}
