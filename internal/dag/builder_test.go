package dag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ngaudit/internal/extract"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/parser"
)

func file(id, rel string) core.SourceFile {
	return core.SourceFile{ID: id, RelPath: rel, Exports: []string{id}}
}

func imp(fileID, symbol, source string) core.ImportRecord {
	return core.ImportRecord{
		FileID:   fileID,
		Symbol:   symbol,
		Source:   source,
		Kind:     core.ImportNamed,
		External: !core.IsRelativeSpecifier(source),
	}
}

func TestFilenameResolver(t *testing.T) {
	files := []core.SourceFile{
		file("f1", "src/app/app.component.ts"),
		file("f2", "src/app/user.service.ts"),
		file("f3", "src/legacy/user.service.ts"),
		file("f4", "src/shared/index.ts"),
		file("f5", "src/util.ts"),
	}
	rc := NewResolveContext(files)
	importer := files[0]

	tests := []struct {
		name   string
		spec   string
		want   string
		wantOK bool
	}{
		{"basename match", "./user.service", "f2", true},
		{"first match in path order", "../legacy/user.service", "f2", true},
		{"script extension stripped", "./util.js", "f5", true},
		{"no index fallback", "./shared", "", false},
		{"no match", "./missing", "", false},
		{"never the importer", "./app.component", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FilenameResolver{}.Resolve(rc, importer, tt.spec)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathResolver(t *testing.T) {
	files := []core.SourceFile{
		file("f1", "src/app/app.component.ts"),
		file("f2", "src/app/user.service.ts"),
		file("f3", "src/legacy/user.service.ts"),
		file("f4", "src/shared/index.ts"),
		file("f5", "src/util.tsx"),
		file("f6", "src/types.d.ts"),
	}
	rc := NewResolveContext(files)
	importer := files[0]

	tests := []struct {
		name   string
		spec   string
		want   string
		wantOK bool
	}{
		{"sibling", "./user.service", "f2", true},
		{"parent directory", "../legacy/user.service", "f3", true},
		{"index fallback", "../shared", "f4", true},
		{"tsx extension", "../util", "f5", true},
		{"esm js specifier", "./user.service.js", "f2", true},
		{"declaration file", "../types", "f6", true},
		{"escapes root", "../../../outside", "", false},
		{"missing", "./nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PathResolver{}.Resolve(rc, importer, tt.spec)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverFor(t *testing.T) {
	r, err := ResolverFor("")
	require.NoError(t, err)
	assert.IsType(t, FilenameResolver{}, r)

	r, err = ResolverFor(ResolutionPath)
	require.NoError(t, err)
	assert.IsType(t, PathResolver{}, r)

	_, err = ResolverFor("alias")
	assert.Error(t, err)
}

func TestBuildGraph_ExternalImportsYieldNoEdges(t *testing.T) {
	files := []core.SourceFile{file("a", "a.ts"), file("core", "core.ts")}
	imports := []core.ImportRecord{
		imp("a", "Component", "@angular/core"),
		imp("a", "map", "rxjs/operators"),
		// A bare specifier whose last segment matches a project file.
		imp("a", "x", "core"),
	}

	g := BuildGraph(files, imports, nil)
	assert.Zero(t, g.EdgeCount())
	assert.Equal(t, 2, g.NodeCount())
}

func TestBuildGraph_UnknownTargetsAreDropped(t *testing.T) {
	files := []core.SourceFile{file("a", "a.ts")}
	g := BuildGraph(files, []core.ImportRecord{imp("a", "B", "./b")}, FilenameResolver{})
	assert.Zero(t, g.EdgeCount())
}

// TestBuildGraph_MergesEdgesFromExtractorOutput runs real extraction so the
// merge is checked against what the extractor actually emits.
func TestBuildGraph_MergesEdgesFromExtractorOutput(t *testing.T) {
	sources := map[string]string{
		"src/app.component.ts": `
import { Component } from '@angular/core';
import { UserService } from './user.service';
import { UserRole, type UserId } from './user.service';

@Component({ selector: 'app-root', template: '<p></p>' })
export class AppComponent {
  constructor(private users: UserService) {}
}
`,
		"src/user.service.ts": `
import { Injectable } from '@angular/core';
export enum UserRole { Admin }
export type UserId = string;

@Injectable({ providedIn: 'root' })
export class UserService {}
`,
	}

	p := parser.New()
	defer p.Close()

	var files []core.SourceFile
	var imports []core.ImportRecord
	ids := map[string]string{"src/app.component.ts": "file_1", "src/user.service.ts": "file_2"}
	for _, rel := range []string{"src/app.component.ts", "src/user.service.ts"} {
		src := core.SourceFile{ID: ids[rel], Path: rel, RelPath: rel, Kind: core.ClassifyFile(rel)}
		res, err := extract.ExtractSource(context.Background(), p, src, []byte(sources[rel]))
		require.NoError(t, err)
		files = append(files, res.File)
		imports = append(imports, res.Imports...)
	}

	g := BuildGraph(files, imports, FilenameResolver{})

	require.Equal(t, 1, g.EdgeCount())
	e, ok := g.Edge("file_1", "file_2")
	require.True(t, ok)
	assert.Equal(t, []string{"UserId", "UserRole", "UserService"}, e.Symbols)
	assert.Equal(t, core.ImportNamed, e.Kind)

	a := Analyze(g, Options{})
	assert.Empty(t, a.Cycles)
	assert.Equal(t, 2, a.Depths["file_1"])
	assert.Equal(t, 1, a.Depths["file_2"])
}

func TestBuildGraph_Deterministic(t *testing.T) {
	files := []core.SourceFile{file("b", "b.ts"), file("a", "a.ts"), file("c", "c.ts")}
	imports := []core.ImportRecord{
		imp("b", "C", "./c"),
		imp("a", "C", "./c"),
		imp("a", "B", "./b"),
	}

	g1 := BuildGraph(files, imports, nil)
	g2 := BuildGraph([]core.SourceFile{files[2], files[0], files[1]}, imports, nil)

	assert.Equal(t, g1.Edges(), g2.Edges())
	assert.Equal(t, "a", g1.Edges()[0].Source, "importers are processed in path order")
	assert.Equal(t, []string{"a", "b", "c"}, []string{g1.Files()[0].ID, g1.Files()[1].ID, g1.Files()[2].ID})
}
