package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func relFiles(t *testing.T, res *Result) []string {
	t.Helper()
	out := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		rel, err := filepath.Rel(res.Root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestWalk_FiltersAndSorts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/b.ts":              "",
		"src/a.component.ts":    "",
		"src/app/view.tsx":      "",
		"src/styles.css":        "",
		"README.md":             "",
		".hidden/secret.ts":     "",
		"src/.cache/x.ts":       "",
		"src/app/main.js":       "",
		"src/app/legacy.coffee": "",
	})

	res, err := Walk(context.Background(), root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/a.component.ts",
		"src/app/main.js",
		"src/app/view.tsx",
		"src/b.ts",
	}, relFiles(t, res))
	assert.Empty(t, res.Skipped)
}

func TestWalk_IncludeHidden(t *testing.T) {
	root := writeTree(t, map[string]string{
		".hidden/secret.ts": "",
		"a.ts":              "",
	})

	res, err := Walk(context.Background(), root, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden/secret.ts", "a.ts"}, relFiles(t, res))
}

func TestWalk_IgnoreFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		".gitignore":              "dist/\n*.generated.ts\n",
		"dist/bundle.js":          "",
		"src/app.ts":              "",
		"src/api.generated.ts":    "",
		"src/feature/.ngignore":   "legacy/\n",
		"src/feature/legacy/x.ts": "",
		"src/feature/ok.ts":       "",
		"src/legacy/kept.ts":      "",
	})

	res, err := Walk(context.Background(), root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/app.ts",
		"src/feature/ok.ts",
		"src/legacy/kept.ts",
	}, relFiles(t, res))
}

func TestWalk_ConfiguredGlobs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/app.ts":            "",
		"src/app.spec.ts":       "",
		"src/deep/x.spec.ts":    "",
		"node_modules/lib/i.js": "",
	})

	res, err := Walk(context.Background(), root, Options{
		Ignore: []string{"**/*.spec.ts", "node_modules/"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.ts"}, relFiles(t, res))
}

func TestWalk_Extensions(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts":  "",
		"b.mjs": "",
		"c.js":  "",
	})

	res, err := Walk(context.Background(), root, Options{Extensions: []string{".mjs", "TS"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts", "b.mjs"}, relFiles(t, res))
}

func TestWalk_RootErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := Walk(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("root is a file", func(t *testing.T) {
		root := writeTree(t, map[string]string{"a.ts": ""})
		_, err := Walk(context.Background(), filepath.Join(root, "a.ts"), Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRootNotDir)
	})
}

func TestWalk_Cancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ts": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Walk(ctx, root, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
