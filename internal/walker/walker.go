// Package walker enumerates the source files of a project tree.
//
// Hidden entries, .gitignore and .ngignore patterns at every directory level,
// and configured ignore globs are honored. Results are sorted so a fixed tree
// always walks the same way.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrRootNotDir is returned when the walk root is not a directory.
var ErrRootNotDir = errors.New("root is not a directory")

// IgnoreFiles are the per-directory ignore files honored during a walk.
var IgnoreFiles = []string{".gitignore", ".ngignore"}

// DefaultExtensions are visited when Options.Extensions is empty.
var DefaultExtensions = []string{"ts", "tsx", "js", "jsx"}

// Options configures a walk.
type Options struct {
	Extensions    []string // without or with leading dot
	Ignore        []string // gitignore-syntax patterns relative to the root
	IncludeHidden bool
}

// SkipError is a non-fatal problem met below the root.
type SkipError struct {
	Path string
	Err  error
}

func (e SkipError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Result is the outcome of a walk.
type Result struct {
	Root    string   // absolute root
	Files   []string // absolute paths, sorted
	Skipped []SkipError
}

// matcher is an ignore file scoped to the directory it was found in.
type matcher struct {
	dir string // root-relative, "" for the root
	gi  *ignore.GitIgnore
}

// Walk lists every matching file below root.
func Walk(ctx context.Context, root string, opts Options) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, ErrRootNotDir)
	}

	exts := extensionSet(opts.Extensions)
	res := &Result{Root: abs}

	var matchers []matcher
	if len(opts.Ignore) > 0 {
		matchers = append(matchers, matcher{gi: ignore.CompileIgnoreLines(opts.Ignore...)})
	}

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if p == abs {
				return fmt.Errorf("reading root: %w", walkErr)
			}
			res.Skipped = append(res.Skipped, SkipError{Path: p, Err: walkErr})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return nil //nolint:nilerr // p is always below abs
		}
		rel = filepath.ToSlash(rel)

		if p != abs {
			if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if ignored(matchers, rel, d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			matchers = append(matchers, loadIgnoreFiles(p, relDir(rel))...)
			return nil
		}

		if exts[strings.ToLower(path.Ext(d.Name()))] {
			res.Files = append(res.Files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(res.Files)
	return res, nil
}

func relDir(rel string) string {
	if rel == "." {
		return ""
	}
	return rel
}

func loadIgnoreFiles(dir, rel string) []matcher {
	var out []matcher
	for _, name := range IgnoreFiles {
		gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, name))
		if err != nil {
			continue // absent or unreadable
		}
		out = append(out, matcher{dir: rel, gi: gi})
	}
	return out
}

// ignored checks rel against every matcher whose directory contains it.
// Directories are matched with a trailing slash so `dist/` patterns apply.
func ignored(matchers []matcher, rel string, isDir bool) bool {
	for _, m := range matchers {
		sub := rel
		if m.dir != "" {
			if !strings.HasPrefix(rel, m.dir+"/") {
				continue
			}
			sub = strings.TrimPrefix(rel, m.dir+"/")
		}
		if isDir {
			sub += "/"
		}
		if m.gi.MatchesPath(sub) {
			return true
		}
	}
	return false
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}
