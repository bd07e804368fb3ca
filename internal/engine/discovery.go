package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/ngaudit/internal/extract"
	"github.com/leapstack-labs/ngaudit/internal/template"
	"github.com/leapstack-labs/ngaudit/internal/walker"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/parser"
)

// Discovery error types.
const (
	ErrTypeWalk     = "walk"
	ErrTypeRead     = "read"
	ErrTypeParse    = "parse"
	ErrTypeExtract  = "extract"
	ErrTypeTemplate = "template"
)

// DiscoveryResult contains statistics about the discovery run.
type DiscoveryResult struct {
	FilesTotal  int // files found by the walk
	FilesParsed int // files that made it into the model
	Entities    int

	// Fingerprint hashes every parsed file's path and content. Two runs over
	// an unchanged tree produce the same fingerprint.
	Fingerprint string

	// Errors (non-fatal)
	Errors []DiscoveryError

	// Timing
	Duration time.Duration
}

// DiscoveryError represents a non-fatal error during discovery.
type DiscoveryError struct {
	Path    string `json:"path"`
	Type    string `json:"type"` // walk, read, parse, extract, template
	Message string `json:"message"`
}

// HasErrors returns true if any errors occurred.
func (r *DiscoveryResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary returns a human-readable summary.
func (r *DiscoveryResult) Summary() string {
	return fmt.Sprintf("Files: %d total (%d parsed, %d errors) | Entities: %d | Duration: %s",
		r.FilesTotal, r.FilesParsed, len(r.Errors), r.Entities, r.Duration.Round(time.Millisecond))
}

// fileResult is what one worker produces for one file.
type fileResult struct {
	index    int
	res      *extract.Result
	hash     string
	problems []DiscoveryError
}

// accumulator merges worker output. Every method holds the lock.
type accumulator struct {
	mu      sync.Mutex
	results []*fileResult
	errors  []DiscoveryError
}

func (a *accumulator) add(r *fileResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errors = append(a.errors, r.problems...)
	if r.res != nil {
		a.results = append(a.results, r)
	}
}

// BuildModel walks the project and extracts every file into a model.
//
// Per-file failures are recorded in the DiscoveryResult and the file is left
// out; only root errors and cancellation abort the build.
func (e *Engine) BuildModel(ctx context.Context) (*core.ProjectModel, *DiscoveryResult, error) {
	start := time.Now()
	result := &DiscoveryResult{}

	e.logger.Info("starting discovery", "root", e.root)

	walked, err := walker.Walk(ctx, e.root, e.walkOptions())
	if err != nil {
		return nil, result, fmt.Errorf("walking project: %w", err)
	}
	for _, skip := range walked.Skipped {
		result.Errors = append(result.Errors, DiscoveryError{
			Path:    e.relPath(skip.Path),
			Type:    ErrTypeWalk,
			Message: skip.Err.Error(),
		})
	}

	files := e.sourceFiles(walked.Files)
	result.FilesTotal = len(files)

	acc := &accumulator{}
	parsers := newParserPool(e.cfg.Workers)
	defer parsers.close()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, src := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := parsers.get()
			defer parsers.put(p)
			acc.add(e.processFile(gctx, p, i, src))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, result, fmt.Errorf("discovery cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, result, fmt.Errorf("discovery cancelled: %w", err)
	}

	model := e.mergeResults(acc.results)
	result.FilesParsed = len(model.Files)
	result.Entities = model.EntityCount()
	result.Fingerprint = fingerprint(acc.results)
	result.Errors = append(result.Errors, acc.errors...)
	sortDiscoveryErrors(result.Errors)
	result.Duration = time.Since(start)

	e.logger.Info("discovery completed",
		"files_total", result.FilesTotal,
		"files_parsed", result.FilesParsed,
		"entities", result.Entities,
		"errors", len(result.Errors),
		"duration_ms", result.Duration.Milliseconds())

	return model, result, nil
}

// sourceFiles assigns ids in walk order, which is sorted by path.
func (e *Engine) sourceFiles(paths []string) []core.SourceFile {
	files := make([]core.SourceFile, len(paths))
	for i, p := range paths {
		files[i] = core.SourceFile{
			ID:      "file_" + strconv.Itoa(i+1),
			Path:    p,
			RelPath: e.relPath(p),
			Kind:    core.ClassifyFile(p),
		}
	}
	return files
}

func (e *Engine) relPath(p string) string {
	rel, err := filepath.Rel(e.root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// processFile runs read, parse, extract and template inspection for one file.
func (e *Engine) processFile(ctx context.Context, p *parser.Parser, index int, src core.SourceFile) (fr *fileResult) {
	fr = &fileResult{index: index}
	fail := func(typ string, err error) *fileResult {
		e.logger.Debug("skipping file", "path", src.RelPath, "type", typ, "error", err)
		fr.res = nil
		fr.problems = append(fr.problems, DiscoveryError{Path: src.RelPath, Type: typ, Message: err.Error()})
		return fr
	}

	content, err := os.ReadFile(src.Path) //nolint:gosec // G304: path comes from the project walk
	if err != nil {
		return fail(ErrTypeRead, err)
	}
	fr.hash = computeHash(content)

	defer func() {
		if r := recover(); r != nil {
			fr = fail(ErrTypeExtract, fmt.Errorf("extractor panic: %v", r))
		}
	}()

	res, err := extract.ExtractSource(ctx, p, src, content)
	if err != nil {
		if errors.Is(err, parser.ErrSyntax) {
			return fail(ErrTypeParse, err)
		}
		return fail(ErrTypeExtract, err)
	}
	fr.res = res

	if c, ok := res.Entity.(*core.Component); ok {
		if problem := inspectTemplate(c, src); problem != nil {
			fr.problems = append(fr.problems, *problem)
		}
	}
	return fr
}

// inspectTemplate attaches template statistics to a component. External
// templates are resolved next to the component file.
func inspectTemplate(c *core.Component, src core.SourceFile) *DiscoveryError {
	switch {
	case c.Template.IsExternal():
		path := filepath.Join(filepath.Dir(src.Path), filepath.FromSlash(c.Template.URL))
		stats, err := template.InspectFile(path)
		if err != nil {
			return &DiscoveryError{Path: src.RelPath, Type: ErrTypeTemplate, Message: err.Error()}
		}
		c.TemplateStats = &stats
	case c.Template.Inline != "":
		stats := template.Inspect(c.Template.Inline)
		c.TemplateStats = &stats
	}
	return nil
}

// mergeResults builds the model from worker output in file order.
func (e *Engine) mergeResults(results []*fileResult) *core.ProjectModel {
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	model := &core.ProjectModel{Root: e.root}
	for _, r := range results {
		model.Files = append(model.Files, r.res.File)
		model.Imports = append(model.Imports, r.res.Imports...)
		model.Exports = append(model.Exports, r.res.Exports...)
		if r.res.Entity != nil {
			model.AddEntity(r.res.Entity)
		}
	}
	model.Sort()
	return model
}

func sortDiscoveryErrors(errs []DiscoveryError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Path != errs[j].Path {
			return errs[i].Path < errs[j].Path
		}
		return errs[i].Type < errs[j].Type
	})
}

// computeHash returns the SHA256 hash of content.
func computeHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// fingerprint hashes (path, content hash) pairs in file order.
func fingerprint(results []*fileResult) string {
	h := sha256.New()
	for _, r := range results {
		_, _ = fmt.Fprintf(h, "%s\x00%s\n", r.res.File.RelPath, r.hash)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// parserPool hands each worker its own parser; tree-sitter parsers are not
// safe for concurrent use.
type parserPool struct {
	ch chan *parser.Parser
}

func newParserPool(n int) *parserPool {
	pool := &parserPool{ch: make(chan *parser.Parser, n)}
	for range n {
		pool.ch <- parser.New()
	}
	return pool
}

func (p *parserPool) get() *parser.Parser  { return <-p.ch }
func (p *parserPool) put(ps *parser.Parser) { p.ch <- ps }

func (p *parserPool) close() {
	for {
		select {
		case ps := <-p.ch:
			ps.Close()
		default:
			return
		}
	}
}
