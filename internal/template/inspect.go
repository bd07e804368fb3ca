// Package template counts elements and bindings in component templates.
//
// Templates are tokenized as HTML. Attribute names are lowercased by the
// tokenizer, which does not matter for classification since only the
// binding punctuation is inspected.
package template

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Inspect tokenizes markup and returns its statistics.
func Inspect(markup string) core.TemplateStats {
	var stats core.TemplateStats
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way the counts so far stand.
			return stats

		case html.StartTagToken, html.SelfClosingTagToken:
			stats.Elements++
			tok := z.Token()
			for _, attr := range tok.Attr {
				classifyAttr(&stats, attr.Key)
				countText(&stats, attr.Val, false)
			}

		case html.TextToken:
			countText(&stats, string(z.Text()), true)
		}
	}
}

// countText adds the interpolations, and optionally the control flow
// blocks, of one text run. Tokens before an unclosed interpolation count.
func countText(stats *core.TemplateStats, text string, blocks bool) {
	tokens, _ := NewLexer(text, "").Tokenize()
	for _, tok := range tokens {
		switch tok.Type {
		case TokenInterpolation:
			stats.Interpolations++
		case TokenBlock:
			if blocks {
				stats.ControlFlowBlocks++
			}
		}
	}
}

func classifyAttr(stats *core.TemplateStats, key string) {
	switch {
	case strings.HasPrefix(key, "[("), strings.HasPrefix(key, "bindon-"):
		stats.TwoWayBindings++
	case strings.HasPrefix(key, "("), strings.HasPrefix(key, "on-"):
		stats.EventBindings++
	case strings.HasPrefix(key, "["), strings.HasPrefix(key, "bind-"):
		stats.PropertyBindings++
	case strings.HasPrefix(key, "*"):
		stats.StructuralDirectives++
	}
}

// InspectFile inspects an external template. A file that does not exist is
// reported through Missing rather than an error.
func InspectFile(path string) (core.TemplateStats, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is a templateUrl next to a discovered component
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.TemplateStats{Missing: true}, nil
		}
		return core.TemplateStats{}, fmt.Errorf("opening template: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return core.TemplateStats{}, fmt.Errorf("reading template %s: %w", path, err)
	}
	return Inspect(string(data)), nil
}
