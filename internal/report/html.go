package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

//go:embed assets/*
var assets embed.FS

var pageTemplate = template.Must(template.New("report.html.tmpl").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(assets, "assets/report.html.tmpl"))

type pageData struct {
	Report *Report
	CSS    template.CSS
	JS     template.JS
}

// minified holds the stylesheet and script after minification. Both are
// embedded, so they are built once per process.
var minified = sync.OnceValues(func() (*bundle, error) {
	css, err := minify("assets/report.css", api.LoaderCSS)
	if err != nil {
		return nil, err
	}
	js, err := minify("assets/report.js", api.LoaderJS)
	if err != nil {
		return nil, err
	}
	return &bundle{css: css, js: js}, nil
})

type bundle struct {
	css string
	js  string
}

// WriteHTML writes r as a self-contained HTML page.
func WriteHTML(w io.Writer, r *Report) error {
	b, err := minified()
	if err != nil {
		return err
	}
	return pageTemplate.Execute(w, pageData{
		Report: r,
		CSS:    template.CSS(b.css), //nolint:gosec // G203: embedded asset
		JS:     template.JS(b.js),   //nolint:gosec // G203: embedded asset
	})
}

func minify(name string, loader api.Loader) (string, error) {
	src, err := assets.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Target:            api.ES2020,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		var msg strings.Builder
		for _, e := range result.Errors {
			if e.Location != nil {
				fmt.Fprintf(&msg, "%s:%d:%d: %s\n", name, e.Location.Line, e.Location.Column, e.Text)
			} else {
				fmt.Fprintf(&msg, "%s: %s\n", name, e.Text)
			}
		}
		return "", fmt.Errorf("esbuild errors:\n%s", msg.String())
	}
	return string(result.Code), nil
}
