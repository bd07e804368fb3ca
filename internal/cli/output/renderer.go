package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer writes command output in one mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	r := &Renderer{out: out, errOut: errOut, mode: ParseMode(string(mode)), isTTY: isTTY}
	r.styles = newStyles(out, r.EffectiveMode() == ModeText && isTTY && os.Getenv("NO_COLOR") == "")
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}

// EffectiveMode resolves auto: text on a terminal, Markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the diagnostic output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header prints a level 1 or 2 heading as given.
func (r *Renderer) Header(level int, title string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, title))
		r.Println("")
		return
	}
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	r.Println(style.Render(title))
	r.Println("")
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(r.icon("✓") + msg))
}

// Warning prints a warning to the diagnostic stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(r.icon("!")+msg))
}

// Muted prints de-emphasized text.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

func (r *Renderer) icon(s string) string {
	if r.EffectiveMode() == ModeText {
		return s + " "
	}
	return ""
}

// StatusLine prints "name  status  detail" with status coloured by kind:
// success, warning, error or anything else.
func (r *Renderer) StatusLine(name, status, detail string) {
	var s string
	switch status {
	case "success":
		s = r.styles.Success.Render(status)
	case "warning":
		s = r.styles.Warning.Render(status)
	case "error", "failed":
		s = r.styles.Error.Render(status)
	default:
		s = r.styles.Muted.Render(status)
	}
	line := fmt.Sprintf("  %s  %s", s, name)
	if detail != "" {
		line += "  " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

// Table renders rows under headers: a light box table in text mode and a
// pipe table in Markdown mode.
func (r *Renderer) Table(headers []string, rows [][]any) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		r.Println("")
		return
	}
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = 0 // keep header case
	t.Render()
}

var titleCaser = cases.Title(language.English)

// Title title-cases s, treating dashes and underscores as spaces.
func Title(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return titleCaser.String(s)
}

// FormatHeader returns a Markdown heading of the given level.
func FormatHeader(level int, text string) string {
	return strings.Repeat("#", max(level, 1)) + " " + text
}

// FormatKeyValue formats "key: value" with the key in bold.
func FormatKeyValue(s *Styles, key string, value any) string {
	return fmt.Sprintf("%s: %v", s.Bold.Render(key), value)
}
