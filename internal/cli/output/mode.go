// Package output renders command results for terminals, pipes and tools.
//
// The same command prints styled text on a TTY, Markdown when piped and
// JSON when asked. Commands branch on Renderer.EffectiveMode.
package output

// Mode selects how results are rendered.
type Mode string

// OutputMode is kept as the name used across command options.
type OutputMode = Mode

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ParseMode maps a flag value onto a Mode. Unknown and empty values are auto.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeText, ModeMarkdown, ModeJSON:
		return Mode(s)
	case "md":
		return ModeMarkdown
	default:
		return ModeAuto
	}
}
