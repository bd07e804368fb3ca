package core

import (
	"errors"
	"strings"
)

// =============================================================================
// Entity kinds
// =============================================================================

// EntityKind enumerates the fixed set of framework constructs.
type EntityKind int

// Entity kinds, in reporting order.
const (
	KindComponent EntityKind = iota
	KindService
	KindModule
	KindPipe
	KindDirective
)

// AllEntityKinds lists every kind in reporting order.
var AllEntityKinds = []EntityKind{KindComponent, KindService, KindModule, KindPipe, KindDirective}

// String returns the lowercase kind name.
func (k EntityKind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindService:
		return "service"
	case KindModule:
		return "module"
	case KindPipe:
		return "pipe"
	case KindDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k EntityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseEntityKind converts a kind name (singular or plural) to an EntityKind.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "component":
		return KindComponent, true
	case "service":
		return KindService, true
	case "module":
		return KindModule, true
	case "pipe":
		return KindPipe, true
	case "directive":
		return KindDirective, true
	default:
		return KindComponent, false
	}
}

// Entity is a framework construct decoded from one decorated class.
//
// The set of implementations is closed: *Component, *Service, *Module, *Pipe
// and *Directive. Consumers switch on the concrete type.
type Entity interface {
	EntityName() string
	EntityKind() EntityKind
	SourcePath() string
	isEntity()
}

// =============================================================================
// Shared attribute types
// =============================================================================

// ChangeDetection is a component's change-detection mode.
type ChangeDetection string

// Change-detection modes.
const (
	ChangeDetectionDefault   ChangeDetection = "default"
	ChangeDetectionOptimized ChangeDetection = "optimized"
)

// Binding is an input or output property of a component or directive.
type Binding struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Param is a method parameter.
type Param struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// Method is a class method.
type Method struct {
	Name       string  `json:"name"`
	Params     []Param `json:"params,omitempty"`
	ReturnType string  `json:"return_type,omitempty"`
}

// TemplateIssue describes a component whose decorator did not name exactly
// one template source.
type TemplateIssue string

// Template issues.
const (
	TemplateOK       TemplateIssue = ""
	TemplateConflict TemplateIssue = "conflict"
	TemplateMissing  TemplateIssue = "missing"
)

// ErrTemplateConflict is returned by TemplateSource.Validate when both an
// inline template and an external reference are set.
var ErrTemplateConflict = errors.New("template source has both inline text and an external reference")

// TemplateSource is a component's template: inline text or an external
// reference, never both.
type TemplateSource struct {
	Inline string        `json:"inline,omitempty"`
	URL    string        `json:"url,omitempty"`
	Issue  TemplateIssue `json:"issue,omitempty"`
}

// NewInlineTemplate returns an inline template source.
func NewInlineTemplate(text string) TemplateSource {
	return TemplateSource{Inline: text}
}

// NewExternalTemplate returns an external template source.
func NewExternalTemplate(url string) TemplateSource {
	return TemplateSource{URL: url}
}

// IsInline reports whether the template is inline text.
func (t TemplateSource) IsInline() bool { return t.URL == "" && t.Issue != TemplateMissing }

// IsExternal reports whether the template is an external reference.
func (t TemplateSource) IsExternal() bool { return t.URL != "" }

// Validate checks the one-source invariant.
func (t TemplateSource) Validate() error {
	if t.Inline != "" && t.URL != "" {
		return ErrTemplateConflict
	}
	return nil
}

// TemplateStats summarizes a component's template markup.
type TemplateStats struct {
	Elements             int  `json:"elements"`
	EventBindings        int  `json:"event_bindings"`
	PropertyBindings     int  `json:"property_bindings"`
	TwoWayBindings       int  `json:"two_way_bindings"`
	StructuralDirectives int  `json:"structural_directives"`
	Interpolations       int  `json:"interpolations"`
	ControlFlowBlocks    int  `json:"control_flow_blocks"`
	Missing              bool `json:"missing,omitempty"` // templateUrl file not found
}

// Bindings returns the total number of bindings in the template.
func (s TemplateStats) Bindings() int {
	return s.EventBindings + s.PropertyBindings + s.TwoWayBindings
}

// =============================================================================
// Entities
// =============================================================================

// Component is a class decorated with @Component.
type Component struct {
	Name            string          `json:"name"`
	FilePath        string          `json:"file_path"`
	Selector        string          `json:"selector,omitempty"`
	Template        TemplateSource  `json:"template"`
	StyleURLs       []string        `json:"style_urls,omitempty"`
	InlineStyles    int             `json:"inline_styles,omitempty"`
	Inputs          []Binding       `json:"inputs,omitempty"`
	Outputs         []Binding       `json:"outputs,omitempty"`
	LifecycleHooks  []string        `json:"lifecycle_hooks,omitempty"`
	Dependencies    []string        `json:"dependencies,omitempty"`
	Complexity      int             `json:"complexity"`
	ChangeDetection ChangeDetection `json:"change_detection"`
	Standalone      bool            `json:"standalone,omitempty"`
	TemplateStats   *TemplateStats  `json:"template_stats,omitempty"`
}

// Service is a class decorated with @Injectable.
type Service struct {
	Name           string   `json:"name"`
	FilePath       string   `json:"file_path"`
	ProvidedIn     string   `json:"provided_in,omitempty"`
	Dependencies   []string `json:"dependencies,omitempty"`
	Methods        []Method `json:"methods,omitempty"`
	LifecycleHooks []string `json:"lifecycle_hooks,omitempty"`
	Complexity     int      `json:"complexity"`
}

// Module is a class decorated with @NgModule.
type Module struct {
	Name         string   `json:"name"`
	FilePath     string   `json:"file_path"`
	Declarations []string `json:"declarations,omitempty"`
	Imports      []string `json:"imports,omitempty"`
	Exports      []string `json:"exports,omitempty"`
	Providers    []string `json:"providers,omitempty"`
	Bootstrap    []string `json:"bootstrap,omitempty"`
}

// Pipe is a class decorated with @Pipe.
type Pipe struct {
	Name         string   `json:"name"`
	FilePath     string   `json:"file_path"`
	PipeName     string   `json:"pipe_name,omitempty"`
	Pure         bool     `json:"pure"`
	Standalone   bool     `json:"standalone,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Directive is a class decorated with @Directive.
type Directive struct {
	Name           string    `json:"name"`
	FilePath       string    `json:"file_path"`
	Selector       string    `json:"selector,omitempty"`
	Inputs         []Binding `json:"inputs,omitempty"`
	Outputs        []Binding `json:"outputs,omitempty"`
	LifecycleHooks []string  `json:"lifecycle_hooks,omitempty"`
	Dependencies   []string  `json:"dependencies,omitempty"`
	Standalone     bool      `json:"standalone,omitempty"`
}

func (c *Component) EntityName() string     { return c.Name }
func (c *Component) EntityKind() EntityKind { return KindComponent }
func (c *Component) SourcePath() string     { return c.FilePath }
func (*Component) isEntity()                {}

func (s *Service) EntityName() string     { return s.Name }
func (s *Service) EntityKind() EntityKind { return KindService }
func (s *Service) SourcePath() string     { return s.FilePath }
func (*Service) isEntity()                {}

func (m *Module) EntityName() string     { return m.Name }
func (m *Module) EntityKind() EntityKind { return KindModule }
func (m *Module) SourcePath() string     { return m.FilePath }
func (*Module) isEntity()                {}

func (p *Pipe) EntityName() string     { return p.Name }
func (p *Pipe) EntityKind() EntityKind { return KindPipe }
func (p *Pipe) SourcePath() string     { return p.FilePath }
func (*Pipe) isEntity()                {}

func (d *Directive) EntityName() string     { return d.Name }
func (d *Directive) EntityKind() EntityKind { return KindDirective }
func (d *Directive) SourcePath() string     { return d.FilePath }
func (*Directive) isEntity()                {}

// HasHook reports whether hooks contains the named lifecycle hook.
func HasHook(hooks []string, name string) bool {
	for _, h := range hooks {
		if h == name {
			return true
		}
	}
	return false
}

// Dependencies returns the constructor dependencies of any entity kind.
// Modules have none.
func Dependencies(e Entity) []string {
	switch v := e.(type) {
	case *Component:
		return v.Dependencies
	case *Service:
		return v.Dependencies
	case *Pipe:
		return v.Dependencies
	case *Directive:
		return v.Dependencies
	case *Module:
		return nil
	default:
		return nil
	}
}
