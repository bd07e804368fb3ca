package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/parser"
)

// members is what a class body contributes to an entity, independent of
// which decorator the class carries.
type members struct {
	inputs       []core.Binding
	outputs      []core.Binding
	hooks        []string
	dependencies []string
	methods      []core.Method
	methodCount  int
}

func (x *extraction) scanMembers(cls *sitter.Node) members {
	var m members
	body := cls.ChildByFieldName("body")
	if body == nil {
		return m
	}

	// Method decorators are siblings that precede the method in the body.
	var pending []*sitter.Node
	for _, child := range parser.Children(body) {
		switch child.Type() {
		case "decorator":
			pending = append(pending, child)

		case "method_definition":
			decs := pending
			pending = nil
			x.scanMethod(&m, child, decs)

		case "public_field_definition":
			decs := append(parser.ChildrenOfType(child, "decorator"), pending...)
			pending = nil
			x.scanField(&m, child, decs)
		}
	}
	return m
}

func (x *extraction) scanMethod(m *members, n *sitter.Node, decs []*sitter.Node) {
	name := x.text(n.ChildByFieldName("name"))
	if name == "constructor" {
		m.dependencies = append(m.dependencies, x.constructorDeps(n)...)
		return
	}

	m.methodCount++
	if LifecycleHooks[name] && !core.HasHook(m.hooks, name) {
		m.hooks = append(m.hooks, name)
	}
	m.methods = append(m.methods, core.Method{
		Name:       name,
		Params:     x.params(n),
		ReturnType: annotationText(x.text(n.ChildByFieldName("return_type"))),
	})

	// @Input() set value(v: T) {}
	for _, d := range decs {
		dec := x.decorator(d)
		switch dec.name {
		case "Input":
			m.inputs = append(m.inputs, core.Binding{Name: name, Alias: x.firstString(dec), Type: "any"})
		case "Output":
			m.outputs = append(m.outputs, core.Binding{Name: name, Alias: x.firstString(dec), Type: "EventEmitter"})
		}
	}
}

func (x *extraction) scanField(m *members, n *sitter.Node, decs []*sitter.Node) {
	name := x.text(n.ChildByFieldName("name"))
	declared := annotationText(x.text(n.ChildByFieldName("type")))

	for _, d := range decs {
		dec := x.decorator(d)
		switch dec.name {
		case "Input":
			m.inputs = append(m.inputs, core.Binding{Name: name, Alias: x.firstString(dec), Type: orDefault(declared, "any")})
		case "Output":
			m.outputs = append(m.outputs, core.Binding{Name: name, Alias: x.firstString(dec), Type: orDefault(declared, "EventEmitter")})
		}
	}

	init := n.ChildByFieldName("value")
	if init == nil || init.Type() != "call_expression" {
		return
	}
	callee := x.text(init.ChildByFieldName("function"))
	args := parser.NamedChildren(init.ChildByFieldName("arguments"))

	switch callee {
	case "inject":
		// private http = inject(HttpClient)
		if len(args) > 0 {
			m.dependencies = append(m.dependencies, x.referenceName(args[0]))
		}
	case "input", "input.required":
		m.inputs = append(m.inputs, core.Binding{Name: name, Type: orDefault(declared, "signal")})
	case "output":
		m.outputs = append(m.outputs, core.Binding{Name: name, Type: orDefault(declared, "OutputEmitterRef")})
	}
}

// constructorDeps returns the declared type name of each typed constructor
// parameter.
func (x *extraction) constructorDeps(ctor *sitter.Node) []string {
	var deps []string
	for _, p := range parser.NamedChildren(ctor.ChildByFieldName("parameters")) {
		if p.Type() != "required_parameter" && p.Type() != "optional_parameter" {
			continue
		}
		ann := p.ChildByFieldName("type")
		if ann == nil {
			continue
		}
		deps = append(deps, x.typeName(ann.NamedChild(0)))
	}
	return deps
}

func (x *extraction) params(fn *sitter.Node) []core.Param {
	var out []core.Param
	for _, p := range parser.NamedChildren(fn.ChildByFieldName("parameters")) {
		if p.Type() != "required_parameter" && p.Type() != "optional_parameter" {
			continue
		}
		out = append(out, core.Param{
			Name:     x.text(p.ChildByFieldName("pattern")),
			Type:     annotationText(x.text(p.ChildByFieldName("type"))),
			Optional: p.Type() == "optional_parameter",
		})
	}
	return out
}

// typeName reduces a type node to the referenced type's name. Generic
// arguments are dropped and qualified names keep their last segment.
func (x *extraction) typeName(t *sitter.Node) string {
	if t == nil {
		return "unknown"
	}
	switch t.Type() {
	case "type_identifier", "identifier":
		return x.text(t)
	case "generic_type":
		return x.typeName(t.ChildByFieldName("name"))
	case "nested_type_identifier":
		if name := t.ChildByFieldName("name"); name != nil {
			return x.text(name)
		}
		return lastSegment(x.text(t))
	default:
		return "unknown"
	}
}

// referenceName names the class passed to inject().
func (x *extraction) referenceName(n *sitter.Node) string {
	switch n.Type() {
	case "identifier":
		return x.text(n)
	case "member_expression":
		return x.text(n.ChildByFieldName("property"))
	default:
		return "unknown"
	}
}

// annotationText turns ": Foo<Bar>" into "Foo<Bar>".
func annotationText(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), ":"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
