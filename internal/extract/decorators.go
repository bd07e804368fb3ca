package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/parser"
)

// decorator is a decoded `@Name(args...)` or `@Name` application.
type decorator struct {
	name string
	args []*sitter.Node
}

// decorator decodes a decorator node. Qualified names such as
// `@core.Component` resolve to their last segment.
func (x *extraction) decorator(n *sitter.Node) decorator {
	expr := n.NamedChild(0)
	if expr == nil {
		return decorator{}
	}

	switch expr.Type() {
	case "call_expression":
		return decorator{
			name: lastSegment(x.text(expr.ChildByFieldName("function"))),
			args: parser.NamedChildren(expr.ChildByFieldName("arguments")),
		}
	default:
		return decorator{name: lastSegment(x.text(expr))}
	}
}

// firstString returns the first argument when it is a string literal.
func (x *extraction) firstString(d decorator) string {
	if len(d.args) == 0 {
		return ""
	}
	if v := x.value(d.args[0]); v.isString {
		return v.str
	}
	return ""
}

// value is a decoded decorator metadata value.
type value struct {
	raw      string
	str      string // unquoted text for string literals, raw text otherwise
	isString bool
	boolean  *bool
	items    []value // array elements
	member   string  // property name of a member expression
	name     string  // identifier-like name for references
}

func (x *extraction) value(n *sitter.Node) value {
	v := value{raw: x.text(n)}
	v.str = v.raw
	v.name = v.raw

	switch n.Type() {
	case "string", "template_string":
		v.isString = true
		v.str = parser.Unquote(v.raw)
		v.name = v.str
	case "true":
		v.boolean = core.Bool(true)
	case "false":
		v.boolean = core.Bool(false)
	case "array":
		v.items = []value{}
		for _, el := range parser.NamedChildren(n) {
			if el.Type() == "comment" {
				continue
			}
			v.items = append(v.items, x.value(el))
		}
	case "member_expression":
		v.member = x.text(n.ChildByFieldName("property"))
	case "call_expression":
		// RouterModule.forRoot(routes) names RouterModule.
		fn := x.text(n.ChildByFieldName("function"))
		if i := strings.LastIndex(fn, "."); i > 0 {
			fn = fn[:i]
		}
		v.name = fn
	case "parenthesized_expression", "as_expression", "satisfies_expression":
		if inner := n.NamedChild(0); inner != nil {
			return x.value(inner)
		}
	}
	return v
}

// metadata is the decoded argument object of an entity decorator, keyed by
// property name. Keys it does not understand are kept but never read.
type metadata map[string]value

func (x *extraction) metadata(d decorator) metadata {
	meta := metadata{}
	if len(d.args) == 0 || d.args[0].Type() != "object" {
		return meta
	}

	for _, prop := range parser.NamedChildren(d.args[0]) {
		switch prop.Type() {
		case "pair":
			key := parser.Unquote(x.text(prop.ChildByFieldName("key")))
			if val := prop.ChildByFieldName("value"); val != nil {
				meta[key] = x.value(val)
			}
		case "shorthand_property_identifier":
			// { providers } refers to a variable of the same name.
			name := x.text(prop)
			meta[name] = value{raw: name, str: name, name: name}
		}
	}
	return meta
}

func (m metadata) str(key string) string {
	return m[key].str
}

func (m metadata) boolean(key string, def bool) bool {
	if v, ok := m[key]; ok && v.boolean != nil {
		return *v.boolean
	}
	return def
}

func (m metadata) memberName(key string) string {
	return m[key].member
}

// strings returns an array of string literals, or a lone string as a
// single-element list.
func (m metadata) strings(key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	if v.items == nil {
		if v.isString {
			return []string{v.str}
		}
		return nil
	}
	var out []string
	for _, item := range v.items {
		if item.isString {
			out = append(out, item.str)
		}
	}
	return out
}

// names returns the identifiers listed in an array value.
func (m metadata) names(key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	if v.items == nil {
		if v.name != "" {
			return []string{v.name}
		}
		return nil
	}
	out := make([]string, 0, len(v.items))
	for _, item := range v.items {
		if item.name != "" {
			out = append(out, item.name)
		}
	}
	return out
}

// bindings decodes `inputs: ['value', 'label: caption']` style metadata.
func (m metadata) bindings(key string) []core.Binding {
	var out []core.Binding
	for _, s := range m.strings(key) {
		name, alias, _ := strings.Cut(s, ":")
		out = append(out, core.Binding{
			Name:  strings.TrimSpace(name),
			Alias: strings.TrimSpace(alias),
		})
	}
	return out
}

func lastSegment(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
