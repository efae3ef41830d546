// Package dompreset supplies the concrete "DOM option preset" spec.md §6
// names: the hard-coded HTML/SVG/MathML tag tables, the void-tag list, the
// pre-tag rule, the text-mode table, the builtin-component table, and the
// namespace dispatch rules a real host wires into CompileOption's
// is_native_tag/is_void_tag/get_namespace/get_text_mode/
// get_builtin_component callbacks.
//
// Tag identity leans on golang.org/x/net/html/atom the way the teacher's
// tokenizer does (atom.Lookup to recognize a known HTML tag name), extended
// with explicit SVG/MathML name sets atom doesn't carry.
package dompreset

import (
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/net/html/atom"

	"github.com/vuec/compiler/internal/convert"
	"github.com/vuec/compiler/internal/parser"
	"github.com/vuec/compiler/internal/scanner"
)

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true,
	"embed": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true, "track": true,
	"wbr": true,
}

var svgTags = map[string]bool{
	"svg": true, "circle": true, "ellipse": true, "line": true, "path": true,
	"polygon": true, "polyline": true, "rect": true, "g": true, "defs": true,
	"symbol": true, "use": true, "text": true, "tspan": true,
	"foreignObject": true, "desc": true, "title": true, "animate": true,
	"animateMotion": true, "animateTransform": true, "clipPath": true,
	"linearGradient": true, "radialGradient": true, "mask": true,
	"pattern": true, "stop": true, "image": true, "marker": true,
}

var mathTags = map[string]bool{
	"math": true, "mi": true, "mn": true, "mo": true, "ms": true,
	"mtext": true, "mglyph": true, "malignmark": true,
	"annotation-xml": true, "semantics": true, "mrow": true, "mfrac": true,
	"msqrt": true, "mtable": true, "mtr": true, "mtd": true,
}

// mathIntegrationPoints are MathML elements whose children parse as HTML,
// per the MathML text integration point rule spec.md §6 names.
var mathIntegrationPoints = map[string]bool{
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
}

// svgIntegrationPoints are SVG elements whose children parse as HTML.
var svgIntegrationPoints = map[string]bool{
	"foreignObject": true, "desc": true, "title": true,
}

// builtinPascalNames is the canonical PascalCase spelling of each builtin;
// the kebab-case spelling template authors also write (<transition-group>)
// is derived from it rather than hand-duplicated.
var builtinPascalNames = map[string]convert.BuiltinComponent{
	"Transition":      convert.BuiltinTransition,
	"TransitionGroup": convert.BuiltinTransitionGroup,
	"KeepAlive":       convert.BuiltinKeepAlive,
	"Teleport":        convert.BuiltinTeleport,
	"Suspense":        convert.BuiltinSuspense,
}

var builtins = buildBuiltinTable()

func buildBuiltinTable() map[string]convert.BuiltinComponent {
	t := make(map[string]convert.BuiltinComponent, len(builtinPascalNames)*2)
	for name, b := range builtinPascalNames {
		t[name] = b
		t[strcase.ToKebab(name)] = b
	}
	return t
}

// IsNativeTag reports whether tag names a plain HTML/SVG/MathML element
// rather than a component, per spec.md §6's is_native_tag.
func IsNativeTag(tag string) bool {
	if atom.Lookup([]byte(tag)) != 0 {
		return true
	}
	return svgTags[tag] || mathTags[tag]
}

// IsVoidTag reports whether tag is a self-closing HTML void element.
func IsVoidTag(tag string) bool { return voidTags[strings.ToLower(tag)] }

// IsPreTag reports whether tag forces whitespace preservation. "pre" is the
// only element with this behavior in the reference preset.
func IsPreTag(tag string) bool { return strings.EqualFold(tag, "pre") }

// IsCustomElement always reports false: the reference preset has no registry
// of user-defined elements to consult, and a hyphenated tag name is not
// treated as a custom element.
func IsCustomElement(string) bool { return false }

// GetBuiltinComponent maps a runtime-special component tag to its helper,
// or convert.NotBuiltin for anything else.
func GetBuiltinComponent(tag string) convert.BuiltinComponent {
	if b, ok := builtins[tag]; ok {
		return b
	}
	return convert.NotBuiltin
}

// TextMode implements spec.md §6's get_text_mode: style/script/iframe/
// noscript/xmp parse as RawText (no markup recognition besides the closing
// tag), textarea/title as RcData (entities and interpolation decode, no
// nested elements), everything else as Data.
func TextMode(tag string) scanner.TextMode {
	switch strings.ToLower(tag) {
	case "style", "script", "iframe", "noscript", "xmp":
		return scanner.RawText
	case "textarea", "title":
		return scanner.RcData
	default:
		return scanner.Data
	}
}

// GetNamespace implements the HTML parsing-dispatch rules spec.md §6 names:
// an MathML annotation-xml element's svg child switches into the SVG
// namespace; MathML text integration points (mi/mo/mn/ms/mtext) and SVG's
// foreignObject/desc/title drop back into HTML for their children. Every
// other element inherits its parent's namespace, defaulting to HTML at the
// document root.
//
// The callback signature (tag, parent-namespace) can't see the parent's own
// tag name, so the annotation-xml special case is approximated as "svg
// found anywhere inside MathML" rather than scoped to being literally
// annotation-xml's direct child — a known simplification, recorded in
// DESIGN.md.
func GetNamespace(tag string, parent *parser.Namespace) parser.Namespace {
	if parent == nil {
		return rootNamespace(tag)
	}
	switch *parent {
	case parser.MathML:
		if tag == "svg" {
			return parser.SVG
		}
		if mathIntegrationPoints[tag] {
			return parser.HTML
		}
		return parser.MathML
	case parser.SVG:
		if svgIntegrationPoints[tag] {
			return parser.HTML
		}
		return parser.SVG
	default:
		return rootNamespace(tag)
	}
}

func rootNamespace(tag string) parser.Namespace {
	switch tag {
	case "svg":
		return parser.SVG
	case "math":
		return parser.MathML
	default:
		return parser.HTML
	}
}
