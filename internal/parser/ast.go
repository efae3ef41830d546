// Package parser turns a scanner.Token stream into an AST, maintaining an
// open-element stack the way the teacher's transform package walks an
// already-built *astro.Node tree — except here we build that tree ourselves,
// since the retrieval pack's actual parser/node sources were not available
// to fork from directly; the shape instead follows spec.md §3/§4.2 and the
// conventions the teacher's token.go establishes (atom-based tag identity,
// loc.Span-tagged nodes).
package parser

import (
	"github.com/vuec/compiler/internal/loc"
	"github.com/vuec/compiler/internal/vstr"
)

// Namespace is the element namespace a start tag resolves into, per
// spec.md §4.2's get_namespace callback.
type Namespace int

const (
	HTML Namespace = iota
	SVG
	MathML
)

// Node is the tagged union of AST node variants from spec.md §3.
type Node interface {
	isASTNode()
	Span() loc.Span
}

type base struct{ span loc.Span }

func (b base) Span() loc.Span { return b.span }

// PropKind distinguishes a plain attribute from a directive.
type PropKind int

const (
	PropAttr PropKind = iota
	PropDir
)

// ElemProp is one property on an Element: either a plain Attr or a Dir
// directive, per spec.md §3.
type ElemProp struct {
	Kind PropKind

	// Attr fields.
	Name     string
	Value    *vstr.VStr // nil for a valueless attribute
	NameLoc  loc.Span
	ValueLoc loc.Span

	// Dir fields (Kind == PropDir).
	DirName   string // e.g. "if", "for", "on", "bind", "slot", "model"
	Arg       *vstr.VStr
	Modifiers []string
	Expr      *vstr.VStr
	HeadLoc   loc.Span
}

// Element is a tag node: native HTML/SVG/MathML or a component reference.
type Element struct {
	base
	Tag            string
	Namespace      Namespace
	Properties     []ElemProp
	Children       []Node
	IsVoid         bool
	IsSelfClosing  bool
}

func (*Element) isASTNode() {}

// Text is a run of literal text content, staged for whitespace/entity
// decoding at conversion time.
type Text struct {
	base
	Content vstr.VStr
}

func (*Text) isASTNode() {}

// Interpolation is a "{{ expr }}" mustache.
type Interpolation struct {
	base
	Expr vstr.VStr
}

func (*Interpolation) isASTNode() {}

// Comment is a preserved HTML comment.
type Comment struct {
	base
	Content string
}

func (*Comment) isASTNode() {}

// Root is the parser's output: the top-level list of sibling nodes.
type Root struct {
	Children []Node
}
