package parser

import (
	"strings"

	"github.com/vuec/compiler/internal/errs"
	"github.com/vuec/compiler/internal/loc"
	"github.com/vuec/compiler/internal/scanner"
	"github.com/vuec/compiler/internal/vstr"
)

// Whitespace selects how runs of whitespace-only text are treated between
// elements, per spec.md §4.2.
type Whitespace int

const (
	Preserve Whitespace = iota
	Condense
)

// Options configures a Parser; every field mirrors a CompileOption callback
// named in spec.md §6 and is supplied by the root compiler package (or a
// test) rather than hard-coded here, keeping the host-platform DOM preset
// out of core scope per spec.md §1.
type Options struct {
	DelimOpen, DelimClose string
	IsVoidTag             func(tag string) bool
	IsPreTag              func(tag string) bool
	GetTextMode           func(tag string) scanner.TextMode
	GetNamespace          func(tag string, parent *Namespace) Namespace
	IsSelfClosingAllowed  func(tag string, ns Namespace, isComponent bool) bool
	IsNativeTag           func(tag string) bool
	Whitespace            Whitespace
	PreserveComments      bool
	Sink                  errs.Sink
}

func (o *Options) fillDefaults() {
	if o.DelimOpen == "" {
		o.DelimOpen = "{{"
	}
	if o.DelimClose == "" {
		o.DelimClose = "}}"
	}
	if o.IsVoidTag == nil {
		o.IsVoidTag = func(string) bool { return false }
	}
	if o.IsPreTag == nil {
		o.IsPreTag = func(string) bool { return false }
	}
	if o.GetTextMode == nil {
		o.GetTextMode = func(string) scanner.TextMode { return scanner.Data }
	}
	if o.GetNamespace == nil {
		o.GetNamespace = func(string, *Namespace) Namespace { return HTML }
	}
	if o.IsSelfClosingAllowed == nil {
		o.IsSelfClosingAllowed = func(tag string, ns Namespace, isComponent bool) bool {
			return isComponent || ns != HTML
		}
	}
	if o.IsNativeTag == nil {
		o.IsNativeTag = func(string) bool { return true }
	}
	if o.Sink == nil {
		o.Sink = errs.NoopSink{}
	}
}

// frame is one entry on the parser's open-element stack.
type frame struct {
	el        *Element
	pre       bool
	namespace Namespace
}

// Parser holds the open-element stack for one parse, per spec.md §4.2.
type Parser struct {
	src   string
	sc    *scanner.Scanner
	opt   Options
	stack []*frame
	root  []Node
}

// Parse scans and parses src into a Root per opt.
func Parse(src string, opt Options) (*Root, error) {
	opt.fillDefaults()
	p := &Parser{
		src: src,
		opt: opt,
	}
	p.sc = scanner.New(src, scanner.Options{
		DelimOpen:  opt.DelimOpen,
		DelimClose: opt.DelimClose,
		TextMode:   opt.GetTextMode,
		Sink:       opt.Sink,
	})
	p.run()
	return &Root{Children: p.root}, nil
}

func (p *Parser) errorf(span loc.Span, kind errs.Kind, format string, args ...any) {
	p.opt.Sink.Warning(errs.New(kind, span, format, args...))
}

func (p *Parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) appendChild(n Node) {
	if f := p.top(); f != nil {
		f.el.Children = append(f.el.Children, n)
	} else {
		p.root = append(p.root, n)
	}
}

func (p *Parser) run() {
	for {
		tok := p.sc.Next()
		switch tok.Type {
		case scanner.ErrorToken:
			p.closeRemaining()
			return
		case scanner.TextToken:
			p.handleText(tok)
		case scanner.InterpolationToken:
			p.appendChild(&Interpolation{base: base{tok.Span}, Expr: vstr.Of(strings.TrimSpace(tok.Data))})
		case scanner.CommentToken:
			if p.opt.PreserveComments {
				p.appendChild(&Comment{base: base{tok.Span}, Content: tok.Data})
			}
		case scanner.StartTagToken, scanner.SelfClosingTagToken:
			p.handleStartTag(tok)
		case scanner.EndTagToken:
			p.handleEndTag(tok)
		}
	}
}

func (p *Parser) handleText(tok scanner.Token) {
	content := tok.Data
	if p.opt.Whitespace == Condense && !p.inPre() {
		if strings.TrimSpace(content) == "" {
			if len(p.currentSiblings()) == 0 {
				// Leading whitespace-only text in a container is dropped.
				// Trailing whitespace (before the container closes) is left
				// in place rather than requiring scanner lookahead; a
				// subsequent hoist/codegen pass sees it has no effect.
				return
			}
			content = " "
		}
	}
	p.appendChild(&Text{base: base{tok.Span}, Content: vstr.Of(content)})
}

func (p *Parser) currentSiblings() []Node {
	if f := p.top(); f != nil {
		return f.el.Children
	}
	return p.root
}

func (p *Parser) inPre() bool {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].pre {
			return true
		}
	}
	return false
}

func (p *Parser) handleStartTag(tok scanner.Token) {
	var parentNS *Namespace
	isComponent := !p.opt.IsNativeTag(tok.Data)
	if f := p.top(); f != nil {
		ns := f.namespace
		parentNS = &ns
	}
	ns := p.opt.GetNamespace(tok.Data, parentNS)
	isVoid := p.opt.IsVoidTag(tok.Data)
	selfClosing := tok.Type == scanner.SelfClosingTagToken

	if selfClosing && !isVoid && !p.opt.IsSelfClosingAllowed(tok.Data, ns, isComponent) {
		p.errorf(tok.Span, errs.KindStructural, "self-closing is not allowed on %q here", tok.Data)
	}

	props := make([]ElemProp, 0, len(tok.Attr))
	for _, a := range tok.Attr {
		props = append(props, p.convertAttr(a))
	}

	el := &Element{
		base:          base{tok.Span},
		Tag:           tok.Data,
		Namespace:     ns,
		Properties:    props,
		IsVoid:        isVoid,
		IsSelfClosing: selfClosing,
	}
	p.appendChild(el)

	if isVoid || selfClosing {
		return
	}
	p.stack = append(p.stack, &frame{el: el, pre: p.opt.IsPreTag(tok.Data), namespace: ns})
}

func (p *Parser) convertAttr(a scanner.Attribute) ElemProp {
	if parsed, ok := ParseDirectiveName(a.Name); ok {
		prop := ElemProp{
			Kind:      PropDir,
			DirName:   parsed.Name,
			Modifiers: parsed.Modifiers,
			HeadLoc:   a.NameLoc,
		}
		if parsed.Arg != "" {
			arg := vstr.Of(parsed.Arg)
			prop.Arg = &arg
		}
		if a.Type != scanner.EmptyAttr {
			expr := vstr.Of(a.Val).Decode(true)
			prop.Expr = &expr
		}
		return prop
	}
	prop := ElemProp{
		Kind:    PropAttr,
		Name:    a.Name,
		NameLoc: a.NameLoc,
	}
	if a.Type != scanner.EmptyAttr {
		val := vstr.Of(a.Val).Decode(true)
		prop.Value = &val
		prop.ValueLoc = a.ValLoc
	}
	return prop
}

func (p *Parser) handleEndTag(tok scanner.Token) {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(p.stack[i].el.Tag, tok.Data) {
			closed := p.stack[i]
			closed.el.span.End = tok.Span.End
			p.stack = p.stack[:i]
			return
		}
	}
	p.errorf(tok.Span, errs.KindStructural, "unexpected closing tag %q", tok.Data)
}

func (p *Parser) closeRemaining() {
	for _, f := range p.stack {
		p.errorf(f.el.Span(), errs.KindStructural, "missing end tag for %q", f.el.Tag)
	}
	p.stack = nil
}
