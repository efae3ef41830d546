// Package sfc splits a single-file-component source into its constituent
// blocks, per spec.md §4.7. It reuses internal/scanner and internal/parser
// at the top level rather than a bespoke block scanner, the way the
// teacher's internal/printer reuses the shared AST instead of re-deriving
// block boundaries from raw bytes.
package sfc

import (
	"strings"

	"github.com/vuec/compiler/internal/errs"
	"github.com/vuec/compiler/internal/loc"
	"github.com/vuec/compiler/internal/parser"
	"github.com/vuec/compiler/internal/scanner"
)

// PadOption selects how a block's compiled content is aligned to its
// original starting line, per spec.md §6's SfcParseOptions.pad. Differential
// padding behavior is an open question spec.md leaves untested (§9); Pad
// implements the obvious reading of all three variants and ParseOptions
// carries the field for structural completeness even though Parse itself
// never calls it — a consumer that needs source-mapped block content calls
// Pad explicitly.
type PadOption int

const (
	NoPad PadOption = iota
	Line
	Space
)

// Pad returns content prefixed so it starts at startLine within a
// larger file: Line inserts (startLine-1) blank lines, Space inserts a
// single line holding (startLine-1) blank columns via a comment-free run
// of spaces, and NoPad returns content unchanged.
func Pad(opt PadOption, content string, startLine int) string {
	if startLine <= 1 {
		return content
	}
	switch opt {
	case Line:
		return strings.Repeat("\n", startLine-1) + content
	case Space:
		return strings.Repeat(" ", startLine-1) + content
	default:
		return content
	}
}

// ParseOptions mirrors spec.md §6's SfcParseOptions.
type ParseOptions struct {
	Filename    string
	SourceMap   bool
	SourceRoot  string
	Pad         PadOption
	IgnoreEmpty bool
	Sink        errs.Sink
}

func (o *ParseOptions) fillDefaults() {
	if o.Sink == nil {
		o.Sink = errs.NoopSink{}
	}
}

// Block is the common shape every block kind embeds: its tag name, source
// span, raw content, and an ordered view of its attributes. spec.md §4.7
// doesn't mention attribute access on blocks, but the Rust original's
// SfcBlock::get_attr is how functional/vars/setup/src detection actually
// works, so it's ported here as Attr.
type Block struct {
	Tag     string
	Content string
	Span    loc.Span
	names   []string
	attrs   map[string]string
}

// Attr looks up an attribute by name, reporting whether it was present.
// A valueless attribute (e.g. bare "setup") reports ok=true with an empty
// value.
func (b *Block) Attr(name string) (string, bool) {
	v, ok := b.attrs[name]
	return v, ok
}

// AttrNames returns the block's attribute names in source order.
func (b *Block) AttrNames() []string { return b.names }

// TemplateBlock is the SFC's <template> section.
type TemplateBlock struct {
	Block
	Functional bool
}

// ScriptBlock is a <script> or <script setup> section.
type ScriptBlock struct {
	Block
	Setup bool
}

// StyleBlock is one <style> section; spec.md §4.7 collects these in order.
type StyleBlock struct {
	Block
	Scoped        bool
	CSSModule     string // value of a `module` attribute naming the module, "" if bare `module`/absent
	VarsDeprecated bool
}

// CustomBlock is any top-level tag that isn't template/script/style,
// tagged by its own tag name per spec.md §4.7.
type CustomBlock struct {
	Block
}

// Descriptor is the parsed SFC's block set.
type Descriptor struct {
	Filename    string
	Source      string
	Template    *TemplateBlock
	Script      *ScriptBlock
	ScriptSetup *ScriptBlock
	Styles      []*StyleBlock
	CustomBlocks []*CustomBlock
}

// Parse splits source into a Descriptor, reporting recoverable diagnostics
// to opt.Sink and continuing (per spec.md §7's propagation policy — a
// DuplicateBlock doesn't abort the parse, the later block is just dropped).
func Parse(source string, opt ParseOptions) *Descriptor {
	opt.fillDefaults()

	root, _ := parser.Parse(source, parser.Options{
		GetTextMode: func(tag string) scanner.TextMode {
			if tag == "template" {
				return scanner.Data
			}
			return scanner.RawText
		},
		IsSelfClosingAllowed: func(string, parser.Namespace, bool) bool { return true },
		Sink:                 opt.Sink,
	})

	d := &Descriptor{Filename: opt.Filename, Source: source}
	for _, n := range root.Children {
		el, ok := n.(*parser.Element)
		if !ok {
			continue
		}
		d.addBlock(el, source, &opt)
	}
	return d
}

func (d *Descriptor) addBlock(el *parser.Element, source string, opt *ParseOptions) {
	block := newBlock(el, source)
	if block.Content == "" && !hasSrc(block) && opt.IgnoreEmpty {
		return
	}

	switch el.Tag {
	case "template":
		if d.Template != nil {
			opt.Sink.Error(errs.New(errs.KindStructural, el.Span(), "duplicate <template> block"))
			return
		}
		tpl := &TemplateBlock{Block: block}
		if _, ok := block.Attr("functional"); ok {
			tpl.Functional = true
			opt.Sink.Warning(errs.New(errs.KindDeprecation, el.Span(), "functional <template> is deprecated"))
		}
		d.Template = tpl
	case "script":
		_, setup := block.Attr("setup")
		sb := &ScriptBlock{Block: block, Setup: setup}
		if setup {
			if d.ScriptSetup != nil {
				opt.Sink.Error(errs.New(errs.KindStructural, el.Span(), "duplicate <script setup> block"))
				return
			}
			if src, ok := block.Attr("src"); ok && src != "" {
				opt.Sink.Error(errs.New(errs.KindSemantic, el.Span(), "src is not supported on <script setup>"))
			}
			d.ScriptSetup = sb
		} else {
			if d.Script != nil {
				opt.Sink.Error(errs.New(errs.KindStructural, el.Span(), "duplicate <script> block"))
				return
			}
			d.Script = sb
		}
	case "style":
		sb := &StyleBlock{Block: block}
		if _, ok := block.Attr("scoped"); ok {
			sb.Scoped = true
		}
		if v, ok := block.Attr("module"); ok {
			if v == "" {
				v = "$style"
			}
			sb.CSSModule = v
		}
		if _, ok := block.Attr("vars"); ok {
			sb.VarsDeprecated = true
			opt.Sink.Warning(errs.New(errs.KindDeprecation, el.Span(), "style vars binding is deprecated"))
		}
		d.Styles = append(d.Styles, sb)
	default:
		d.CustomBlocks = append(d.CustomBlocks, &CustomBlock{Block: block})
	}
}

func hasSrc(b Block) bool {
	v, ok := b.Attr("src")
	return ok && v != ""
}

// newBlock extracts a block's content as the byte-slice between its first
// and last child's location, per spec.md §4.7. An element with no children
// (e.g. a self-closing <script src="./x.js" />) has empty content and a
// zero-length span anchored at its own start.
func newBlock(el *parser.Element, source string) Block {
	b := Block{
		Tag:   el.Tag,
		names: make([]string, 0, len(el.Properties)),
		attrs: make(map[string]string, len(el.Properties)),
	}
	for _, p := range el.Properties {
		if p.Kind != parser.PropAttr {
			continue
		}
		if _, exists := b.attrs[p.Name]; !exists {
			b.names = append(b.names, p.Name)
		}
		val := ""
		if p.Value != nil {
			val = p.Value.String()
		}
		b.attrs[p.Name] = val
	}

	if len(el.Children) == 0 {
		start := el.Span().Start
		b.Span = loc.Span{Start: start, End: start}
		return b
	}
	first := el.Children[0].Span()
	last := el.Children[len(el.Children)-1].Span()
	b.Span = loc.Span{Start: first.Start, End: last.End}
	b.Content = source[b.Span.Start:b.Span.End]
	return b
}
