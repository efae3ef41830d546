// Package vuec compiles a template source string into a JavaScript render
// function, per spec.md §6's compile(source, sfc_info, options) entry point.
// It wires together, in order, internal/parser (text -> AST),
// internal/convert (AST -> IR), internal/transform (IR -> IR passes), and
// internal/codegen (IR -> text) -- the pipeline spec.md §2 describes.
package vuec

import (
	"github.com/vuec/compiler/internal/codegen"
	"github.com/vuec/compiler/internal/convert"
	"github.com/vuec/compiler/internal/debugdump"
	"github.com/vuec/compiler/internal/dompreset"
	"github.com/vuec/compiler/internal/errs"
	"github.com/vuec/compiler/internal/parser"
	"github.com/vuec/compiler/internal/scanner"
	"github.com/vuec/compiler/internal/sfc"
	"github.com/vuec/compiler/internal/transform"
)

// Mode is codegen's function/module output shape, re-exported so callers
// never need to import internal/codegen directly.
type Mode = codegen.Mode

const (
	ModeFunction = codegen.ModeFunction
	ModeModule   = codegen.ModeModule
)

// SfcInfo carries the single-file-component context a template compiles
// within, the second argument spec.md §6's compile takes. Filename is empty
// for a standalone template with no enclosing .vue file.
type SfcInfo struct {
	Filename string
}

// CompileOption groups every knob spec.md §6 lists on the compiler's public
// surface. The zero value is usable but permissive (every tag looks native,
// nothing is void or pre, no builtins) -- Default returns the preset an
// actual host wires in.
type CompileOption struct {
	IsNativeTag         func(tag string) bool
	IsVoidTag           func(tag string) bool
	IsPreTag            func(tag string) bool
	GetBuiltinComponent func(tag string) convert.BuiltinComponent
	IsCustomElement     func(tag string) bool
	GetNamespace        func(tag string, parent *parser.Namespace) parser.Namespace
	GetTextMode         func(tag string) scanner.TextMode

	DelimOpen, DelimClose string
	Whitespace            parser.Whitespace
	PreserveComments      *bool

	IsDev          bool
	HoistStatic    bool
	CacheHandlers  bool
	NeedReactivity bool
	SourceMap      bool

	Mode Mode

	// ErrorHandler, if set, receives every diagnostic as Compile raises it,
	// in addition to the diagnostics Compile always returns.
	ErrorHandler errs.Sink

	// DumpIR, if set, receives a JSON rendering of the transformed IR tree
	// (via internal/debugdump) right before codegen runs — a debugging hook
	// for tooling that wants to inspect intermediate compiler output.
	DumpIR func(json []byte)
}

// Default returns the reference DOM preset: HTML/SVG/MathML tag tables from
// internal/dompreset, "{{"/"}}" delimiters, whitespace condensing, dev mode,
// and function-mode output with hoisting and handler caching on -- the
// combination spec.md §6 calls the common case.
func Default() CompileOption {
	return CompileOption{
		IsNativeTag:         dompreset.IsNativeTag,
		IsVoidTag:           dompreset.IsVoidTag,
		IsPreTag:            dompreset.IsPreTag,
		GetBuiltinComponent: dompreset.GetBuiltinComponent,
		IsCustomElement:     dompreset.IsCustomElement,
		GetNamespace:        dompreset.GetNamespace,
		GetTextMode:         dompreset.TextMode,
		DelimOpen:           "{{",
		DelimClose:          "}}",
		Whitespace:          parser.Condense,
		IsDev:               true,
		HoistStatic:         true,
		CacheHandlers:       true,
		Mode: Mode{
			Kind:              codegen.ModeFunction,
			PrefixIdentifier:  true,
			RuntimeGlobalName: "Vue",
			RuntimeModuleName: "vue",
		},
	}
}

func (o *CompileOption) fillDefaults() {
	if o.DelimOpen == "" {
		o.DelimOpen = "{{"
	}
	if o.DelimClose == "" {
		o.DelimClose = "}}"
	}
	if o.ErrorHandler == nil {
		o.ErrorHandler = errs.NoopSink{}
	}
}

func (o *CompileOption) preserveComments() bool {
	if o.PreserveComments != nil {
		return *o.PreserveComments
	}
	return o.IsDev
}

// multiSink fans a diagnostic out to every sink in the slice, in order, so
// Compile can hand the caller's ErrorHandler every diagnostic while still
// collecting its own copy to return.
type multiSink []errs.Sink

func (m multiSink) Error(e *errs.CompilationError) {
	for _, s := range m {
		s.Error(e)
	}
}

func (m multiSink) Warning(e *errs.CompilationError) {
	for _, s := range m {
		s.Warning(e)
	}
}

func (m multiSink) Info(e *errs.CompilationError) {
	for _, s := range m {
		s.Info(e)
	}
}

func (m multiSink) Hint(e *errs.CompilationError) {
	for _, s := range m {
		s.Hint(e)
	}
}

// Compile turns template source into an emitted render function plus every
// diagnostic raised along the way, per spec.md §6. info is currently
// informational only; a future scoped-CSS/asset pass would key off it.
func Compile(source string, info SfcInfo, options CompileOption) (string, []*errs.CompilationError) {
	options.fillDefaults()
	collected := errs.NewCollectingSink()
	sink := multiSink{options.ErrorHandler, collected}

	astRoot, _ := parser.Parse(source, parser.Options{
		DelimOpen:        options.DelimOpen,
		DelimClose:       options.DelimClose,
		IsVoidTag:        options.IsVoidTag,
		IsPreTag:         options.IsPreTag,
		GetTextMode:      options.GetTextMode,
		GetNamespace:     options.GetNamespace,
		IsNativeTag:      options.IsNativeTag,
		Whitespace:       options.Whitespace,
		PreserveComments: options.preserveComments(),
		Sink:             sink,
	})

	irRoot := convert.Convert(astRoot, convert.Options{
		IsNativeTag:         options.IsNativeTag,
		GetBuiltinComponent: options.GetBuiltinComponent,
		IsCustomElement:     options.IsCustomElement,
		NeedReactivity:      options.NeedReactivity,
	}, sink)

	transform.Default(transform.Options{
		PrefixIdentifier: options.Mode.PrefixIdentifier,
		CacheHandlers:    options.CacheHandlers,
		HoistStatic:      options.HoistStatic,
	}).Run(irRoot)

	if options.DumpIR != nil {
		if dump, err := debugdump.IR(irRoot); err == nil {
			options.DumpIR(dump)
		}
	}

	preserve := options.preserveComments()
	code := codegen.Generate(irRoot, codegen.Options{
		Mode:             options.Mode,
		IsDev:            options.IsDev,
		PreserveComments: &preserve,
	})

	return code, collected.All()
}

// SfcCompileResult is CompileSFC's return value: the compiled template's
// render function alongside the other blocks a bundler still needs to
// process on its own (script, styles, custom blocks).
type SfcCompileResult struct {
	Code        string
	Descriptor  *sfc.Descriptor
	Diagnostics []*errs.CompilationError
}

// CompileSFC splits a .vue source file with internal/sfc and compiles its
// <template> block, returning the other blocks alongside for the caller to
// handle (script transpilation and style scoping are out of scope here).
// A source with no <template> block returns an empty Code and no error --
// a script-only SFC isn't malformed.
func CompileSFC(source string, filename string, options CompileOption) *SfcCompileResult {
	d := sfc.Parse(source, sfc.ParseOptions{Filename: filename})
	result := &SfcCompileResult{Descriptor: d}
	if d.Template == nil {
		return result
	}
	code, diags := Compile(d.Template.Content, SfcInfo{Filename: filename}, options)
	result.Code = code
	result.Diagnostics = diags
	return result
}
