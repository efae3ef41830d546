// Package codegen walks a transformed ir.Root and emits JS source text, per
// spec.md §4.6. It mirrors the teacher's internal/printer buffer-and-print
// idiom (a byte-backed writer with print/printf/println helpers and a table
// of canonical runtime-symbol names) without that package's source-map
// machinery, since source maps are an explicitly retained Non-goal here.
package codegen

// ModeKind distinguishes the two output shapes spec.md §6 names.
type ModeKind int

const (
	// ModeFunction emits `const _Vue = Vue; return function render(_ctx,
	// _cache) { const { createVNode: _createVNode, ... } = _Vue; ... }`.
	ModeFunction ModeKind = iota
	// ModeModule emits `import { createVNode as _createVNode, ... } from
	// <runtime>; export function render(_ctx, _cache) { ... }`.
	ModeModule
)

// Mode carries the per-kind fields CompileOption.mode groups together in
// spec.md §6.
type Mode struct {
	Kind ModeKind

	// Function mode.
	PrefixIdentifier  bool
	RuntimeGlobalName string

	// Module mode.
	RuntimeModuleName string
}

// Options mirrors the subset of CompileOption (spec.md §6) the generator
// consumes.
type Options struct {
	Mode             Mode
	IsDev            bool
	PreserveComments *bool
}

func (o *Options) fillDefaults() {
	if o.Mode.RuntimeGlobalName == "" {
		o.Mode.RuntimeGlobalName = "Vue"
	}
	if o.Mode.RuntimeModuleName == "" {
		o.Mode.RuntimeModuleName = "vue"
	}
}

func (o *Options) preserveComments() bool {
	if o.PreserveComments != nil {
		return *o.PreserveComments
	}
	return o.IsDev
}
