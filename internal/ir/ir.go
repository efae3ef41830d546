// Package ir defines the semantic tree the converter produces, the
// transformer mutates in place, and the code generator walks to emit JS
// source. It is ported from original_source/vue-compiler's crates/compiler
// ir.rs, generalized from Rust's ConvertInfo trait parameter to a single
// concrete representation — Go's lack of associated types makes a
// per-backend generic IR more friction than value here, and spec.md names
// only one backend.
package ir

import "github.com/vuec/compiler/internal/loc"

// Node is the tagged union of IR node variants from spec.md §3. As with
// JsExpr, this is an interface plus one struct per variant rather than
// virtual dispatch, so consumers type-switch exhaustively.
type Node interface {
	isIRNode()
	Span() loc.Span
}

type base struct {
	span loc.Span
}

func (b base) Span() loc.Span { return b.span }

// NewSpan is a convenience constructor tests and converters use to stamp a
// node's source span.
func NewSpan(start, end int) loc.Span { return loc.Span{Start: start, End: end} }

// TextCall renders a run of merged text/interpolation pieces.
type TextCall struct {
	base
	Texts     []JsExpr
	FastPath  bool
	NeedPatch bool
}

func (*TextCall) isIRNode() {}

// Branch is one arm of an If node.
type Branch struct {
	Condition JsExpr // nil for the trailing v-else arm
	Child     Node
	BranchKey int
}

// If collapses a v-if/v-else-if/v-else group into one node.
type If struct {
	base
	Branches []Branch
}

func (*If) isIRNode() {}

// ForParseResult is the destructured "(value, key, index) in source" shape.
type ForParseResult struct {
	Value  string
	Key    string
	Index  string
	Source JsExpr
}

// FragmentFlag classifies a For node's runtime diffing strategy.
type FragmentFlag int

const (
	UnkeyedFragment FragmentFlag = iota
	KeyedFragment
	StableFragment
)

// For is the IR form of a v-for loop.
type For struct {
	base
	Parse        ForParseResult
	Child        Node
	IsStable     bool
	FragmentFlag FragmentFlag
	Key          JsExpr // nil unless a key binding exists
}

func (*For) isIRNode() {}

// RuntimeDir is a non-structural directive attached to a VNode, e.g. a
// custom v-focus directive.
type RuntimeDir struct {
	Name      string
	Expr      JsExpr
	Arg       JsExpr
	Modifiers []string
}

// VNodeCall creates a single element/component/fragment at runtime.
type VNodeCall struct {
	base
	Tag               JsExpr
	Props             JsExpr // nil when there are no props
	Children          []Node
	PatchFlag         PatchFlag
	DynamicProps      []string
	Directives        []RuntimeDir
	IsBlock           bool
	DisableTracking   bool
	IsComponent       bool
	FastPath          bool
	Hoisted           *HoistedAssets
}

func (*VNodeCall) isIRNode() {}

// RenderSlotCall emits a runtime renderSlot() invocation.
type RenderSlotCall struct {
	base
	SlotObj   JsExpr
	SlotName  JsExpr
	SlotProps JsExpr
	Fallbacks []Node
	NoSlotted bool
}

func (*RenderSlotCall) isIRNode() {}

// SlotFlag classifies a VSlotUse's dynamism for the runtime, per spec.md §4.5
// item 4.
type SlotFlag int

const (
	SlotStable SlotFlag = iota
	SlotDynamic
	SlotForwarded
)

// Slot is one named slot function definition.
type Slot struct {
	Name   JsExpr
	Params []string
	Body   Node
}

// AlterableSlot wraps a Slot gated by v-if/v-for, kept separate from the
// stable slot list so the generator can emit it as a conditional entry.
type AlterableSlot struct {
	base
	Inner Slot
}

func (*AlterableSlot) isIRNode() {}

// VSlotUse is the converted form of a v-slot binding on a component or
// <template>.
type VSlotUse struct {
	base
	StableSlots    []Slot
	AlterableSlots []Node // each a *AlterableSlot
	Flag           SlotFlag
}

func (*VSlotUse) isIRNode() {}

// CacheKind distinguishes the three reasons a subtree is cached, per
// spec.md §3.
type CacheKind int

const (
	CacheOnce CacheKind = iota
	CacheMemo
	CacheMemoInVFor
)

// CacheNode wraps a subtree behind a _cache[n] slot.
type CacheNode struct {
	base
	Kind     CacheKind
	MemoExpr JsExpr // set for CacheMemo and CacheMemoInVFor
	Key      JsExpr // set for CacheMemoInVFor when a key binding exists
	Child    Node
}

func (*CacheNode) isIRNode() {}

// CommentCall renders a createCommentVNode() call for a literal HTML
// comment preserved per CompileOption.preserve_comments.
type CommentCall struct {
	base
	Text string
}

func (*CommentCall) isIRNode() {}

// Hoisted references a module-level constant created by HoistStatic.
type Hoisted struct {
	base
	Index int
}

func (*Hoisted) isIRNode() {}

// Root is the IR tree's entry point, owning the entities the EntityCollector
// pass gathers and the hoisted-constant table HoistStatic populates.
type Root struct {
	base
	Children []Node
	Scope    *TopScope
	Hoists   []Node
}

func (*Root) isIRNode() {}

// TopScope accumulates cross-cutting compile state gathered by the converter
// and EntityCollector: referenced helpers and component/directive asset
// names. TempVars is not populated by any pass.
type TopScope struct {
	Helpers    map[Helper]bool
	Components map[string]bool // asset name -> true; self-referencing components are not distinguished
	Directives map[string]bool
	TempVars   []string
}

func NewTopScope() *TopScope {
	return &TopScope{
		Helpers:    map[Helper]bool{},
		Components: map[string]bool{},
		Directives: map[string]bool{},
	}
}

func (s *TopScope) UseHelper(h Helper) { s.Helpers[h] = true }

// SortedHelpers returns the referenced helpers in a stable, deterministic
// order so golden-tested output never reorders between runs — the set
// itself has no intrinsic order, so we sort by the Helper enum's declared
// (canonical) order instead of insertion order.
func (s *TopScope) SortedHelpers() []Helper {
	out := make([]Helper, 0, len(s.Helpers))
	for h := range s.Helpers {
		out = append(out, h)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
