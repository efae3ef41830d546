package transform

import (
	"fmt"

	"github.com/vuec/compiler/internal/ir"
	"github.com/vuec/compiler/internal/loc"
	"github.com/vuec/compiler/internal/vstr"
)

// HoistStatic replaces eligible static subtrees with a Hoisted(index)
// reference into root.Hoists, post-order, per spec.md §4.5 item 7.
// Eligibility: static level >= CanHoist and the node is a VNodeCall whose
// children are all static (already hoisted or themselves eligible).
type HoistStatic struct {
	root *ir.Root
}

func (*HoistStatic) Name() string { return "HoistStatic" }

func (h *HoistStatic) Run(root *ir.Root) {
	h.root = root
	for i, n := range root.Children {
		root.Children[i] = h.visitNode(n)
	}
}

func (h *HoistStatic) visitNode(n ir.Node) ir.Node {
	switch v := n.(type) {
	case *ir.VNodeCall:
		for i, c := range v.Children {
			v.Children[i] = h.visitNode(c)
		}
		if h.eligible(v) {
			return h.hoist(v)
		}
		h.hoistPieces(v)
		return v
	case *ir.If:
		for i := range v.Branches {
			v.Branches[i].Child = h.visitNode(v.Branches[i].Child)
		}
		return v
	case *ir.For:
		v.Child = h.visitNode(v.Child)
		return v
	case *ir.CacheNode:
		v.Child = h.visitNode(v.Child)
		return v
	case *ir.VSlotUse:
		for i := range v.StableSlots {
			if v.StableSlots[i].Body != nil {
				v.StableSlots[i].Body = h.visitNode(v.StableSlots[i].Body)
			}
		}
		return v
	default:
		return n
	}
}

// hoistPieces promotes a non-hoistable VNode's static Props collection on
// its own, respecting the "at most one hoist per category" invariant
// HoistedAssets enforces. The tree position held an ir.JsExpr, so the
// replacement is a Simple expression naming the hoisted constant rather
// than an ir.Hoisted node (that variant is for Node positions — a whole
// hoisted child VNode or text run).
func (h *HoistStatic) hoistPieces(v *ir.VNodeCall) {
	if props, ok := v.Props.(ir.Props); ok && props.Level() >= ir.CanHoist {
		idx := h.add(v.Props)
		if err := v.Hoisted.AddProps(idx); err == nil {
			v.Props = ir.Simple{Value: vstr.Of(hoistedVarName(idx)), Lvl: ir.CanHoist}
		}
	}
}

func hoistedVarName(idx int) string {
	return fmt.Sprintf("_hoisted_%d", idx+1)
}

// eligible reports whether v itself (as a whole VNodeCall) can be promoted
// to a module-level constant: every child is static and the props/tag carry
// no render-time dependency.
func (h *HoistStatic) eligible(v *ir.VNodeCall) bool {
	if v.IsComponent || v.Tag.Level() < ir.CanStringify {
		return false
	}
	if v.Props != nil {
		if lvl := v.Props.Level(); lvl < ir.CanHoist {
			return false
		}
	}
	for _, c := range v.Children {
		switch cn := c.(type) {
		case *ir.Hoisted:
			continue
		case *ir.VNodeCall:
			if !h.eligible(cn) {
				return false
			}
		case *ir.TextCall:
			for _, t := range cn.Texts {
				if t.Level() < ir.CanStringify {
					return false
				}
			}
		default:
			return false
		}
	}
	return true
}

func (h *HoistStatic) hoist(n ir.Node) ir.Node {
	idx := h.add(n)
	return &ir.Hoisted{Index: idx}
}

func (h *HoistStatic) add(n any) int {
	switch v := n.(type) {
	case ir.Node:
		h.root.Hoists = append(h.root.Hoists, v)
	case ir.JsExpr:
		h.root.Hoists = append(h.root.Hoists, hoistedExpr{v})
	}
	return len(h.root.Hoists) - 1
}

// hoistedExpr adapts a hoisted JsExpr (e.g. a Props object promoted on its
// own, independent of its owning VNode) to the ir.Node interface so it can
// live in Root.Hoists alongside hoisted VNodeCalls.
type hoistedExpr struct {
	Expr ir.JsExpr
}

func (hoistedExpr) isIRNode()      {}
func (hoistedExpr) Span() loc.Span { return loc.Span{} }

// AsHoistedExpr reports whether n is a hoisted JsExpr entry (as opposed to a
// hoisted whole Node) and returns the wrapped expression, so the generator
// can tell the two Root.Hoists entry shapes apart without importing an
// unexported type.
func AsHoistedExpr(n ir.Node) (ir.JsExpr, bool) {
	h, ok := n.(hoistedExpr)
	return h.Expr, ok
}
