package transform

import "github.com/vuec/compiler/internal/ir"

// TextOptimizer merges consecutive TextCall siblings into one and marks an
// element's single-text-child fast path, per spec.md §4.5 item 1.
type TextOptimizer struct{}

func (*TextOptimizer) Name() string { return "TextOptimizer" }

func (t *TextOptimizer) Run(root *ir.Root) {
	root.Children = t.visitSiblings(root.Children)
}

func (t *TextOptimizer) visitSiblings(nodes []ir.Node) []ir.Node {
	merged := mergeTextRuns(nodes)
	for _, n := range merged {
		t.visitNode(n)
	}
	return merged
}

// mergeTextRuns collapses runs of adjacent *TextCall nodes into one,
// concatenating their Texts slices in order.
func mergeTextRuns(nodes []ir.Node) []ir.Node {
	var out []ir.Node
	for _, n := range nodes {
		if tc, ok := n.(*ir.TextCall); ok {
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].(*ir.TextCall); ok {
					prev.Texts = append(prev.Texts, tc.Texts...)
					continue
				}
			}
		}
		out = append(out, n)
	}
	return out
}

func (t *TextOptimizer) visitNode(n ir.Node) {
	switch v := n.(type) {
	case *ir.VNodeCall:
		v.Children = t.visitSiblings(v.Children)
		v.FastPath = singleTextFastPath(v)
		for _, child := range v.Children {
			if tc, ok := child.(*ir.TextCall); ok && v.FastPath {
				tc.FastPath = true
			}
		}
	case *ir.If:
		for i := range v.Branches {
			t.visitNode(v.Branches[i].Child)
		}
	case *ir.For:
		t.visitNode(v.Child)
	case *ir.CacheNode:
		t.visitNode(v.Child)
	case *ir.RenderSlotCall:
		v.Fallbacks = t.visitSiblings(v.Fallbacks)
	case *ir.VSlotUse:
		for i := range v.StableSlots {
			t.visitSlot(&v.StableSlots[i])
		}
		for _, a := range v.AlterableSlots {
			if as, ok := a.(*ir.AlterableSlot); ok {
				t.visitSlot(&as.Inner)
			}
		}
	}
}

func (t *TextOptimizer) visitSlot(s *ir.Slot) {
	if s.Body != nil {
		t.visitNode(s.Body)
	}
}

// singleTextFastPath reports whether v has exactly one child, that child is
// a TextCall, and v is neither a component nor carries runtime directives —
// spec.md §4.5 item 1's fast_path predicate.
func singleTextFastPath(v *ir.VNodeCall) bool {
	if v.IsComponent || len(v.Directives) > 0 {
		return false
	}
	if len(v.Children) != 1 {
		return false
	}
	_, ok := v.Children[0].(*ir.TextCall)
	return ok
}
