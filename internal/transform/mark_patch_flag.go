package transform

import "github.com/vuec/compiler/internal/ir"

// PatchFlagMarker implements spec.md §4.5 item 3: If-branch key injection
// and is_block stamping, For fragment-flag classification, and PatchFlag
// bits for text-only VNodes and TextCall nodes.
type PatchFlagMarker struct{}

func (*PatchFlagMarker) Name() string { return "PatchFlagMarker" }

func (m *PatchFlagMarker) Run(root *ir.Root) {
	for _, n := range root.Children {
		m.visitNode(n)
	}
}

func (m *PatchFlagMarker) visitNode(n ir.Node) {
	switch v := n.(type) {
	case *ir.VNodeCall:
		m.markVNode(v)
		for _, c := range v.Children {
			m.visitNode(c)
		}
	case *ir.If:
		m.markIf(v)
	case *ir.For:
		m.markFor(v)
		m.visitNode(v.Child)
	case *ir.CacheNode:
		m.visitNode(v.Child)
	case *ir.RenderSlotCall:
		for _, f := range v.Fallbacks {
			m.visitNode(f)
		}
	case *ir.VSlotUse:
		for i := range v.StableSlots {
			if v.StableSlots[i].Body != nil {
				m.visitNode(v.StableSlots[i].Body)
			}
		}
		for _, a := range v.AlterableSlots {
			if as, ok := a.(*ir.AlterableSlot); ok && as.Inner.Body != nil {
				m.visitNode(as.Inner.Body)
			}
		}
	case *ir.TextCall:
		m.markText(v)
	}
}

// markVNode sets PatchText when v has a single fast-path, patch-marked text
// child and v is not the Teleport builtin symbol.
func (m *PatchFlagMarker) markVNode(v *ir.VNodeCall) {
	if isTeleportTag(v.Tag) {
		return
	}
	if len(v.Children) != 1 {
		return
	}
	tc, ok := v.Children[0].(*ir.TextCall)
	if !ok {
		return
	}
	m.markText(tc)
	if tc.FastPath && tc.NeedPatch {
		v.PatchFlag |= ir.PatchText
	}
}

func isTeleportTag(tag ir.JsExpr) bool {
	sym, ok := tag.(ir.Symbol)
	return ok && sym.Fn == ir.HelperTeleport
}

func (m *PatchFlagMarker) markText(tc *ir.TextCall) {
	level := ir.CanStringify
	for _, t := range tc.Texts {
		if t.Level() < level {
			level = t.Level()
		}
	}
	tc.NeedPatch = level == ir.NotStatic
}

// markIf injects a synthetic key prop into each branch's VNodeCall child
// when it lacks one, and sets is_block for VNode children whose tag is not
// the Fragment symbol, per spec.md §4.5 item 3.
func (m *PatchFlagMarker) markIf(i *ir.If) {
	for idx := range i.Branches {
		b := &i.Branches[idx]
		m.visitNode(b.Child)
		vnode, ok := b.Child.(*ir.VNodeCall)
		if !ok {
			continue
		}
		if !isFragmentTag(vnode.Tag) {
			vnode.IsBlock = true
		}
		injectBranchKey(vnode, b.BranchKey)
	}
}

func isFragmentTag(tag ir.JsExpr) bool {
	sym, ok := tag.(ir.Symbol)
	return ok && sym.Fn == ir.HelperFragment
}

// injectBranchKey adds a "key: branchKey" entry to vnode's Props, per
// spec.md §4.5 item 3's three-way rule: into the existing Props, into the
// single Props arg of a MERGE_PROPS call, or by wrapping a bare expression
// into MERGE_PROPS(expr, Props([key])).
func injectBranchKey(vnode *ir.VNodeCall, branchKey int) {
	keyEntry := ir.PropEntry{Key: ir.Src{Text: "key"}, Value: ir.Num{Value: branchKey}}
	switch props := vnode.Props.(type) {
	case nil:
		vnode.Props = ir.Props{Entries: []ir.PropEntry{keyEntry}}
	case ir.Props:
		if hasKeyEntry(props) {
			return
		}
		props.Entries = append(props.Entries, keyEntry)
		vnode.Props = props
	case ir.Call:
		if props.Fn != ir.HelperMergeProps {
			vnode.Props = ir.Call{Fn: ir.HelperMergeProps, Args: []ir.JsExpr{props, ir.Props{Entries: []ir.PropEntry{keyEntry}}}}
			return
		}
		if len(props.Args) == 0 {
			props.Args = []ir.JsExpr{ir.Props{Entries: []ir.PropEntry{keyEntry}}}
			vnode.Props = props
			return
		}
		if entries, ok := props.Args[0].(ir.Props); ok {
			if hasKeyEntry(entries) {
				return
			}
			entries.Entries = append(entries.Entries, keyEntry)
			props.Args[0] = entries
			vnode.Props = props
			return
		}
		// The leading arg isn't a plain Props object (a bare expression);
		// wrap the whole call so the key lands in its own entries object.
		vnode.Props = ir.Call{Fn: ir.HelperMergeProps, Args: []ir.JsExpr{props, ir.Props{Entries: []ir.PropEntry{keyEntry}}}}
	default:
		// A bare non-Props expression (e.g. a lone v-bind="obj" with no
		// other attrs): wrap it per spec.md §4.5 item 3.
		vnode.Props = ir.Call{Fn: ir.HelperMergeProps, Args: []ir.JsExpr{props, ir.Props{Entries: []ir.PropEntry{keyEntry}}}}
	}
}

func hasKeyEntry(props ir.Props) bool {
	for _, e := range props.Entries {
		if src, ok := e.Key.(ir.Src); ok && src.Text == "key" {
			return true
		}
		if lit, ok := e.Key.(ir.StrLit); ok && lit.Value.String() == "key" {
			return true
		}
	}
	return false
}

// markFor classifies a For node's fragment flag per spec.md §4.5 item 3:
// StableFragment when the source is statically known, else KeyedFragment
// when the child carries a key, else UnkeyedFragment.
func (m *PatchFlagMarker) markFor(f *ir.For) {
	switch {
	case f.Parse.Source != nil && f.Parse.Source.Level() != ir.NotStatic:
		f.FragmentFlag = ir.StableFragment
		f.IsStable = true
	case f.Key != nil:
		f.FragmentFlag = ir.KeyedFragment
		f.IsStable = false
	default:
		f.FragmentFlag = ir.UnkeyedFragment
		f.IsStable = false
	}
}
