package transform

import "github.com/vuec/compiler/internal/ir"

// SlotFlagMarker classifies each VSlotUse as Stable, Dynamic, or Forwarded,
// per spec.md §4.5 item 4. It threads a Scope through the walk the same way
// CacheHandlers and ExpressionProcessor do, so a stable slot whose body
// closes over an enclosing v-for alias or enclosing slot param can be caught
// and reclassified as Dynamic.
type SlotFlagMarker struct {
	scope *Scope
}

func (*SlotFlagMarker) Name() string { return "SlotFlagMarker" }

func (s *SlotFlagMarker) Run(root *ir.Root) {
	s.scope = NewScope()
	for _, n := range root.Children {
		s.visitNode(n)
	}
}

func (s *SlotFlagMarker) visitNode(n ir.Node) {
	switch v := n.(type) {
	case *ir.VNodeCall:
		for _, c := range v.Children {
			s.visitNode(c)
		}
	case *ir.If:
		for _, b := range v.Branches {
			s.visitNode(b.Child)
		}
	case *ir.For:
		s.scope.Push(v.Parse.Value, v.Parse.Key, v.Parse.Index)
		s.visitNode(v.Child)
		s.scope.Pop(v.Parse.Value, v.Parse.Key, v.Parse.Index)
	case *ir.CacheNode:
		s.visitNode(v.Child)
	case *ir.VSlotUse:
		s.markSlotUse(v)
	}
}

func (s *SlotFlagMarker) markSlotUse(use *ir.VSlotUse) {
	for i := range use.StableSlots {
		if use.StableSlots[i].Body != nil {
			s.scope.Push(use.StableSlots[i].Params...)
			s.visitNode(use.StableSlots[i].Body)
			s.scope.Pop(use.StableSlots[i].Params...)
		}
	}
	switch {
	case len(use.AlterableSlots) > 0:
		use.Flag = ir.SlotDynamic
	case s.stableSlotsCaptureOuterScope(use):
		use.Flag = ir.SlotDynamic
	case forwardsSlotOutlet(use):
		use.Flag = ir.SlotForwarded
	default:
		use.Flag = ir.SlotStable
	}
}

// stableSlotsCaptureOuterScope reports whether any of use's stable slot
// bodies references an identifier bound by an enclosing v-for alias or
// enclosing slot param — the closure-capture case spec.md §4.5 item 4 demotes
// from Stable to Dynamic, since the slot content would go stale between the
// outer scope's re-renders if the parent skipped re-invoking it.
func (s *SlotFlagMarker) stableSlotsCaptureOuterScope(use *ir.VSlotUse) bool {
	for i := range use.StableSlots {
		if bodyRefsScope(use.StableSlots[i].Body, s.scope) {
			return true
		}
	}
	return false
}

// forwardsSlotOutlet reports whether the use's single stable-default slot's
// body is itself a <slot> outlet render (a RenderSlotCall), which marks the
// slot as a pure pass-through, per spec.md §4.5 item 4.
func forwardsSlotOutlet(use *ir.VSlotUse) bool {
	if len(use.StableSlots) != 1 {
		return false
	}
	_, ok := use.StableSlots[0].Body.(*ir.RenderSlotCall)
	return ok
}

// bodyRefsScope reports whether any expression reachable from n references
// an identifier currently bound in scope. It mirrors ExpressionProcessor's
// node walk but reads instead of rewriting.
func bodyRefsScope(n ir.Node, scope *Scope) bool {
	if n == nil || scope == nil {
		return false
	}
	switch v := n.(type) {
	case *ir.VNodeCall:
		if exprRefsScope(v.Tag, scope) || exprRefsScope(v.Props, scope) {
			return true
		}
		for i := range v.Directives {
			if exprRefsScope(v.Directives[i].Arg, scope) || exprRefsScope(v.Directives[i].Expr, scope) {
				return true
			}
		}
		for _, c := range v.Children {
			if bodyRefsScope(c, scope) {
				return true
			}
		}
	case *ir.If:
		for _, b := range v.Branches {
			if exprRefsScope(b.Condition, scope) || bodyRefsScope(b.Child, scope) {
				return true
			}
		}
	case *ir.For:
		if exprRefsScope(v.Parse.Source, scope) || exprRefsScope(v.Key, scope) {
			return true
		}
		return bodyRefsScope(v.Child, scope)
	case *ir.CacheNode:
		return exprRefsScope(v.MemoExpr, scope) || bodyRefsScope(v.Child, scope)
	case *ir.RenderSlotCall:
		if exprRefsScope(v.SlotObj, scope) || exprRefsScope(v.SlotName, scope) || exprRefsScope(v.SlotProps, scope) {
			return true
		}
		for _, f := range v.Fallbacks {
			if bodyRefsScope(f, scope) {
				return true
			}
		}
	case *ir.VSlotUse:
		for i := range v.StableSlots {
			if bodyRefsScope(v.StableSlots[i].Body, scope) {
				return true
			}
		}
		for _, a := range v.AlterableSlots {
			if as, ok := a.(*ir.AlterableSlot); ok && bodyRefsScope(as.Inner.Body, scope) {
				return true
			}
		}
	case *ir.TextCall:
		for _, t := range v.Texts {
			if exprRefsScope(t, scope) {
				return true
			}
		}
	}
	return false
}

func exprRefsScope(e ir.JsExpr, scope *Scope) bool {
	switch v := e.(type) {
	case nil:
		return false
	case ir.Simple:
		return scope.HasRefInExpr(v.Value.String())
	case ir.FuncSimple:
		return scope.HasRefInExpr(v.Src)
	case ir.Props:
		for _, entry := range v.Entries {
			if exprRefsScope(entry.Key, scope) || exprRefsScope(entry.Value, scope) {
				return true
			}
		}
	case ir.Array:
		for _, item := range v.Items {
			if exprRefsScope(item, scope) {
				return true
			}
		}
	case ir.Call:
		for _, a := range v.Args {
			if exprRefsScope(a, scope) {
				return true
			}
		}
	}
	return false
}
