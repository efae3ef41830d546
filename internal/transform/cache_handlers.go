package transform

import "github.com/vuec/compiler/internal/ir"

// CacheHandlers marks eligible handler function expressions cacheable, per
// spec.md §4.5 item 6: not a member-expression-on-component handler, and
// doesn't close over a v-for/slot-scoped identifier. The handler's static
// level is not consulted (see maybeCache).
type CacheHandlers struct {
	scope *Scope
}

func (*CacheHandlers) Name() string { return "CacheHandlers" }

func (c *CacheHandlers) Run(root *ir.Root) {
	c.scope = NewScope()
	for _, n := range root.Children {
		c.visitNode(n, false)
	}
}

// visitNode walks the tree tracking v-for/slot scope and whether the current
// VNode is a component (handlers on a component's own event props are member
// expressions resolved on the child's public API, not a DOM listener, and
// are never cache-eligible per the predicate above).
func (c *CacheHandlers) visitNode(n ir.Node, insideOnce bool) {
	switch v := n.(type) {
	case *ir.VNodeCall:
		if !insideOnce {
			c.markProps(v.Props, v.IsComponent)
		}
		for _, child := range v.Children {
			c.visitNode(child, insideOnce)
		}
	case *ir.If:
		for _, b := range v.Branches {
			c.visitNode(b.Child, insideOnce)
		}
	case *ir.For:
		c.scope.Push(v.Parse.Value, v.Parse.Key, v.Parse.Index)
		c.visitNode(v.Child, insideOnce)
		c.scope.Pop(v.Parse.Value, v.Parse.Key, v.Parse.Index)
	case *ir.CacheNode:
		// v-once subtrees never need their own handler cache; v-memo
		// subtrees do.
		c.visitNode(v.Child, insideOnce || v.Kind == ir.CacheOnce)
	case *ir.VSlotUse:
		for i := range v.StableSlots {
			c.visitSlotBody(v.StableSlots[i], insideOnce)
		}
		for _, a := range v.AlterableSlots {
			if as, ok := a.(*ir.AlterableSlot); ok {
				c.visitSlotBody(as.Inner, insideOnce)
			}
		}
	}
}

func (c *CacheHandlers) visitSlotBody(s ir.Slot, insideOnce bool) {
	c.scope.Push(s.Params...)
	if s.Body != nil {
		c.visitNode(s.Body, insideOnce)
	}
	c.scope.Pop(s.Params...)
}

func (c *CacheHandlers) markProps(props ir.JsExpr, hostIsComponent bool) {
	p, ok := props.(ir.Props)
	if !ok {
		return
	}
	for i, entry := range p.Entries {
		key, ok := entry.Key.(ir.StrLit)
		if !ok || !isHandlerKey(key) {
			continue
		}
		p.Entries[i].Value = c.maybeCache(entry.Value, hostIsComponent)
	}
}

func isHandlerKey(key ir.StrLit) bool {
	s := key.Value.String()
	return len(s) > 2 && s[:2] == "on" && s[2] >= 'A' && s[2] <= 'Z'
}

// maybeCache applies the should_cache predicate: a bare member-expression
// handler is only cacheable when the host isn't a component (a component's
// "on*" prop is resolved by the child, not bound as a DOM listener); any
// handler is disqualified if it closes over a v-for/slot-scoped identifier,
// since the captured value would go stale once cached.
//
// No static_level > NotStatic check is applied: every handler value the
// converter produces carries StaticLevel NotStatic by construction (handler
// bodies are never literals), so such a check would reject every handler.
func (c *CacheHandlers) maybeCache(value ir.JsExpr, hostIsComponent bool) ir.JsExpr {
	switch v := value.(type) {
	case ir.Simple:
		if hostIsComponent || c.scope.HasRefInExpr(v.Value.String()) {
			return v
		}
		return ir.FuncSimple{Src: v.Value.String(), Lvl: v.Lvl, Cache: true}
	case ir.FuncSimple:
		if c.scope.HasRefInExpr(v.Src) {
			return v
		}
		v.Cache = true
		return v
	default:
		return value
	}
}
