package transform

import (
	"github.com/vuec/compiler/internal/ir"
	"github.com/vuec/compiler/internal/vstr"
)

// EntityCollector accumulates referenced helpers and component/directive
// asset names into the root's TopScope, per spec.md §4.5 item 2. It does not
// collect temp-variable identifiers.
type EntityCollector struct{}

func (*EntityCollector) Name() string { return "EntityCollector" }

func (e *EntityCollector) Run(root *ir.Root) {
	if root.Scope == nil {
		root.Scope = ir.NewTopScope()
	}
	for _, n := range root.Children {
		e.visitNode(root.Scope, n)
	}
}

func (e *EntityCollector) visitNode(scope *ir.TopScope, n ir.Node) {
	switch v := n.(type) {
	case *ir.VNodeCall:
		e.collectVNodeHelpers(scope, v)
		e.visitExpr(scope, v.Tag)
		e.visitExpr(scope, v.Props)
		for _, d := range v.Directives {
			scope.UseHelper(ir.HelperWithDirectives)
			if name, ok := directiveAssetName(d.Name); ok {
				scope.Directives[name] = true
			}
		}
		for _, c := range v.Children {
			e.visitNode(scope, c)
		}
	case *ir.If:
		scope.UseHelper(ir.HelperCreateCommentVNode)
		for _, b := range v.Branches {
			e.visitExpr(scope, b.Condition)
			e.visitNode(scope, b.Child)
		}
	case *ir.For:
		scope.UseHelper(ir.HelperRenderList)
		scope.UseHelper(ir.HelperFragment)
		e.visitExpr(scope, v.Parse.Source)
		e.visitNode(scope, v.Child)
	case *ir.RenderSlotCall:
		scope.UseHelper(ir.HelperRenderSlot)
		for _, f := range v.Fallbacks {
			e.visitNode(scope, f)
		}
	case *ir.VSlotUse:
		for i := range v.StableSlots {
			e.visitSlotBody(scope, v.StableSlots[i].Body)
		}
		for _, a := range v.AlterableSlots {
			if as, ok := a.(*ir.AlterableSlot); ok {
				e.visitSlotBody(scope, as.Inner.Body)
			}
		}
	case *ir.CacheNode:
		switch v.Kind {
		case ir.CacheOnce:
			scope.UseHelper(ir.HelperWithMemo)
		case ir.CacheMemo, ir.CacheMemoInVFor:
			scope.UseHelper(ir.HelperWithMemo)
			scope.UseHelper(ir.HelperIsMemoSame)
		}
		e.visitExpr(scope, v.MemoExpr)
		e.visitNode(scope, v.Child)
	case *ir.TextCall:
		scope.UseHelper(ir.HelperCreateTextVNode)
		for _, t := range v.Texts {
			e.visitExpr(scope, t)
			if t.Level() == ir.NotStatic {
				scope.UseHelper(ir.HelperToDisplayString)
			}
		}
	case *ir.CommentCall:
		scope.UseHelper(ir.HelperCreateCommentVNode)
	}
}

func (e *EntityCollector) visitSlotBody(scope *ir.TopScope, body ir.Node) {
	if body != nil {
		e.visitNode(scope, body)
	}
}

func (e *EntityCollector) collectVNodeHelpers(scope *ir.TopScope, v *ir.VNodeCall) {
	if v.IsComponent {
		scope.UseHelper(ir.HelperCreateVNode)
		if name, ok := componentAssetName(v.Tag); ok {
			scope.Components[name] = true
		}
	} else {
		scope.UseHelper(ir.HelperCreateElementVNode)
	}
	if v.IsBlock {
		scope.UseHelper(ir.HelperOpenBlock)
		if v.IsComponent {
			scope.UseHelper(ir.HelperCreateBlock)
		} else {
			scope.UseHelper(ir.HelperCreateElementBlock)
		}
	}
}

func (e *EntityCollector) visitExpr(scope *ir.TopScope, expr ir.JsExpr) {
	if expr == nil {
		return
	}
	switch v := expr.(type) {
	case ir.Call:
		scope.UseHelper(v.Fn)
		for _, a := range v.Args {
			e.visitExpr(scope, a)
		}
	case ir.Symbol:
		scope.UseHelper(v.Fn)
	case ir.Props:
		for _, entry := range v.Entries {
			e.visitExpr(scope, entry.Key)
			e.visitExpr(scope, entry.Value)
		}
	case ir.Array:
		for _, item := range v.Items {
			e.visitExpr(scope, item)
		}
	case ir.Compound:
		for _, p := range v.Parts {
			e.visitExpr(scope, p)
		}
	case ir.FuncCompound:
		for _, p := range v.Body {
			e.visitExpr(scope, p)
		}
	}
}

// componentAssetName recovers the asset-name string a component tag's Tag
// expression carries, so the name can also be registered on TopScope when a
// later pass (rather than the converter) is the one touching the VNode.
func componentAssetName(tag ir.JsExpr) (string, bool) {
	if s, ok := tag.(ir.Simple); ok && vstr.IsAsset(s.Value) {
		return s.Value.String(), true
	}
	return "", false
}

func directiveAssetName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	return vstr.Of(name).BeDirective().String(), true
}
