package codegen_test

import (
	"strings"
	"testing"

	"github.com/vuec/compiler/internal/codegen"
	"github.com/vuec/compiler/internal/ir"
	"github.com/vuec/compiler/internal/transform"
	"github.com/vuec/compiler/internal/vstr"
	"gotest.tools/v3/assert"
)

func strRoot(children ...ir.Node) *ir.Root {
	scope := ir.NewTopScope()
	return &ir.Root{Children: children, Scope: scope}
}

func TestGenerateFunctionModeEmitsDestructureAndReturn(t *testing.T) {
	vnode := &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}}
	root := strRoot(vnode)
	root.Scope.UseHelper(ir.HelperCreateElementVNode)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	want := "const _Vue = Vue\n" +
		"return function render(_ctx, _cache) {\n" +
		"  const { createElementVNode: _createElementVNode } = _Vue\n" +
		"  return _createElementVNode(\"div\", null, null)\n" +
		"}"
	assert.Equal(t, out, want)
}

func TestGenerateFunctionModeOmitsDestructureWhenNoHelpersUsed(t *testing.T) {
	root := strRoot()

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, !strings.Contains(out, "const {"))
	assert.Assert(t, strings.Contains(out, "return null"))
}

func TestGenerateModuleModeEmitsImportAndExport(t *testing.T) {
	vnode := &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}}
	root := strRoot(vnode)
	root.Scope.UseHelper(ir.HelperCreateElementVNode)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeModule}})

	assert.Assert(t, strings.HasPrefix(out, "import { createElementVNode as _createElementVNode } from \"vue\"\n"))
	assert.Assert(t, strings.Contains(out, "export function render(_ctx, _cache) {"))
	assert.Assert(t, strings.Contains(out, "return _createElementVNode(\"div\", null, null)"))
}

func TestGenerateUsesCustomRuntimeNames(t *testing.T) {
	root := strRoot()

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{
		Kind:              codegen.ModeFunction,
		RuntimeGlobalName: "MyVue",
	}})

	assert.Assert(t, strings.HasPrefix(out, "const _Vue = MyVue\n"))
}

// TestGenerateHoistsNodeAndExprEntriesInDeclarationOrder runs the real
// HoistStatic pass so the two Root.Hoists entry shapes it produces (a whole
// hoisted Node, and a hoisted Props expression wrapped via the unexported
// hoistedExpr type) both come from production code, not a hand-built fake.
func TestGenerateHoistsNodeAndExprEntriesInDeclarationOrder(t *testing.T) {
	staticDiv := &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("span")}}
	comp := &ir.VNodeCall{
		Tag:         ir.Simple{Value: vstr.Of("_component_Foo"), Lvl: ir.CanHoist},
		IsComponent: true,
		Props: ir.Props{Entries: []ir.PropEntry{
			{Key: ir.StrLit{Value: vstr.Of("id")}, Value: ir.StrLit{Value: vstr.Of("x")}},
		}},
		Hoisted: ir.NewHoistedAssets(),
	}
	root := strRoot(staticDiv, comp)
	root.Scope.UseHelper(ir.HelperCreateVNode)
	root.Scope.UseHelper(ir.HelperCreateElementVNode)

	(&transform.HoistStatic{}).Run(root)
	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	idx1 := strings.Index(out, "const _hoisted_1 = ")
	idx2 := strings.Index(out, "const _hoisted_2 = ")
	assert.Assert(t, idx1 >= 0 && idx2 > idx1)
	assert.Assert(t, strings.Contains(out, `const _hoisted_1 = _createElementVNode("span", null, null)`))
	assert.Assert(t, strings.Contains(out, `const _hoisted_2 = { "id": "x" }`))
	assert.Assert(t, strings.Contains(out, `_createVNode(_component_Foo, _hoisted_2, null)`))
}

func TestGenerateMultiRootChildrenWrapInFragmentBlock(t *testing.T) {
	a := &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}}
	b := &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("span")}}
	root := strRoot(a, b)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`return (_openBlock(), _createElementBlock(_Fragment, null, [_createElementVNode("div", null, null), _createElementVNode("span", null, null)]))`))
}

func TestGenerateTextCallWrapsDynamicPieceInToDisplayString(t *testing.T) {
	tc := &ir.TextCall{
		Texts: []ir.JsExpr{
			ir.StrLit{Value: vstr.Of("hello ")},
			ir.Simple{Value: vstr.Of("_ctx.name"), Lvl: ir.NotStatic},
		},
		NeedPatch: true,
	}
	root := strRoot(tc)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`_createTextVNode("hello " + _toDisplayString(_ctx.name), 1 /* TEXT */)`))
}

func TestGenerateIfEmitsTernaryChainWithCommentFallback(t *testing.T) {
	ifNode := &ir.If{Branches: []ir.Branch{
		{Condition: ir.Simple{Value: vstr.Of("_ctx.ok"), Lvl: ir.NotStatic}, Child: &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}}},
	}}
	root := strRoot(ifNode)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`return _ctx.ok ? _createElementVNode("div", null, null) : _createCommentVNode("v-if", true)`))
}

func TestGenerateForEmitsRenderListWithFragmentFlag(t *testing.T) {
	forNode := &ir.For{
		Parse: ir.ForParseResult{
			Value:  "item",
			Source: ir.Simple{Value: vstr.Of("_ctx.list"), Lvl: ir.NotStatic},
		},
		Child:        &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("li")}},
		FragmentFlag: ir.KeyedFragment,
	}
	root := strRoot(forNode)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`_renderList(_ctx.list, (item) => _createElementVNode("li", null, null))`))
	assert.Assert(t, strings.Contains(out, ", 128 /* KEYED_FRAGMENT */)))"))
}

func TestGenerateCacheOnceWrapsChildInWithMemoWithEmptyDeps(t *testing.T) {
	cache := &ir.CacheNode{Kind: ir.CacheOnce, Child: &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}}}
	root := strRoot(cache)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`_cache[0] || (_cache[0] = _withMemo([], () => (_createElementVNode("div", null, null)), _cache, 0))`))
}

func TestGenerateCacheMemoUsesMemoExprAsDependencyArray(t *testing.T) {
	cache := &ir.CacheNode{
		Kind:     ir.CacheMemo,
		MemoExpr: ir.Simple{Value: vstr.Of("_ctx.dep"), Lvl: ir.NotStatic},
		Child:    &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}},
	}
	root := strRoot(cache)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`_cache[0] || (_cache[0] = _withMemo([_ctx.dep], () => (_createElementVNode("div", null, null)), _cache, 0))`))
}

func TestGenerateCacheMemoInVForSkipsCacheSlotGuard(t *testing.T) {
	cache := &ir.CacheNode{
		Kind:     ir.CacheMemoInVFor,
		MemoExpr: ir.Simple{Value: vstr.Of("_ctx.dep"), Lvl: ir.NotStatic},
		Key:      ir.Simple{Value: vstr.Of("_ctx.key"), Lvl: ir.NotStatic},
		Child:    &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}},
	}
	root := strRoot(cache)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`_withMemo([_ctx.dep], () => (_createElementVNode("div", null, null)), _cache, _ctx.key)`))
	assert.Assert(t, !strings.Contains(out, "_cache[0] ||"))
}

func TestGenerateCachedHandlersAllocateDistinctCacheSlots(t *testing.T) {
	props := ir.Props{Entries: []ir.PropEntry{
		{Key: ir.StrLit{Value: vstr.Of("onClick")}, Value: ir.FuncSimple{Src: "_ctx.onClick", Lvl: ir.NotStatic, Cache: true}},
		{Key: ir.StrLit{Value: vstr.Of("onFocus")}, Value: ir.FuncSimple{Src: "_ctx.onFocus", Lvl: ir.NotStatic, Cache: true}},
	}}
	vnode := &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("button")}, Props: props}
	root := strRoot(vnode)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out, `_cache[0] || (_cache[0] = _ctx.onClick)`))
	assert.Assert(t, strings.Contains(out, `_cache[1] || (_cache[1] = _ctx.onFocus)`))
}

func TestGenerateVSlotUseEmitsWithCtxEntries(t *testing.T) {
	slotUse := &ir.VSlotUse{StableSlots: []ir.Slot{
		{
			Name:   ir.StrLit{Value: vstr.Of("default")},
			Params: []string{"row"},
			Body:   &ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("div")}},
		},
	}}
	root := strRoot(slotUse)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`{"default": _withCtx((row) => [_createElementVNode("div", null, null)])}`))
}

func TestGenerateRenderSlotCallEmitsSlotsLookupWithFallback(t *testing.T) {
	call := &ir.RenderSlotCall{
		SlotName:  ir.StrLit{Value: vstr.Of("default")},
		Fallbacks: []ir.Node{&ir.VNodeCall{Tag: ir.StrLit{Value: vstr.Of("span")}}},
	}
	root := strRoot(call)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`_renderSlot(_ctx.slots, "default", null, () => [_createElementVNode("span", null, null)])`))
}

func TestGenerateBlockVNodeWrapsOpenBlockAndPatchFlag(t *testing.T) {
	vnode := &ir.VNodeCall{
		Tag:       ir.StrLit{Value: vstr.Of("div")},
		IsBlock:   true,
		PatchFlag: ir.PatchText,
	}
	root := strRoot(vnode)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out,
		`(_openBlock(), _createElementBlock("div", null, null, 1))`))
}

func TestGenerateMergePropsPrintsHelperCallAsVNodeProps(t *testing.T) {
	vnode := &ir.VNodeCall{
		Tag: ir.StrLit{Value: vstr.Of("div")},
		Props: ir.Call{
			Fn: ir.HelperMergeProps,
			Args: []ir.JsExpr{
				ir.Props{Entries: []ir.PropEntry{{
					Key:   ir.StrLit{Value: vstr.Of("class")},
					Value: ir.StrLit{Value: vstr.Of("a")},
				}}},
				ir.Simple{Value: vstr.Of("obj"), Lvl: ir.NotStatic},
			},
		},
	}
	root := strRoot(vnode)

	out := codegen.Generate(root, codegen.Options{Mode: codegen.Mode{Kind: codegen.ModeFunction}})

	assert.Assert(t, strings.Contains(out, `_mergeProps({ "class": "a" }, obj)`))
}
