package convert_test

import (
	"testing"

	"github.com/vuec/compiler/internal/convert"
	"github.com/vuec/compiler/internal/ir"
	"github.com/vuec/compiler/internal/parser"
	"gotest.tools/v3/assert"
)

func parse(t *testing.T, src string) *parser.Root {
	t.Helper()
	root, err := parser.Parse(src, parser.Options{})
	assert.NilError(t, err)
	return root
}

func isComponentTag(tag string) bool {
	return tag == "MyComp"
}

func defaultOpt() convert.Options {
	return convert.Options{
		IsNativeTag: func(tag string) bool { return !isComponentTag(tag) },
	}
}

func TestConvertPlainElementToVNode(t *testing.T) {
	root := parse(t, `<div class="a">hi</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	assert.Equal(t, len(out.Children), 1)
	vnode, ok := out.Children[0].(*ir.VNodeCall)
	assert.Assert(t, ok)
	assert.Assert(t, !vnode.IsComponent)
	tag, ok := vnode.Tag.(ir.StrLit)
	assert.Assert(t, ok)
	assert.Equal(t, tag.Value.String(), "div")
	assert.Equal(t, len(vnode.Children), 1)
	text, ok := vnode.Children[0].(*ir.TextCall)
	assert.Assert(t, ok)
	assert.Equal(t, len(text.Texts), 1)
}

func TestConvertComponentTagResolvesAsset(t *testing.T) {
	root := parse(t, `<MyComp/>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	assert.Assert(t, vnode.IsComponent)
	assert.Equal(t, len(out.Scope.Components), 1)
}

func TestConvertIfElseGroupsIntoOneNodeWithIncreasingBranchKeys(t *testing.T) {
	root := parse(t, `<div v-if="a">A</div><span v-else-if="b">B</span><p v-else>C</p>`)
	out := convert.Convert(root, defaultOpt(), nil)
	assert.Equal(t, len(out.Children), 1)
	ifNode, ok := out.Children[0].(*ir.If)
	assert.Assert(t, ok)
	assert.Equal(t, len(ifNode.Branches), 3)
	assert.Equal(t, ifNode.Branches[0].BranchKey, 0)
	assert.Equal(t, ifNode.Branches[1].BranchKey, 1)
	assert.Equal(t, ifNode.Branches[2].BranchKey, 2)
	assert.Assert(t, ifNode.Branches[2].Condition == nil)
}

func TestConvertForSplitsAliasAndSource(t *testing.T) {
	root := parse(t, `<li v-for="(item, idx) in items">x</li>`)
	out := convert.Convert(root, defaultOpt(), nil)
	forNode, ok := out.Children[0].(*ir.For)
	assert.Assert(t, ok)
	assert.Equal(t, forNode.Parse.Value, "item")
	assert.Equal(t, forNode.Parse.Key, "idx")
	src, ok := forNode.Parse.Source.(ir.Simple)
	assert.Assert(t, ok)
	assert.Equal(t, src.Value.String(), "items")
	_, isVNode := forNode.Child.(*ir.VNodeCall)
	assert.Assert(t, isVNode)
}

func TestConvertOnceWrapsInCacheNode(t *testing.T) {
	root := parse(t, `<div v-once>x</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	cache, ok := out.Children[0].(*ir.CacheNode)
	assert.Assert(t, ok)
	assert.Equal(t, cache.Kind, ir.CacheOnce)
	_, isVNode := cache.Child.(*ir.VNodeCall)
	assert.Assert(t, isVNode)
}

func TestConvertOnClickInlineStatementIsWrapped(t *testing.T) {
	root := parse(t, `<div @click="count++">x</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	props, ok := vnode.Props.(ir.Props)
	assert.Assert(t, ok)
	assert.Equal(t, len(props.Entries), 1)
	key := props.Entries[0].Key.(ir.StrLit)
	assert.Equal(t, key.Value.String(), "onClick")
	val, ok := props.Entries[0].Value.(ir.FuncSimple)
	assert.Assert(t, ok)
	assert.Equal(t, val.Src, "($event) => { count++ }")
}

func TestConvertOnClickMemberExpressionPassesThrough(t *testing.T) {
	root := parse(t, `<div @click="onClick">x</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	props := vnode.Props.(ir.Props)
	_, ok := props.Entries[0].Value.(ir.Simple)
	assert.Assert(t, ok)
}

func TestConvertModelExpandsToValueAndHandler(t *testing.T) {
	root := parse(t, `<input v-model="name"/>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	props := vnode.Props.(ir.Props)
	assert.Equal(t, len(props.Entries), 2)
	assert.Equal(t, props.Entries[0].Key.(ir.StrLit).Value.String(), "modelValue")
	assert.Equal(t, props.Entries[1].Key.(ir.StrLit).Value.String(), "onUpdate:modelValue")
	handler := props.Entries[1].Value.(ir.FuncSimple)
	assert.Equal(t, handler.Src, "(name) = $event")
}

func TestConvertSlotUseStable(t *testing.T) {
	root := parse(t, `<MyComp><template v-slot:header="slotProps">hi</template></MyComp>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	assert.Equal(t, len(vnode.Children), 1)
	use, ok := vnode.Children[0].(*ir.VSlotUse)
	assert.Assert(t, ok)
	assert.Equal(t, use.Flag, ir.SlotStable)
	assert.Equal(t, len(use.StableSlots), 1)
	name := use.StableSlots[0].Name.(ir.StrLit)
	assert.Equal(t, name.Value.String(), "header")
	assert.Equal(t, use.StableSlots[0].Params[0], "slotProps")
}

func TestConvertRuntimeDirectiveAttachesToVNode(t *testing.T) {
	root := parse(t, `<div v-focus>x</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	assert.Equal(t, len(vnode.Directives), 1)
	assert.Equal(t, vnode.Directives[0].Name, "focus")
	assert.Equal(t, len(out.Scope.Directives), 1)
}

func TestConvertForWithDynamicSourceIsNotStable(t *testing.T) {
	root := parse(t, `<li v-for="x in list">x</li>`)
	out := convert.Convert(root, defaultOpt(), nil)
	forNode := out.Children[0].(*ir.For)
	assert.Equal(t, forNode.FragmentFlag, ir.UnkeyedFragment)
	assert.Assert(t, !forNode.IsStable)
}

func TestConvertBareVBindMergesObjectIntoProps(t *testing.T) {
	root := parse(t, `<div v-bind="obj" class="a">x</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	call, ok := vnode.Props.(ir.Call)
	assert.Assert(t, ok)
	assert.Equal(t, call.Fn, ir.HelperMergeProps)
	assert.Equal(t, len(call.Args), 2)
	entries, ok := call.Args[0].(ir.Props)
	assert.Assert(t, ok)
	assert.Equal(t, len(entries.Entries), 1)
	assert.Equal(t, entries.Entries[0].Key.(ir.StrLit).Value.String(), "class")
	obj, ok := call.Args[1].(ir.Simple)
	assert.Assert(t, ok)
	assert.Equal(t, obj.Value.String(), "obj")
}

func TestConvertBareVOnMergesObjectIntoProps(t *testing.T) {
	root := parse(t, `<div v-on="handlers">x</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	call, ok := vnode.Props.(ir.Call)
	assert.Assert(t, ok)
	assert.Equal(t, call.Fn, ir.HelperMergeProps)
	assert.Equal(t, len(call.Args), 2)
	entries, ok := call.Args[0].(ir.Props)
	assert.Assert(t, ok)
	assert.Equal(t, len(entries.Entries), 0)
	obj, ok := call.Args[1].(ir.Simple)
	assert.Assert(t, ok)
	assert.Equal(t, obj.Value.String(), "handlers")
}

func TestConvertNamedVOnStillDefaultsNothing(t *testing.T) {
	root := parse(t, `<div v-on:foo="bar">x</div>`)
	out := convert.Convert(root, defaultOpt(), nil)
	vnode := out.Children[0].(*ir.VNodeCall)
	props := vnode.Props.(ir.Props)
	key := props.Entries[0].Key.(ir.StrLit)
	assert.Equal(t, key.Value.String(), "onFoo")
}
