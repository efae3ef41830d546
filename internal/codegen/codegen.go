package codegen

import (
	"fmt"
	"strings"

	"github.com/vuec/compiler/internal/ir"
	"github.com/vuec/compiler/internal/transform"
)

// generator is the emitter state, one per Generate call. It never reports
// errors: spec.md §7 reserves fatal status for I/O errors from the output
// writer, and writing into a strings.Builder never fails.
type generator struct {
	opts   Options
	out    strings.Builder
	indent int
	root   *ir.Root
	nextIx int
}

// Generate walks root and returns the emitted source text for opts.Mode.
func Generate(root *ir.Root, opts Options) string {
	opts.fillDefaults()
	g := &generator{opts: opts, root: root}
	g.run()
	return g.out.String()
}

func (g *generator) print(s string)                 { g.out.WriteString(s) }
func (g *generator) printf(format string, a ...any) { g.print(fmt.Sprintf(format, a...)) }
func (g *generator) println(s string)               { g.print(s); g.print("\n") }
func (g *generator) newline()                       { g.print("\n" + strings.Repeat("  ", g.indent)) }

func (g *generator) run() {
	helpers := g.root.Scope.SortedHelpers()
	g.printPreamble(helpers)
	g.indent++
	g.printHoists()
	g.newline()
	g.print("return ")
	g.printReturnedTree()
	g.indent--
	switch g.opts.Mode.Kind {
	case ModeFunction:
		g.print("\n}")
	case ModeModule:
		g.print("\n}")
	}
}

func (g *generator) printPreamble(helpers []ir.Helper) {
	switch g.opts.Mode.Kind {
	case ModeModule:
		g.printModuleImports(helpers)
		g.print("export function render(_ctx, _cache) {")
	case ModeFunction:
		g.printf("const _Vue = %s\n", g.opts.Mode.RuntimeGlobalName)
		g.print("return function render(_ctx, _cache) {")
		g.printFunctionDestructure(helpers)
	}
}

func (g *generator) printModuleImports(helpers []ir.Helper) {
	if len(helpers) == 0 {
		return
	}
	g.print("import { ")
	for i, h := range helpers {
		if i > 0 {
			g.print(", ")
		}
		g.printf("%s as %s", h.Str(), h.Alias())
	}
	g.printf(" } from %q\n", g.opts.Mode.RuntimeModuleName)
}

func (g *generator) printFunctionDestructure(helpers []ir.Helper) {
	if len(helpers) == 0 {
		return
	}
	g.indent++
	g.newline()
	g.print("const { ")
	for i, h := range helpers {
		if i > 0 {
			g.print(", ")
		}
		g.printf("%s: %s", h.Str(), h.Alias())
	}
	g.print(" } = _Vue")
	g.indent--
}

// printHoists materializes the hoisted-constant table in declaration order,
// per spec.md §4.6. A Node entry is a whole hoisted subtree; a JsExpr entry
// (recognized by transform.AsHoistedExpr) is a hoisted prop/expression fragment.
func (g *generator) printHoists() {
	for i, h := range g.root.Hoists {
		g.newline()
		g.printf("const _hoisted_%d = ", i+1)
		if expr, ok := transform.AsHoistedExpr(h); ok {
			g.printExpr(expr)
		} else {
			g.printNode(h)
		}
	}
}

func (g *generator) printReturnedTree() {
	switch len(g.root.Children) {
	case 0:
		g.print("null")
	case 1:
		g.printNode(g.root.Children[0])
	default:
		g.printf("(%s(), %s(%s, null, [", ir.HelperOpenBlock.Alias(), ir.HelperCreateElementBlock.Alias(), ir.HelperFragment.Alias())
		for i, c := range g.root.Children {
			if i > 0 {
				g.print(", ")
			}
			g.printNode(c)
		}
		g.print("]))")
	}
}

func (g *generator) printNode(n ir.Node) {
	switch v := n.(type) {
	case *ir.Hoisted:
		g.printf("_hoisted_%d", v.Index+1)
	case *ir.VNodeCall:
		g.printVNodeCall(v)
	case *ir.TextCall:
		g.printTextCall(v)
	case *ir.If:
		g.printIf(v)
	case *ir.For:
		g.printFor(v)
	case *ir.CacheNode:
		g.printCacheNode(v)
	case *ir.RenderSlotCall:
		g.printRenderSlotCall(v)
	case *ir.CommentCall:
		g.printf("%s(%q)", ir.HelperCreateCommentVNode.Alias(), v.Text)
	case *ir.VSlotUse:
		g.printVSlotUse(v)
	default:
		g.print("null")
	}
}

func (g *generator) printVNodeCall(v *ir.VNodeCall) {
	fn := ir.HelperCreateElementVNode
	if v.IsComponent {
		fn = ir.HelperCreateVNode
	}
	if v.IsBlock {
		g.printf("(%s(), ", ir.HelperOpenBlock.Alias())
		if v.IsComponent {
			fn = ir.HelperCreateBlock
		} else {
			fn = ir.HelperCreateElementBlock
		}
	}
	g.printf("%s(", fn.Alias())
	g.printExprOrNull(v.Tag)
	g.print(", ")
	g.printVNodeCallProps(v)
	g.print(", ")
	g.printVNodeCallChildren(v)
	if v.PatchFlag != ir.PatchNone || len(v.DynamicProps) > 0 {
		g.printf(", %d", v.PatchFlag)
		if len(v.DynamicProps) > 0 {
			g.print(", [")
			for i, p := range v.DynamicProps {
				if i > 0 {
					g.print(", ")
				}
				g.printf("%q", p)
			}
			g.print("]")
		}
	}
	g.print(")")
	if len(v.Directives) > 0 {
		g.printRuntimeDirectives(v)
	}
	if v.IsBlock {
		g.print(")")
	}
}

func (g *generator) printVNodeCallProps(v *ir.VNodeCall) {
	if v.Props == nil {
		g.print("null")
		return
	}
	g.printExpr(v.Props)
}

func (g *generator) printVNodeCallChildren(v *ir.VNodeCall) {
	if len(v.Children) == 0 {
		g.print("null")
		return
	}
	if v.FastPath {
		g.printNode(v.Children[0])
		return
	}
	g.print("[")
	for i, c := range v.Children {
		if i > 0 {
			g.print(", ")
		}
		g.printNode(c)
	}
	g.print("]")
}

func (g *generator) printRuntimeDirectives(v *ir.VNodeCall) {
	g.printf(", [")
	for i, d := range v.Directives {
		if i > 0 {
			g.print(", ")
		}
		g.printf("[%s(%q)", ir.HelperResolveDirective.Alias(), d.Name)
		if d.Expr != nil {
			g.print(", ")
			g.printExpr(d.Expr)
		}
		if d.Arg != nil {
			g.print(", ")
			g.printExpr(d.Arg)
		}
		g.print("]")
	}
	g.print("]")
	g.print(")")
	g.print(" /* withDirectives */")
}

// printTextCall emits a concatenated display-string expression, joining
// static pieces verbatim and wrapping render-time ones in toDisplayString,
// per the literal example in spec.md §8 scenario 1.
func (g *generator) printTextCall(tc *ir.TextCall) {
	g.printf("%s(", ir.HelperCreateTextVNode.Alias())
	if len(tc.Texts) == 1 {
		g.printDisplayPiece(tc.Texts[0])
	} else {
		for i, t := range tc.Texts {
			if i > 0 {
				g.print(" + ")
			}
			g.printDisplayPiece(t)
		}
	}
	if tc.NeedPatch {
		g.printf(", %d /* TEXT */", ir.PatchText)
	}
	g.print(")")
}

func (g *generator) printDisplayPiece(e ir.JsExpr) {
	if e.Level() == ir.NotStatic {
		g.printf("%s(", ir.HelperToDisplayString.Alias())
		g.printExpr(e)
		g.print(")")
		return
	}
	g.printExpr(e)
}

func (g *generator) printIf(n *ir.If) {
	for i, b := range n.Branches {
		if i > 0 {
			g.print(" : ")
		}
		if b.Condition == nil {
			g.printNode(b.Child)
			continue
		}
		g.printExpr(b.Condition)
		g.print(" ? ")
		g.printNode(b.Child)
	}
	if n.Branches[len(n.Branches)-1].Condition != nil {
		g.printf(" : %s(\"v-if\", true)", ir.HelperCreateCommentVNode.Alias())
	}
}

func (g *generator) printFor(n *ir.For) {
	g.printf("(%s(true), %s(%s, null, %s(", ir.HelperOpenBlock.Alias(), ir.HelperCreateElementBlock.Alias(), ir.HelperFragment.Alias(), ir.HelperRenderList.Alias())
	g.printExpr(n.Parse.Source)
	g.print(", (")
	g.printForParams(n.Parse)
	g.print(") => ")
	g.printNode(n.Child)
	g.print(")")
	g.printf(", %d /* %s */", fragmentPatchFlag(n.FragmentFlag), fragmentFlagLabel(n.FragmentFlag))
	g.print(")))")
}

func fragmentPatchFlag(f ir.FragmentFlag) ir.PatchFlag {
	switch f {
	case ir.StableFragment:
		return ir.PatchStableFragment
	case ir.KeyedFragment:
		return ir.PatchKeyedFragment
	default:
		return ir.PatchUnkeyedFragment
	}
}

func fragmentFlagLabel(f ir.FragmentFlag) string {
	switch f {
	case ir.StableFragment:
		return "STABLE_FRAGMENT"
	case ir.KeyedFragment:
		return "KEYED_FRAGMENT"
	default:
		return "UNKEYED_FRAGMENT"
	}
}

func (g *generator) printForParams(p ir.ForParseResult) {
	parts := []string{p.Value}
	if p.Key != "" {
		parts = append(parts, p.Key)
	} else if p.Index != "" {
		parts = append(parts, "__")
	}
	if p.Index != "" {
		parts = append(parts, p.Index)
	}
	g.print(strings.Join(parts, ", "))
}

func (g *generator) printCacheNode(n *ir.CacheNode) {
	idx := g.cacheIndex()
	switch n.Kind {
	case ir.CacheOnce:
		g.printf("_cache[%d] || (_cache[%d] = %s([], () => (", idx, idx, ir.HelperWithMemo.Alias())
		g.printNode(n.Child)
		g.printf("), _cache, %d))", idx)
	case ir.CacheMemo:
		g.printf("_cache[%d] || (_cache[%d] = %s([", idx, idx, ir.HelperWithMemo.Alias())
		g.printExpr(n.MemoExpr)
		g.print("], () => (")
		g.printNode(n.Child)
		g.printf("), _cache, %d))", idx)
	default: // CacheMemoInVFor
		g.printf("%s([", ir.HelperWithMemo.Alias())
		g.printExpr(n.MemoExpr)
		g.print("], () => (")
		g.printNode(n.Child)
		g.print("), _cache, ")
		g.printExprOrNull(n.Key)
		g.print(")")
	}
}

func (g *generator) printRenderSlotCall(n *ir.RenderSlotCall) {
	g.printf("%s(%s.slots, ", ir.HelperRenderSlot.Alias(), "_ctx")
	g.printExprOrNull(n.SlotName)
	if n.SlotProps != nil || len(n.Fallbacks) > 0 {
		g.print(", ")
		g.printExprOrNull(n.SlotProps)
	}
	if len(n.Fallbacks) > 0 {
		g.print(", () => [")
		for i, f := range n.Fallbacks {
			if i > 0 {
				g.print(", ")
			}
			g.printNode(f)
		}
		g.print("]")
	}
	g.print(")")
}

func (g *generator) printVSlotUse(n *ir.VSlotUse) {
	g.print("{")
	for i, s := range n.StableSlots {
		if i > 0 {
			g.print(", ")
		}
		g.printSlotEntry(s)
	}
	g.print("}")
}

func (g *generator) printSlotEntry(s ir.Slot) {
	g.printExpr(s.Name)
	g.print(": ")
	g.printf("%s((", ir.HelperWithCtx.Alias())
	g.print(strings.Join(s.Params, ", "))
	g.print(") => [")
	if s.Body != nil {
		g.printNode(s.Body)
	}
	g.print("])")
}

// cacheIndex hands out the next _cache slot. Each cacheable node is emitted
// exactly once per generation pass, so first-encounter order (spec.md §4.6)
// is just allocation order — no identity bookkeeping is needed.
func (g *generator) cacheIndex() int {
	idx := g.nextIx
	g.nextIx++
	return idx
}

func (g *generator) printExprOrNull(e ir.JsExpr) {
	if e == nil {
		g.print("null")
		return
	}
	g.printExpr(e)
}

// printExpr writes e's fully-resolved text, running any VStr ops a literal
// carries and recursing through composite shapes, per spec.md §4.6.
func (g *generator) printExpr(e ir.JsExpr) {
	switch v := e.(type) {
	case nil:
		g.print("null")
	case ir.Src:
		g.print(v.Text)
	case ir.Num:
		g.printf("%d", v.Value)
	case ir.StrLit:
		g.printf("%q", v.Value.String())
	case ir.Simple:
		g.print(v.Value.String())
	case ir.Param:
		g.print(v.Name)
	case ir.FuncSimple:
		g.printFuncSimple(v)
	case ir.FuncCompound:
		g.printFuncCompound(v)
	case ir.Compound:
		for _, p := range v.Parts {
			g.printExpr(p)
		}
	case ir.Props:
		g.printProps(v)
	case ir.Array:
		g.print("[")
		for i, item := range v.Items {
			if i > 0 {
				g.print(", ")
			}
			g.printExpr(item)
		}
		g.print("]")
	case ir.Call:
		g.printf("%s(", v.Fn.Alias())
		for i, a := range v.Args {
			if i > 0 {
				g.print(", ")
			}
			g.printExpr(a)
		}
		g.print(")")
	case ir.Symbol:
		g.print(v.Fn.Alias())
	default:
		g.print("null")
	}
}

func (g *generator) printFuncSimple(f ir.FuncSimple) {
	if !f.Cache {
		g.print(f.Src)
		return
	}
	idx := g.cacheIndex()
	g.printf("_cache[%d] || (_cache[%d] = %s)", idx, idx, f.Src)
}

func (g *generator) printFuncCompound(f ir.FuncCompound) {
	body := func() {
		switch f.Kind {
		case ir.FuncMember:
			for _, p := range f.Body {
				g.printExpr(p)
			}
		case ir.FuncFunc:
			g.print("function(...args) { ")
			for _, p := range f.Body {
				g.printExpr(p)
			}
			g.print(" }")
		default:
			g.print("($event) => { ")
			for _, p := range f.Body {
				g.printExpr(p)
			}
			g.print(" }")
		}
	}
	if !f.Cache {
		body()
		return
	}
	idx := g.cacheIndex()
	g.printf("_cache[%d] || (_cache[%d] = ", idx, idx)
	body()
	g.print(")")
}

func (g *generator) printProps(p ir.Props) {
	if len(p.Entries) == 0 {
		g.print("{}")
		return
	}
	g.print("{ ")
	for i, e := range p.Entries {
		if i > 0 {
			g.print(", ")
		}
		g.printPropKey(e.Key)
		g.print(": ")
		g.printExpr(e.Value)
	}
	g.print(" }")
}

func (g *generator) printPropKey(k ir.JsExpr) {
	switch v := k.(type) {
	case ir.StrLit:
		g.printf("%q", v.Value.String())
	case ir.Src:
		g.print(v.Text)
	default:
		g.printExpr(k)
	}
}
