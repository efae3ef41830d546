package convert

import (
	"github.com/vuec/compiler/internal/errs"
	"github.com/vuec/compiler/internal/ir"
	"github.com/vuec/compiler/internal/parser"
	"github.com/vuec/compiler/internal/vstr"
)

// Converter owns the per-compile state the AST-to-IR pass needs: a running
// branch-key counter for v-if groups (spec.md §4.3) and the scope entities
// EntityCollector will later read off the IR root.
type Converter struct {
	opt       Options
	sink      errs.Sink
	scope     *ir.TopScope
	branchKey int
}

// Convert turns a parsed AST into an IR tree, per spec.md §4.3.
func Convert(root *parser.Root, opt Options, sink errs.Sink) *ir.Root {
	opt.fillDefaults()
	if sink == nil {
		sink = errs.NoopSink{}
	}
	c := &Converter{opt: opt, sink: sink, scope: ir.NewTopScope()}
	children := c.convertSiblings(root.Children)
	return &ir.Root{Children: children, Scope: c.scope}
}

func (c *Converter) convertSiblings(nodes []parser.Node) []ir.Node {
	var out []ir.Node
	i := 0
	for i < len(nodes) {
		if _, hasIf := asDirectiveElement(nodes[i], "if"); hasIf {
			group, consumed := c.collectIfGroup(nodes[i:])
			out = append(out, group)
			i += consumed
			continue
		}
		if n := c.convertNode(nodes[i]); n != nil {
			out = append(out, n)
		}
		i++
	}
	return out
}

// asDirectiveElement reports whether n is an *parser.Element carrying a
// directive named dirName, returning the element and that directive.
func asDirectiveElement(n parser.Node, dirName string) (*parser.Element, bool) {
	el, ok := n.(*parser.Element)
	if !ok {
		return nil, false
	}
	if _, ok := findDir(el, dirName); ok {
		return el, true
	}
	return nil, false
}

// collectIfGroup consumes nodes[0] (bearing v-if) plus any immediately
// following v-else-if/v-else siblings into one ir.If, per spec.md §4.3.
func (c *Converter) collectIfGroup(nodes []parser.Node) (ir.Node, int) {
	first := nodes[0].(*parser.Element)
	branches := []ir.Branch{c.makeBranch(first, dirExpr(first, "if"))}
	consumed := 1
	for consumed < len(nodes) {
		el, ok := nodes[consumed].(*parser.Element)
		if !ok {
			break
		}
		if elseIfExpr, isElseIf := dirExprOK(el, "else-if"); isElseIf {
			branches = append(branches, c.makeBranch(el, elseIfExpr))
			consumed++
			continue
		}
		if _, isElse := findDir(el, "else"); isElse {
			branches = append(branches, c.makeBranch(el, nil))
			consumed++
			break
		}
		break
	}
	return &ir.If{Branches: branches}, consumed
}

func (c *Converter) makeBranch(el *parser.Element, condExpr *vstr.VStr) ir.Branch {
	key := c.branchKey
	c.branchKey++
	var cond ir.JsExpr
	if condExpr != nil {
		cond = ir.Simple{Value: *condExpr, Lvl: ir.NotStatic}
	}
	child := c.convertElementStructural(el, []string{"if", "else-if", "else"})
	return ir.Branch{Condition: cond, Child: child, BranchKey: key}
}

func findDir(el *parser.Element, name string) (parser.ElemProp, bool) {
	for _, p := range el.Properties {
		if p.Kind == parser.PropDir && p.DirName == name {
			return p, true
		}
	}
	return parser.ElemProp{}, false
}

func dirExpr(el *parser.Element, name string) *vstr.VStr {
	if p, ok := findDir(el, name); ok {
		return p.Expr
	}
	return nil
}

func dirExprOK(el *parser.Element, name string) (*vstr.VStr, bool) {
	p, ok := findDir(el, name)
	if !ok {
		return nil, false
	}
	return p.Expr, true
}

// convertNode dispatches a single AST node to IR, per spec.md §4.3's
// "element (VNode) -> content (Text/Interpolation)" tail of the priority
// chain.
func (c *Converter) convertNode(n parser.Node) ir.Node {
	switch t := n.(type) {
	case *parser.Text:
		return &ir.TextCall{Texts: []ir.JsExpr{ir.StrLit{Value: t.Content.Decode(false)}}}
	case *parser.Interpolation:
		return &ir.TextCall{Texts: []ir.JsExpr{ir.Simple{Value: t.Expr, Lvl: ir.NotStatic}}}
	case *parser.Comment:
		return &ir.CommentCall{Text: t.Content}
	case *parser.Element:
		return c.convertElementStructural(t, nil)
	default:
		return nil
	}
}

// convertElementStructural peels v-once/v-memo, v-for, and v-slot off el in
// that priority order (excluding any directive names already consumed by
// the caller, e.g. the v-if family consumed by collectIfGroup) before
// falling through to plain VNode conversion.
func (c *Converter) convertElementStructural(el *parser.Element, skip []string) ir.Node {
	if _, ok := findDir(el, "once"); ok && !contains(skip, "once") {
		return &ir.CacheNode{Kind: ir.CacheOnce, Child: c.convertElementWithout(el, "once")}
	}
	if p, ok := findDir(el, "memo"); ok && !contains(skip, "memo") {
		memoExpr := ir.JsExpr(nil)
		if p.Expr != nil {
			memoExpr = ir.Simple{Value: *p.Expr, Lvl: ir.NotStatic}
		}
		return &ir.CacheNode{Kind: ir.CacheMemo, MemoExpr: memoExpr, Child: c.convertElementWithout(el, "memo")}
	}
	if forExpr, ok := dirExprOK(el, "for"); ok && !contains(skip, "for") {
		return c.convertFor(el, forExpr)
	}
	if _, ok := findDir(el, "slot"); ok && !contains(skip, "slot") {
		return c.convertSlotUse(el)
	}
	return c.convertElementToVNode(el)
}

func (c *Converter) convertElementWithout(el *parser.Element, skipDir string) ir.Node {
	return c.convertElementStructural(elementMinusDir(el, skipDir), nil)
}

// elementMinusDir returns a shallow copy of el with the named directive
// removed, so re-dispatch through convertElementStructural doesn't loop on
// the same directive forever.
func elementMinusDir(el *parser.Element, name string) *parser.Element {
	clone := *el
	props := make([]parser.ElemProp, 0, len(el.Properties))
	for _, p := range el.Properties {
		if p.Kind == parser.PropDir && p.DirName == name {
			continue
		}
		props = append(props, p)
	}
	clone.Properties = props
	return &clone
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

func (c *Converter) convertFor(el *parser.Element, forExpr *vstr.VStr) ir.Node {
	bindings, source, ok := ParseForExpression(forExpr.String())
	if !ok {
		c.sink.Error(errs.New(errs.KindDirective, el.Span(), "v-for without a valid \"x in y\" expression"))
		return c.convertElementToVNode(el)
	}
	sourceExpr := ir.Simple{Value: vstr.Of(source), Lvl: ir.NotStatic}
	child := c.convertElementWithout(el, "for")
	var keyExpr ir.JsExpr
	if vnode, ok := child.(*ir.VNodeCall); ok {
		keyExpr = findKeyProp(vnode.Props)
	}
	// FragmentFlag/IsStable are finalized by PatchFlagMarker (spec.md §4.5
	// item 3), which has visibility into the full vnode tree this converter
	// doesn't; UnkeyedFragment here is just a safe starting value.
	return &ir.For{
		Parse: ir.ForParseResult{
			Value:  bindings.Value,
			Key:    bindings.Key,
			Index:  bindings.Index,
			Source: sourceExpr,
		},
		Child:        child,
		FragmentFlag: ir.UnkeyedFragment,
		Key:          keyExpr,
	}
}

// findKeyProp returns the value bound to a "key" entry in props, unwrapping
// a MERGE_PROPS-wrapped Props argument's leading entries object, or nil if
// no key prop is present.
func findKeyProp(props ir.JsExpr) ir.JsExpr {
	switch p := props.(type) {
	case ir.Props:
		for _, e := range p.Entries {
			if lit, ok := e.Key.(ir.StrLit); ok && lit.Value.String() == "key" {
				return e.Value
			}
		}
	case ir.Call:
		if p.Fn == ir.HelperMergeProps && len(p.Args) > 0 {
			return findKeyProp(p.Args[0])
		}
	}
	return nil
}

func (c *Converter) convertSlotUse(el *parser.Element) ir.Node {
	p, _ := findDir(el, "slot")
	name := ir.JsExpr(ir.StrLit{Value: vstr.Of("default")})
	if p.Arg != nil {
		name = ir.StrLit{Value: *p.Arg}
	}
	var params []string
	if p.Expr != nil {
		params = []string{p.Expr.String()}
	}
	slot := ir.Slot{Name: name, Params: params, Body: c.convertSlotBody(el)}

	hasAlterable := false
	if _, ok := findDir(el, "if"); ok {
		hasAlterable = true
	}
	if _, ok := findDir(el, "for"); ok {
		hasAlterable = true
	}

	use := &ir.VSlotUse{Flag: ir.SlotStable}
	if hasAlterable {
		use.Flag = ir.SlotDynamic
		use.AlterableSlots = []ir.Node{&ir.AlterableSlot{Inner: slot}}
	} else {
		use.StableSlots = []ir.Slot{slot}
	}
	return use
}

// convertSlotBody converts the body a v-slot binding renders. <template> is
// purely structural — a v-slot attached to a <template> contributes only its
// children, never a VNode for the "template" tag itself. v-slot placed
// directly on a component tag (the default-slot shorthand) renders that
// component as usual, minus the consumed directive.
func (c *Converter) convertSlotBody(el *parser.Element) ir.Node {
	if el.Tag == "template" {
		children := c.convertSiblings(el.Children)
		if len(children) == 1 {
			return children[0]
		}
		return &ir.VNodeCall{Tag: ir.Symbol{Fn: ir.HelperFragment}, Children: children, Hoisted: ir.NewHoistedAssets()}
	}
	return c.convertElementWithout(el, "slot")
}

// convertElementToVNode is the innermost step of §4.3's priority chain:
// partition properties into Props/handlers/runtime directives and produce a
// VNodeCall.
func (c *Converter) convertElementToVNode(el *parser.Element) ir.Node {
	isComponent := c.opt.IsComponent(el.Tag)
	var tag ir.JsExpr
	if builtin := c.opt.GetBuiltinComponent(el.Tag); builtin != NotBuiltin {
		tag = ir.Symbol{Fn: builtin.Helper()}
		isComponent = true
	} else if isComponent {
		name := vstr.Of(el.Tag).BeComponent()
		c.scope.Components[name.String()] = true
		tag = ir.Simple{Value: name, Lvl: ir.NotStatic}
	} else {
		tag = ir.StrLit{Value: vstr.Of(el.Tag)}
	}

	var entries []ir.PropEntry
	var dynamicProps []string
	var mergeObjs []ir.JsExpr
	var directives []ir.RuntimeDir

	for _, p := range el.Properties {
		switch {
		case p.Kind == parser.PropAttr:
			val := ir.JsExpr(ir.StrLit{Value: vstr.Of("")})
			if p.Value != nil {
				val = ir.StrLit{Value: *p.Value}
			}
			entries = append(entries, ir.PropEntry{
				Key:   ir.StrLit{Value: vstr.Of(p.Name)},
				Value: val,
			})
		case (p.DirName == "bind" || p.DirName == "on") && p.Arg == nil:
			// v-bind="obj" or v-on="obj": merged wholesale into the vnode's
			// props via MERGE_PROPS, per spec.md §4.3.
			if p.Expr != nil {
				mergeObjs = append(mergeObjs, ir.Simple{Value: *p.Expr, Lvl: ir.NotStatic})
			}
		case p.DirName == "bind":
			key := vstr.Of(p.Arg.String())
			if p.Expr != nil {
				entries = append(entries, ir.PropEntry{
					Key:   ir.StrLit{Value: key},
					Value: ir.Simple{Value: *p.Expr, Lvl: ir.NotStatic},
				})
				dynamicProps = append(dynamicProps, key.String())
			}
		case p.DirName == "on":
			entries = append(entries, c.convertOn(p))
		case p.DirName == "model":
			entries = append(entries, c.convertModel(p)...)
		default:
			// Any other directive in the configured converter table is a
			// runtime directive attached to the VNode, per spec.md §4.3.
			rd := ir.RuntimeDir{Name: p.DirName, Modifiers: p.Modifiers}
			if p.Arg != nil {
				rd.Arg = ir.Simple{Value: *p.Arg, Lvl: ir.NotStatic}
			}
			if p.Expr != nil {
				rd.Expr = ir.Simple{Value: *p.Expr, Lvl: ir.NotStatic}
			}
			directives = append(directives, rd)
			c.scope.Directives[vstr.Of(p.DirName).BeDirective().String()] = true
		}
	}

	var props ir.JsExpr
	switch {
	case len(mergeObjs) > 0:
		// The entries Props object always comes first so a later key
		// injection (spec.md §4.5 item 3) has a stable slot to land in.
		args := append([]ir.JsExpr{ir.Props{Entries: entries}}, mergeObjs...)
		props = ir.Call{Fn: ir.HelperMergeProps, Args: args}
	case len(entries) > 0:
		props = ir.Props{Entries: entries}
	}

	children := c.convertSiblings(el.Children)

	return &ir.VNodeCall{
		Tag:             tag,
		Props:           props,
		Children:        children,
		DynamicProps:    dynamicProps,
		Directives:      directives,
		IsComponent:     isComponent,
		IsBlock:         false,
		DisableTracking: false,
		Hoisted:         ir.NewHoistedAssets(),
	}
}

// convertOn builds the key/value pair for a named v-on:x binding: the key is
// stamped with HANDLER_KEY, and the value is routed by handler-type
// analysis per spec.md §4.4. The caller intercepts the argument-less
// v-on="obj" form before reaching here, so p.Arg is always set.
func (c *Converter) convertOn(p parser.ElemProp) ir.PropEntry {
	key := vstr.Of(p.Arg.String()).BeHandler()
	var val ir.JsExpr = ir.Simple{Value: vstr.Of(""), Lvl: ir.NotStatic}
	if p.Expr != nil {
		raw := p.Expr.String()
		switch ClassifyHandler(raw) {
		case MemberExpr:
			val = ir.Simple{Value: *p.Expr, Lvl: ir.NotStatic}
		case FuncExpr:
			val = ir.FuncSimple{Src: raw, Lvl: ir.NotStatic}
		default:
			val = ir.FuncSimple{Src: WrapInlineStmt(raw), Lvl: ir.NotStatic}
		}
	}
	return ir.PropEntry{Key: ir.StrLit{Value: key}, Value: val}
}

// convertModel expands v-model:x="e" into the value binding plus the
// onUpdate:x assignment handler, per spec.md §4.3.
func (c *Converter) convertModel(p parser.ElemProp) []ir.PropEntry {
	argName := "modelValue"
	if p.Arg != nil {
		argName = p.Arg.String()
	}
	if p.Expr == nil {
		return nil
	}
	valueEntry := ir.PropEntry{
		Key:   ir.StrLit{Value: vstr.Of(argName)},
		Value: ir.Simple{Value: *p.Expr, Lvl: ir.NotStatic},
	}
	handlerKey := vstr.Of(argName).BeVModel()
	assign := vstr.Of(p.Expr.String()).AssignEvent()
	handlerEntry := ir.PropEntry{
		Key:   ir.StrLit{Value: handlerKey},
		Value: ir.FuncSimple{Src: assign.String(), Lvl: ir.NotStatic},
	}
	return []ir.PropEntry{valueEntry, handlerEntry}
}
