package transform

import (
	"strings"

	"github.com/vuec/compiler/internal/ir"
	"github.com/vuec/compiler/internal/vstr"
)

// ExpressionProcessor stamps CTX_PREFIX on bare identifiers not bound by an
// enclosing v-for/v-slot scope, per spec.md §4.5 item 5. It is the "shared
// context" flavor of pass: Scope is pushed/popped around For and slot-body
// traversal so bindings introduced by an alias don't leak to siblings.
type ExpressionProcessor struct {
	NeedPrefix bool
	scope      *Scope
}

func (*ExpressionProcessor) Name() string { return "ExpressionProcessor" }

func (p *ExpressionProcessor) Run(root *ir.Root) {
	if !p.NeedPrefix {
		return
	}
	p.scope = NewScope()
	for _, n := range root.Children {
		p.visitNode(n)
	}
}

func (p *ExpressionProcessor) visitNode(n ir.Node) {
	switch v := n.(type) {
	case *ir.VNodeCall:
		v.Tag = p.visitExpr(v.Tag)
		v.Props = p.visitExpr(v.Props)
		for i := range v.Directives {
			v.Directives[i].Arg = p.visitExpr(v.Directives[i].Arg)
			v.Directives[i].Expr = p.visitExpr(v.Directives[i].Expr)
		}
		for _, c := range v.Children {
			p.visitNode(c)
		}
	case *ir.If:
		for i := range v.Branches {
			v.Branches[i].Condition = p.visitExpr(v.Branches[i].Condition)
			p.visitNode(v.Branches[i].Child)
		}
	case *ir.For:
		p.scope.Push(v.Parse.Value, v.Parse.Key, v.Parse.Index)
		v.Parse.Source = p.visitExpr(v.Parse.Source)
		v.Key = p.visitExpr(v.Key)
		p.visitNode(v.Child)
		p.scope.Pop(v.Parse.Value, v.Parse.Key, v.Parse.Index)
	case *ir.CacheNode:
		v.MemoExpr = p.visitExpr(v.MemoExpr)
		p.visitNode(v.Child)
	case *ir.RenderSlotCall:
		v.SlotObj = p.visitExpr(v.SlotObj)
		v.SlotName = p.visitExpr(v.SlotName)
		v.SlotProps = p.visitExpr(v.SlotProps)
		for _, f := range v.Fallbacks {
			p.visitNode(f)
		}
	case *ir.VSlotUse:
		for i := range v.StableSlots {
			p.visitSlot(&v.StableSlots[i])
		}
		for _, a := range v.AlterableSlots {
			if as, ok := a.(*ir.AlterableSlot); ok {
				p.visitSlot(&as.Inner)
			}
		}
	case *ir.TextCall:
		for i, t := range v.Texts {
			v.Texts[i] = p.visitExpr(t)
		}
	}
}

func (p *ExpressionProcessor) visitSlot(s *ir.Slot) {
	s.Name = p.visitExpr(s.Name)
	p.scope.Push(s.Params...)
	if s.Body != nil {
		p.visitNode(s.Body)
	}
	p.scope.Pop(s.Params...)
}

// visitExpr prefixes a bare Simple/FuncSimple expression's free identifiers
// that aren't in the current scope. The raw source is rewritten token by
// token; already-scoped identifiers and member-access continuations (".x")
// are left untouched.
func (p *ExpressionProcessor) visitExpr(e ir.JsExpr) ir.JsExpr {
	switch v := e.(type) {
	case nil:
		return nil
	case ir.Simple:
		v.Value = prefixFreeIdentifiers(v.Value.String(), p.scope)
		return v
	case ir.FuncSimple:
		v.Src = prefixFreeIdentifiers(v.Src, p.scope).String()
		return v
	case ir.Props:
		for i := range v.Entries {
			v.Entries[i].Key = p.visitExpr(v.Entries[i].Key)
			v.Entries[i].Value = p.visitExpr(v.Entries[i].Value)
		}
		return v
	case ir.Array:
		for i := range v.Items {
			v.Items[i] = p.visitExpr(v.Items[i])
		}
		return v
	case ir.Call:
		for i := range v.Args {
			v.Args[i] = p.visitExpr(v.Args[i])
		}
		return v
	default:
		return e
	}
}

// prefixFreeIdentifiers stamps "_ctx." ahead of every free identifier token
// in s not bound by scope, member-accessed, or reserved.
//
// VStr's CTX_PREFIX op (spec.md §3) is a single affine transform over an
// entire staged string, fine for the common case of a bare identifier
// binding (e.g. an event handler key). A raw expression can reference
// several identifiers at different offsets, which a single whole-string op
// can't express, so this rewrites the source directly instead of staging
// another op — the returned VStr carries no further deferred ops.
func prefixFreeIdentifiers(s string, scope *Scope) vstr.VStr {
	var b strings.Builder
	last := 0
	m, _ := identifierRe.FindStringMatch(s)
	for m != nil {
		start := m.Index
		tok := m.String()
		memberAccess := start > 0 && s[start-1] == '.'
		b.WriteString(s[last:start])
		if !memberAccess && !reservedWords[tok] && (scope == nil || !scope.Has(tok)) {
			b.WriteString("_ctx.")
		}
		b.WriteString(tok)
		last = start + len(tok)
		m, _ = identifierRe.FindNextMatch(m)
	}
	b.WriteString(s[last:])
	return vstr.Of(b.String())
}
