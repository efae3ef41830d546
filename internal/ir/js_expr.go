package ir

import "github.com/vuec/compiler/internal/vstr"

// JsExpr is the tagged union of expression shapes the generator can emit,
// per spec.md §3. Go has no sum types, so this is implemented as an
// interface with one struct per variant and an exhaustive type switch at
// every consumer (the IR is a closed set; spec.md §9 calls this out
// explicitly as the intended representation over virtual dispatch).
type JsExpr interface {
	isJsExpr()
	// Level computes this expression's StaticLevel per the compositional
	// rules in spec.md §3: literals are stringifiable, simple expressions
	// carry a declared level, composites take the min of their parts, and
	// helper calls normalize only for the four allow-listed helpers.
	Level() StaticLevel
}

// Src is a verbatim source fragment injected into the output unexamined.
type Src struct{ Text string }

func (Src) isJsExpr()            {}
func (Src) Level() StaticLevel   { return NotStatic }

// Num is a numeric literal, always stringifiable.
type Num struct{ Value int }

func (Num) isJsExpr()          {}
func (Num) Level() StaticLevel { return CanStringify }

// StrLit is a JS string literal built from a VStr, always stringifiable.
type StrLit struct{ Value vstr.VStr }

func (StrLit) isJsExpr()          {}
func (StrLit) Level() StaticLevel { return CanStringify }

// Simple is a bare expression (an identifier, member access, or any
// already-classified snippet) carrying its own declared static level.
type Simple struct {
	Value vstr.VStr
	Lvl   StaticLevel
}

func (Simple) isJsExpr()          {}
func (s Simple) Level() StaticLevel { return s.Lvl }

// Param is a function-parameter reference, e.g. a v-for loop variable.
type Param struct{ Name string }

func (Param) isJsExpr()          {}
func (Param) Level() StaticLevel { return NotStatic }

// FuncSimple is a single-expression arrow function body, cacheable when the
// handler-cache pass marks Cache true.
type FuncSimple struct {
	Src   string
	Lvl   StaticLevel
	Cache bool
}

func (FuncSimple) isJsExpr()          {}
func (f FuncSimple) Level() StaticLevel { return f.Lvl }

// FuncCompoundKind distinguishes how a compound function body should render.
type FuncCompoundKind int

const (
	FuncInline FuncCompoundKind = iota
	FuncMember
	FuncFunc
)

// FuncCompound is a multi-piece function body (e.g. an inline-statement
// handler wrapped as "($event) => { ... }").
type FuncCompound struct {
	Body  []JsExpr
	Kind  FuncCompoundKind
	Cache bool
}

func (FuncCompound) isJsExpr() {}
func (f FuncCompound) Level() StaticLevel {
	return levelOfAll(f.Body)
}

// Compound concatenates pieces into one expression, e.g. merged text calls.
type Compound struct{ Parts []JsExpr }

func (Compound) isJsExpr()          {}
func (c Compound) Level() StaticLevel { return levelOfAll(c.Parts) }

// PropEntry is one key/value pair inside a Props expression.
type PropEntry struct {
	Key   JsExpr
	Value JsExpr
}

// Props is an object-literal expression, e.g. the VNode props argument.
type Props struct{ Entries []PropEntry }

func (Props) isJsExpr() {}
func (p Props) Level() StaticLevel {
	levels := make([]StaticLevel, 0, len(p.Entries)*2)
	for _, e := range p.Entries {
		levels = append(levels, e.Key.Level(), e.Value.Level())
	}
	return minLevel(levels...)
}

// Call is a runtime helper invocation.
type Call struct {
	Fn   Helper
	Args []JsExpr
}

func (Call) isJsExpr() {}
func (c Call) Level() StaticLevel {
	if !normalizingHelpers[c.Fn] {
		return NotStatic
	}
	return levelOfAll(c.Args)
}

// Symbol references a helper by name without calling it, e.g. the Fragment
// symbol used as a VNodeCall tag.
type Symbol struct{ Fn Helper }

func (Symbol) isJsExpr()          {}
func (Symbol) Level() StaticLevel { return NotStatic }

// Array is an array-literal expression.
type Array struct{ Items []JsExpr }

func (Array) isJsExpr()          {}
func (a Array) Level() StaticLevel { return levelOfAll(a.Items) }

func levelOfAll(exprs []JsExpr) StaticLevel {
	if len(exprs) == 0 {
		return CanStringify
	}
	levels := make([]StaticLevel, len(exprs))
	for i, e := range exprs {
		levels[i] = e.Level()
	}
	return minLevel(levels...)
}
