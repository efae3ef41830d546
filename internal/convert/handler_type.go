package convert

import "github.com/dlclark/regexp2"

// HandlerType classifies an "@event" expression body, per spec.md §4.4.
type HandlerType int

const (
	MemberExpr HandlerType = iota
	FuncExpr
	InlineStmt
)

// memberExprRe matches a bare member-expression chain: an identifier
// followed by any number of ".prop" or "[computed]" accessors, and nothing
// else — spec.md §4.4's exact pattern.
var memberExprRe = regexp2.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*|\[[^\]]+\])*$`, regexp2.None)

// funcExprRe matches a function-expression or arrow-function prefix:
// "function", "function(", or an arrow parameter list/identifier followed
// by "=>".
var funcExprRe = regexp2.MustCompile(`^\s*(?:function\b|(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>)`, regexp2.None)

// ClassifyHandler inspects a raw "@event" expression body and returns its
// HandlerType per the three rules in spec.md §4.4.
func ClassifyHandler(expr string) HandlerType {
	if ok, _ := memberExprRe.MatchString(expr); ok {
		return MemberExpr
	}
	if ok, _ := funcExprRe.MatchString(expr); ok {
		return FuncExpr
	}
	return InlineStmt
}

// WrapInlineStmt wraps an inline-statement handler body the way spec.md
// §4.4 requires: "($event)=>{ <expr> }".
func WrapInlineStmt(expr string) string {
	return "($event) => { " + expr + " }"
}
