package transform

import (
	"github.com/dlclark/regexp2"

	"github.com/vuec/compiler/internal/ir"
)

// identifierRe finds bare identifier tokens in a raw expression source,
// per spec.md §4.5 item 5's "prefix bare identifiers" rule. It is
// intentionally crude: spec.md's Non-goals rule out full JS parsing, so
// this is identifier-boundary matching, not an AST walk. A leading "."
// (member access) or "$event"/keyword-like tokens are filtered by the
// caller, not the regex itself.
var identifierRe = regexp2.MustCompile(`[A-Za-z_$][\w$]*`, regexp2.None)

// reservedWords are never treated as free identifiers needing a scope
// lookup or a _ctx. prefix.
var reservedWords = map[string]bool{
	"true": true, "false": true, "null": true, "undefined": true,
	"this": true, "new": true, "typeof": true, "void": true, "in": true,
	"of": true, "instanceof": true, "function": true, "return": true,
	"$event": true,
}

// FindIdentifiers returns every free (non-member-access, non-reserved)
// identifier token in expr, in order of appearance, possibly with
// duplicates.
func FindIdentifiers(expr string) []string {
	var out []string
	m, _ := identifierRe.FindStringMatch(expr)
	for m != nil {
		start := m.Index
		tok := m.String()
		if start == 0 || expr[start-1] != '.' {
			if !reservedWords[tok] {
				out = append(out, tok)
			}
		}
		m, _ = identifierRe.FindNextMatch(m)
	}
	return out
}

// Scope is a stack of identifier bindings introduced by v-for aliases and
// v-slot params, reference-counted so a shadowing inner scope doesn't erase
// an outer binding of the same name when it pops, per spec.md §4.5 item 5.
type Scope struct {
	counts map[string]int
}

func NewScope() *Scope { return &Scope{counts: map[string]int{}} }

// Push adds names to the scope (e.g. entering a For or Slot body).
func (s *Scope) Push(names ...string) {
	for _, n := range names {
		if n == "" {
			continue
		}
		s.counts[n]++
	}
}

// Pop removes names added by the matching Push (exiting a For or Slot body).
func (s *Scope) Pop(names ...string) {
	for _, n := range names {
		if n == "" {
			continue
		}
		if s.counts[n] > 0 {
			s.counts[n]--
		}
	}
}

// Has reports whether name is currently bound.
func (s *Scope) Has(name string) bool { return s.counts[name] > 0 }

// HasRefInExpr reports whether expr references any identifier currently
// bound in s — used by CacheHandlers to bail out of caching a closure that
// captures a v-for loop variable, per original_source's cache_handlers.rs.
func (s *Scope) HasRefInExpr(expr string) bool {
	for _, id := range FindIdentifiers(expr) {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// HasRefInValue reports whether the JsExpr backing a single binding (e.g. a
// handler's function body) references any identifier bound in s.
func HasRefInValue(e ir.JsExpr, s *Scope) bool {
	src := rawSourceOf(e)
	return src != "" && s.HasRefInExpr(src)
}

// rawSourceOf extracts the raw expression text backing a JsExpr, for the
// variants that carry one verbatim.
func rawSourceOf(e ir.JsExpr) string {
	switch v := e.(type) {
	case ir.Simple:
		return v.Value.String()
	case ir.FuncSimple:
		return v.Src
	case ir.Src:
		return v.Text
	default:
		return ""
	}
}
