package convert

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// forAliasRe splits "(a, b, c) in source" / "item of source" into the
// binding list and the source expression, per spec.md §4.3's v-for parse.
var forAliasRe = regexp2.MustCompile(`^\s*([\s\S]*?)\s+(?:in|of)\s+([\s\S]*)$`, regexp2.None)

// ForBindings is the destructured "(value, key, index)" alias list.
type ForBindings struct {
	Value, Key, Index string
}

// ParseForExpression splits a raw v-for expression into its bindings and
// source. ok is false when the expression doesn't contain "in"/"of".
func ParseForExpression(expr string) (ForBindings, string, bool) {
	m, err := forAliasRe.FindStringMatch(expr)
	if err != nil || m == nil {
		return ForBindings{}, "", false
	}
	groups := m.Groups()
	if len(groups) < 3 {
		return ForBindings{}, "", false
	}
	alias := strings.TrimSpace(groups[1].String())
	source := strings.TrimSpace(groups[2].String())
	return parseAlias(alias), source, true
}

// parseAlias handles both the bare "item" form and the parenthesized
// "(value, key, index)" destructuring form.
func parseAlias(alias string) ForBindings {
	alias = strings.TrimSpace(alias)
	alias = strings.TrimPrefix(alias, "(")
	alias = strings.TrimSuffix(alias, ")")
	parts := strings.Split(alias, ",")
	var b ForBindings
	if len(parts) > 0 {
		b.Value = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		b.Key = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		b.Index = strings.TrimSpace(parts[2])
	}
	return b
}
