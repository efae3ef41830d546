package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// directiveLexer tokenizes an attribute name that is a directive: the
// "v-name", "@", ":", and "#" forms with an optional argument and any
// number of dot modifiers, e.g. "v-on:click.stop.prevent", "@click.once",
// ":[dynamicKey]", "#header".
var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "VPrefix", Pattern: `v-`},
	{Name: "Shorthand", Pattern: `[@:#]`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Ident", Pattern: `[A-Za-z_$][\w$-]*`},
})

// directiveAST is the participle grammar for a directive name. Exactly one
// of VName/Shorthand fires depending on which prefix form was used.
type directiveAST struct {
	VName     string       `(  "v-" @Ident`
	ShortKind string       ` | @Shorthand )`
	Arg       *directiveArg `( ":"? @@ )?`
	Modifiers []string      `( "." @Ident )*`
}

type directiveArg struct {
	Dynamic bool   `( @LBracket`
	Name    string `  @Ident RBracket`
	Static  string `| @Ident )`
}

var directiveParser = participle.MustBuild[directiveAST](
	participle.Lexer(directiveLexer),
)

// ParsedDirective is the result of resolving a directive attribute's name
// into the structural pieces spec.md §3's ElemProp.Dir variant names.
type ParsedDirective struct {
	Name      string // canonical directive name, e.g. "on", "bind", "slot"
	Arg       string // empty when no argument is present
	ArgIsDyn  bool
	Modifiers []string
}

// shorthandNames maps a shorthand prefix character to its canonical
// directive name, per the DOM/runtime convention spec.md §3 assumes:
// "@" == v-on, ":" == v-bind, "#" == v-slot.
var shorthandNames = map[string]string{
	"@": "on",
	":": "bind",
	"#": "slot",
}

// ParseDirectiveName parses a directive attribute's raw name (the part
// before "="), e.g. "v-on:click.stop" or "@click.stop" or "#default".
// ok is false when name isn't a directive at all (a plain attribute).
func ParseDirectiveName(name string) (ParsedDirective, bool) {
	if !looksLikeDirective(name) {
		return ParsedDirective{}, false
	}
	ast, err := directiveParser.ParseString("", name)
	if err != nil {
		return ParsedDirective{}, false
	}
	out := ParsedDirective{Modifiers: ast.Modifiers}
	switch {
	case ast.VName != "":
		out.Name = ast.VName
	case ast.ShortKind != "":
		out.Name = shorthandNames[ast.ShortKind]
	default:
		return ParsedDirective{}, false
	}
	if ast.Arg != nil {
		if ast.Arg.Dynamic {
			out.Arg = ast.Arg.Name
			out.ArgIsDyn = true
		} else {
			out.Arg = ast.Arg.Static
		}
	}
	return out, true
}

func looksLikeDirective(name string) bool {
	if strings.HasPrefix(name, "v-") {
		return true
	}
	return strings.HasPrefix(name, "@") || strings.HasPrefix(name, ":") || strings.HasPrefix(name, "#")
}
