// Package scanner turns a template source string into a lazy stream of
// tokens. It is forked from the teacher's internal/token.go tokenizer —
// rewritten to scan an in-memory string instead of an io.Reader (a
// compilation owns one immutable source buffer for its duration, so there is
// nothing to stream) and to recognize delimiter-bounded interpolations
// instead of JSX-style expression braces.
package scanner

import (
	"strconv"

	"golang.org/x/net/html/atom"

	"github.com/vuec/compiler/internal/loc"
)

// TokenType is the type of a Token.
type TokenType uint8

const (
	ErrorToken TokenType = iota
	TextToken
	StartTagToken
	EndTagToken
	SelfClosingTagToken
	CommentToken
	InterpolationToken
)

func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case TextToken:
		return "Text"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case SelfClosingTagToken:
		return "SelfClosingTag"
	case CommentToken:
		return "Comment"
	case InterpolationToken:
		return "Interpolation"
	default:
		return "Invalid(" + strconv.Itoa(int(t)) + ")"
	}
}

// TextMode governs which terminators and entity/interpolation recognition
// apply while scanning an element's content, per spec.md §4.1.
type TextMode uint8

const (
	// Data recognizes '<', '&', and interpolations.
	Data TextMode = iota
	// RawText terminates only on a matching "</tag" close sequence; no
	// entity decoding, no interpolation recognition.
	RawText
	// RcData is RawText plus '&' decoding and interpolation recognition.
	RcData
	// CDATA is foreign content: no markup recognition of any kind.
	CDATA
)

// AttrType classifies how an attribute's value was written.
type AttrType uint8

const (
	QuotedAttr AttrType = iota
	EmptyAttr
)

// Attribute is a single name/value pair on a start tag. Val is the raw,
// undecoded slice; decoding is deferred to a vstr.VStr op at conversion time.
type Attribute struct {
	Name    string
	NameLoc loc.Span
	Val     string
	ValLoc  loc.Span
	Type    AttrType
}

// Token is one lexical unit produced by the scanner. Data holds the tag name
// for tag tokens, the raw text for Text/Comment, and the raw expression body
// (sans delimiters) for Interpolation.
type Token struct {
	Type     TokenType
	DataAtom atom.Atom
	Data     string
	Attr     []Attribute
	Span     loc.Span
}
