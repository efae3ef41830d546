package scanner

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/vuec/compiler/internal/errs"
	"github.com/vuec/compiler/internal/loc"
)

// TextModeFunc reports the TextMode that should apply to the content of an
// element named tag. The DOM option preset in internal/dompreset supplies a
// concrete implementation; tests may supply their own.
type TextModeFunc func(tag string) TextMode

// Options configures a Scanner. Delimiters default to "{{" / "}}" when left
// empty, matching CompileOption.delimiters' default in spec.md §6.
type Options struct {
	DelimOpen  string
	DelimClose string
	TextMode   TextModeFunc
	Sink       errs.Sink
}

func (o *Options) fillDefaults() {
	if o.DelimOpen == "" {
		o.DelimOpen = "{{"
	}
	if o.DelimClose == "" {
		o.DelimClose = "}}"
	}
	if o.TextMode == nil {
		o.TextMode = func(string) TextMode { return Data }
	}
	if o.Sink == nil {
		o.Sink = errs.NoopSink{}
	}
}

// Scanner scans a fixed source buffer into a stream of Tokens. It holds no
// global state; every field here is local to one compilation, per spec.md
// §5's prohibition on shared mutable state across compiles.
type Scanner struct {
	src  string
	pos  int
	opt  Options
	mode TextMode
	// rawTextTag is the tag name a RawText/RcData region must close on.
	rawTextTag string
}

// New creates a Scanner over src. opt.fillDefaults is applied in place.
func New(src string, opt Options) *Scanner {
	opt.fillDefaults()
	return &Scanner{src: src, opt: opt, mode: Data}
}

func (s *Scanner) eof() bool { return s.pos >= len(s.src) }

func (s *Scanner) errorf(span loc.Span, format string, args ...any) {
	s.opt.Sink.Warning(errs.New(errs.KindLexical, span, format, args...))
}

// Next scans and returns the next token. At end of input it returns a
// Token{Type: ErrorToken} whose Span is the zero-length span at EOF.
func (s *Scanner) Next() Token {
	if s.eof() {
		return Token{Type: ErrorToken, Span: loc.Span{Start: s.pos, End: s.pos}}
	}
	switch s.mode {
	case RawText:
		return s.scanRawText(false)
	case RcData:
		return s.scanRcData()
	case CDATA:
		return s.scanCDATA()
	default:
		return s.scanData()
	}
}

// scanData implements the Data text mode: recognizes '<' (tags/comments)
// and delimiter-bounded interpolations; everything else accretes as text.
func (s *Scanner) scanData() Token {
	start := s.pos
	if strings.HasPrefix(s.src[s.pos:], "<!--") {
		return s.scanComment()
	}
	if s.pos < len(s.src) && s.src[s.pos] == '<' {
		if tok, ok := s.scanTag(); ok {
			return tok
		}
		// Bad open tag: treat '<' as literal text and resync, per spec.md
		// §4.1's non-fatal recovery policy.
		s.errorf(loc.Span{Start: start, End: start + 1}, "invalid tag open; treating '<' as text")
		s.pos = start + 1
		return Token{Type: TextToken, Data: "<", Span: loc.Span{Start: start, End: s.pos}}
	}
	if strings.HasPrefix(s.src[s.pos:], s.opt.DelimOpen) {
		return s.scanInterpolation()
	}
	return s.scanTextRun(true)
}

// scanTextRun consumes plain text up to the next '<', delimiter open (if
// recognizeMarkup), or EOF.
func (s *Scanner) scanTextRun(recognizeMarkup bool) Token {
	start := s.pos
	for s.pos < len(s.src) {
		if recognizeMarkup {
			if s.src[s.pos] == '<' {
				break
			}
			if strings.HasPrefix(s.src[s.pos:], s.opt.DelimOpen) {
				break
			}
		}
		s.pos++
	}
	return Token{Type: TextToken, Data: s.src[start:s.pos], Span: loc.Span{Start: start, End: s.pos}}
}

func (s *Scanner) scanInterpolation() Token {
	start := s.pos
	s.pos += len(s.opt.DelimOpen)
	end := strings.Index(s.src[s.pos:], s.opt.DelimClose)
	if end < 0 {
		s.errorf(loc.Span{Start: start, End: len(s.src)}, "unterminated interpolation")
		body := s.src[s.pos:]
		s.pos = len(s.src)
		return Token{Type: InterpolationToken, Data: body, Span: loc.Span{Start: start, End: s.pos}}
	}
	body := s.src[s.pos : s.pos+end]
	s.pos += end + len(s.opt.DelimClose)
	return Token{Type: InterpolationToken, Data: body, Span: loc.Span{Start: start, End: s.pos}}
}

func (s *Scanner) scanComment() Token {
	start := s.pos
	s.pos += len("<!--")
	if idx := strings.Index(s.src[s.pos:], "<!--"); idx >= 0 {
		if endIdx := strings.Index(s.src[s.pos:], "-->"); endIdx < 0 || idx < endIdx {
			s.errorf(loc.Span{Start: start, End: s.pos + idx}, "nested HTML comment")
		}
	}
	end := strings.Index(s.src[s.pos:], "-->")
	if end < 0 {
		s.errorf(loc.Span{Start: start, End: len(s.src)}, "unterminated HTML comment")
		body := s.src[s.pos:]
		s.pos = len(s.src)
		return Token{Type: CommentToken, Data: body, Span: loc.Span{Start: start, End: s.pos}}
	}
	body := s.src[s.pos : s.pos+end]
	s.pos += end + len("-->")
	return Token{Type: CommentToken, Data: body, Span: loc.Span{Start: start, End: s.pos}}
}

// scanTag scans a start or end tag beginning at '<'. ok is false when what
// follows '<' isn't a valid tag-name start character.
func (s *Scanner) scanTag() (Token, bool) {
	start := s.pos
	if s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
		return s.scanEndTag(start)
	}
	return s.scanStartTag(start)
}

func (s *Scanner) scanEndTag(start int) (Token, bool) {
	pos := start + 2
	nameStart := pos
	for pos < len(s.src) && isNameChar(s.src[pos]) {
		pos++
	}
	if pos == nameStart {
		return Token{}, false
	}
	name := s.src[nameStart:pos]
	for pos < len(s.src) && s.src[pos] != '>' {
		pos++
	}
	if pos < len(s.src) {
		pos++
	} else {
		s.errorf(loc.Span{Start: start, End: pos}, "unterminated end tag")
	}
	s.pos = pos
	s.mode = Data
	return Token{
		Type:     EndTagToken,
		DataAtom: atom.Lookup([]byte(name)),
		Data:     name,
		Span:     loc.Span{Start: start, End: s.pos},
	}, true
}

func (s *Scanner) scanStartTag(start int) (Token, bool) {
	pos := start + 1
	nameStart := pos
	for pos < len(s.src) && isNameChar(s.src[pos]) {
		pos++
	}
	if pos == nameStart {
		return Token{}, false
	}
	name := s.src[nameStart:pos]
	s.pos = pos

	var attrs []Attribute
	selfClosing := false
	for {
		s.skipAttrWhitespace()
		if s.eof() {
			s.errorf(loc.Span{Start: start, End: s.pos}, "unterminated start tag %q", name)
			break
		}
		if s.src[s.pos] == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '>' {
			selfClosing = true
			s.pos += 2
			break
		}
		if s.src[s.pos] == '>' {
			s.pos++
			break
		}
		attr, ok := s.scanAttribute()
		if !ok {
			s.errorf(loc.Span{Start: s.pos, End: s.pos + 1}, "illegal character in attribute name")
			s.pos++
			continue
		}
		attrs = append(attrs, attr)
	}

	tt := StartTagToken
	if selfClosing {
		tt = SelfClosingTagToken
	} else {
		s.mode = s.opt.TextMode(name)
		s.rawTextTag = name
	}
	return Token{
		Type:     tt,
		DataAtom: atom.Lookup([]byte(name)),
		Data:     name,
		Attr:     attrs,
		Span:     loc.Span{Start: start, End: s.pos},
	}, true
}

func (s *Scanner) skipAttrWhitespace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *Scanner) scanAttribute() (Attribute, bool) {
	nameStart := s.pos
	for s.pos < len(s.src) && isAttrNameChar(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == nameStart {
		return Attribute{}, false
	}
	name := s.src[nameStart:s.pos]
	nameSpan := loc.Span{Start: nameStart, End: s.pos}

	s.skipAttrWhitespace()
	if s.eof() || s.src[s.pos] != '=' {
		return Attribute{Name: name, NameLoc: nameSpan, Type: EmptyAttr}, true
	}
	s.pos++
	s.skipAttrWhitespace()
	if s.eof() {
		return Attribute{Name: name, NameLoc: nameSpan, Type: EmptyAttr}, true
	}

	if s.src[s.pos] == '"' || s.src[s.pos] == '\'' {
		quote := s.src[s.pos]
		valStart := s.pos + 1
		end := strings.IndexByte(s.src[valStart:], quote)
		if end < 0 {
			s.errorf(loc.Span{Start: s.pos, End: len(s.src)}, "unterminated attribute value")
			valEnd := len(s.src)
			s.pos = valEnd
			return Attribute{Name: name, NameLoc: nameSpan, Val: s.src[valStart:valEnd], ValLoc: loc.Span{Start: valStart, End: valEnd}, Type: QuotedAttr}, true
		}
		valEnd := valStart + end
		s.pos = valEnd + 1
		return Attribute{Name: name, NameLoc: nameSpan, Val: s.src[valStart:valEnd], ValLoc: loc.Span{Start: valStart, End: valEnd}, Type: QuotedAttr}, true
	}

	valStart := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) && s.src[s.pos] != '>' {
		s.pos++
	}
	return Attribute{Name: name, NameLoc: nameSpan, Val: s.src[valStart:s.pos], ValLoc: loc.Span{Start: valStart, End: s.pos}, Type: QuotedAttr}, true
}

// scanRawText consumes text until the matching "</tag" close sequence,
// case-insensitively, per spec.md §4.1's RawText mode.
func (s *Scanner) scanRawText(decodeEntities bool) Token {
	start := s.pos
	closer := "</" + s.rawTextTag
	idx := indexFold(s.src[s.pos:], closer)
	var end int
	if idx < 0 {
		end = len(s.src)
		s.pos = end
	} else {
		end = s.pos + idx
		s.pos = end
	}
	s.mode = Data
	return Token{Type: TextToken, Data: s.src[start:end], Span: loc.Span{Start: start, End: end}}
}

// scanRcData is RawText plus entity decoding (deferred, as always, to a VStr
// op) and interpolation recognition within the text run, per spec.md §4.1 —
// e.g. <title>{{ pageTitle }}</title> still tokenizes the interpolation.
func (s *Scanner) scanRcData() Token {
	start := s.pos
	closer := "</" + s.rawTextTag
	if hasPrefixFold(s.src[s.pos:], closer) {
		s.mode = Data
		return s.Next()
	}
	if strings.HasPrefix(s.src[s.pos:], s.opt.DelimOpen) {
		return s.scanInterpolation()
	}
	for s.pos < len(s.src) {
		if hasPrefixFold(s.src[s.pos:], closer) {
			break
		}
		if strings.HasPrefix(s.src[s.pos:], s.opt.DelimOpen) {
			break
		}
		s.pos++
	}
	s.mode = RcData
	return Token{Type: TextToken, Data: s.src[start:s.pos], Span: loc.Span{Start: start, End: s.pos}}
}

// scanCDATA consumes the rest of the element's content verbatim; no markup
// of any kind is recognized, per spec.md §4.1.
func (s *Scanner) scanCDATA() Token {
	start := s.pos
	closer := "</" + s.rawTextTag
	idx := indexFold(s.src[s.pos:], closer)
	end := len(s.src)
	if idx >= 0 {
		end = s.pos + idx
	}
	s.pos = end
	s.mode = Data
	return Token{Type: TextToken, Data: s.src[start:end], Span: loc.Span{Start: start, End: end}}
}

// indexFold returns the index of the first case-insensitive occurrence of
// sub in s, or -1.
func indexFold(s, sub string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(sub))
}

// hasPrefixFold reports whether s starts with prefix, case-insensitively.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isNameChar(b byte) bool {
	return b == '-' || b == '_' || b == ':' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isAttrNameChar(b byte) bool {
	switch b {
	case '=', '>', '/', '"', '\'', '<':
		return false
	}
	return !isSpace(b)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
