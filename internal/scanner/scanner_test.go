package scanner_test

import (
	"testing"

	"github.com/vuec/compiler/internal/scanner"
	"gotest.tools/v3/assert"
)

func collect(src string, opt scanner.Options) []scanner.Token {
	sc := scanner.New(src, opt)
	var toks []scanner.Token
	for {
		tok := sc.Next()
		if tok.Type == scanner.ErrorToken {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestTextAndInterpolation(t *testing.T) {
	toks := collect("hello {{world}}", scanner.Options{})
	assert.Equal(t, len(toks), 2)
	assert.Equal(t, toks[0].Type, scanner.TextToken)
	assert.Equal(t, toks[0].Data, "hello ")
	assert.Equal(t, toks[1].Type, scanner.InterpolationToken)
	assert.Equal(t, toks[1].Data, "world")
}

func TestStartAndEndTag(t *testing.T) {
	toks := collect(`<div class="a">hi</div>`, scanner.Options{})
	assert.Equal(t, len(toks), 3)
	assert.Equal(t, toks[0].Type, scanner.StartTagToken)
	assert.Equal(t, toks[0].Data, "div")
	assert.Equal(t, len(toks[0].Attr), 1)
	assert.Equal(t, toks[0].Attr[0].Name, "class")
	assert.Equal(t, toks[0].Attr[0].Val, "a")
	assert.Equal(t, toks[1].Type, scanner.TextToken)
	assert.Equal(t, toks[2].Type, scanner.EndTagToken)
}

func TestSelfClosingTag(t *testing.T) {
	toks := collect(`<br/>`, scanner.Options{})
	assert.Equal(t, len(toks), 1)
	assert.Equal(t, toks[0].Type, scanner.SelfClosingTagToken)
}

func TestBoundClassAttribute(t *testing.T) {
	toks := collect(`<div :class="{ active }"/>`, scanner.Options{})
	assert.Equal(t, toks[0].Attr[0].Name, ":class")
	assert.Equal(t, toks[0].Attr[0].Type, scanner.QuotedAttr)
	assert.Equal(t, toks[0].Attr[0].Val, "{ active }")
}

func TestRawTextMode(t *testing.T) {
	toks := collect(`<script>if (a < b) {}</script>`, scanner.Options{
		TextMode: func(tag string) scanner.TextMode {
			if tag == "script" {
				return scanner.RawText
			}
			return scanner.Data
		},
	})
	assert.Equal(t, len(toks), 3)
	assert.Equal(t, toks[1].Type, scanner.TextToken)
	assert.Equal(t, toks[1].Data, "if (a < b) {}")
	assert.Equal(t, toks[2].Type, scanner.EndTagToken)
}

func TestRcDataModeWithInterpolation(t *testing.T) {
	toks := collect(`<title>{{ pageTitle }}</title>`, scanner.Options{
		TextMode: func(tag string) scanner.TextMode {
			if tag == "title" {
				return scanner.RcData
			}
			return scanner.Data
		},
	})
	assert.Equal(t, len(toks), 3)
	assert.Equal(t, toks[1].Type, scanner.InterpolationToken)
	assert.Equal(t, toks[1].Data, " pageTitle ")
}

func TestComment(t *testing.T) {
	toks := collect(`<!-- a comment --> text`, scanner.Options{})
	assert.Equal(t, toks[0].Type, scanner.CommentToken)
	assert.Equal(t, toks[0].Data, " a comment ")
}

func TestCustomDelimiters(t *testing.T) {
	toks := collect(`hi [[x]]`, scanner.Options{DelimOpen: "[[", DelimClose: "]]"})
	assert.Equal(t, toks[1].Type, scanner.InterpolationToken)
	assert.Equal(t, toks[1].Data, "x")
}
