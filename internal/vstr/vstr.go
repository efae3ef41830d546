// Package vstr implements the "staged string": a raw source slice paired
// with a bitset of deferred transformations that are applied only when the
// code generator finally writes the string out.
//
// This mirrors the VStr/StrOps design in original_source/vue-compiler's
// util/v_str.rs. Go has no bitflags! macro, so the bitset is a plain uint16
// with named constants — the idiomatic stdlib approach (see e.g.
// os.FileMode, fs.FileMode) and the one the rest of the pack's Go repos use
// for small flag sets; no third-party bitflag library appears anywhere in
// the retrieval pack, so there is nothing to wire here instead of stdlib.
package vstr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	json "github.com/go-json-experiment/json"
)

// Ops is a bitset of deferred string transformations.
type Ops uint16

const (
	HandlerKey Ops = 1 << iota
	ModelHandler
	ValidDir
	ValidComp
	VDirPrefix
	CompressWhitespace
	DecodeEntity
	CamelCase
	Capitalized
	JSString
	_ // bit 10 unused (mirrors the Rust layout's gap at 1<<10)
	CtxPrefix
	ModSuffix
	AssignEvt
	SelfSuffix
	DecodeAttr
)

// IdempotentOps may be applied more than once without changing the result
// beyond the first application.
const IdempotentOps = CompressWhitespace | DecodeEntity | CamelCase | Capitalized | DecodeAttr

// AffineOps must be applied at most once; setting one twice on the same
// VStr is a compiler bug, not a supported idiom.
const AffineOps = HandlerKey | ModelHandler | ValidDir | ValidComp | SelfSuffix | VDirPrefix | JSString | CtxPrefix

// AssetOps mark a string as naming a hoisted asset (component/directive).
const AssetOps = ValidDir | ValidComp | SelfSuffix

// bitOrder lists every single-bit bit value in ascending order, matching
// StrOps::iter()'s low-to-high traversal in the Rust original. Serialization
// runs ops in this order, output of each feeding the next.
var bitOrder = []Ops{
	HandlerKey, ModelHandler, ValidDir, ValidComp, VDirPrefix,
	CompressWhitespace, DecodeEntity, CamelCase, Capitalized, JSString,
	CtxPrefix, ModSuffix, AssignEvt, SelfSuffix, DecodeAttr,
}

// count returns the number of set bits, i.e. how many single ops are active.
func (o Ops) count() int {
	n := 0
	for _, b := range bitOrder {
		if o&b != 0 {
			n++
		}
	}
	return n
}

func (o Ops) has(b Ops) bool { return o&b != 0 }

// VStr is a source slice plus the transformations deferred on it.
type VStr struct {
	Raw string
	Ops Ops
}

// Of wraps a raw string with no ops set.
func Of(raw string) VStr { return VStr{Raw: raw} }

func (v VStr) Decode(isAttr bool) VStr {
	if isAttr {
		v.Ops |= DecodeAttr
	} else {
		v.Ops |= DecodeEntity
	}
	return v
}
func (v VStr) Camelize() VStr        { v.Ops |= CamelCase; return v }
func (v VStr) Capitalize() VStr      { v.Ops |= Capitalized; return v }
func (v VStr) Pascalize() VStr       { return v.Camelize().Capitalize() }
func (v VStr) CompressWS() VStr      { v.Ops |= CompressWhitespace; return v }
func (v VStr) BeHandler() VStr       { v.Ops |= HandlerKey; return v }
func (v VStr) BeVModel() VStr        { v.Ops |= ModelHandler; return v }
func (v VStr) SuffixSelf() VStr      { v.Ops |= SelfSuffix; return v }
func (v VStr) BeComponent() VStr     { v.Ops |= ValidComp; return v }
func (v VStr) UnbeComponent() VStr   { v.Ops &^= ValidComp; return v }
func (v VStr) BeDirective() VStr     { v.Ops |= ValidDir; return v }
func (v VStr) UnbeDirective() VStr   { v.Ops &^= ValidDir; return v }
func (v VStr) PrefixVDir() VStr      { v.Ops |= VDirPrefix; return v }
func (v VStr) BeJSStr() VStr         { v.Ops |= JSString; return v }
func (v VStr) PrefixCtx() VStr       { v.Ops |= CtxPrefix; return v }
func (v VStr) SuffixMod() VStr       { v.Ops |= ModSuffix; return v }
func (v VStr) AssignEvent() VStr     { v.Ops |= AssignEvt; return v }

func IsHandler(v VStr) bool {
	if v.Ops&(HandlerKey|ModelHandler) != 0 {
		return true
	}
	return isEventProp(v.Raw)
}
func IsSelfSuffixed(v VStr) bool  { return v.Ops.has(SelfSuffix) }
func IsAsset(v VStr) bool         { return v.Ops&AssetOps != 0 }
func IsCtxPrefixed(v VStr) bool   { return v.Ops.has(CtxPrefix) }
func IsEventAssign(v VStr) bool   { return v.Ops.has(AssignEvt) }
func HasAffix(v VStr) bool {
	const affix = ModelHandler | ValidDir | ValidComp | VDirPrefix | CtxPrefix | ModSuffix | AssignEvt
	return v.Ops&affix != 0
}

func isEventProp(s string) bool {
	return strings.HasPrefix(s, "on") && len(s) > 2 && isUpperASCII(s[2])
}
func isUpperASCII(b byte) bool { return b >= 'A' && b <= 'Z' }

// String applies the staged ops and returns the resulting text. This is the
// only place StrOps bits are actually interpreted.
func (v VStr) String() string {
	var b strings.Builder
	_ = v.WriteTo(&b)
	return b.String()
}

// WriteTo writes the fully-resolved string to w.
func (v VStr) WriteTo(w *strings.Builder) error {
	n := v.Ops.count()
	if n == 0 {
		w.WriteString(v.Raw)
		return nil
	}
	if n == 1 {
		return writeOneOp(v.Ops, v.Raw, w)
	}
	src := v.Raw
	for _, op := range bitOrder {
		if v.Ops&op == 0 {
			continue
		}
		var next strings.Builder
		if err := writeOneOp(op, src, &next); err != nil {
			return err
		}
		src = next.String()
	}
	w.WriteString(src)
	return nil
}

func writeOneOp(op Ops, s string, w *strings.Builder) error {
	switch op {
	case CompressWhitespace:
		writeCompressed(s, w)
	case DecodeEntity:
		writeDecoded(s, w, false)
	case DecodeAttr:
		writeDecoded(s, w, true)
	case JSString:
		return writeJSONString(s, w)
	case CamelCase:
		writeCamelized(s, w)
	case Capitalized:
		writeCapitalized(s, w)
	case ValidDir:
		writeValidAsset(s, w, "directive")
	case ValidComp:
		writeValidAsset(s, w, "component")
	case SelfSuffix:
		w.WriteString(s)
	case VDirPrefix:
		w.WriteString("v-")
		w.WriteString(s)
	case HandlerKey:
		w.WriteString("on")
		r, size := utf8.DecodeRuneInString(s)
		w.WriteString(strings.ToUpper(string(r)))
		w.WriteString(s[size:])
	case ModelHandler:
		w.WriteString("onUpdate:")
		w.WriteString(s)
	case CtxPrefix:
		w.WriteString("_ctx.")
		w.WriteString(s)
	case ModSuffix:
		w.WriteString(s)
		w.WriteString("Modifiers")
	case AssignEvt:
		w.WriteString("(")
		w.WriteString(s)
		w.WriteString(") = $event")
	default:
		return fmt.Errorf("vstr: op %d is not a single-bit op", op)
	}
	return nil
}

// writeCamelized replaces -(\w) with the upper-cased \w, e.g. foo-bar ->
// fooBar. A trailing lone '-' is kept verbatim.
func writeCamelized(s string, w *strings.Builder) {
	isMinus := false
	for _, c := range s {
		if isAlnum(c) && isMinus {
			w.WriteRune(unicode.ToUpper(c))
			isMinus = false
			continue
		}
		if isMinus {
			w.WriteByte('-')
		}
		isMinus = c == '-'
		if !isMinus {
			w.WriteRune(c)
		}
	}
	if isMinus {
		w.WriteByte('-')
	}
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func writeCapitalized(s string, w *strings.Builder) {
	if s == "" {
		return
	}
	r, size := utf8.DecodeRuneInString(s)
	w.WriteString(strings.ToUpper(string(r)))
	w.WriteString(s[size:])
}

func writeCompressed(s string, w *strings.Builder) {
	inWS := false
	for _, c := range s {
		if unicode.IsSpace(c) {
			if !inWS {
				w.WriteByte(' ')
				inWS = true
			}
			continue
		}
		inWS = false
		w.WriteRune(c)
	}
}

// writeDecoded decodes HTML entities. With isAttr, a known named reference
// missing its ";" is still decoded unless followed by "=" or an alphanumeric;
// without isAttr, a named reference is decoded only when ";" terminates it.
func writeDecoded(s string, w *strings.Builder, isAttr bool) {
	if !strings.ContainsRune(s, '&') {
		w.WriteString(s)
		return
	}
	decodeEntities(s, w, isAttr)
}

func writeValidAsset(s string, w *strings.Builder, asset string) {
	w.WriteByte('_')
	w.WriteString(asset)
	w.WriteByte('_')
	for len(s) > 0 {
		idx := strings.IndexFunc(s, notJSIdentifier)
		if idx < 0 {
			w.WriteString(s)
			return
		}
		w.WriteString(s[:idx])
		r, size := utf8.DecodeRuneInString(s[idx:])
		if r == '-' {
			w.WriteByte('_')
		} else {
			w.WriteString(strconv.Itoa(int(r)))
		}
		s = s[idx+size:]
	}
}

// notJSIdentifier reports whether r cannot appear inside a JS identifier
// (other than as the leading character, which callers don't special-case
// here since VALID_DIR/VALID_COMP only ever run on already-extracted names).
func notJSIdentifier(r rune) bool {
	if r == '_' || r == '$' {
		return false
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// writeJSONString renders s as a JSON/JS string literal, reusing the JSON
// encoder's escaping rules instead of hand-rolling them: a JSON string
// literal is always a valid JS string literal.
func writeJSONString(s string, w *strings.Builder) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	w.Write(b)
	return nil
}
