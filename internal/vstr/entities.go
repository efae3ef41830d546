package vstr

import (
	"strconv"
	"strings"
)

// namedEntities covers the common HTML named character references. The
// WHATWG table has ~2200 entries; spec.md treats entity decoding as a
// DECODE_ENTITY op detail and the DOM option preset (out of scope per
// spec.md §1) is expected to supply the exhaustive table for a real HTML
// host. This subset covers the entities that show up in templates in
// practice and keeps the core dependency-free for the rest.
var namedEntities = map[string]string{
	"amp": "&", "lt": "<", "gt": ">", "quot": "\"", "apos": "'",
	"nbsp": " ", "copy": "©", "reg": "®", "trade": "™",
	"mdash": "—", "ndash": "–", "hellip": "…",
	"lsquo": "‘", "rsquo": "’", "ldquo": "“", "rdquo": "”",
	"times": "×", "divide": "÷", "deg": "°", "plusmn": "±",
	"laquo": "«", "raquo": "»", "middot": "·", "sect": "§",
	"para": "¶", "euro": "€", "cent": "¢", "pound": "£",
	"yen": "¥",
}

// decodeEntities scans s for "&...;" references and writes the decoded text
// to w. Unterminated or unknown references are copied through verbatim,
// matching the scanner's non-fatal recovery policy (spec.md §4.1): a
// malformed reference degrades to literal text rather than aborting.
func decodeEntities(s string, w *strings.Builder, isAttr bool) {
	for {
		i := strings.IndexByte(s, '&')
		if i < 0 {
			w.WriteString(s)
			return
		}
		w.WriteString(s[:i])
		rest := s[i+1:]
		decoded, consumed, ok := decodeOneEntity(rest, isAttr)
		if !ok {
			w.WriteByte('&')
			s = rest
			continue
		}
		w.WriteString(decoded)
		s = rest[consumed:]
	}
}

func decodeOneEntity(rest string, isAttr bool) (decoded string, consumed int, ok bool) {
	if rest == "" {
		return "", 0, false
	}
	if rest[0] == '#' {
		return decodeNumericEntity(rest)
	}
	end := strings.IndexByte(rest, ';')
	if end < 0 {
		// No terminator: only a named-entity prefix match without ';' is
		// honored for attribute values per legacy HTML rules, and only
		// when not immediately followed by '=' or an identifier char.
		for name, val := range namedEntities {
			if strings.HasPrefix(rest, name) {
				tail := rest[len(name):]
				if isAttr && tail != "" && (tail[0] == '=' || isAlnum(rune(tail[0]))) {
					continue
				}
				if !isAttr {
					continue
				}
				return val, len(name), true
			}
		}
		return "", 0, false
	}
	name := rest[:end]
	if val, found := namedEntities[name]; found {
		return val, end + 1, true
	}
	return "", 0, false
}

func decodeNumericEntity(rest string) (decoded string, consumed int, ok bool) {
	body := rest[1:]
	base := 10
	digits := body
	prefixLen := 1
	if len(body) > 0 && (body[0] == 'x' || body[0] == 'X') {
		base = 16
		digits = body[1:]
		prefixLen = 2
	}
	end := 0
	for end < len(digits) && isDigitForBase(digits[end], base) {
		end++
	}
	if end == 0 {
		return "", 0, false
	}
	n, err := strconv.ParseInt(digits[:end], base, 32)
	if err != nil {
		return "", 0, false
	}
	total := 1 + prefixLen + end
	if total < len(rest) && rest[total] == ';' {
		total++
	}
	return string(rune(sanitizeCodepoint(n))), total, true
}

func isDigitForBase(b byte, base int) bool {
	if base == 10 {
		return b >= '0' && b <= '9'
	}
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// sanitizeCodepoint maps invalid code points (surrogate halves, out of
// Unicode range) to the replacement character, per the HTML spec's numeric
// character reference error handling.
func sanitizeCodepoint(n int64) rune {
	if n <= 0 || n > 0x10FFFF || (n >= 0xD800 && n <= 0xDFFF) {
		return '�'
	}
	return rune(n)
}
