package pdftext

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf16"
)

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokString
	tokNumber
	tokName
	tokArrayStart
	tokArrayEnd
	tokOther
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

// kerning offsets (thousandths of text space) past which a TJ gap reads as a word break
const wordGapThreshold = -200

// textItems walks a page content stream and returns the strings painted by the
// text-showing operators Tj, TJ, ' and ".
func textItems(content []byte) []string {
	lx := &lexer{src: content}
	var (
		items    []string
		operands []token
		array    []token
		inArray  int
	)

	for {
		tok, ok := lx.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tokArrayStart:
			inArray++
			if inArray == 1 {
				array = array[:0]
			}
			continue
		case tokArrayEnd:
			if inArray > 0 {
				inArray--
				if inArray == 0 {
					operands = append(operands, token{kind: tokOther, text: joinArray(array)})
				}
			}
			continue
		}

		if inArray > 0 {
			array = append(array, tok)
			continue
		}

		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "Tj", "'", `"`:
			if s, ok := lastString(operands); ok {
				items = appendItem(items, s)
			}
		case "TJ":
			if n := len(operands); n > 0 && operands[n-1].kind == tokOther {
				items = appendItem(items, operands[n-1].text)
			}
		case "ID":
			lx.skipInlineImage()
		}
		operands = operands[:0]
	}

	return items
}

func appendItem(items []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return items
	}
	return append(items, s)
}

func lastString(operands []token) (string, bool) {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind == tokString {
			return operands[i].text, true
		}
	}
	return "", false
}

func joinArray(array []token) string {
	var b strings.Builder
	for _, t := range array {
		switch t.kind {
		case tokString:
			b.WriteString(t.text)
		case tokNumber:
			if t.num <= wordGapThreshold {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

type lexer struct {
	src []byte
	pos int
}

func isWhite(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) next() (token, bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isWhite(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			l.pos++
			return token{kind: tokString, text: decodeText(l.literal())}, true
		case c == '<':
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '<' {
				l.pos += 2
				return token{kind: tokOther, text: "<<"}, true
			}
			l.pos++
			return token{kind: tokString, text: decodeText(l.hex())}, true
		case c == '>':
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] == '>' {
				l.pos++
			}
			return token{kind: tokOther, text: ">>"}, true
		case c == '[':
			l.pos++
			return token{kind: tokArrayStart}, true
		case c == ']':
			l.pos++
			return token{kind: tokArrayEnd}, true
		case c == '/':
			l.pos++
			return token{kind: tokName, text: l.word()}, true
		case c == '{' || c == '}' || c == ')':
			l.pos++
		default:
			w := l.word()
			if w == "" {
				l.pos++
				continue
			}
			if n, err := strconv.ParseFloat(w, 64); err == nil {
				return token{kind: tokNumber, text: w, num: n}, true
			}
			return token{kind: tokOperator, text: w}, true
		}
	}
	return token{}, false
}

func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.src) && !isWhite(l.src[l.pos]) && !isDelim(l.src[l.pos]) {
		l.pos++
	}
	return string(l.src[start:l.pos])
}

// literal reads a (...) string body; the opening paren is already consumed.
func (l *lexer) literal() []byte {
	var out []byte
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		case '\\':
			if l.pos >= len(l.src) {
				return out
			}
			e := l.src[l.pos]
			l.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if l.pos < len(l.src) && l.src[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '7'; i++ {
						v = v*8 + int(l.src[l.pos]-'0')
						l.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

// hex reads a <...> string body; the opening bracket is already consumed.
func (l *lexer) hex() []byte {
	var digits []byte
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		if isWhite(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

func (l *lexer) skipInlineImage() {
	idx := bytes.Index(l.src[l.pos:], []byte("EI"))
	if idx < 0 {
		l.pos = len(l.src)
		return
	}
	l.pos += idx + 2
}

// decodeText handles UTF-16BE strings with a byte order mark and otherwise
// treats bytes as Latin-1, which covers PDFDocEncoding for Portuguese text.
func decodeText(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		b = b[2:]
		units := make([]uint16, 0, len(b)/2)
		for i := 0; i+1 < len(b); i += 2 {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(units))
	}

	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
