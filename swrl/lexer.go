package swrl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokIRI
	tokVar
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokComma
	tokAnd
	tokArrow
	tokDatatype
	tokLang
	tokLabel
)

var tokenNames = map[tokenKind]string{
	tokEOF:      "end of rule",
	tokName:     "name",
	tokIRI:      "IRI",
	tokVar:      "variable",
	tokString:   "string",
	tokNumber:   "number",
	tokLParen:   "'('",
	tokRParen:   "')'",
	tokComma:    "','",
	tokAnd:      "'^'",
	tokArrow:    "'->'",
	tokDatatype: "'^^'",
	tokLang:     "language tag",
	tokLabel:    "label",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	text string
	col  int
}

type lexer struct {
	src  string
	pos  int
	toks []token
}

// lex splits one rule line into tokens. A '#' outside IRIs and strings
// starts a comment.
func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			break
		}
		start := l.pos
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case r == '#':
			l.pos = len(l.src)
		case r == '(':
			l.emit(tokLParen, "(", start, size)
		case r == ')':
			l.emit(tokRParen, ")", start, size)
		case r == ',':
			l.emit(tokComma, ",", start, size)
		case r == '∧':
			l.emit(tokAnd, "^", start, size)
		case r == '→':
			l.emit(tokArrow, "->", start, size)
		case r == '^':
			if l.peekAt(1) == '^' {
				l.emit(tokDatatype, "^^", start, 2)
			} else {
				l.emit(tokAnd, "^", start, 1)
			}
		case r == '-' && l.peekAt(1) == '>':
			l.emit(tokArrow, "->", start, 2)
		case r == '<':
			end := strings.IndexByte(l.src[l.pos:], '>')
			if end < 0 {
				return nil, l.errorf(start, "unterminated IRI")
			}
			l.emit(tokIRI, l.src[l.pos+1:l.pos+end], start, end+1)
		case r == '?':
			l.pos++
			name := l.scan(isVarRune)
			if name == "" {
				return nil, l.errorf(start, "empty variable name")
			}
			l.toks = append(l.toks, token{kind: tokVar, text: name, col: start + 1})
		case r == '"':
			s, err := l.quoted()
			if err != nil {
				return nil, err
			}
			l.toks = append(l.toks, token{kind: tokString, text: s, col: start + 1})
		case r == '@':
			l.pos++
			lang := l.scan(func(r rune) bool { return r == '-' || isASCIIAlnum(r) })
			if lang == "" {
				return nil, l.errorf(start, "empty language tag")
			}
			l.toks = append(l.toks, token{kind: tokLang, text: lang, col: start + 1})
		case r == '[':
			end := strings.IndexByte(l.src[l.pos:], ']')
			if end < 0 {
				return nil, l.errorf(start, "unterminated label")
			}
			l.emit(tokLabel, strings.TrimSpace(l.src[l.pos+1:l.pos+end]), start, end+1)
		case unicode.IsDigit(r) || ((r == '-' || r == '+' || r == '.') && unicode.IsDigit(l.peekAt(1))):
			l.pos++
			l.scan(func(r rune) bool { return unicode.IsDigit(r) || strings.ContainsRune(".eE+-", r) })
			l.toks = append(l.toks, token{kind: tokNumber, text: l.src[start:l.pos], col: start + 1})
		case unicode.IsLetter(r) || r == '_' || r == ':':
			name := l.name()
			l.toks = append(l.toks, token{kind: tokName, text: name, col: start + 1})
		default:
			return nil, l.errorf(start, "unexpected character %q", r)
		}
	}
	l.toks = append(l.toks, token{kind: tokEOF, col: len(l.src) + 1})
	return l.toks, nil
}

func (l *lexer) emit(kind tokenKind, text string, start, size int) {
	l.toks = append(l.toks, token{kind: kind, text: text, col: start + 1})
	l.pos = start + size
}

func (l *lexer) errorf(at int, format string, args ...any) error {
	return fmt.Errorf("%w: column %d: %s", ErrParse, at+1, fmt.Sprintf(format, args...))
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+offset:])
	return r
}

func (l *lexer) scan(accept func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !accept(r) {
			break
		}
		l.pos += size
	}
	return l.src[start:l.pos]
}

// name scans a bare or prefixed name. A trailing '.' and a '-' that starts
// an arrow are not part of the name.
func (l *lexer) name() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r == '-' && l.peekAt(1) == '>' {
			break
		}
		if !isNameRune(r) {
			break
		}
		l.pos += size
	}
	for l.pos > start+1 && l.src[l.pos-1] == '.' {
		l.pos--
	}
	return l.src[start:l.pos]
}

func (l *lexer) quoted() (string, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.pos++
			return b.String(), nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return "", l.errorf(l.pos, "dangling escape")
			}
			switch e := l.src[l.pos+1]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(e)
			default:
				return "", l.errorf(l.pos, "unknown escape \\%c", e)
			}
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return "", l.errorf(start, "unterminated string")
}

func isASCIIAlnum(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isVarRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isNameRune(r rune) bool {
	return isVarRune(r) || r == '-' || r == '.' || r == ':'
}
