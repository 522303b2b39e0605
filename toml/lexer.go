package toml

import (
	"fmt"
	"strings"
)

// Lexer splits TOML source into tokens; it works on bytes since every
// structural character is ASCII and strings are copied through untouched
type Lexer struct {
	input []byte
	pos   int
	line  int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken returns the next token, TokenEOF once input is exhausted
func (l *Lexer) NextToken() Token {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		l.pos++
	}
	if l.pos >= len(l.input) {
		return l.token(TokenEOF, "")
	}

	c := l.input[l.pos]
	switch c {
	case '\n':
		l.pos++
		tok := l.token(TokenNewline, "\n")
		l.line++
		return tok
	case '#':
		start := l.pos + 1
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
		return l.token(TokenComment, string(l.input[start:l.pos]))
	case '"', '\'':
		return l.readString(c)
	}

	if tt, ok := punctuation[c]; ok {
		l.pos++
		return l.token(tt, string(c))
	}

	if isBareChar(c) || c == '+' {
		return l.readBare()
	}

	l.pos++
	return l.token(TokenError, fmt.Sprintf("unexpected character %q", c))
}

var punctuation = map[byte]TokenType{
	'=': TokenEqual,
	'.': TokenDot,
	',': TokenComma,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

func (l *Lexer) token(tt TokenType, lit string) Token {
	return Token{Type: tt, Literal: lit, Line: l.line}
}

// readString handles single-line basic ("...", escapes) and literal ('...') strings
func (l *Lexer) readString(quote byte) Token {
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '\n':
			return l.token(TokenError, "newline in string")
		case c == quote:
			l.pos++
			return l.token(TokenString, sb.String())
		case c == '\\' && quote == '"':
			if l.pos+1 >= len(l.input) {
				return l.token(TokenError, "unterminated escape")
			}
			l.pos++
			switch e := l.input[l.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteByte(e)
			default:
				return l.token(TokenError, fmt.Sprintf("unknown escape \\%c", e))
			}
		default:
			sb.WriteByte(c)
		}
		l.pos++
	}
	return l.token(TokenError, "unterminated string")
}

// readBare reads a bare key, number or boolean; classification happens after
// the whole run is consumed since "1e3" and "e13" share characters
func (l *Lexer) readBare() Token {
	start := l.pos
	numeric := isDigit(l.input[start]) || l.input[start] == '+' || l.input[start] == '-'
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isBareChar(c) || c == '+' || (c == '.' && numeric) {
			l.pos++
			continue
		}
		break
	}
	lit := string(l.input[start:l.pos])

	switch {
	case lit == "true" || lit == "false":
		return l.token(TokenBool, lit)
	case !numeric:
		return l.token(TokenIdent, lit)
	}

	digits := strings.TrimLeft(lit, "+-")
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xob", rune(digits[1])) {
		return l.token(TokenInteger, lit)
	}
	if strings.ContainsAny(digits, ".eE") || digits == "inf" || digits == "nan" {
		return l.token(TokenFloat, lit)
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) && digits[i] != '_' {
			return l.token(TokenIdent, lit)
		}
	}
	return l.token(TokenInteger, lit)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBareChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c) || c == '_' || c == '-'
}
