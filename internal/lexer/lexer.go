package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/uplc/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case '.':
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case '"':
		line, column := l.line, l.column
		lexeme, literal, ok := l.readString()
		typ := token.STRING
		if !ok {
			typ = token.ILLEGAL
		}
		return token.Token{Type: typ, Lexeme: lexeme, Literal: literal, Line: line, Column: column}
	case '#':
		line, column := l.line, l.column
		l.readChar()
		digits := l.readHexDigits()
		return token.Token{Type: token.BYTES, Lexeme: "#" + digits, Literal: digits, Line: line, Column: column}
	case '-':
		if isDigit(l.peekChar()) {
			line, column := l.line, l.column
			l.readChar()
			digits := l.readDigits()
			return token.Token{Type: token.INT, Lexeme: "-" + digits, Literal: "-" + digits, Line: line, Column: column}
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: l.line, Column: l.column}
	default:
		if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
			line, column := l.line, l.column
			l.readChar()
			l.readChar()
			digits := l.readHexDigits()
			return token.Token{Type: token.HEX, Lexeme: "0x" + digits, Literal: digits, Line: line, Column: column}
		}
		if isDigit(l.ch) {
			line, column := l.line, l.column
			digits := l.readDigits()
			return token.Token{Type: token.INT, Lexeme: digits, Literal: digits, Line: line, Column: column}
		}
		if isNameStart(l.ch) {
			line, column := l.line, l.column
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: column}
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// skipWhitespace eats blanks, newlines and -- line comments.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isNameStart(l.ch) || isDigit(l.ch) || l.ch == '\'' {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readDigits() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readHexDigits() string {
	start := l.position
	for isHexDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString consumes a quoted literal, decoding \n \t \r \" \\ and decimal
// escapes. Returns the raw lexeme, the decoded value and whether the literal
// was terminated.
func (l *Lexer) readString() (lexeme string, literal string, ok bool) {
	start := l.position
	var out strings.Builder
	l.readChar()
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return l.input[start:l.position], out.String(), false
		}
		if l.ch == '\\' {
			l.readChar()
			switch {
			case l.ch == 'n':
				out.WriteByte('\n')
			case l.ch == 't':
				out.WriteByte('\t')
			case l.ch == 'r':
				out.WriteByte('\r')
			case l.ch == '"':
				out.WriteByte('"')
			case l.ch == '\\':
				out.WriteByte('\\')
			case isDigit(l.ch):
				code := 0
				for isDigit(l.ch) {
					code = code*10 + int(l.ch-'0')
					l.readChar()
				}
				out.WriteRune(rune(code))
				continue
			default:
				out.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		out.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar()
	return l.input[start:l.position], out.String(), true
}

func newToken(tokenType token.Type, ch rune, line, column int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}

func isNameStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
