// Package markdown turns note text into styled, word-wrapped render
// entries. Parsing never fails: every malformed construct falls back to
// literal text.
package markdown

import "fmt"

type TokenType int

const (
	Text TokenType = iota
	H1
	H2
	H3
	NewLine
	Star
	Space
	BackTick
)

func (t TokenType) String() string {
	switch t {
	case Text:
		return "Text"
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	case NewLine:
		return "NewLine"
	case Star:
		return "Star"
	case Space:
		return "Space"
	case BackTick:
		return "BackTick"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexeme with its byte offsets into the source.
type Token struct {
	Type   TokenType
	Lexeme string
	Start  int
	End    int
}

const maxHeadingLevel = 3

type lexer struct {
	src    string
	pos    int
	tokens []Token
}

// Lex scans src into a flat token stream.
func Lex(src string) []Token {
	l := &lexer{src: src}
	for !l.atEnd() {
		l.next()
	}
	return l.tokens
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) emit(t TokenType, start int) {
	l.tokens = append(l.tokens, Token{Type: t, Lexeme: l.src[start:l.pos], Start: start, End: l.pos})
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func (l *lexer) next() {
	start := l.pos
	c := l.peek()

	switch {
	case isSpace(c):
		for !l.atEnd() && isSpace(l.peek()) {
			l.pos++
		}
		l.emit(Space, start)

	case c == '#':
		level := 0
		for !l.atEnd() && l.peek() == '#' && level < maxHeadingLevel {
			l.pos++
			level++
		}
		l.emit(H1+TokenType(level-1), start)
		// Markers past the third are literal text.
		if l.peek() == '#' {
			extra := l.pos
			for !l.atEnd() && l.peek() == '#' {
				l.pos++
			}
			l.scanText(extra)
		}

	case c == '\n':
		l.pos++
		l.emit(NewLine, start)

	case c == '*':
		l.pos++
		l.emit(Star, start)

	case c == '`':
		l.pos++
		l.emit(BackTick, start)

	case c == '\r':
		l.pos++

	default:
		l.scanText(start)
	}
}

// scanText consumes a text run starting at start, stopping before
// whitespace, a newline or a star.
func (l *lexer) scanText(start int) {
	for !l.atEnd() {
		c := l.peek()
		if isSpace(c) || c == '\n' || c == '\r' || c == '*' {
			break
		}
		l.pos++
	}
	if l.pos > start {
		l.emit(Text, start)
	}
}
