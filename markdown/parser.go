package markdown

import (
	"strings"

	"nodeflow/theme"
)

type parser struct {
	src    string
	tokens []Token
	pos    int
	style  theme.MarkdownTheme
}

// Parse lexes and parses src into render entries styled with th.
func Parse(src string, th theme.MarkdownTheme) []Entry {
	p := &parser{src: src, tokens: Lex(src), style: th}
	return p.parse()
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

// peek returns the type of the token n places ahead, or -1 past the end.
func (p *parser) peek(n int) TokenType {
	i := p.pos + n
	if i < 0 || i >= len(p.tokens) {
		return -1
	}
	return p.tokens[i].Type
}

func (p *parser) parse() []Entry {
	var entries []Entry
	for !p.atEnd() {
		switch p.peek(0) {
		case NewLine:
			p.pos++
		case H1, H2, H3:
			entries = append(entries, p.heading())
		case Star:
			if p.peek(1) == Space {
				entries = append(entries, p.list())
			} else {
				entries = append(entries, p.paragraph())
			}
		case BackTick:
			if p.peek(1) == BackTick && p.peek(2) == BackTick {
				entries = append(entries, p.codeBlock())
			} else {
				entries = append(entries, p.paragraph())
			}
		default:
			if e := p.paragraph(); len(e.Runs) > 0 {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

func (p *parser) heading() *TextEntry {
	kind := Heading1
	size := p.style.H1Size
	switch p.peek(0) {
	case H2:
		kind, size = Heading2, p.style.H2Size
	case H3:
		kind, size = Heading3, p.style.H3Size
	}
	p.pos++
	for p.peek(0) == Space {
		p.pos++
	}

	runs := p.line()
	for i := range runs {
		runs[i].Bold = true
	}
	return &TextEntry{
		Kind:      kind,
		Runs:      runs,
		Size:      size,
		Color:     p.style.TextColor,
		Underline: kind != Heading3,
		style:     p.style,
	}
}

func (p *parser) paragraph() *TextEntry {
	for p.peek(0) == Space {
		p.pos++
	}
	return p.textEntry(p.line())
}

func (p *parser) textEntry(runs []Run) *TextEntry {
	return &TextEntry{
		Kind:  Paragraph,
		Runs:  runs,
		Size:  p.style.BodySize,
		Color: p.style.TextColor,
		style: p.style,
	}
}

// list collects consecutive "* " lines into one entry.
func (p *parser) list() *ListEntry {
	l := &ListEntry{style: p.style}
	for p.peek(0) == Star && p.peek(1) == Space {
		p.pos += 2
		l.Items = append(l.Items, p.textEntry(p.line()))
	}
	return l
}

func (p *parser) codeBlock() *CodeEntry {
	p.pos += 3
	contentStart := p.tokens[p.pos-1].End

	// An info string directly after the fence names the language.
	var language string
	if p.peek(0) == Text && (p.peek(1) == NewLine || p.peek(1) == -1) {
		language = p.tokens[p.pos].Lexeme
		contentStart = p.tokens[p.pos].End
		p.pos++
	}

	contentEnd := len(p.src)
	closed := false
	for i := p.pos; i+2 < len(p.tokens); i++ {
		if p.tokens[i].Type == BackTick && p.tokens[i+1].Type == BackTick && p.tokens[i+2].Type == BackTick {
			contentEnd = p.tokens[i].Start
			p.pos = i + 3
			closed = true
			break
		}
	}
	if !closed {
		p.pos = len(p.tokens)
	}
	if p.peek(0) == NewLine {
		p.pos++
	}

	code := p.src[contentStart:contentEnd]
	code = trimOneNewline(code, strings.TrimPrefix)
	code = trimOneNewline(code, strings.TrimSuffix)

	return &CodeEntry{Code: code, Language: language, style: p.style}
}

func trimOneNewline(s string, trim func(string, string) string) string {
	if t := trim(s, "\r\n"); len(t) != len(s) {
		return t
	}
	return trim(s, "\n")
}

// line consumes tokens up to and including the next newline.
func (p *parser) line() []Run {
	var b runBuilder
	for !p.atEnd() {
		tok := p.tokens[p.pos]
		switch tok.Type {
		case NewLine:
			p.pos++
			return b.runs
		case Space:
			b.add(" ", false, false)
			p.pos++
		case Star:
			p.emphasis(&b)
		default:
			b.add(tok.Lexeme, false, false)
			p.pos++
		}
	}
	return b.runs
}

// emphasis resolves a run of stars at the current position. One star opens
// italic, two or more open bold. A close counts only when the token before
// it is not a space; otherwise the opening stars are literal. A bold
// opening accepts a single closing star.
func (p *parser) emphasis(b *runBuilder) {
	open := p.starsAt(p.pos)
	if open == 1 && p.peek(1) == Space {
		b.add("*", false, false)
		p.pos++
		return
	}

	contentStart := p.pos + open
	j := contentStart
	for j < len(p.tokens) && p.tokens[j].Type != NewLine && p.tokens[j].Type != Star {
		j++
	}

	validClose := j < len(p.tokens) && p.tokens[j].Type == Star &&
		j > contentStart && p.tokens[j-1].Type != Space
	if !validClose {
		b.add(strings.Repeat("*", open), false, false)
		p.pos += open
		return
	}

	var content strings.Builder
	for _, tok := range p.tokens[contentStart:j] {
		if tok.Type == Space {
			content.WriteByte(' ')
		} else {
			content.WriteString(tok.Lexeme)
		}
	}

	bold := open >= 2
	b.add(content.String(), bold, !bold)
	p.pos = j + min(p.starsAt(j), open)
}

func (p *parser) starsAt(i int) int {
	n := 0
	for i+n < len(p.tokens) && p.tokens[i+n].Type == Star {
		n++
	}
	return n
}

type runBuilder struct {
	runs []Run
}

func (b *runBuilder) add(text string, bold, italic bool) {
	if text == "" {
		return
	}
	if n := len(b.runs); n > 0 && b.runs[n-1].Bold == bold && b.runs[n-1].Italic == italic {
		b.runs[n-1].Text += text
		return
	}
	b.runs = append(b.runs, Run{Text: text, Bold: bold, Italic: italic})
}
