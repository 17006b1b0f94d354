package markdown

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"nodeflow/geom"
	"nodeflow/surface"
	"nodeflow/theme"
)

// Entry is one block of parsed markdown. Render draws it with its top-left
// corner at pos (screen space), wrapped to maxWidth graph units, and returns
// the vertical space it used in screen units.
type Entry interface {
	Render(s surface.Surface, pos geom.Vector2, scale, maxWidth float64) float64
}

type Kind int

const (
	Paragraph Kind = iota
	Heading1
	Heading2
	Heading3
)

// Run is a stretch of text sharing one style.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

type TextEntry struct {
	Kind      Kind
	Runs      []Run
	Size      float64
	Color     color.RGBA
	Underline bool

	style theme.MarkdownTheme
}

// Text returns the entry's runs concatenated.
func (e *TextEntry) Text() string {
	var b strings.Builder
	for _, r := range e.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (e *TextEntry) font(r Run, scale float64) surface.Font {
	f := surface.Font{Size: e.Size * scale}
	if r.Bold {
		f.Weight = surface.WeightBold
	}
	if r.Italic {
		f.Style = surface.StyleItalic
	}
	return f
}

func (e *TextEntry) lineHeight(scale float64) float64 {
	spacing := e.style.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}
	return e.Size * scale * spacing
}

func (e *TextEntry) Render(s surface.Surface, pos geom.Vector2, scale, maxWidth float64) float64 {
	lines := e.Layout(s, scale, maxWidth)
	lh := e.lineHeight(scale)
	ascent := s.MeasureText("M", surface.Font{Size: e.Size * scale}).Ascent

	widest := 0.0
	for i, line := range lines {
		baseline := pos.Y + float64(i)*lh + ascent
		for _, piece := range line.Pieces {
			s.FillText(piece.Text, geom.Vector2{X: pos.X + piece.X, Y: baseline}, piece.Font, surface.AlignLeft, e.Color)
		}
		widest = max(widest, line.Width)
	}

	height := float64(len(lines)) * lh
	if e.Underline && len(lines) > 0 {
		y := pos.Y + height
		width := e.style.UnderlineWidth * scale
		if width <= 0 {
			width = scale
		}
		s.StrokeLine(geom.Vector2{X: pos.X, Y: y}, geom.Vector2{X: pos.X + widest, Y: y}, width, e.Color)
		height += width * 2
	}
	return height
}

// Piece is a fragment of a wrapped line, X relative to the line start.
type Piece struct {
	Text string
	Font surface.Font
	X    float64
}

type Line struct {
	Pieces []Piece
	Width  float64
}

// part is a styled fragment of a word.
type part struct {
	text string
	font surface.Font
}

// word is an unbreakable run of parts; a word that changes style midway,
// like "**bo**ld", keeps one part per style.
type word struct {
	parts []part
	space bool
}

func (w word) width(s surface.Surface) float64 {
	total := 0.0
	for _, p := range w.parts {
		total += s.MeasureText(p.text, p.font).Width
	}
	return total
}

// words splits the runs at spaces, gluing pieces of adjacent runs that are
// not separated by a space.
func (e *TextEntry) words(scale float64) []word {
	var out []word
	glue := false
	for _, r := range e.Runs {
		f := e.font(r, scale)
		for _, w := range splitWords(r.Text) {
			switch {
			case w == " ":
				out = append(out, word{parts: []part{{w, f}}, space: true})
				glue = false
			case glue:
				last := &out[len(out)-1]
				last.parts = append(last.parts, part{w, f})
			default:
				out = append(out, word{parts: []part{{w, f}}})
				glue = true
			}
		}
	}
	return out
}

// Layout word-wraps the entry to maxWidth graph units. Lines break at the
// last space that fits; a word wider than the whole line is split at the
// widest prefix that fits.
func (e *TextEntry) Layout(s surface.Surface, scale, maxWidth float64) []Line {
	limit := maxWidth * scale
	words := e.words(scale)

	var lines []Line
	var cur Line
	place := func(w word) {
		for _, p := range w.parts {
			cur.Pieces = append(cur.Pieces, Piece{Text: p.text, Font: p.font, X: cur.Width})
			cur.Width += s.MeasureText(p.text, p.font).Width
		}
	}
	flush := func() {
		// Trailing spaces do not count toward the wrapped width.
		for n := len(cur.Pieces); n > 0 && cur.Pieces[n-1].Text == " "; n = len(cur.Pieces) {
			cur.Width = cur.Pieces[n-1].X
			cur.Pieces = cur.Pieces[:n-1]
		}
		lines = append(lines, cur)
		cur = Line{}
	}

	for i := 0; i < len(words); i++ {
		w := words[i]
		if w.space && len(cur.Pieces) == 0 && len(lines) > 0 {
			continue
		}
		if limit <= 0 || cur.Width+w.width(s) <= limit {
			place(w)
			continue
		}
		if w.space {
			flush()
			continue
		}
		if len(cur.Pieces) > 0 {
			flush()
			i--
			continue
		}
		head, tail := breakWord(s, w, limit)
		place(head)
		flush()
		if len(tail.parts) > 0 {
			words[i] = tail
			i--
		}
	}
	if len(cur.Pieces) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func splitWords(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' {
			continue
		}
		if i > start {
			out = append(out, text[start:i])
		}
		out = append(out, " ")
		start = i + 1
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// hardBreak splits text at the widest rune prefix that fits limit, always
// keeping at least one rune on the first line.
func hardBreak(s surface.Surface, text string, f surface.Font, limit float64) (string, string) {
	_, first := utf8.DecodeRuneInString(text)
	cut := first
	for i := first; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		if s.MeasureText(text[:i+size], f).Width > limit {
			break
		}
		i += size
		cut = i
	}
	return text[:cut], text[cut:]
}

// breakWord splits w at the widest prefix that fits limit. The head keeps
// at least one rune.
func breakWord(s surface.Surface, w word, limit float64) (word, word) {
	var head word
	used := 0.0
	for i, p := range w.parts {
		pw := s.MeasureText(p.text, p.font).Width
		if used+pw <= limit {
			head.parts = append(head.parts, p)
			used += pw
			continue
		}
		if len(head.parts) > 0 {
			_, size := utf8.DecodeRuneInString(p.text)
			if used+s.MeasureText(p.text[:size], p.font).Width > limit {
				return head, word{parts: w.parts[i:]}
			}
		}
		keep, rest := hardBreak(s, p.text, p.font, limit-used)
		head.parts = append(head.parts, part{keep, p.font})
		var tail word
		if rest != "" {
			tail.parts = append(tail.parts, part{rest, p.font})
		}
		tail.parts = append(tail.parts, w.parts[i+1:]...)
		return head, tail
	}
	return head, word{}
}

type ListEntry struct {
	Items []*TextEntry

	style theme.MarkdownTheme
}

const bullet = "•"

func (e *ListEntry) Render(s surface.Surface, pos geom.Vector2, scale, maxWidth float64) float64 {
	indent := e.style.ListIndent
	y := pos.Y
	for i, item := range e.Items {
		if i > 0 {
			y += e.style.EntrySpacing * scale / 2
		}
		f := surface.Font{Size: item.Size * scale}
		ascent := s.MeasureText(bullet, f).Ascent
		s.FillText(bullet, geom.Vector2{X: pos.X + indent*scale/3, Y: y + ascent}, f, surface.AlignLeft, item.Color)
		y += item.Render(s, geom.Vector2{X: pos.X + indent*scale, Y: y}, scale, maxWidth-indent)
	}
	return y - pos.Y
}

type CodeEntry struct {
	Code     string
	Language string

	style theme.MarkdownTheme
}

func (e *CodeEntry) Render(s surface.Surface, pos geom.Vector2, scale, maxWidth float64) float64 {
	f := surface.Font{Size: e.style.CodeSize * scale, Family: surface.FamilyMono}
	spacing := e.style.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}
	lh := f.Size * spacing
	pad := f.Size / 2
	lines := strings.Split(e.Code, "\n")

	height := float64(len(lines))*lh + pad*2
	s.FillRoundedRect(geom.Box{
		Position: pos,
		Size:     geom.Vector2{X: maxWidth * scale, Y: height},
	}, pad/2, e.style.CodeBackground)

	ascent := s.MeasureText("M", f).Ascent
	for i, line := range lines {
		s.FillText(line, geom.Vector2{X: pos.X + pad, Y: pos.Y + pad + float64(i)*lh + ascent}, f, surface.AlignLeft, e.style.TextColor)
	}
	return height
}

// RenderAll stacks entries vertically with the theme's entry spacing and
// returns the total height used in screen units.
func RenderAll(s surface.Surface, entries []Entry, th theme.MarkdownTheme, pos geom.Vector2, scale, maxWidth float64) float64 {
	y := pos.Y
	for i, e := range entries {
		if i > 0 {
			y += th.EntrySpacing * scale
		}
		y += e.Render(s, geom.Vector2{X: pos.X, Y: y}, scale, maxWidth)
	}
	return y - pos.Y
}
