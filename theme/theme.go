// Package theme holds the immutable style snapshot threaded into every
// renderer at graph construction time.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"nodeflow/surface"
)

var (
	ErrUnknownAlignment = errors.New("unknown alignment")
	ErrInvalidColor     = errors.New("invalid color")
)

// BoxStyle describes the fill and outline of a rounded box.
type BoxStyle struct {
	Fill        color.RGBA
	Border      color.RGBA
	BorderWidth float64
}

type NodeTheme struct {
	MinWidth     float64
	Padding      float64
	Spacing      float64
	BorderRadius float64
	TitleSize    float64
	TitleColor   color.RGBA
	TitleBezel   color.RGBA
	TitleAlign   surface.Align
	Idle         BoxStyle
	MouseOver    BoxStyle
	Grabbed      BoxStyle
	Selected     BoxStyle
}

type PortTheme struct {
	Radius      float64
	RowHeight   float64
	LabelSize   float64
	LabelColor  color.RGBA
	EmptyFill   color.RGBA
	FilledFill  color.RGBA
	Border      color.RGBA
	BorderWidth float64
}

type ConnectionTheme struct {
	Width      float64
	Color      color.RGBA
	HoverColor color.RGBA
}

type WidgetTheme struct {
	Width      float64
	Height     float64
	FontSize   float64
	Radius     float64
	Background color.RGBA
	Hover      color.RGBA
	Foreground color.RGBA
	Accent     color.RGBA
}

type NoteTheme struct {
	DefaultWidth float64
	MinWidth     float64
	HandleSize   float64
	HandleColor  color.RGBA
	Padding      float64
}

type MarkdownTheme struct {
	BodySize       float64
	H1Size         float64
	H2Size         float64
	H3Size         float64
	CodeSize       float64
	LineSpacing    float64
	EntrySpacing   float64
	ListIndent     float64
	TextColor      color.RGBA
	CodeBackground color.RGBA
	UnderlineWidth float64
}

type MenuTheme struct {
	Width          float64
	ItemHeight     float64
	FontSize       float64
	Padding        float64
	Radius         float64
	Background     color.RGBA
	Highlight      color.RGBA
	TextColor      color.RGBA
	MutedColor     color.RGBA
	SeparatorColor color.RGBA
	MaxVisible     int
}

type Theme struct {
	Background color.RGBA
	Node       NodeTheme
	Port       PortTheme
	Connection ConnectionTheme
	Widget     WidgetTheme
	Note       NoteTheme
	Markdown   MarkdownTheme
	Menu       MenuTheme
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Default returns the built-in dark theme.
func Default() Theme {
	return Theme{
		Background: rgb(0x2b, 0x2d, 0x31),
		Node: NodeTheme{
			MinWidth:     150,
			Padding:      8,
			Spacing:      6,
			BorderRadius: 12,
			TitleSize:    16,
			TitleColor:   rgb(0xff, 0xff, 0xff),
			TitleBezel:   rgb(0x3c, 0x6e, 0x71),
			TitleAlign:   surface.AlignCenter,
			Idle:         BoxStyle{Fill: rgb(0x35, 0x39, 0x3f), Border: rgb(0x1e, 0x1f, 0x22), BorderWidth: 1},
			MouseOver:    BoxStyle{Fill: rgb(0x3d, 0x42, 0x49), Border: rgb(0xb0, 0xb6, 0xbf), BorderWidth: 1},
			Grabbed:      BoxStyle{Fill: rgb(0x3d, 0x42, 0x49), Border: rgb(0xff, 0xff, 0xff), BorderWidth: 2},
			Selected:     BoxStyle{Fill: rgb(0x35, 0x39, 0x3f), Border: rgb(0x6b, 0xb7, 0xff), BorderWidth: 2},
		},
		Port: PortTheme{
			Radius:      5,
			RowHeight:   16,
			LabelSize:   13,
			LabelColor:  rgb(0xdd, 0xdd, 0xdd),
			EmptyFill:   rgb(0x35, 0x39, 0x3f),
			FilledFill:  rgb(0x6b, 0xb7, 0xff),
			Border:      rgb(0xdd, 0xdd, 0xdd),
			BorderWidth: 1,
		},
		Connection: ConnectionTheme{
			Width:      2,
			Color:      rgb(0xb0, 0xb6, 0xbf),
			HoverColor: rgb(0xff, 0xff, 0xff),
		},
		Widget: WidgetTheme{
			Width:      130,
			Height:     22,
			FontSize:   12,
			Radius:     4,
			Background: rgb(0x22, 0x24, 0x27),
			Hover:      rgb(0x2e, 0x31, 0x35),
			Foreground: rgb(0xee, 0xee, 0xee),
			Accent:     rgb(0x6b, 0xb7, 0xff),
		},
		Note: NoteTheme{
			DefaultWidth: 500,
			MinWidth:     100,
			HandleSize:   12,
			HandleColor:  rgb(0xb0, 0xb6, 0xbf),
			Padding:      8,
		},
		Markdown: MarkdownTheme{
			BodySize:       16,
			H1Size:         32,
			H2Size:         24,
			H3Size:         20,
			CodeSize:       14,
			LineSpacing:    1.3,
			EntrySpacing:   10,
			ListIndent:     20,
			TextColor:      rgb(0xee, 0xee, 0xee),
			CodeBackground: rgb(0x1e, 0x1f, 0x22),
			UnderlineWidth: 1,
		},
		Menu: MenuTheme{
			Width:          200,
			ItemHeight:     24,
			FontSize:       14,
			Padding:        6,
			Radius:         6,
			Background:     rgb(0x1e, 0x1f, 0x22),
			Highlight:      rgb(0x3c, 0x6e, 0x71),
			TextColor:      rgb(0xee, 0xee, 0xee),
			MutedColor:     rgb(0x8a, 0x8f, 0x98),
			SeparatorColor: rgb(0x44, 0x47, 0x4d),
			MaxVisible:     12,
		},
	}
}

// ParseAlignment maps "left", "center" and "right" to surface alignments.
func ParseAlignment(s string) (surface.Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return surface.AlignLeft, nil
	case "center", "centre", "middle":
		return surface.AlignCenter, nil
	case "right":
		return surface.AlignRight, nil
	}
	return surface.AlignLeft, fmt.Errorf("%w: %q", ErrUnknownAlignment, s)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa"; the leading '#' is
// optional.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	alpha := uint64(0xff)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha, hex = a, hex[:6]
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	// colorful.Hex stops at the first non-hex digit without failing.
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
