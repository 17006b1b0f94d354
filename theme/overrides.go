package theme

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/BurntSushi/toml"
)

// Overrides is the user-facing theme file. Every field is optional; unset
// fields fall back to the base theme.
type Overrides struct {
	Background *string `toml:"background"`

	Node struct {
		MinWidth     *float64 `toml:"min_width"`
		Padding      *float64 `toml:"padding"`
		Spacing      *float64 `toml:"spacing"`
		BorderRadius *float64 `toml:"border_radius"`
		TitleSize    *float64 `toml:"title_size"`
		TitleColor   *string  `toml:"title_color"`
		TitleBezel   *string  `toml:"title_bezel"`
		TitleAlign   *string  `toml:"title_align"`
		Fill         *string  `toml:"fill"`
		Border       *string  `toml:"border"`
		Selected     *string  `toml:"selected_border"`
	} `toml:"node"`

	Port struct {
		Radius     *float64 `toml:"radius"`
		RowHeight  *float64 `toml:"row_height"`
		LabelSize  *float64 `toml:"label_size"`
		EmptyFill  *string  `toml:"empty_fill"`
		FilledFill *string  `toml:"filled_fill"`
	} `toml:"port"`

	Connection struct {
		Width      *float64 `toml:"width"`
		Color      *string  `toml:"color"`
		HoverColor *string  `toml:"hover_color"`
	} `toml:"connection"`

	Widget struct {
		Width      *float64 `toml:"width"`
		Height     *float64 `toml:"height"`
		FontSize   *float64 `toml:"font_size"`
		Background *string  `toml:"background"`
		Accent     *string  `toml:"accent"`
	} `toml:"widget"`

	Markdown struct {
		BodySize    *float64 `toml:"body_size"`
		H1Size      *float64 `toml:"h1_size"`
		H2Size      *float64 `toml:"h2_size"`
		H3Size      *float64 `toml:"h3_size"`
		LineSpacing *float64 `toml:"line_spacing"`
		TextColor   *string  `toml:"text_color"`
	} `toml:"markdown"`

	Menu struct {
		Width      *float64 `toml:"width"`
		ItemHeight *float64 `toml:"item_height"`
		FontSize   *float64 `toml:"font_size"`
		Background *string  `toml:"background"`
		Highlight  *string  `toml:"highlight"`
		MaxVisible *int     `toml:"max_visible"`
	} `toml:"menu"`
}

func fallback[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

type colorResolver struct {
	err error
}

func (r *colorResolver) resolve(v *string, def color.RGBA) color.RGBA {
	if v == nil || r.err != nil {
		return def
	}
	c, err := ParseHex(*v)
	if err != nil {
		r.err = err
		return def
	}
	return c
}

// Resolve merges o over base.
func Resolve(base Theme, o Overrides) (Theme, error) {
	t := base
	var cr colorResolver

	t.Background = cr.resolve(o.Background, base.Background)

	t.Node.MinWidth = fallback(o.Node.MinWidth, base.Node.MinWidth)
	t.Node.Padding = fallback(o.Node.Padding, base.Node.Padding)
	t.Node.Spacing = fallback(o.Node.Spacing, base.Node.Spacing)
	t.Node.BorderRadius = fallback(o.Node.BorderRadius, base.Node.BorderRadius)
	t.Node.TitleSize = fallback(o.Node.TitleSize, base.Node.TitleSize)
	t.Node.TitleColor = cr.resolve(o.Node.TitleColor, base.Node.TitleColor)
	t.Node.TitleBezel = cr.resolve(o.Node.TitleBezel, base.Node.TitleBezel)
	t.Node.Idle.Fill = cr.resolve(o.Node.Fill, base.Node.Idle.Fill)
	t.Node.Selected.Fill = t.Node.Idle.Fill
	t.Node.Idle.Border = cr.resolve(o.Node.Border, base.Node.Idle.Border)
	t.Node.Selected.Border = cr.resolve(o.Node.Selected, base.Node.Selected.Border)
	if o.Node.TitleAlign != nil {
		align, err := ParseAlignment(*o.Node.TitleAlign)
		if err != nil {
			return base, fmt.Errorf("node.title_align: %w", err)
		}
		t.Node.TitleAlign = align
	}

	t.Port.Radius = fallback(o.Port.Radius, base.Port.Radius)
	t.Port.RowHeight = fallback(o.Port.RowHeight, base.Port.RowHeight)
	t.Port.LabelSize = fallback(o.Port.LabelSize, base.Port.LabelSize)
	t.Port.EmptyFill = cr.resolve(o.Port.EmptyFill, base.Port.EmptyFill)
	t.Port.FilledFill = cr.resolve(o.Port.FilledFill, base.Port.FilledFill)

	t.Connection.Width = fallback(o.Connection.Width, base.Connection.Width)
	t.Connection.Color = cr.resolve(o.Connection.Color, base.Connection.Color)
	t.Connection.HoverColor = cr.resolve(o.Connection.HoverColor, base.Connection.HoverColor)

	t.Widget.Width = fallback(o.Widget.Width, base.Widget.Width)
	t.Widget.Height = fallback(o.Widget.Height, base.Widget.Height)
	t.Widget.FontSize = fallback(o.Widget.FontSize, base.Widget.FontSize)
	t.Widget.Background = cr.resolve(o.Widget.Background, base.Widget.Background)
	t.Widget.Accent = cr.resolve(o.Widget.Accent, base.Widget.Accent)

	t.Markdown.BodySize = fallback(o.Markdown.BodySize, base.Markdown.BodySize)
	t.Markdown.H1Size = fallback(o.Markdown.H1Size, base.Markdown.H1Size)
	t.Markdown.H2Size = fallback(o.Markdown.H2Size, base.Markdown.H2Size)
	t.Markdown.H3Size = fallback(o.Markdown.H3Size, base.Markdown.H3Size)
	t.Markdown.LineSpacing = fallback(o.Markdown.LineSpacing, base.Markdown.LineSpacing)
	t.Markdown.TextColor = cr.resolve(o.Markdown.TextColor, base.Markdown.TextColor)

	t.Menu.Width = fallback(o.Menu.Width, base.Menu.Width)
	t.Menu.ItemHeight = fallback(o.Menu.ItemHeight, base.Menu.ItemHeight)
	t.Menu.FontSize = fallback(o.Menu.FontSize, base.Menu.FontSize)
	t.Menu.Background = cr.resolve(o.Menu.Background, base.Menu.Background)
	t.Menu.Highlight = cr.resolve(o.Menu.Highlight, base.Menu.Highlight)
	t.Menu.MaxVisible = fallback(o.Menu.MaxVisible, base.Menu.MaxVisible)

	if cr.err != nil {
		return base, cr.err
	}
	return t, nil
}

// LoadFile decodes a TOML theme file and resolves it over Default.
func LoadFile(path string, logger *slog.Logger) (Theme, error) {
	var o Overrides
	md, err := toml.DecodeFile(path, &o)
	if err != nil {
		return Default(), fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, key := range md.Undecoded() {
		logger.Warn("ignoring unknown theme key", "file", path, "key", key.String())
	}
	return Resolve(Default(), o)
}

// Decode resolves a TOML theme document held in memory.
func Decode(data string) (Theme, error) {
	var o Overrides
	if _, err := toml.Decode(data, &o); err != nil {
		return Default(), fmt.Errorf("failed to decode theme: %w", err)
	}
	return Resolve(Default(), o)
}
