package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"

	"nodeflow/geom"
)

// GG draws onto a fogleman/gg context using the Go font family.
type GG struct {
	dc    *gg.Context
	fonts *fontCache
}

func NewGG(width, height int) (*GG, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &GG{dc: gg.NewContext(width, height), fonts: fonts}, nil
}

// Context exposes the underlying gg context, for saving or blitting.
func (g *GG) Context() *gg.Context {
	return g.dc
}

func (g *GG) Image() image.Image {
	return g.dc.Image()
}

func (g *GG) SavePNG(path string) error {
	return g.dc.SavePNG(path)
}

func (g *GG) Size() geom.Vector2 {
	return geom.Vector2{X: float64(g.dc.Width()), Y: float64(g.dc.Height())}
}

func (g *GG) Clear(c color.Color) {
	g.dc.SetColor(c)
	g.dc.Clear()
}

func (g *GG) FillRect(b geom.Box, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawRectangle(b.Position.X, b.Position.Y, b.Size.X, b.Size.Y)
	g.dc.Fill()
}

func (g *GG) FillRoundedRect(b geom.Box, radius float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawRoundedRectangle(b.Position.X, b.Position.Y, b.Size.X, b.Size.Y, radius)
	g.dc.Fill()
}

func (g *GG) StrokeRoundedRect(b geom.Box, radius, width float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.SetLineWidth(width)
	g.dc.DrawRoundedRectangle(b.Position.X, b.Position.Y, b.Size.X, b.Size.Y, radius)
	g.dc.Stroke()
}

func (g *GG) FillCircle(center geom.Vector2, radius float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawCircle(center.X, center.Y, radius)
	g.dc.Fill()
}

func (g *GG) StrokeCircle(center geom.Vector2, radius, width float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.SetLineWidth(width)
	g.dc.DrawCircle(center.X, center.Y, radius)
	g.dc.Stroke()
}

func (g *GG) StrokeLine(from, to geom.Vector2, width float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.SetLineWidth(width)
	g.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	g.dc.Stroke()
}

func (g *GG) StrokeBezier(start, c1, c2, end geom.Vector2, width float64, c color.Color) {
	g.dc.SetColor(c)
	g.dc.SetLineWidth(width)
	g.dc.MoveTo(start.X, start.Y)
	g.dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	g.dc.Stroke()
}

func (g *GG) FillText(text string, pos geom.Vector2, f Font, align Align, c color.Color) {
	if f.Size <= 0 || text == "" {
		return
	}
	g.dc.SetFontFace(g.fonts.face(f))
	g.dc.SetColor(c)

	var ax float64
	switch align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	g.dc.DrawStringAnchored(text, pos.X, pos.Y, ax, 0)
}

func (g *GG) MeasureText(text string, f Font) TextMetrics {
	return g.fonts.measure(text, f)
}

func (g *GG) DrawImage(img image.Image, b geom.Box) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	g.dc.Push()
	g.dc.Translate(b.Position.X, b.Position.Y)
	g.dc.Scale(b.Size.X/float64(bounds.Dx()), b.Size.Y/float64(bounds.Dy()))
	g.dc.DrawImage(img, 0, 0)
	g.dc.Pop()
}

type faceKey struct {
	size   float64
	weight Weight
	style  Style
	family Family
}

type fontCache struct {
	mu         sync.Mutex
	regular    *truetype.Font
	bold       *truetype.Font
	italic     *truetype.Font
	boldItalic *truetype.Font
	mono       *truetype.Font
	monoBold   *truetype.Font
	faces      map[faceKey]font.Face
}

var (
	sharedFonts    *fontCache
	sharedFontsErr error
	sharedOnce     sync.Once
)

func loadFonts() (*fontCache, error) {
	sharedOnce.Do(func() {
		c := &fontCache{faces: make(map[faceKey]font.Face)}
		sources := []struct {
			dst  **truetype.Font
			name string
			ttf  []byte
		}{
			{&c.regular, "regular", goregular.TTF},
			{&c.bold, "bold", gobold.TTF},
			{&c.italic, "italic", goitalic.TTF},
			{&c.boldItalic, "bold italic", gobolditalic.TTF},
			{&c.mono, "mono", gomono.TTF},
			{&c.monoBold, "mono bold", gomonobold.TTF},
		}
		for _, s := range sources {
			f, err := truetype.Parse(s.ttf)
			if err != nil {
				sharedFontsErr = fmt.Errorf("failed to parse %s font: %w", s.name, err)
				return
			}
			*s.dst = f
		}
		sharedFonts = c
	})
	return sharedFonts, sharedFontsErr
}

// faceStep is the font size granularity of cached faces, so zooming
// reuses a bounded set of faces.
const faceStep = 0.5

func faceSize(size float64) float64 {
	return max(math.Round(size/faceStep)*faceStep, faceStep)
}

func (c *fontCache) face(f Font) font.Face {
	size := faceSize(f.Size)
	key := faceKey{size: size, weight: f.Weight, style: f.Style, family: f.Family}

	c.mu.Lock()
	defer c.mu.Unlock()
	if face, ok := c.faces[key]; ok {
		return face
	}

	ttf := c.regular
	switch {
	case f.Family == FamilyMono && f.Weight == WeightBold:
		ttf = c.monoBold
	case f.Family == FamilyMono:
		ttf = c.mono
	case f.Weight == WeightBold && f.Style == StyleItalic:
		ttf = c.boldItalic
	case f.Weight == WeightBold:
		ttf = c.bold
	case f.Style == StyleItalic:
		ttf = c.italic
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = face
	return face
}

func (c *fontCache) measure(text string, f Font) TextMetrics {
	if f.Size <= 0 {
		return TextMetrics{}
	}
	face := c.face(f)
	metrics := face.Metrics()
	return TextMetrics{
		Width:   float64(font.MeasureString(face, text)) / 64,
		Ascent:  float64(metrics.Ascent) / 64,
		Descent: float64(metrics.Descent) / 64,
	}
}
