package main

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nodeflow/theme"
)

const halfBlock = "▀"

// average returns the mean colour of the w x h pixel block at (x, y),
// sampling every other pixel.
func average(img image.Image, x, y, w, h int) color.RGBA {
	var r, g, b, n uint32
	for py := y; py < y+h; py += 2 {
		for px := x; px < x+w; px += 2 {
			cr, cg, cb, _ := img.At(px, py).RGBA()
			r, g, b = r+cr>>8, g+cg>>8, b+cb>>8
			n++
		}
	}
	if n == 0 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 0xff}
}

// halfBlocks draws img as cols x rows terminal cells. Each cell covers
// cellW x cellH pixels and shows its top half as the foreground of "▀" and
// its bottom half as the background. Runs of equal cells share one style.
func halfBlocks(img image.Image, cols, rows, cellW, cellH int) string {
	var b strings.Builder
	upper := cellH / 2
	for row := 0; row < rows; row++ {
		var run strings.Builder
		var runTop, runBottom color.RGBA
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.Hex(runTop))).
				Background(lipgloss.Color(theme.Hex(runBottom)))
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}

		for col := 0; col < cols; col++ {
			x, y := col*cellW, row*cellH
			top := average(img, x, y, cellW, upper)
			bottom := average(img, x, y+upper, cellW, cellH-upper)
			if run.Len() > 0 && (top != runTop || bottom != runBottom) {
				flush()
			}
			runTop, runBottom = top, bottom
			run.WriteString(halfBlock)
		}
		flush()
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
