// Package render rasterizes screen snapshots into RGBA images: one image
// per animation frame, with the theme deciding the concrete colors.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gifcast/gifcast"
	"github.com/gifcast/gifcast/theme"
)

// Defaults for the typography settings.
const (
	DefaultFontSize   = 14
	DefaultLineHeight = 1.4
)

// Settings errors.
var (
	ErrNoTheme     = errors.New("render: theme is required")
	ErrInvalidSize = errors.New("render: cols and rows must be positive")
)

// Settings configures a Renderer.
type Settings struct {
	Cols       int
	Rows       int
	FontSize   int      // glyph size in pixels; DefaultFontSize when zero
	LineHeight float64  // row height as a multiple of font size; DefaultLineHeight when zero
	FontFiles  []string // TTF/OTF files tried in order; built-in bitmap face when empty
	Theme      *theme.Theme
}

// Renderer turns snapshots into images. The pixel geometry is fixed at
// construction so every frame of one conversion has the same dimensions.
type Renderer struct {
	theme       *theme.Theme
	face        font.Face
	cols, rows  int
	fontSize    int
	colWidth    float64
	rowHeight   float64
	pixelWidth  int
	pixelHeight int
	ascent      int
}

// New builds a renderer. The terminal grid gets a one-column margin on
// each side and half a row above and below.
func New(s Settings) (*Renderer, error) {
	if s.Theme == nil {
		return nil, ErrNoTheme
	}
	if s.Cols < 1 || s.Rows < 1 {
		return nil, ErrInvalidSize
	}
	if s.FontSize == 0 {
		s.FontSize = DefaultFontSize
	}
	if s.LineHeight == 0 {
		s.LineHeight = DefaultLineHeight
	}

	face, err := loadFace(s.FontFiles, s.FontSize)
	if err != nil {
		return nil, err
	}

	adv, ok := face.GlyphAdvance('0')
	if !ok {
		adv = fixed.I(s.FontSize / 2)
	}
	colWidth := float64(adv) / 64
	rowHeight := float64(s.FontSize) * s.LineHeight

	return &Renderer{
		theme:       s.Theme,
		face:        face,
		cols:        s.Cols,
		rows:        s.Rows,
		fontSize:    s.FontSize,
		colWidth:    colWidth,
		rowHeight:   rowHeight,
		pixelWidth:  int(math.Round(float64(s.Cols+2) * colWidth)),
		pixelHeight: int(math.Round(float64(s.Rows+1) * rowHeight)),
		ascent:      face.Metrics().Ascent.Ceil(),
	}, nil
}

// PixelSize returns the image dimensions every rendered frame will have.
func (r *Renderer) PixelSize() (w, h int) {
	return r.pixelWidth, r.pixelHeight
}

// Render draws a snapshot. Snapshots smaller than the renderer grid
// leave the remainder as theme background; larger ones are clipped.
func (r *Renderer) Render(snap gifcast.Snapshot) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.pixelWidth, r.pixelHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.theme.Background), image.Point{}, draw.Src)

	marginL := r.colWidth
	marginT := math.Round(r.rowHeight / 2)
	cursorX, cursorY, cursorVisible := snap.Cursor()

	snapCols, snapRows := snap.Size()
	rows := min(r.rows, snapRows)
	cols := min(r.cols, snapCols)

	for row := 0; row < rows; row++ {
		yTop := int(marginT + math.Round(float64(row)*r.rowHeight))
		yBottom := int(marginT + math.Round(float64(row+1)*r.rowHeight))

		for col := 0; col < cols; col++ {
			cell := snap.Cell(col, row)
			if cell.IsSpacer() {
				continue
			}

			width := 1
			if cell.Wide {
				width = 2
			}

			underCursor := cursorVisible && cursorX == col && cursorY == row
			fg, bg, underline := r.cellColors(cell, underCursor)

			xLeft := int(marginL + math.Round(float64(col)*r.colWidth))
			xRight := int(marginL + math.Round(float64(col+width)*r.colWidth))

			if bg != r.theme.Background {
				fillRect(img, xLeft, yTop, xRight, yBottom, bg)
			}
			if underline {
				y := int(marginT + math.Round(float64(row)*r.rowHeight+float64(r.fontSize)*1.2))
				drawHLine(img, xLeft, xRight, y, fg)
			}
			if cell.Strikethrough {
				y := (yTop + yBottom) / 2
				drawHLine(img, xLeft, xRight, y, fg)
			}
			if cell.IsBlank() {
				continue
			}

			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fg),
				Face: r.face,
				Dot:  fixed.P(xLeft, yTop+r.ascent),
			}
			d.DrawString(string(cell.Char))
		}
	}

	return img
}

// cellColors applies the visual adjustments that happen at draw time:
// the cursor cell renders inverted, bold brightens a dim indexed
// foreground, blink brightens a dim indexed background, and inverse
// swaps the two after substituting theme defaults.
func (r *Renderer) cellColors(cell gifcast.Cell, underCursor bool) (fg, bg color.RGBA, underline bool) {
	fgc := cell.Foreground
	bgc := cell.Background
	inverse := cell.Inverse
	if underCursor {
		inverse = !inverse
	}

	if cell.Bold {
		if i := fgc.PaletteIndex(); i >= 0 && i < 8 {
			fgc = gifcast.StandardColor(i + 8)
		}
	}
	if cell.Blink {
		if i := bgc.PaletteIndex(); i >= 0 && i < 8 {
			bgc = gifcast.StandardColor(i + 8)
		}
	}
	if inverse {
		newFg, newBg := bgc, fgc
		if newFg.IsDefault() {
			newFg = gifcast.StandardColor(0)
		}
		if newBg.IsDefault() {
			newBg = gifcast.StandardColor(7)
		}
		fgc, bgc = newFg, newBg
	}

	return r.resolve(fgc, true), r.resolve(bgc, false), cell.Underline
}

func (r *Renderer) resolve(c gifcast.Color, isFg bool) color.RGBA {
	switch c.Type {
	case gifcast.ColorTypeDefault:
		if isFg {
			return r.theme.Foreground
		}
		return r.theme.Background
	case gifcast.ColorTypeTrueColor:
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	default:
		return r.theme.Color(c.Index)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawHLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	if y < img.Bounds().Min.Y || y >= img.Bounds().Max.Y {
		return
	}
	for x := x0; x < x1 && x < img.Bounds().Max.X; x++ {
		if x >= img.Bounds().Min.X {
			img.SetRGBA(x, y, c)
		}
	}
}
