// Package gifenc assembles rendered frames into an animated GIF. Frame
// durations arrive as fractional seconds and are emitted as centisecond
// delays; the rounding error is carried forward so the animation's total
// running time stays within half a centisecond of the source.
package gifenc

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
)

// Encoder errors.
var (
	ErrClosed      = errors.New("gifenc: encoder already closed")
	ErrNoFrames    = errors.New("gifenc: no frames added")
	ErrNegativeDur = errors.New("gifenc: negative frame duration")
)

// Options configures an Encoder.
type Options struct {
	NoLoop bool // play once instead of looping forever
}

// Encoder collects frames and writes the GIF on Close. The stdlib GIF
// codec needs the whole image list at encode time, so frames are held
// quantized in memory until then.
type Encoder struct {
	w         io.Writer
	anim      gif.GIF
	elapsed   float64 // source time in seconds
	emittedCs int     // already written out, in centiseconds
	closed    bool
}

// New creates an encoder writing to w.
func New(w io.Writer, opts Options) *Encoder {
	loop := 0
	if opts.NoLoop {
		loop = -1
	}
	return &Encoder{w: w, anim: gif.GIF{LoopCount: loop}}
}

// AddFrame appends one frame shown for the given duration in seconds.
func (e *Encoder) AddFrame(img *image.RGBA, duration float64) error {
	if e.closed {
		return ErrClosed
	}
	if duration < 0 {
		return ErrNegativeDur
	}

	e.elapsed += duration
	delay := int(math.Round(e.elapsed*100)) - e.emittedCs
	if delay < 0 {
		delay = 0
	}
	e.emittedCs += delay

	e.anim.Image = append(e.anim.Image, quantize(img))
	e.anim.Delay = append(e.anim.Delay, delay)
	return nil
}

// Close writes the GIF. The encoder cannot be reused afterwards.
func (e *Encoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	if len(e.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(e.w, &e.anim)
}

// quantize converts a frame to paletted form. Terminal output rarely
// exceeds a couple dozen distinct colors, so the exact palette path is
// the common case; busier frames fall back to dithering over a fixed
// 256-color palette.
func quantize(img *image.RGBA) *image.Paletted {
	if pal, ok := exactPalette(img); ok {
		out := image.NewPaletted(img.Bounds(), pal)
		draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
		return out
	}
	out := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(out, out.Bounds(), img, img.Bounds().Min)
	return out
}

// exactPalette collects the frame's distinct colors, giving up once they
// exceed the GIF palette limit.
func exactPalette(img *image.RGBA) (color.Palette, bool) {
	seen := make(map[color.RGBA]struct{}, 64)
	var pal color.Palette

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == 256 {
				return nil, false
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	return pal, true
}
