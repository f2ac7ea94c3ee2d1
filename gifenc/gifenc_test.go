package gifenc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodeDecodableGIF(t *testing.T) {
	var buf bytes.Buffer
	enc := New(&buf, Options{})

	colors := []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	for _, c := range colors {
		if err := enc.AddFrame(solidFrame(8, 4, c), 0.5); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Fatalf("frames = %d, want 3", len(decoded.Image))
	}
	if decoded.LoopCount != 0 {
		t.Errorf("loop count = %d, want 0 (infinite)", decoded.LoopCount)
	}
	for i, d := range decoded.Delay {
		if d != 50 {
			t.Errorf("delay[%d] = %d, want 50", i, d)
		}
	}
	got := decoded.Image[0].At(0, 0)
	r, g, b, _ := got.RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("first frame pixel = %v, want red", got)
	}
}

func TestNoLoop(t *testing.T) {
	var buf bytes.Buffer
	enc := New(&buf, Options{NoLoop: true})
	if err := enc.AddFrame(solidFrame(2, 2, color.RGBA{A: 255}), 1); err != nil {
		t.Fatalf("AddFrame: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if decoded.LoopCount != -1 {
		t.Errorf("loop count = %d, want -1 (play once)", decoded.LoopCount)
	}
}

func TestDelayRoundingConservesTotal(t *testing.T) {
	var buf bytes.Buffer
	enc := New(&buf, Options{})

	// 0.033s per frame rounds to 3cs individually (90cs for 30 frames)
	// but the carried error must keep the total at 99cs.
	for i := 0; i < 30; i++ {
		if err := enc.AddFrame(solidFrame(2, 2, color.RGBA{A: 255}), 0.033); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	total := 0
	for _, d := range decoded.Delay {
		total += d
	}
	if total != 99 {
		t.Errorf("total delay = %dcs, want 99cs", total)
	}
}

func TestManyColorsStillEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 16), B: uint8(x + y), A: 255})
		}
	}

	var buf bytes.Buffer
	enc := New(&buf, Options{})
	if err := enc.AddFrame(img, 1); err != nil {
		t.Fatalf("AddFrame: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := gif.DecodeAll(&buf); err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
}

func TestErrors(t *testing.T) {
	var buf bytes.Buffer
	enc := New(&buf, Options{})

	if err := enc.AddFrame(solidFrame(2, 2, color.RGBA{A: 255}), -1); !errors.Is(err, ErrNegativeDur) {
		t.Errorf("negative duration: error = %v, want ErrNegativeDur", err)
	}

	empty := New(&buf, Options{})
	if err := empty.Close(); !errors.Is(err, ErrNoFrames) {
		t.Errorf("empty close: error = %v, want ErrNoFrames", err)
	}
	if err := empty.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("double close: error = %v, want ErrClosed", err)
	}
	if err := empty.AddFrame(solidFrame(2, 2, color.RGBA{A: 255}), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("add after close: error = %v, want ErrClosed", err)
	}
}
