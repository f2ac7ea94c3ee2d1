package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// loadFace parses the first usable font file and returns a face sized in
// pixels. With no files configured it falls back to the built-in bitmap
// face, which keeps the renderer usable without any fonts installed.
func loadFace(files []string, size int) (font.Face, error) {
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("render: read font %s: %w", path, err)
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("render: parse font %s: %w", path, err)
		}
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("render: size font %s: %w", path, err)
		}
		return face, nil
	}
	return basicfont.Face7x13, nil
}
