package classifier

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// loadPixels decodes the image at path, resizes it to size×size, and returns
// a flat CHW float32 slice with channels scaled to [0,1] — the layout
// classification exports expect.
func loadPixels(path string, size int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preprocess: open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("preprocess: decode %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	plane := size * size
	out := make([]float32, 3*plane)
	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := dst.RGBAAt(x, y)
			out[i] = float32(px.R) / 255
			out[plane+i] = float32(px.G) / 255
			out[2*plane+i] = float32(px.B) / 255
			i++
		}
	}
	return out, nil
}
