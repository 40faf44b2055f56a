package ehrenfest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// SavePNGPair16 writes <prefix>_initial.png and <prefix>_final.png, one
// 16-bit grayscale pixel per site, both normalized to the occupation range
// of the two lattices together so brightness is comparable.
func SavePNGPair16(initial, final *Lattice, prefix string) error {
	lo := imin(initial.Min(), final.Min())
	hi := imax(initial.Max(), final.Max())
	for _, it := range []struct {
		name string
		l    *Lattice
	}{{"initial", initial}, {"final", final}} {
		path := fmt.Sprintf("%s_%s.png", prefix, it.name)
		if err := savePNG16(it.l, path, lo, hi); err != nil {
			return err
		}
	}
	return nil
}

func savePNG16(l *Lattice, path string, lo, hi int) error {
	// Helper: map occupation -> [0..65535].
	span := float64(hi - lo)
	if span <= 0 {
		span = 1
	}
	toU16 := func(v int) uint16 {
		n := float64(v-lo) / span
		if n < 0 {
			return 0
		}
		if n > 1 {
			return 65535
		}
		return uint16(n*65535.0 + 0.5)
	}

	img := image.NewGray16(image.Rect(0, 0, l.Size, l.Size))
	for x := 0; x < l.Size; x++ {
		for y := 0; y < l.Size; y++ {
			img.SetGray16(y, x, color.Gray16{Y: toU16(l.At(x, y))})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression} // still lossless
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
