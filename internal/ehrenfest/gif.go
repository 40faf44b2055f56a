package ehrenfest

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// SaveAnimatedGIF writes a GIF with one frame per recorded snapshot.
// delay is in 100ths of a second (e.g., 10 => 10 fps); all frames share the
// color scale of the whole run.
func SaveAnimatedGIF(frames []Frame, path string, delay, px int) error {
	imgs, err := renderFrames(frames, px)
	if err != nil {
		return err
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(imgs)),
		Delay:     make([]int, 0, len(imgs)),
		LoopCount: 0,
	}
	for _, rgba := range imgs {
		// Quantize to paletted for GIF
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
