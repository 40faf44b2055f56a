package ehrenfest

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// occupancyColors returns the heatmap color scale spanning [lo, hi].
func occupancyColors(lo, hi int) palette.ColorMap {
	if hi <= lo {
		hi = lo + 1
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMax(float64(hi))
	cm.SetMin(float64(lo))
	return cm
}

// framesRange is the occupation range over all frames, used as one shared
// color scale for an animation.
func framesRange(frames []Frame) (lo, hi int) {
	lo, hi = frames[0].Lattice.Min(), frames[0].Lattice.Max()
	for _, f := range frames[1:] {
		lo = imin(lo, f.Lattice.Min())
		hi = imax(hi, f.Lattice.Max())
	}
	return lo, hi
}

// latticeImage paints l with px x px pixels per site; row x, column y.
func latticeImage(l *Lattice, cm palette.ColorMap, px int) (*image.RGBA, error) {
	n := l.Size * px
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for x := 0; x < l.Size; x++ {
		for y := 0; y < l.Size; y++ {
			c, err := cm.At(float64(l.At(x, y)))
			if err != nil {
				return nil, fmt.Errorf("color for site (%d,%d)=%d: %w", x, y, l.At(x, y), err)
			}
			r := image.Rect(y*px, x*px, (y+1)*px, (x+1)*px)
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img, nil
}

// stampStep writes the hop count into the top-left corner of img.
func stampStep(img draw.Image, step int) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(2, face.Ascent+1),
	}
	d.DrawString(fmt.Sprintf("step %d", step))
}

// renderFrames turns recorded frames into labelled images on one color scale.
func renderFrames(frames []Frame, px int) ([]*image.RGBA, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames recorded")
	}
	if px <= 0 {
		return nil, fmt.Errorf("%w: cell pixels must be positive, got %d", ErrInvalidConfig, px)
	}
	lo, hi := framesRange(frames)
	cm := occupancyColors(lo, hi)
	out := make([]*image.RGBA, 0, len(frames))
	for k, f := range frames {
		if k%imax(1, len(frames)/10) == 0 {
			TraceLog("[frames] %.2f%%", float64(k+1)*100/float64(len(frames)))
		}
		img, err := latticeImage(f.Lattice, cm, px)
		if err != nil {
			return nil, err
		}
		stampStep(img, f.Step)
		out = append(out, img)
	}
	return out, nil
}
