package ehrenfest

import (
	"bytes"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// SaveVideo writes recorded frames as an MJPEG AVI at fps frames per second.
func SaveVideo(frames []Frame, path string, fps, px int) error {
	imgs, err := renderFrames(frames, px)
	if err != nil {
		return err
	}
	b := imgs[0].Bounds()
	aw, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(fps))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: 75}
	for _, img := range imgs {
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			_ = aw.Close()
			return err
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			_ = aw.Close()
			return err
		}
		buf.Reset()
	}
	return aw.Close()
}
