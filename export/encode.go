package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/bloodmagesoftware/gardenplan/canvas"
	"github.com/xfmoulet/qoi"
)

// Encode writes img in the given format. Quality only applies to JPEG and is
// clamped to [1, 100].
func Encode(w io.Writer, img image.Image, format canvas.Format, quality int) error {
	switch format {
	case canvas.FormatPNG, "":
		return png.Encode(w, img)
	case canvas.FormatJPEG:
		quality = min(max(quality, 1), 100)
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case canvas.FormatQOI:
		return qoi.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format %q", format)
}
