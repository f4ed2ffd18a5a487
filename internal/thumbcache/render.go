package thumbcache

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	// Registered decoders for the supported image formats.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

type contentProvider interface {
	Reader() (io.Reader, error)
}

// decodeImage decodes an image in any of the registered formats, returning
// the image and its format name. The header is checked first, images of more
// than maxPixels pixels are rejected before their pixel data is allocated.
func decodeImage(item contentProvider, maxPixels int64) (image.Image, string, error) {
	r, err := item.Reader()
	if err != nil {
		return nil, "", fmt.Errorf("(thumbcache-decode) %w", err)
	}

	config, _, err := image.DecodeConfig(bufio.NewReader(r))
	if err != nil {
		return nil, "", mapDecodeError(err)
	}

	if config.Width <= 0 || config.Height <= 0 {
		return nil, "", fmt.Errorf("(thumbcache-decode) %w", ErrEmptyImage)
	}

	if int64(config.Width)*int64(config.Height) > maxPixels {
		return nil, "", fmt.Errorf("(thumbcache-decode) %w: %dx%d", ErrImageTooLarge, config.Width, config.Height)
	}

	r, err = item.Reader()
	if err != nil {
		return nil, "", fmt.Errorf("(thumbcache-decode) %w", err)
	}

	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, "", mapDecodeError(err)
	}

	if img.Bounds().Empty() {
		return nil, "", fmt.Errorf("(thumbcache-decode) %w", ErrEmptyImage)
	}

	return img, format, nil
}

func mapDecodeError(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return fmt.Errorf("(thumbcache-decode) %w", ErrUnsupportedFormat)
	}

	return fmt.Errorf("(thumbcache-decode) %w", err)
}

// scaleToFit returns an image fitting within size x size pixels, preserving
// the aspect ratio. Images that already fit are not upscaled.
func scaleToFit(src image.Image, size int) *image.NRGBA {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > size || height > size {
		if width >= height {
			height = max(1, height*size/width)
			width = size
		} else {
			width = max(1, width*size/height)
			height = size
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	}

	return dst
}

// encodeThumbnail encodes an image as PNG carrying the given text entries.
func encodeThumbnail(img image.Image, entries []textEntry) ([]byte, error) {
	var buf bytes.Buffer

	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("(thumbcache-encode) %w", err)
	}

	data, err := insertTextChunks(buf.Bytes(), entries)
	if err != nil {
		return nil, fmt.Errorf("(thumbcache-encode) %w", err)
	}

	return data, nil
}
