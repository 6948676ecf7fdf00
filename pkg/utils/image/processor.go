package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // decoder
	_ "image/png"  // decoder
	"io"

	"github.com/chai2010/webp"
)

const (
	ContentTypeWebP = "image/webp"
	Quality         = 85
)

// ProcessImage decodes a JPEG, PNG or WebP photo and re-encodes it as lossy
// WebP. It returns the encoded bytes and their content type.
func ProcessImage(src io.Reader) (*bytes.Buffer, string, error) {
	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %w", err)
	}

	switch format {
	case "jpeg", "png", "webp":
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: Quality}); err != nil {
		return nil, "", fmt.Errorf("could not encode image: %w", err)
	}

	return buf, ContentTypeWebP, nil
}
