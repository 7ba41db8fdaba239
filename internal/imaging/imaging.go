// Package imaging prepares uploaded product photos: it validates the format
// by sniffing bytes, then produces the fixed 400x400 fill-cropped JPEG the
// catalog serves (scale to cover, crop centered).
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// Size is the edge length of the square crop applied to every product photo.
const Size = 400

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Result contains the processed image data.
type Result struct {
	Data []byte
	MIME string
}

// Validate sniffs the actual MIME type from the data and rejects anything
// that isn't JPEG or PNG. Client-supplied content types are not trusted.
func Validate(data []byte) error {
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}
	return nil
}

// FillCrop reads image data, validates the format, scales the image so it
// covers a Size x Size square, crops the overflow centered, and re-encodes
// as JPEG.
func FillCrop(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	square := fill(img, Size)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, square, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &Result{
		Data: buf.Bytes(),
		MIME: "image/jpeg",
	}, nil
}

// fill scales img so the shorter edge matches dim, then crops the longer
// edge centered. Uses Catmull-Rom interpolation.
func fill(img image.Image, dim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	// Scale so the smaller dimension lands exactly on dim.
	scaledW, scaledH := dim, dim
	if w > h {
		scaledW = w * dim / h
	} else if h > w {
		scaledH = h * dim / w
	}

	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	// Crop the center square.
	x0 := (scaledW - dim) / 2
	y0 := (scaledH - dim) / 2
	dst := image.NewRGBA(image.Rect(0, 0, dim, dim))
	draw.Draw(dst, dst.Bounds(), scaled, image.Pt(x0, y0), draw.Src)
	return dst
}

func init() {
	// Register decoders (jpeg is registered by default, but be explicit).
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
