// Package imageio converts image files to and from the flat RGB buffers the
// steganography codec works on
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Output formats. Only lossless formats are written; anything else would
// destroy the hidden bits
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultExtension is appended to output names without a lossless extension
const DefaultExtension = ".png"

// Carrier is a decoded image flattened to row-major RGB bytes
type Carrier struct {
	Width  int
	Height int
	// Pix holds 3 bytes (R, G, B) per pixel
	Pix []byte
	// Alpha holds one byte per pixel, or nil when the image is fully opaque
	Alpha []byte
	// Format is the name of the format the image was decoded from
	Format string
}

// Read decodes an image and flattens it. PNG, GIF, JPEG, BMP and TIFF inputs
// are accepted
func Read(r io.Reader) (*Carrier, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	c := FromImage(img)
	c.Format = format
	return c, nil
}

// ReadFile reads and decodes the image at path
func ReadFile(path string) (*Carrier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file '%s': %w", path, err)
	}
	c, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("file '%s' is not an image or has the wrong format: %w", path, err)
	}
	return c, nil
}

// FromImage flattens img to non-premultiplied RGB
func FromImage(img image.Image) *Carrier {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	c := &Carrier{
		Width:  w,
		Height: h,
		Pix:    make([]byte, 0, w*h*3),
	}
	alpha := make([]byte, 0, w*h)
	opaque := true

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.Pix = append(c.Pix, px.R, px.G, px.B)
			alpha = append(alpha, px.A)
			if px.A != 0xFF {
				opaque = false
			}
		}
	}
	if !opaque {
		c.Alpha = alpha
	}
	return c
}

// Image rebuilds an image of the carrier's dimensions from Pix and Alpha
func (c *Carrier) Image() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for i := 0; i < c.Width*c.Height; i++ {
		a := byte(0xFF)
		if c.Alpha != nil {
			a = c.Alpha[i]
		}
		copy(img.Pix[i*4:i*4+3], c.Pix[i*3:i*3+3])
		img.Pix[i*4+3] = a
	}
	return img
}

// WithPix returns a copy of c carrying pix instead of its own pixel bytes
func (c *Carrier) WithPix(pix []byte) (*Carrier, error) {
	if len(pix) != len(c.Pix) {
		return nil, fmt.Errorf("pixel buffer is %d bytes, image needs %d", len(pix), len(c.Pix))
	}
	out := *c
	out.Pix = pix
	return &out, nil
}

// Write encodes img in the given lossless format
func Write(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile encodes c to path in the format its extension names
func WriteFile(path string, c *Carrier) error {
	format, ok := FormatFor(path)
	if !ok {
		return fmt.Errorf("no lossless format for '%s'", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, c.Image(), format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// FormatFor returns the output format for path's extension
func FormatFor(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, true
	case ".bmp":
		return FormatBMP, true
	case ".tif", ".tiff":
		return FormatTIFF, true
	default:
		return "", false
	}
}

// OutputPath appends DefaultExtension to name unless it already ends in a
// lossless extension
func OutputPath(name string) string {
	if _, ok := FormatFor(name); ok {
		return name
	}
	return name + DefaultExtension
}

// Lossy reports whether images of format went through lossy compression
// before they reached us
func Lossy(format string) bool {
	return format == "jpeg"
}
