// Package imagex normalises uploaded images before they are stored: the
// format is sniffed from the bytes, EXIF orientation is applied, oversized
// images are scaled down and the result is re-encoded without metadata.
package imagex

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

const (
	// MaxDimension bounds the longer side of a stored image.
	MaxDimension = 1920
	jpegQuality  = 85
)

// ErrUnsupported is returned for data that is not a JPEG, PNG, GIF or WebP image.
var ErrUnsupported = fmt.Errorf("%w: unsupported image format", common.ErrorValidation)

// Result is a processed image ready to be stored.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Process validates and normalises data. GIFs are kept byte for byte so
// animations survive. WebP input is stored as PNG since there is no WebP encoder.
func Process(data []byte) (*Result, error) {
	format := detectFormat(data)
	if format == "" {
		return nil, ErrUnsupported
	}

	if format == "gif" {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return &Result{Data: data, ContentType: "image/gif", Ext: ".gif", Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	if format == "jpeg" {
		img = applyOrientation(img, readExifOrientation(data))
	}

	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	if format == "webp" {
		format = "png"
	}

	out, err := encodeImage(img, format)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	b = img.Bounds()
	res := &Result{Data: out, Width: b.Dx(), Height: b.Dy()}
	switch format {
	case "jpeg":
		res.ContentType, res.Ext = "image/jpeg", ".jpg"
	case "png":
		res.ContentType, res.Ext = "image/png", ".png"
	}
	return res, nil
}

func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is refused outright (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// readExifOrientation returns 1 (normal) when the orientation cannot be read.
func readExifOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation undoes the rotation/flip recorded by EXIF orientation 2..8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return buf.Bytes(), nil
}
