// Package editor applies non-destructive adjustments to an image. Every
// Apply re-renders from the decoded original, so repeated edits never
// compound lossy filtering.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var ErrBadAdjustments = errors.New("invalid adjustments")

// Adjustments describes one rendering pass over the original image.
// The zero value is the identity.
type Adjustments struct {
	Brightness float64 `json:"brightness"` // percent, -100..100
	Contrast   float64 `json:"contrast"`   // percent, -100..100
	Saturation float64 `json:"saturation"` // percent, -100..100
	Blur       float64 `json:"blur"`       // gaussian sigma, >= 0
	Rotate     int     `json:"rotate"`     // degrees clockwise, 90° increments
	FlipH      bool    `json:"flipH"`
	FlipV      bool    `json:"flipV"`
}

func (a Adjustments) Validate() error {
	if a.Rotate%90 != 0 {
		return fmt.Errorf("%w: rotate must be a multiple of 90", ErrBadAdjustments)
	}
	if a.Brightness < -100 || a.Brightness > 100 ||
		a.Contrast < -100 || a.Contrast > 100 ||
		a.Saturation < -100 || a.Saturation > 100 {
		return fmt.Errorf("%w: color adjustments must be within -100..100", ErrBadAdjustments)
	}
	if a.Blur < 0 {
		return fmt.Errorf("%w: blur must not be negative", ErrBadAdjustments)
	}
	return nil
}

func (a Adjustments) isZero() bool {
	return a == Adjustments{}
}

// Editor holds the decoded original pixels of one image.
type Editor struct {
	original image.Image
}

func Load(data []byte) (*Editor, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &Editor{original: img}, nil
}

// Original returns the unmodified source image. Reset is just rendering
// this instead of an adjusted pass.
func (e *Editor) Original() image.Image {
	return e.original
}

// Apply renders the adjustments against the original. Order is fixed:
// color filters, blur, rotation, flips.
func (e *Editor) Apply(adj Adjustments) (image.Image, error) {
	if err := adj.Validate(); err != nil {
		return nil, err
	}
	img := e.original
	if adj.isZero() {
		return img, nil
	}
	if adj.Brightness != 0 {
		img = imaging.AdjustBrightness(img, adj.Brightness)
	}
	if adj.Contrast != 0 {
		img = imaging.AdjustContrast(img, adj.Contrast)
	}
	if adj.Saturation != 0 {
		img = imaging.AdjustSaturation(img, adj.Saturation)
	}
	if adj.Blur > 0 {
		img = imaging.Blur(img, adj.Blur)
	}
	switch normalizeRotation(adj.Rotate) {
	case 90:
		img = imaging.Rotate270(img) // imaging rotates counter-clockwise
	case 180:
		img = imaging.Rotate180(img)
	case 270:
		img = imaging.Rotate90(img)
	}
	if adj.FlipH {
		img = imaging.FlipH(img)
	}
	if adj.FlipV {
		img = imaging.FlipV(img)
	}
	return img, nil
}

func normalizeRotation(deg int) int {
	return ((deg % 360) + 360) % 360
}

// Render encodes the image for the given content type. Unknown types fall
// back to JPEG.
func Render(img image.Image, contentType string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch contentType {
	case "image/png":
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
