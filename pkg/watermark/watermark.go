// Package watermark composites an ownership mark onto property photos: a dim
// layer over the whole image, the mark text drawn diagonally across the
// centre, and a solid plate in the lower-left corner.
package watermark

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Style controls the compositing recipe. The zero value is not usable;
// start from DefaultStyle and override fields as needed.
type Style struct {
	// DimOpacity is the alpha of the black layer drawn over the whole image.
	DimOpacity float64
	// TextOpacity is the alpha of the white diagonal mark.
	TextOpacity float64
	// Angle is the rotation of the diagonal mark, in radians about the centre.
	Angle float64
	// MarkScale divides the image width to size the diagonal mark's font.
	MarkScale float64
	// PlateColor is the hex fill of the corner ownership plate.
	PlateColor string
	// OwnerPrefix is prepended to the mark text on the plate.
	OwnerPrefix string
}

// DefaultStyle is the recipe used across the dashboard.
func DefaultStyle() Style {
	return Style{
		DimOpacity:  0.1,
		TextOpacity: 0.6,
		Angle:       -math.Pi / 4,
		MarkScale:   15,
		PlateColor:  "#002147",
		OwnerPrefix: "محفوظ لـ ",
	}
}

const (
	plateWidth  = 200
	plateHeight = 40
	plateMargin = 20
	plateFontPt = 20
)

var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
	fontErr    error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return parsedFont, fontErr
}

func faceForSize(size float64) (font.Face, error) {
	f, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

// Apply draws the watermark over src with the default style.
func Apply(src image.Image, text string) (image.Image, error) {
	return ApplyStyle(src, text, DefaultStyle())
}

// ApplyStyle draws the watermark over src and returns the composited image.
// The diagonal mark scales with the image width so small thumbnails and full
// photos carry a proportionate mark.
func ApplyStyle(src image.Image, text string, style Style) (image.Image, error) {
	bounds := src.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty source image")
	}
	if style.MarkScale <= 0 {
		style.MarkScale = DefaultStyle().MarkScale
	}

	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.DrawImage(src, 0, 0)

	// Dim layer.
	dc.SetRGBA(0, 0, 0, style.DimOpacity)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	// Diagonal centre mark.
	markFace, err := faceForSize(w / style.MarkScale)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(markFace)
	dc.SetRGBA(1, 1, 1, style.TextOpacity)
	dc.Push()
	dc.RotateAbout(style.Angle, w/2, h/2)
	dc.DrawStringAnchored(text, w/2, h/2, 0.5, 0.5)
	dc.Pop()

	// Corner ownership plate.
	dc.SetHexColor(style.PlateColor)
	dc.DrawRectangle(plateMargin, h-plateMargin-plateHeight, plateWidth, plateHeight)
	dc.Fill()

	plateFace, err := faceForSize(plateFontPt)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(plateFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(style.OwnerPrefix+text, plateMargin+plateWidth/2, h-plateMargin-plateHeight/2, 0.5, 0.5)

	return dc.Image(), nil
}

// ApplyPNG decodes an image from r, watermarks it with the default style and
// writes the result to w as PNG.
func ApplyPNG(w io.Writer, r io.Reader, text string) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	out, err := Apply(src, text)
	if err != nil {
		return err
	}
	return png.Encode(w, out)
}
