// Package vision implements image admission: validating uploaded bytes and
// normalizing them into the pixel buffer consumed by biometric extraction.
package vision

import (
	"bytes"
	"image"
	"strings"

	// Registers the decoders behind image.Decode.
	_ "image/jpeg"
	_ "image/png"

	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"

	"github.com/disintegration/imaging"
)

const (
	// minDimension is the smallest acceptable width and height in pixels.
	// Anything smaller carries too little facial detail to encode.
	minDimension = 50

	// Fixed enhancement applied before login-time extraction. Brightness and
	// contrast are lifted to recover faces from dim captures; registration
	// skips this so the stored appearance matches the original upload.
	enhanceBrightness = 20
	enhanceContrast   = 30
)

type admitter struct{}

// NewAdmitter is the constructor for the image admission service.
func NewAdmitter() service.ImageAdmitter {
	return &admitter{}
}

// Admit validates and normalizes an uploaded image. The declared content type
// is checked first so obvious non-images fail before any decoding work.
func (a *admitter) Admit(data []byte, contentType string, opts service.AdmitOptions) (*entity.NormalizedImage, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domainerrors.ErrNotAnImage.WrapMessage("content type " + contentType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domainerrors.ErrNotAnImage.WrapMessage(err.Error())
	}

	if format != "jpeg" && format != "png" {
		return nil, domainerrors.ErrUnsupportedImageFormat.WrapMessage("decoded format " + format)
	}

	bounds := img.Bounds()
	if bounds.Dx() < minDimension || bounds.Dy() < minDimension {
		return nil, domainerrors.ErrImageTooSmall
	}

	nrgba := imaging.Clone(img)
	if opts.Enhance {
		nrgba = imaging.AdjustBrightness(nrgba, enhanceBrightness)
		nrgba = imaging.AdjustContrast(nrgba, enhanceContrast)
	}

	return packRGB(nrgba), nil
}

// packRGB flattens an NRGBA image into the 3-byte-per-pixel RGB buffer the
// extraction service expects, dropping the alpha channel.
func packRGB(img *image.NRGBA) *entity.NormalizedImage {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	pixels := make([]byte, 0, width*height*3)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			pixels = append(pixels, row[x*4], row[x*4+1], row[x*4+2])
		}
	}

	return &entity.NormalizedImage{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
