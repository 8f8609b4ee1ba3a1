package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePNG renders a flat-colored test image of the given size.
func encodePNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

func TestAdmitter_AcceptsPNGAndJPEG(t *testing.T) {
	admitter := NewAdmitter()

	pngImg, err := admitter.Admit(encodePNG(t, 64, 48, color.NRGBA{R: 120, G: 80, B: 60, A: 255}), "image/png", service.AdmitOptions{})
	assert.NoError(t, err)
	require.NotNil(t, pngImg)
	assert.Equal(t, 64, pngImg.Width)
	assert.Equal(t, 48, pngImg.Height)
	assert.Len(t, pngImg.Pixels, 64*48*3)

	jpegImg, err := admitter.Admit(encodeJPEG(t, 50, 50), "image/jpeg", service.AdmitOptions{})
	assert.NoError(t, err)
	require.NotNil(t, jpegImg)
	assert.Len(t, jpegImg.Pixels, 50*50*3)
}

func TestAdmitter_RejectsNonImageContentType(t *testing.T) {
	admitter := NewAdmitter()

	img, err := admitter.Admit([]byte("hello"), "text/plain", service.AdmitOptions{})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, domainerrors.ErrNotAnImage)
}

func TestAdmitter_RejectsUndecodableBytes(t *testing.T) {
	admitter := NewAdmitter()

	// Declared as an image but the payload is garbage.
	img, err := admitter.Admit([]byte("definitely not pixels"), "image/png", service.AdmitOptions{})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, domainerrors.ErrNotAnImage)
}

func TestAdmitter_RejectsTooSmall(t *testing.T) {
	admitter := NewAdmitter()

	img, err := admitter.Admit(encodePNG(t, 49, 100, color.White), "image/png", service.AdmitOptions{})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, domainerrors.ErrImageTooSmall)

	img, err = admitter.Admit(encodePNG(t, 100, 49, color.White), "image/png", service.AdmitOptions{})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, domainerrors.ErrImageTooSmall)
}

func TestAdmitter_EnhanceChangesPixels(t *testing.T) {
	admitter := NewAdmitter()
	data := encodePNG(t, 60, 60, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	plain, err := admitter.Admit(data, "image/png", service.AdmitOptions{})
	require.NoError(t, err)

	enhanced, err := admitter.Admit(data, "image/png", service.AdmitOptions{Enhance: true})
	require.NoError(t, err)

	assert.Equal(t, plain.Width, enhanced.Width)
	assert.Equal(t, plain.Height, enhanced.Height)
	assert.NotEqual(t, plain.Pixels, enhanced.Pixels)

	// Brightness lift on a mid-gray pixel must raise the channel value.
	assert.Greater(t, enhanced.Pixels[0], plain.Pixels[0])
}
