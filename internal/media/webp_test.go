package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestToWebP_ShrinksLongestSide(t *testing.T) {
	out, err := ToWebP(pngOf(t, 1024, 256), MaxLogoSide)
	require.NoError(t, err)

	cfg, err := xwebp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 100, 300), MaxLogoSide)
	require.NoError(t, err)

	cfg, err := xwebp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), MaxLogoSide)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}
