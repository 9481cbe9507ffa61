// Package media normalises uploaded images.
package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

const (
	MaxLogoSide = 512
	ContentType = "image/webp"
	quality     = 82
)

// ToWebP decodes a png, jpeg or webp image, shrinks it so that neither
// side exceeds maxSide, and re-encodes it as lossy webp.
func ToWebP(r io.Reader, maxSide int) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	img := fit(src, maxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
