// Package imaging normaliza as imagens enviadas para a vitrine da barbearia
// (logo e banner) antes de irem para o storage.
package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	cwebp "github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	MaxUploadBytes = 10 << 20
	ContentType    = "image/webp"
	quality        = 80
)

var (
	ErrUnsupported = errors.New("image must be png, jpeg or webp")
	ErrEmpty       = errors.New("image is empty")
	ErrDecode      = errors.New("unable to decode image")
)

// Box é o tamanho máximo de saída; a proporção original é mantida.
type Box struct {
	Width  int
	Height int
}

var (
	LogoBox   = Box{Width: 512, Height: 512}
	BannerBox = Box{Width: 1600, Height: 600}
)

// Optimize decodifica png/jpeg/webp, reduz para caber em box (sem ampliar)
// e devolve o resultado em webp.
func Optimize(raw []byte, box Box) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}

	switch http.DetectContentType(raw) {
	case "image/png", "image/jpeg", "image/webp":
	default:
		return nil, ErrUnsupported
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		decoded, decodeErr := webp.Decode(bytes.NewReader(raw))
		if decodeErr != nil {
			return nil, ErrDecode
		}
		img = decoded
	}

	resized := Fit(img, box)

	var out bytes.Buffer
	if err := cwebp.Encode(&out, resized, &cwebp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Fit escala img para caber em box preservando a proporção.
func Fit(img image.Image, box Box) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return img
	}
	if w <= box.Width && h <= box.Height {
		return img
	}

	nw, nh := box.Width, h*box.Width/w
	if nh > box.Height {
		nw, nh = w*box.Height/h, box.Height
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
