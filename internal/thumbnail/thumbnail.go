package thumbnail

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Defaults used by the options and download views
const (
	DefaultWidth   = 330
	DefaultHeight  = 250
	DefaultRadius  = 20
	DefaultTimeout = 15 * time.Second

	// MaxImageBytes caps the thumbnail body read from the network
	MaxImageBytes = 10 << 20
)

// Renderer downloads and prepares thumbnails
type Renderer struct {
	client *http.Client
}

// NewRenderer creates a renderer. A nil client gets one with DefaultTimeout.
func NewRenderer(client *http.Client) *Renderer {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Renderer{client: client}
}

// Render fetches the image at url and returns it fitted inside maxW x maxH
// with corners of the given radius made transparent.
func (r *Renderer) Render(ctx context.Context, url string, maxW, maxH, radius int) (image.Image, error) {
	if url == "" {
		return nil, fmt.Errorf("thumbnail URL is empty")
	}

	src, err := r.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("thumbnail %dx%d cannot fit %dx%d", b.Dx(), b.Dy(), maxW, maxH)
	}

	log.Debugf("Thumbnail %s: %dx%d -> %dx%d", url, b.Dx(), b.Dy(), w, h)
	return RoundCorners(CropToFill(src, w, h), radius), nil
}

func (r *Renderer) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating thumbnail request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching thumbnail: unexpected status %s", resp.Status)
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding thumbnail: %w", err)
	}
	log.Debugf("Decoded %s thumbnail", format)
	return img, nil
}

// FitSize scales (w, h) so the larger side meets its bound while keeping the
// aspect ratio. Results are truncated to whole pixels.
func FitSize(w, h, boxW, boxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}

	aspect := float64(w) / float64(h)
	if w > h {
		newW := min(float64(boxW), float64(w)*float64(boxH)/float64(h))
		return int(newW), int(newW / aspect)
	}

	newH := min(float64(boxH), float64(h)*float64(boxW)/float64(w))
	return int(newH * aspect), int(newH)
}

// CropToFill scales src to exactly w x h, cropping the centre of the source
// when its aspect ratio differs from the target.
func CropToFill(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	b := src.Bounds()
	if b.Empty() || w <= 0 || h <= 0 {
		return dst
	}

	crop := b
	if b.Dx()*h > b.Dy()*w {
		cw := b.Dy() * w / h
		crop.Min.X = b.Min.X + (b.Dx()-cw)/2
		crop.Max.X = crop.Min.X + cw
	} else if b.Dx()*h < b.Dy()*w {
		ch := b.Dx() * h / w
		crop.Min.Y = b.Min.Y + (b.Dy()-ch)/2
		crop.Max.Y = crop.Min.Y + ch
	}

	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}

// RoundCorners returns a copy of img whose pixels outside a rounded
// rectangle of the given radius are fully transparent
func RoundCorners(img image.Image, radius int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, &roundedMask{w: b.Dx(), h: b.Dy(), r: clampRadius(radius, b.Dx(), b.Dy())}, image.Point{}, draw.Src)
	return dst
}

func clampRadius(r, w, h int) int {
	r = max(r, 0)
	return min(r, w/2, h/2)
}

// roundedMask is an alpha mask of a w x h rounded rectangle anchored at 0,0
type roundedMask struct {
	w, h, r int
}

func (m *roundedMask) ColorModel() color.Model { return color.AlphaModel }

func (m *roundedMask) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

func (m *roundedMask) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return color.Alpha{}
	}
	if m.r == 0 {
		return color.Alpha{A: 0xff}
	}

	// distance from the nearest corner circle centre, only inside corner squares
	var cx, cy int
	switch {
	case x < m.r:
		cx = m.r
	case x >= m.w-m.r:
		cx = m.w - m.r - 1
	default:
		return color.Alpha{A: 0xff}
	}
	switch {
	case y < m.r:
		cy = m.r
	case y >= m.h-m.r:
		cy = m.h - m.r - 1
	default:
		return color.Alpha{A: 0xff}
	}

	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy > m.r*m.r {
		return color.Alpha{}
	}
	return color.Alpha{A: 0xff}
}
