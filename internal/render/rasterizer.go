package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/presenceos/video-engine/internal/asset"
	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// Rasterizer turns scene layers into RGBA frames. Font faces and the scratch
// buffer are not safe for concurrent use, so each render worker owns its own
// rasterizer; the asset store behind them is shared and does its own locking.
type Rasterizer struct {
	cfg     timeline.VideoConfig
	store   *asset.Store
	fonts   *fontCache
	qr      map[string]image.Image
	scratch *image.RGBA
}

// Option tweaks a Rasterizer at construction time.
type Option func(*options)

type options struct {
	fontPath string
}

// WithFontFile replaces the built-in Go fonts with a TTF/OTF file, used for
// all brand text regardless of weight.
func WithFontFile(path string) Option {
	return func(o *options) { o.fontPath = path }
}

// NewRasterizer creates a rasterizer for one clip geometry.
func NewRasterizer(cfg timeline.VideoConfig, store *asset.Store, opts ...Option) (*Rasterizer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	fonts, err := newFontCache(o.fontPath)
	if err != nil {
		return nil, err
	}

	return &Rasterizer{
		cfg:   cfg,
		store: store,
		fonts: fonts,
		qr:    make(map[string]image.Image),
	}, nil
}

// Draw renders the layers bottom to top into dst, clearing it first.
func (r *Rasterizer) Draw(dst *image.RGBA, layers []scene.Layer) error {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{A: 0xFF}), image.Point{}, draw.Src)

	for _, layer := range layers {
		switch l := layer.(type) {
		case scene.Image:
			if err := r.drawImage(dst, l); err != nil {
				return err
			}
		case scene.Fill:
			r.drawFill(dst, l)
		case scene.Card:
			r.drawCard(dst, l)
		case scene.Text:
			if err := r.drawText(dst, l); err != nil {
				return err
			}
		case scene.Bar:
			r.drawBar(dst, l)
		case scene.QR:
			if err := r.drawQR(dst, l); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Rasterizer) drawImage(dst *image.RGBA, l scene.Image) error {
	if l.Opacity <= 0 {
		return nil
	}

	src, err := r.store.Frame(l.Src, l.TimeSec)
	if err != nil {
		return err
	}

	anchor := l.Anchor
	if l.AutoFocus {
		if p, ferr := r.store.Focus(l.Src); ferr == nil {
			b := src.Bounds()
			anchor = scene.Point{
				X: float64(p.X-b.Min.X) / float64(b.Dx()),
				Y: float64(p.Y-b.Min.Y) / float64(b.Dy()),
			}
		}
	}
	if anchor.X == 0 && anchor.Y == 0 {
		anchor = scene.Point{X: 0.5, Y: 0.5}
	}

	crop := coverCrop(src.Bounds(), dst.Bounds(), l.Scale, anchor)

	if l.Opacity >= 1 {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
		return nil
	}

	// Fading in: scale into the scratch frame, then composite through a
	// uniform alpha mask
	if r.scratch == nil {
		r.scratch = image.NewRGBA(dst.Bounds())
	}
	draw.ApproxBiLinear.Scale(r.scratch, r.scratch.Bounds(), src, crop, draw.Src, nil)
	mask := image.NewUniform(color.Alpha{A: uint8(l.Opacity*255 + 0.5)})
	draw.DrawMask(dst, dst.Bounds(), r.scratch, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// coverCrop picks the source window that covers dst at the given zoom,
// centered on the normalized anchor and clamped inside the source bounds.
func coverCrop(src, dst image.Rectangle, scale float64, anchor scene.Point) image.Rectangle {
	if scale < 1 {
		scale = 1
	}

	k := math.Max(
		float64(dst.Dx())/float64(src.Dx()),
		float64(dst.Dy())/float64(src.Dy()),
	)
	w := float64(dst.Dx()) / (k * scale)
	h := float64(dst.Dy()) / (k * scale)

	cx := float64(src.Min.X) + anchor.X*float64(src.Dx())
	cy := float64(src.Min.Y) + anchor.Y*float64(src.Dy())

	x0 := clampF(cx-w/2, float64(src.Min.X), float64(src.Max.X)-w)
	y0 := clampF(cy-h/2, float64(src.Min.Y), float64(src.Max.Y)-h)

	return image.Rect(int(x0), int(y0), int(x0+w+0.5), int(y0+h+0.5))
}

func clampF(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// blendPixel source-over composites a straight-alpha color scaled by opacity.
func blendPixel(dst *image.RGBA, x, y int, c color.RGBA, opacity float64) {
	if opacity > 1 {
		opacity = 1
	}
	a := uint32(float64(c.A)*opacity + 0.5)
	if a == 0 {
		return
	}

	i := dst.PixOffset(x, y)
	px := dst.Pix[i : i+4 : i+4]
	inv := 255 - a

	px[0] = uint8((uint32(c.R)*a + uint32(px[0])*inv) / 255)
	px[1] = uint8((uint32(c.G)*a + uint32(px[1])*inv) / 255)
	px[2] = uint8((uint32(c.B)*a + uint32(px[2])*inv) / 255)
	px[3] = uint8(a + uint32(px[3])*inv/255)
}
