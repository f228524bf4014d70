package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"

	"github.com/presenceos/video-engine/internal/scene"
)

func (r *Rasterizer) drawFill(dst *image.RGBA, l scene.Fill) {
	if l.Opacity <= 0 {
		return
	}

	rect := l.Rect
	if rect.Empty() {
		b := dst.Bounds()
		rect = scene.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), W: float64(b.Dx()), H: float64(b.Dy())}
	}

	bounds := clipRect(rect, dst.Bounds())
	if bounds.Empty() {
		return
	}

	if l.Opacity >= 1 && l.Color.A == 0xFF {
		draw.Draw(dst, bounds, image.NewUniform(l.Color), image.Point{}, draw.Src)
		return
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			blendPixel(dst, x, y, l.Color, l.Opacity)
		}
	}
}

func (r *Rasterizer) drawCard(dst *image.RGBA, l scene.Card) {
	if l.Opacity <= 0 || l.Rect.W <= 0 || l.Rect.H <= 0 {
		return
	}

	radius := l.Radius
	if max := math.Min(l.Rect.W, l.Rect.H) / 2; radius > max {
		radius = max
	}
	if radius < 0 {
		radius = 0
	}

	// One pixel of margin keeps the antialiased edge inside the loop
	expanded := scene.Rect{X: l.Rect.X - 1, Y: l.Rect.Y - 1, W: l.Rect.W + 2, H: l.Rect.H + 2}
	bounds := clipRect(expanded, dst.Bounds())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cov := roundRectCoverage(float64(x)+0.5, float64(y)+0.5, l.Rect, radius)
			if cov <= 0 {
				continue
			}
			blendPixel(dst, x, y, l.Color, l.Opacity*cov)
		}
	}
}

// roundRectCoverage is the signed-distance coverage of a rounded rect at a
// pixel center: 1 well inside, 0 outside, a one-pixel antialiased edge.
func roundRectCoverage(px, py float64, rect scene.Rect, radius float64) float64 {
	qx := math.Abs(px-(rect.X+rect.W/2)) - (rect.W/2 - radius)
	qy := math.Abs(py-(rect.Y+rect.H/2)) - (rect.H/2 - radius)

	var d float64
	if qx > 0 && qy > 0 {
		d = math.Hypot(qx, qy) - radius
	} else {
		d = math.Max(qx, qy) - radius
	}

	return clampF(0.5-d, 0, 1)
}

func (r *Rasterizer) drawBar(dst *image.RGBA, l scene.Bar) {
	if l.Opacity <= 0 || l.Rect.W <= 0 || l.Rect.H <= 0 {
		return
	}

	if l.TrackColor.A > 0 {
		r.drawFill(dst, scene.Fill{Color: l.TrackColor, Opacity: l.Opacity, Rect: l.Rect})
	}

	frac := clampF(l.Frac, 0, 1)
	fill := l.Rect
	fill.W = l.Rect.W * frac
	if fill.W < 0.5 {
		return
	}
	r.drawFill(dst, scene.Fill{Color: l.Color, Opacity: l.Opacity, Rect: fill})
}

func (r *Rasterizer) drawQR(dst *image.RGBA, l scene.QR) error {
	if l.Opacity <= 0 || l.Content == "" || l.Rect.W < 1 {
		return nil
	}

	size := int(l.Rect.W + 0.5)
	key := fmt.Sprintf("%s@%d", l.Content, size)
	img, ok := r.qr[key]
	if !ok {
		code, err := qrcode.New(l.Content, qrcode.Medium)
		if err != nil {
			return fmt.Errorf("encoding QR %q: %w", l.Content, err)
		}
		img = code.Image(size)
		r.qr[key] = img
	}

	pos := image.Pt(int(l.Rect.X+0.5), int(l.Rect.Y+0.5))
	target := image.Rectangle{Min: pos, Max: pos.Add(image.Pt(size, size))}.Intersect(dst.Bounds())
	if target.Empty() {
		return nil
	}
	sp := img.Bounds().Min.Add(target.Min.Sub(pos))

	if l.Opacity >= 1 {
		draw.Draw(dst, target, img, sp, draw.Over)
		return nil
	}
	mask := image.NewUniform(color.Alpha{A: uint8(l.Opacity*255 + 0.5)})
	draw.DrawMask(dst, target, img, sp, mask, image.Point{}, draw.Over)
	return nil
}

func clipRect(r scene.Rect, bounds image.Rectangle) image.Rectangle {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.X + r.W))
	y1 := int(math.Ceil(r.Y + r.H))
	return image.Rect(x0, y0, x1, y1).Intersect(bounds)
}
