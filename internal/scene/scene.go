package scene

import "image/color"

// Layer is a single visual node produced by evaluating a template at one
// frame. A frame's scene is an ordered list of layers, drawn back to front.
// The set of layer kinds is closed; the rasterizer switches over them.
type Layer interface {
	layer()
}

// Point is a position in output pixels.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box in output pixels.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Weight selects a font face.
type Weight string

const (
	WeightNormal Weight = "normal"
	WeightMedium Weight = "medium"
	WeightBold   Weight = "bold"
)

// Align is horizontal text alignment relative to Text.Pos.X.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Image is a full-bleed media layer. Src is an asset reference (image path,
// "file.pdf#page", or a video path sampled at TimeSec). Scale zooms about
// Anchor, given in normalized source coordinates with a zero value meaning
// the source center; 1.0 means cover the frame exactly. AutoFocus asks the
// rasterizer to anchor the zoom on the detected subject region instead.
type Image struct {
	Src       string
	TimeSec   float64
	Scale     float64
	Anchor    Point
	AutoFocus bool
	Opacity   float64
}

// Fill is a solid color wash. A zero Rect covers the whole frame.
type Fill struct {
	Color   color.RGBA
	Opacity float64
	Rect    Rect
}

// Card is a rounded-corner solid panel.
type Card struct {
	Rect    Rect
	Color   color.RGBA
	Opacity float64
	Radius  float64
}

// Text is a styled text block. Pos.X is interpreted per Align; Pos.Y is the
// top of the first line. OffsetY shifts the block vertically (animation
// translation), Scale multiplies the rendered size about the block position.
// A MaxW above zero wraps long content to that pixel width.
type Text struct {
	Content string
	Size    float64
	Weight  Weight
	Color   color.RGBA
	Opacity float64
	Align   Align
	Pos     Point
	OffsetY float64
	Scale   float64
	MaxW    float64
	Shadow  bool
}

// Bar is a progress bar: a track with a fill covering Frac of its width.
type Bar struct {
	Rect       Rect
	Frac       float64
	Color      color.RGBA
	TrackColor color.RGBA
	Opacity    float64
}

// QR is a QR code on a quiet-zone card.
type QR struct {
	Content string
	Rect    Rect
	Opacity float64
}

func (Image) layer() {}
func (Fill) layer()  {}
func (Card) layer()  {}
func (Text) layer()  {}
func (Bar) layer()   {}
func (QR) layer()    {}
