package analyzer

import (
	"fmt"
	"image"
)

// CenterDetector always anchors on the frame center
type CenterDetector struct{}

func (CenterDetector) Detect(img image.Image) (Focus, error) {
	bounds := img.Bounds()
	return Focus{
		Point: image.Point{
			X: bounds.Min.X + bounds.Dx()/2,
			Y: bounds.Min.Y + bounds.Dy()/2,
		},
		Confidence: 1.0,
	}, nil
}

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "saliency", "auto", "":
		return NewSaliencyDetector(), nil
	case "center":
		return CenterDetector{}, nil
	case "face":
		return nil, fmt.Errorf("face detector not yet implemented")
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
