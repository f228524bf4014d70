package analyzer

import "image"

// Focus is the detected zoom anchor of a photo
type Focus struct {
	Point      image.Point
	Confidence float64 // 0.0-1.0
}

// Detector is the interface for focus detection strategies
type Detector interface {
	Detect(img image.Image) (Focus, error)
}
