package analyzer

import (
	"image"
	"image/color"
	"math"
)

// SaliencyDetector anchors the zoom on the busiest part of the photo using
// Sobel gradient energy pooled over a coarse grid
type SaliencyDetector struct {
	GridSize   int // Cells per axis of the energy grid
	SampleStep int // Pixel stride when downsampling, 1 = full resolution
}

// NewSaliencyDetector creates a saliency detector with default settings
func NewSaliencyDetector() *SaliencyDetector {
	return &SaliencyDetector{
		GridSize:   8, // 64 cells is enough to separate subject from backdrop
		SampleStep: 2,
	}
}

// Detect pools edge energy into the grid and returns the energy-weighted
// centroid of the above-average cells. A flat image (no gradients anywhere)
// falls back to the frame center with zero confidence.
func (d *SaliencyDetector) Detect(img image.Image) (Focus, error) {
	bounds := img.Bounds()
	center := image.Point{
		X: bounds.Min.X + bounds.Dx()/2,
		Y: bounds.Min.Y + bounds.Dy()/2,
	}

	grid := d.GridSize
	if grid < 2 {
		grid = 2
	}
	step := d.SampleStep
	if step < 1 {
		step = 1
	}

	gray := toGrayscale(img, step)
	gb := gray.Bounds()
	if gb.Dx() < 3 || gb.Dy() < 3 {
		return Focus{Point: center, Confidence: 0}, nil
	}

	// Step 1: accumulate Sobel magnitude per grid cell
	energy := make([]float64, grid*grid)
	for y := 1; y < gb.Dy()-1; y++ {
		for x := 1; x < gb.Dx()-1; x++ {
			sumX := -float64(gray.GrayAt(x-1, y-1).Y) + float64(gray.GrayAt(x+1, y-1).Y) +
				-2*float64(gray.GrayAt(x-1, y).Y) + 2*float64(gray.GrayAt(x+1, y).Y) +
				-float64(gray.GrayAt(x-1, y+1).Y) + float64(gray.GrayAt(x+1, y+1).Y)
			sumY := -float64(gray.GrayAt(x-1, y-1).Y) - 2*float64(gray.GrayAt(x, y-1).Y) - float64(gray.GrayAt(x+1, y-1).Y) +
				float64(gray.GrayAt(x-1, y+1).Y) + 2*float64(gray.GrayAt(x, y+1).Y) + float64(gray.GrayAt(x+1, y+1).Y)

			magnitude := math.Sqrt(sumX*sumX + sumY*sumY)
			if magnitude == 0 {
				continue
			}

			cx := x * grid / gb.Dx()
			cy := y * grid / gb.Dy()
			energy[cy*grid+cx] += magnitude
		}
	}

	// Step 2: total and peak for the confidence estimate
	var total, peak float64
	for _, e := range energy {
		total += e
		if e > peak {
			peak = e
		}
	}
	if total == 0 {
		return Focus{Point: center, Confidence: 0}, nil
	}
	mean := total / float64(grid*grid)

	// Step 3: energy-weighted centroid of the above-average cells
	var sumW, sumX, sumY float64
	for cy := 0; cy < grid; cy++ {
		for cx := 0; cx < grid; cx++ {
			e := energy[cy*grid+cx]
			if e <= mean {
				continue
			}
			sumW += e
			sumX += e * (float64(cx) + 0.5) * float64(gb.Dx()) / float64(grid)
			sumY += e * (float64(cy) + 0.5) * float64(gb.Dy()) / float64(grid)
		}
	}
	if sumW == 0 {
		return Focus{Point: center, Confidence: 0}, nil
	}

	anchor := image.Point{
		X: bounds.Min.X + int(sumX/sumW)*step,
		Y: bounds.Min.Y + int(sumY/sumW)*step,
	}

	// Uniform energy gives 0, a single dominant cell approaches 1
	confidence := 1 - mean/peak

	return Focus{Point: anchor, Confidence: confidence}, nil
}

// toGrayscale converts an image to grayscale, sampling every step-th pixel
func toGrayscale(img image.Image, step int) *image.Gray {
	bounds := img.Bounds()
	w := bounds.Dx() / step
	h := bounds.Dy() / step
	gray := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := img.At(bounds.Min.X+x*step, bounds.Min.Y+y*step)
			gray.Set(x, y, color.GrayModel.Convert(src))
		}
	}

	return gray
}
