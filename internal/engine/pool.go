package engine

import (
	"image"
	"sync"
)

// FramePool recycles RGBA frame buffers between the render workers and the
// encoder writer, keeping the GC out of the per-frame hot path. All frames
// of a render share one geometry, so a single sync.Pool suffices.
type FramePool struct {
	pool sync.Pool
}

// NewFramePool creates a pool of width x height frames.
func NewFramePool(width, height int) *FramePool {
	rect := image.Rect(0, 0, width, height)
	return &FramePool{
		pool: sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		},
	}
}

// Get returns a frame buffer. Contents are whatever the previous user left;
// the rasterizer clears every frame before drawing.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put returns a frame buffer for reuse.
func (p *FramePool) Put(frame *image.RGBA) {
	if frame != nil {
		p.pool.Put(frame)
	}
}
