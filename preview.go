package robowriter

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// previewMargin is the blank border around a preview, in pixels.
const previewMargin = 8

// Segment is a straight line drawn with the pen down.
type Segment struct {
	From, To vec.Vec2
}

// Preview is a Sink that records what the pen draws, so that it can be
// looked at before it is sent to the robot.
type Preview struct {
	// PenWidth is the width of the pen line in millimetres.
	PenWidth float64

	pen    Pen
	pos    vec.Vec2
	segs   []Segment
	bounds rect.Rect
}

func NewPreview() *Preview {
	return &Preview{PenWidth: 0.4}
}

func (p *Preview) Send(_ context.Context, c Command) error {
	switch c.Kind {
	case KindPen:
		p.pen = c.Pen
	case KindMove:
		to := vec.Vec2{X: c.X, Y: c.Y}
		if c.Pen == PenDown && p.pen == PenDown {
			p.add(Segment{From: p.pos, To: to})
		}
		p.pos = to
	}
	return nil
}

func (p *Preview) add(s Segment) {
	if len(p.segs) == 0 {
		p.bounds = rect.Rect{LLx: s.From.X, LLy: s.From.Y, URx: s.From.X, URy: s.From.Y}
	}
	for _, v := range [2]vec.Vec2{s.From, s.To} {
		p.bounds.LLx = min(p.bounds.LLx, v.X)
		p.bounds.LLy = min(p.bounds.LLy, v.Y)
		p.bounds.URx = max(p.bounds.URx, v.X)
		p.bounds.URy = max(p.bounds.URy, v.Y)
	}
	p.segs = append(p.segs, s)
}

// Segments returns the pen-down segments recorded so far.
func (p *Preview) Segments() []Segment {
	return p.segs
}

// Bounds returns the rectangle enclosing all segments.
func (p *Preview) Bounds() rect.Rect {
	return p.bounds
}

// Image draws the recorded segments in black on white, with scale pixels
// per millimetre.  Y grows upwards on the plotter and downwards in the
// image.
func (p *Preview) Image(scale float64) *image.RGBA {
	b := p.bounds
	width := int(math.Ceil((b.URx-b.LLx)*scale)) + 2*previewMargin
	height := int(math.Ceil((b.URy-b.LLy)*scale)) + 2*previewMargin
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if len(p.segs) == 0 {
		return img
	}

	device := func(v vec.Vec2) (float64, float64) {
		return (v.X-b.LLx)*scale + previewMargin, (b.URy-v.Y)*scale + previewMargin
	}
	w := p.PenWidth * scale / 2 // Half width
	if w < 0.5 {
		w = 0.5
	}

	raster := vector.NewRasterizer(width, height)
	for _, s := range p.segs {
		x0, y0 := device(s.From)
		x1, y1 := device(s.To)
		vx, vy := x1-x0, y1-y0
		vl := math.Sqrt(vx*vx + vy*vy)
		var nx, ny, tx, ty float64
		if vl > 0 {
			nx, ny = -vy/vl*w, vx/vl*w
		} else {
			// a dot: draw a square of the pen width
			nx, ny, tx, ty = 0, w, w, 0
		}
		raster.MoveTo(float32(x0+nx-tx), float32(y0+ny-ty))
		raster.LineTo(float32(x1+nx+tx), float32(y1+ny+ty))
		raster.LineTo(float32(x1-nx+tx), float32(y1-ny+ty))
		raster.LineTo(float32(x0-nx-tx), float32(y0-ny-ty))
		raster.ClosePath()
	}
	raster.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})
	return img
}

// WritePNG writes the preview as a PNG image.
func (p *Preview) WritePNG(w io.Writer, scale float64) error {
	return png.Encode(w, p.Image(scale))
}
