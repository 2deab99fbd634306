package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Surface is the offscreen image particles draw onto. It is composited over
// the backdrop every frame.
type Surface struct {
	img       *ebiten.Image
	width     int
	height    int
	fill      color.Color
	stroke    color.Color
	lineWidth float32

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ canvas.Canvas = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{fill: color.Black, stroke: color.Black, lineWidth: 1}
}

// Resize replaces the backing image; its contents are discarded.
func (s *Surface) Resize(width, height int) {
	if s.img != nil && width == s.width && height == s.height {
		s.img.Clear()
		return
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.width, s.height = width, height
	s.img = ebiten.NewImage(width, height)
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

// Image is the backing store.
func (s *Surface) Image() *ebiten.Image { return s.img }

func (s *Surface) SetFillStyle(c color.Color)   { s.fill = c }
func (s *Surface) SetStrokeStyle(c color.Color) { s.stroke = c }
func (s *Surface) SetLineWidth(w float64)       { s.lineWidth = float32(w) }

func (s *Surface) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && x+w >= float64(s.width) && y+h >= float64(s.height) {
		s.img.Clear()
		return
	}
	quad := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	s.polygon(quad[:], color.Transparent, ebiten.BlendClear)
}

func (s *Surface) FillCircle(cx, cy, r float64) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), s.fill, true)
}

func (s *Surface) StrokeCircle(cx, cy, r float64) {
	vector.StrokeCircle(s.img, float32(cx), float32(cy), float32(r), s.lineWidth, s.stroke, true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), s.lineWidth, s.stroke, true)
}

func (s *Surface) FillEllipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.polygon(ellipsePoints(cx, cy, rx, ry), s.fill, ebiten.BlendSourceOver)
}

// polygon fills a convex polygon as a triangle fan.
func (s *Surface) polygon(pts [][2]float64, c color.Color, blend ebiten.Blend) {
	fillPolygon(s.img, pts, c, blend, &s.vertices, &s.indices)
}

// fillPolygon fills a convex polygon with a flat color, reusing the vertex and
// index buffers.
func fillPolygon(dst *ebiten.Image, pts [][2]float64, c color.Color, blend ebiten.Blend, vs *[]ebiten.Vertex, is *[]uint16) {
	if len(pts) < 3 {
		return
	}
	r, g, b, a := canvas.Straight(c)
	*vs = (*vs)[:0]
	*is = (*is)[:0]
	for _, p := range pts {
		*vs = append(*vs, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for i := 1; i < len(pts)-1; i++ {
		*is = append(*is, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, Blend: blend}
	dst.DrawTriangles(*vs, *is, whiteSubImage, op)
}

// ellipsePoints approximates an ellipse outline, with more segments for
// larger radii.
func ellipsePoints(cx, cy, rx, ry float64) [][2]float64 {
	n := int(math.Max(rx, ry) / 2)
	n = min(max(n, 12), 96)
	pts := make([][2]float64, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = [2]float64{cx + rx*cos, cy + ry*sin}
	}
	return pts
}
