// Package term renders the ambient scene into a terminal with tcell. Every
// terminal cell stands for a CellWidth x CellHeight block of logical pixels,
// so particles keep the proportions they have on the desktop.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
	"github.com/iburimskiy/ambient-canvas/internal/scene"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

// premul is a premultiplied-alpha color.
type premul struct {
	r, g, b, a float32
}

// Cells is a canvas.Canvas backed by a grid of terminal cells. Shapes smaller
// than a cell tint the cell they fall in by the share of it they cover.
type Cells struct {
	cellW, cellH float64
	width        int
	height       int
	cols, rows   int
	px           []premul

	fill      color.Color
	stroke    color.Color
	lineWidth float64
}

var _ canvas.Canvas = (*Cells)(nil)

func NewCells(cellW, cellH float64) *Cells {
	return &Cells{
		cellW:     cellW,
		cellH:     cellH,
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
	}
}

// Resize sets the logical size; the grid covers it with whole cells.
func (c *Cells) Resize(width, height int) {
	c.width, c.height = width, height
	c.cols = int(math.Ceil(float64(width) / c.cellW))
	c.rows = int(math.Ceil(float64(height) / c.cellH))
	c.px = make([]premul, c.cols*c.rows)
}

func (c *Cells) Size() (int, int) { return c.width, c.height }

// Logical converts a terminal size to the logical size it stands for.
func (c *Cells) Logical(cols, rows int) (int, int) {
	return int(float64(cols) * c.cellW), int(float64(rows) * c.cellH)
}

// Grid returns the number of columns and rows.
func (c *Cells) Grid() (int, int) { return c.cols, c.rows }

func (c *Cells) SetFillStyle(col color.Color)   { c.fill = col }
func (c *Cells) SetStrokeStyle(col color.Color) { c.stroke = col }
func (c *Cells) SetLineWidth(w float64)         { c.lineWidth = w }

func (c *Cells) ClearRect(x, y, w, h float64) {
	c0, r0, c1, r1 := c.span(x, y, x+w, y+h)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx, cy := c.center(col, row)
			if cx >= x && cx <= x+w && cy >= y && cy <= y+h {
				c.px[row*c.cols+col] = premul{}
			}
		}
	}
}

func (c *Cells) FillCircle(cx, cy, r float64) {
	c.FillEllipse(cx, cy, r, r)
}

func (c *Cells) FillEllipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	inside := func(x, y float64) bool {
		dx, dy := (x-cx)/rx, (y-cy)/ry
		return dx*dx+dy*dy <= 1
	}
	c.fillShape(cx-rx, cy-ry, cx+rx, cy+ry, cx, cy, inside, math.Pi*rx*ry, c.fill)
}

func (c *Cells) StrokeCircle(cx, cy, r float64) {
	tol := max(c.lineWidth/2, min(c.cellW, c.cellH)/2)
	inside := func(x, y float64) bool {
		return math.Abs(math.Hypot(x-cx, y-cy)-r) <= tol
	}
	c.fillShape(cx-r-tol, cy-r-tol, cx+r+tol, cy+r+tol, cx, cy, inside, 2*math.Pi*r*c.lineWidth, c.stroke)
}

// StrokeLine colors every cell the segment passes through.
func (c *Cells) StrokeLine(x0, y0, x1, y1 float64) {
	step := min(c.cellW, c.cellH) / 2
	n := int(math.Ceil(math.Hypot(x1-x0, y1-y0)/step)) + 1
	lastCol, lastRow := -1, -1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col, row, ok := c.cellAt(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if !ok || (col == lastCol && row == lastRow) {
			continue
		}
		lastCol, lastRow = col, row
		c.blend(col, row, c.stroke, 1)
	}
}

// fillShape blends every cell whose center is inside. When no center is
// inside, the cell holding (px, py) is tinted by area over the cell area.
func (c *Cells) fillShape(x0, y0, x1, y1, px, py float64, inside func(x, y float64) bool, area float64, col color.Color) {
	c0, r0, c1, r1 := c.span(x0, y0, x1, y1)
	hit := false
	for row := r0; row <= r1; row++ {
		for cl := c0; cl <= c1; cl++ {
			if inside(c.center(cl, row)) {
				c.blend(cl, row, col, 1)
				hit = true
			}
		}
	}
	if hit {
		return
	}
	if cl, row, ok := c.cellAt(px, py); ok {
		c.blend(cl, row, col, float32(min(area/(c.cellW*c.cellH), 1)))
	}
}

func (c *Cells) blend(col, row int, clr color.Color, cover float32) {
	r, g, b, a := canvas.Straight(clr)
	a *= cover
	if a <= 0 {
		return
	}
	p := &c.px[row*c.cols+col]
	p.r = r*a + p.r*(1-a)
	p.g = g*a + p.g*(1-a)
	p.b = b*a + p.b*(1-a)
	p.a = a + p.a*(1-a)
}

func (c *Cells) center(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * c.cellW, (float64(row) + 0.5) * c.cellH
}

func (c *Cells) cellAt(x, y float64) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := int(x/c.cellW), int(y/c.cellH)
	if col >= c.cols || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

// span clamps a logical rectangle to the cell range it touches.
func (c *Cells) span(x0, y0, x1, y1 float64) (c0, r0, c1, r1 int) {
	c0 = max(int(math.Floor(x0/c.cellW)), 0)
	r0 = max(int(math.Floor(y0/c.cellH)), 0)
	c1 = min(int(math.Floor(x1/c.cellW)), c.cols-1)
	r1 = min(int(math.Floor(y1/c.cellH)), c.rows-1)
	return
}

// Alpha reports the accumulated coverage of a cell.
func (c *Cells) Alpha(col, row int) float64 {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return float64(c.px[row*c.cols+col].a)
}

// Composite returns the cell color over the backdrop.
func (c *Cells) Composite(col, row int, bd scene.Backdrop) color.NRGBA {
	t := 0.0
	if c.rows > 1 {
		t = float64(row) / float64(c.rows-1)
	}
	bg := canvas.Lerp(bd.Top, bd.Bottom, t)
	p := c.px[row*c.cols+col]
	mix := func(fg float32, back uint8) uint8 {
		return uint8(math.Round(float64(fg*255 + float32(back)*(1-p.a))))
	}
	return color.NRGBA{R: mix(p.r, bg.R), G: mix(p.g, bg.G), B: mix(p.b, bg.B), A: 0xff}
}

// Flush paints the grid over the backdrop onto the screen as background
// colors. It does not call Show.
func (c *Cells) Flush(s tcell.Screen, bd scene.Backdrop) {
	w, h := s.Size()
	for row := 0; row < min(h, c.rows); row++ {
		for col := 0; col < min(w, c.cols); col++ {
			out := c.Composite(col, row, bd)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(out.R), int32(out.G), int32(out.B)))
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}
