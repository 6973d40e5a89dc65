package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/playmatatu/cuesim/internal/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

var (
	background = colornames.Black
	railColor  = colornames.Saddlebrown
	clothColor = colornames.Forestgreen
)

const (
	circleSegments = 48
	bandHeight     = 0.55 // half balls: coloured band as a share of the radius
)

// BallColor resolves a rack colour name, falling back to magenta for names
// the palette does not know.
func BallColor(name string) color.RGBA {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Magenta
}

// RenderImage draws the table frame, the cloth and every ball.
func RenderImage(t *game.Table, balls []game.BallState) *image.RGBA {
	w := int(math.Ceil(t.Outer.X + t.Outer.Width))
	h := int(math.Ceil(t.Outer.Y + t.Outer.Height))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	fillRect(z, dst, t.Outer.X, t.Outer.Y, t.Outer.X+t.Outer.Width, t.Outer.Y+t.Outer.Height, railColor)
	fillRect(z, dst, t.Inner.X, t.Inner.Y, t.Inner.X2, t.Inner.Y2, clothColor)

	for _, b := range balls {
		drawBall(z, dst, b)
	}
	return dst
}

// RenderPNG encodes the current table as a PNG.
func RenderPNG(w io.Writer, t *game.Table, balls []game.BallState) error {
	if err := png.Encode(w, RenderImage(t, balls)); err != nil {
		return fmt.Errorf("encode table png: %w", err)
	}
	return nil
}

func fillRect(z *vector.Rasterizer, dst *image.RGBA, x0, y0, x1, y1 float64, c color.Color) {
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.MoveTo(float32(x0), float32(y0))
	z.LineTo(float32(x1), float32(y0))
	z.LineTo(float32(x1), float32(y1))
	z.LineTo(float32(x0), float32(y1))
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// fillArc fills the region between the chord and the arc from a0 to a1
// (radians) of the circle at (cx, cy). A full turn fills the disc.
func fillArc(z *vector.Rasterizer, dst *image.RGBA, cx, cy, r, a0, a1 float64, c color.Color) {
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.MoveTo(float32(cx+r*math.Cos(a0)), float32(cy+r*math.Sin(a0)))
	for i := 1; i <= circleSegments; i++ {
		a := a0 + (a1-a0)*float64(i)/circleSegments
		z.LineTo(float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a)))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func drawBall(z *vector.Rasterizer, dst *image.RGBA, b game.BallState) {
	c := BallColor(b.Color)
	if !b.Half {
		fillArc(z, dst, b.X, b.Y, b.Radius, 0, 2*math.Pi, c)
		return
	}

	// white ball with a coloured band; the caps are the segments beyond the band
	fillArc(z, dst, b.X, b.Y, b.Radius, 0, 2*math.Pi, c)
	edge := math.Asin(bandHeight)
	fillArc(z, dst, b.X, b.Y, b.Radius, math.Pi+edge, 2*math.Pi-edge, colornames.White) // top
	fillArc(z, dst, b.X, b.Y, b.Radius, edge, math.Pi-edge, colornames.White)           // bottom
}
