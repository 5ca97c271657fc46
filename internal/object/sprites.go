package object

import (
	"math"

	"github.com/tomz197/mousehunt/internal/draw"
	"github.com/tomz197/mousehunt/internal/game"
)

// catHeadRadius is the cat sprite radius in arena units.
const catHeadRadius = 22.0

// CatSprite draws the cat as a filled head with two ears, centered on the
// pointer hot-spot.
type CatSprite struct {
	Cat    game.Cat
	Params game.Params
}

// Draw renders the cat on the canvas.
func (c CatSprite) Draw(ctx DrawContext) error {
	cx := c.Cat.X + c.Params.CatOffsetX
	cy := c.Cat.Y + c.Params.CatOffsetY

	const segments = 12
	head := ctx.Canvas.BorrowPoints(segments)
	for i := range head {
		a := float64(i) * 2 * math.Pi / segments
		head[i] = draw.Point{X: cx + math.Cos(a)*catHeadRadius, Y: cy + math.Sin(a)*catHeadRadius*0.85}
	}
	ctx.Canvas.DrawPolygon(head, true)

	for _, side := range []float64{-1, 1} {
		ear := []draw.Point{
			{X: cx + side*catHeadRadius*0.9, Y: cy - catHeadRadius*0.2},
			{X: cx + side*catHeadRadius*0.8, Y: cy - catHeadRadius*1.4},
			{X: cx + side*catHeadRadius*0.2, Y: cy - catHeadRadius*0.8},
		}
		ctx.Canvas.DrawPolygon(ear, true)
	}
	return nil
}

// MouseSprite draws a mouse glyph centered on its sprite box.
type MouseSprite struct {
	Mouse game.Mouse
	Size  float64
}

// Draw writes the mouse symbol at its terminal cell.
func (m MouseSprite) Draw(ctx DrawContext) error {
	col, row := ctx.Canvas.LogicalToTerminal(m.Mouse.X+m.Size/2, m.Mouse.Y+m.Size/2)
	return Centered(col, row, m.Mouse.Symbol).Draw(ctx)
}

// MarkerSprite draws the "+1" left behind by a catch.
type MarkerSprite struct {
	Marker game.Marker
	Size   float64
}

// Draw writes the marker text just above the catch position.
func (m MarkerSprite) Draw(ctx DrawContext) error {
	col, row := ctx.Canvas.LogicalToTerminal(m.Marker.Pos.X+m.Size/2, m.Marker.Pos.Y)
	return Centered(col, row-1, "+1 ✨").Draw(ctx)
}
