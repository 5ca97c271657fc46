package object

import "github.com/mattn/go-runewidth"

// Text is a string drawn at a 1-based terminal position.
type Text struct {
	Col   int
	Row   int
	Value string
}

// Centered returns a Text horizontally centered on col.
func Centered(col, row int, value string) Text {
	return Text{Col: col - DisplayWidth(value)/2, Row: row, Value: value}
}

// Draw writes the text at its position.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	ctx.Writer.WriteAt(t.Col, t.Row, t.Value)
	return nil
}

// DisplayWidth returns the number of terminal columns s occupies.
// Mouse glyphs are emoji and take two.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
