// Package qwerty provides a built-in US QWERTY layout with precomputed
// proximity grid, for the demo CLI and for tests that need real geometry.
package qwerty

import (
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/keyboard"
)

// Layout geometry in keyboard pixel space.
const (
	KeyWidth  = 48
	KeyHeight = 80

	Width  = 480
	Height = 320

	GridWidth  = 16
	GridHeight = 8

	MostCommonKeyWidth = KeyWidth
)

// Row layout: per-row x offset in pixels.
var rows = []struct {
	chars   string
	offsetX int
}{
	{"qwertyuiop", 0},
	{"asdfghjkl", 24},
	{"zxcvbnm", 72},
}

// Keys returns the layout's key rectangles, sweet spots at key centers.
func Keys() []keyboard.Key {
	var keys []keyboard.Key
	for r, row := range rows {
		y := r * KeyHeight
		for i, c := range row.chars {
			x := row.offsetX + i*KeyWidth
			keys = append(keys, keyboard.Key{
				X: x, Y: y, Width: KeyWidth, Height: KeyHeight,
				Code:        c,
				SweetX:      float64(x) + KeyWidth/2,
				SweetY:      float64(y) + KeyHeight/2,
				SweetRadius: KeyWidth * 0.6,
			})
		}
	}
	// Space bar on the bottom row.
	keys = append(keys, keyboard.Key{
		X: 96, Y: 3 * KeyHeight, Width: 6 * KeyWidth, Height: KeyHeight,
		Code:        keyboard.CodeSpace,
		SweetX:      96 + 3*KeyWidth,
		SweetY:      3*KeyHeight + KeyHeight/2,
		SweetRadius: KeyWidth,
	})
	return keys
}

// Params assembles a ready-to-index parameter bundle for the layout.
func Params(locale string, maxProximityChars int) keyboard.Params {
	keys := Keys()
	return keyboard.Params{
		Locale:             locale,
		MaxProximityChars:  maxProximityChars,
		KeyboardWidth:      Width,
		KeyboardHeight:     Height,
		GridWidth:          GridWidth,
		GridHeight:         GridHeight,
		MostCommonKeyWidth: MostCommonKeyWidth,
		Grid:               buildGrid(keys, maxProximityChars),
		Keys:               keys,
	}
}

// buildGrid fills each spatial cell with the codes of all keys within one
// key-width of the cell rectangle.
func buildGrid(keys []keyboard.Key, maxProximityChars int) []rune {
	cellW := (Width + GridWidth - 1) / GridWidth
	cellH := (Height + GridHeight - 1) / GridHeight
	threshold := MostCommonKeyWidth * MostCommonKeyWidth

	grid := make([]rune, GridWidth*GridHeight*maxProximityChars)
	for row := 0; row < GridHeight; row++ {
		for col := 0; col < GridWidth; col++ {
			cx, cy := col*cellW, row*cellH
			start := (row*GridWidth + col) * maxProximityChars
			n := 0
			for _, k := range keys {
				if n >= maxProximityChars {
					break
				}
				if rectDistSq(cx, cy, cellW, cellH, k) < threshold {
					grid[start+n] = k.Code
					n++
				}
			}
		}
	}
	return grid
}

// rectDistSq returns the squared distance between the cell rectangle and
// the key rectangle, zero when they overlap.
func rectDistSq(cx, cy, cw, ch int, k keyboard.Key) int {
	dx := axisGap(cx, cx+cw, k.X, k.X+k.Width)
	dy := axisGap(cy, cy+ch, k.Y, k.Y+k.Height)
	return dx*dx + dy*dy
}

func axisGap(a1, a2, b1, b2 int) int {
	if a2 < b1 {
		return b1 - a2
	}
	if b2 < a1 {
		return a1 - b2
	}
	return 0
}
