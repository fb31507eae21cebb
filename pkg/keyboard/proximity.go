// Package keyboard turns raw touch coordinates into ranked sets of plausible
// intended key codes, using a precomputed spatial proximity grid and optional
// per-key geometry for touch-position correction.
package keyboard

import (
	"errors"
	"fmt"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/internal/charutil"
)

const (
	// CodeNone marks an empty slot in the proximity grid.
	CodeNone rune = 0
	// CodeDelimiter separates grid-derived proximity codes from the
	// locale-specific additional characters appended after them.
	CodeDelimiter rune = 2
	// CodeSpace is the character code of the space key.
	CodeSpace rune = ' '

	// NotAnIndex is returned by KeyIndexOf when no key matches.
	NotAnIndex = -1

	// MaxKeyCount bounds the number of keys a layout may carry.
	MaxKeyCount = 64
	// MaxCharCode bounds the reverse code-to-key lookup table.
	MaxCharCode = 127
)

// ErrIllegalCoordinates reports a negative touch coordinate. Callers are
// expected not to pass these; lookup methods treat them as "no proximity"
// rather than failing.
var ErrIllegalCoordinates = errors.New("keyboard: negative touch coordinates")

// Key describes one key's visual rectangle and calibration sweet spot in
// keyboard pixel space.
type Key struct {
	X, Y          int
	Width, Height int
	Code          rune

	SweetX, SweetY float64
	SweetRadius    float64
}

// Params bundles everything needed to construct a ProximityInfo. Keys is
// optional as a group: when absent, touch-position correction is disabled
// but the grid-only proximity path stays fully functional.
type Params struct {
	Locale             string
	MaxProximityChars  int
	KeyboardWidth      int
	KeyboardHeight     int
	GridWidth          int
	GridHeight         int
	MostCommonKeyWidth int

	// Grid holds MaxProximityChars candidate codes per spatial cell,
	// flattened row-major; CodeNone marks unused slots.
	Grid []rune

	Keys []Key

	// Rules defaults to RulesForLocale(Locale) when nil.
	Rules *LocaleRules
}

// ProximityInfo is the immutable geometry index for one keyboard layout.
// It is safe for concurrent readers.
type ProximityInfo struct {
	locale               string
	maxProximityChars    int
	keyboardWidth        int
	keyboardHeight       int
	gridWidth            int
	gridHeight           int
	cellWidth            int
	cellHeight           int
	mostCommonKeyWidthSq int

	grid []rune
	keys []Key

	codeToKey [MaxCharCode + 1]int
	rules     *LocaleRules
}

// New validates the parameter bundle and builds the index. The grid length
// invariant (gridWidth*gridHeight*maxProximityChars) is checked here once;
// the grid is never mutated afterwards.
func New(p Params) (*ProximityInfo, error) {
	if p.MaxProximityChars <= 0 {
		return nil, fmt.Errorf("keyboard: max proximity chars must be positive, got %d", p.MaxProximityChars)
	}
	if p.GridWidth <= 0 || p.GridHeight <= 0 {
		return nil, fmt.Errorf("keyboard: grid dimensions must be positive, got %dx%d", p.GridWidth, p.GridHeight)
	}
	if p.KeyboardWidth <= 0 || p.KeyboardHeight <= 0 {
		return nil, fmt.Errorf("keyboard: keyboard dimensions must be positive, got %dx%d", p.KeyboardWidth, p.KeyboardHeight)
	}
	wantLen := p.GridWidth * p.GridHeight * p.MaxProximityChars
	if len(p.Grid) != wantLen {
		return nil, fmt.Errorf("keyboard: grid length %d, want %d", len(p.Grid), wantLen)
	}
	if len(p.Keys) > MaxKeyCount {
		return nil, fmt.Errorf("keyboard: %d keys exceeds maximum of %d", len(p.Keys), MaxKeyCount)
	}

	rules := p.Rules
	if rules == nil {
		rules = RulesForLocale(p.Locale)
	}

	pi := &ProximityInfo{
		locale:               p.Locale,
		maxProximityChars:    p.MaxProximityChars,
		keyboardWidth:        p.KeyboardWidth,
		keyboardHeight:       p.KeyboardHeight,
		gridWidth:            p.GridWidth,
		gridHeight:           p.GridHeight,
		cellWidth:            (p.KeyboardWidth + p.GridWidth - 1) / p.GridWidth,
		cellHeight:           (p.KeyboardHeight + p.GridHeight - 1) / p.GridHeight,
		mostCommonKeyWidthSq: p.MostCommonKeyWidth * p.MostCommonKeyWidth,
		grid:                 append([]rune(nil), p.Grid...),
		keys:                 append([]Key(nil), p.Keys...),
		rules:                rules,
	}

	for i := range pi.codeToKey {
		pi.codeToKey[i] = NotAnIndex
	}
	for i, k := range pi.keys {
		c := charutil.ToBaseLower(k.Code)
		if c >= 0 && c <= MaxCharCode {
			pi.codeToKey[c] = i
		}
	}
	return pi, nil
}

// Locale returns the locale identifier the layout was built for.
func (pi *ProximityInfo) Locale() string { return pi.locale }

// Rules returns the locale substitution rules bound to this layout.
func (pi *ProximityInfo) Rules() *LocaleRules { return pi.rules }

// MaxProximityChars returns the per-cell candidate capacity.
func (pi *ProximityInfo) MaxProximityChars() int { return pi.maxProximityChars }

// HasTouchCorrection reports whether per-key geometry was supplied.
func (pi *ProximityInfo) HasTouchCorrection() bool { return len(pi.keys) > 0 }

// CheckCoordinates validates a touch point against the input contract.
func (pi *ProximityInfo) CheckCoordinates(x, y int) error {
	if x < 0 || y < 0 {
		return ErrIllegalCoordinates
	}
	return nil
}

// cellStart returns the grid offset of the cell covering (x, y), or -1 when
// the point falls outside the keyboard area.
func (pi *ProximityInfo) cellStart(x, y int) int {
	col := x / pi.cellWidth
	row := y / pi.cellHeight
	if col < 0 || col >= pi.gridWidth || row < 0 || row >= pi.gridHeight {
		return -1
	}
	return (row*pi.gridWidth + col) * pi.maxProximityChars
}

// HasSpaceProximity reports whether the space code appears in the grid cell
// covering (x, y). Negative coordinates violate the input contract and
// yield false.
func (pi *ProximityInfo) HasSpaceProximity(x, y int) bool {
	if pi.CheckCoordinates(x, y) != nil {
		return false
	}
	start := pi.cellStart(x, y)
	if start < 0 {
		return false
	}
	for i := 0; i < pi.maxProximityChars; i++ {
		if pi.grid[start+i] == CodeSpace {
			return true
		}
	}
	return false
}

// KeyIndexOf normalizes code to its base lowercase form and returns the
// matching key index, or NotAnIndex when geometry data is absent or the
// code is out of range.
func (pi *ProximityInfo) KeyIndexOf(code rune) int {
	if len(pi.keys) == 0 {
		return NotAnIndex
	}
	c := charutil.ToBaseLower(code)
	if c < 0 || c > MaxCharCode {
		return NotAnIndex
	}
	return pi.codeToKey[c]
}

// SquaredDistanceToEdge clamps (x, y) to the key rectangle and returns the
// squared distance to the clamped point: zero inside the rectangle. An
// absent key index is treated as zero distance.
func (pi *ProximityInfo) SquaredDistanceToEdge(keyIndex, x, y int) int {
	if keyIndex < 0 || keyIndex >= len(pi.keys) {
		return 0
	}
	k := pi.keys[keyIndex]
	left, top := k.X, k.Y
	right, bottom := left+k.Width, top+k.Height
	edgeX := clamp(x, left, right)
	edgeY := clamp(y, top, bottom)
	dx := x - edgeX
	dy := y - edgeY
	return dx*dx + dy*dy
}

// isOnKey reports whether (x, y) lies inside the key's rectangle.
func (pi *ProximityInfo) isOnKey(keyIndex, x, y int) bool {
	if keyIndex < 0 || keyIndex >= len(pi.keys) {
		return false
	}
	k := pi.keys[keyIndex]
	return x >= k.X && x < k.X+k.Width && y >= k.Y && y < k.Y+k.Height
}

// IsInSweetSpot reports whether (x, y) falls within the key's calibration
// sweet spot. Always false without touch-correction data.
func (pi *ProximityInfo) IsInSweetSpot(keyIndex, x, y int) bool {
	if keyIndex < 0 || keyIndex >= len(pi.keys) {
		return false
	}
	k := pi.keys[keyIndex]
	if k.SweetRadius <= 0 {
		return false
	}
	dx := float64(x) - k.SweetX
	dy := float64(y) - k.SweetY
	return dx*dx+dy*dy <= k.SweetRadius*k.SweetRadius
}

// KeyCenterOf returns the center point of the key carrying code. It is a
// convenience for callers that synthesize touch coordinates from text.
func (pi *ProximityInfo) KeyCenterOf(code rune) (x, y int, ok bool) {
	idx := pi.KeyIndexOf(code)
	if idx == NotAnIndex {
		return 0, 0, false
	}
	k := pi.keys[idx]
	return k.X + k.Width/2, k.Y + k.Height/2, true
}

// NearbyCodes returns the plausible intended codes for a touch at (x, y)
// with primary as the pressed key's code. The primary always comes first;
// grid candidates within the squared key-width threshold of the touch
// follow, deduplicated; locale additional characters come last, after
// CodeDelimiter. The result never exceeds the per-cell capacity.
func (pi *ProximityInfo) NearbyCodes(x, y int, primary rune) []rune {
	out := make([]rune, 0, pi.maxProximityChars)
	out = append(out, primary)

	if pi.CheckCoordinates(x, y) != nil {
		return out
	}
	start := pi.cellStart(x, y)
	if start < 0 {
		return out
	}

	for i := 0; i < pi.maxProximityChars; i++ {
		c := pi.grid[start+i]
		if c < CodeSpace || c == primary {
			continue
		}
		if containsCode(out, c) {
			continue
		}
		keyIndex := pi.KeyIndexOf(c)
		onKey := pi.isOnKey(keyIndex, x, y)
		distance := pi.SquaredDistanceToEdge(keyIndex, x, y)
		if onKey || distance < pi.mostCommonKeyWidthSq {
			if len(out) >= pi.maxProximityChars {
				return out
			}
			out = append(out, c)
		}
	}

	additional := pi.rules.AdditionalChars(primary)
	if len(additional) > 0 && len(out) < pi.maxProximityChars {
		out = append(out, CodeDelimiter)
		for _, ac := range additional {
			if containsCode(out, ac) {
				continue
			}
			if len(out) >= pi.maxProximityChars {
				return out
			}
			out = append(out, ac)
		}
	}
	return out
}

func containsCode(codes []rune, c rune) bool {
	for _, v := range codes {
		if v == c {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
