package qwerty

import (
	"testing"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/keyboard"
)

func TestParamsIndexable(t *testing.T) {
	pi, err := keyboard.New(Params("en", 16))
	if err != nil {
		t.Fatalf("layout should index cleanly: %v", err)
	}
	if !pi.HasTouchCorrection() {
		t.Error("layout carries key geometry")
	}

	// every letter resolves to a key
	for c := 'a'; c <= 'z'; c++ {
		if pi.KeyIndexOf(c) == keyboard.NotAnIndex {
			t.Errorf("no key for %q", c)
		}
	}
}

func TestNeighborsInGrid(t *testing.T) {
	pi, err := keyboard.New(Params("", 16))
	if err != nil {
		t.Fatal(err)
	}
	// pressing 'g' dead center must expose its row neighbors
	x, y, _ := pi.KeyCenterOf('g')
	codes := pi.NearbyCodes(x, y, 'g')
	if codes[0] != 'g' {
		t.Fatalf("primary first, got %q", string(codes))
	}
	want := map[rune]bool{'f': true, 'h': true}
	for _, c := range codes {
		delete(want, c)
	}
	if len(want) != 0 {
		t.Errorf("missing neighbors %v in %q", want, string(codes))
	}
	// 'p' sits on the far side of the board
	for _, c := range codes {
		if c == 'p' {
			t.Errorf("'p' should not be near 'g': %q", string(codes))
		}
	}
}

func TestSpaceRow(t *testing.T) {
	pi, err := keyboard.New(Params("", 16))
	if err != nil {
		t.Fatal(err)
	}
	x, y, ok := pi.KeyCenterOf(' ')
	if !ok {
		t.Fatal("space key missing")
	}
	if !pi.HasSpaceProximity(x, y) {
		t.Error("space bar center must have space proximity")
	}
	if qx, qy, _ := pi.KeyCenterOf('q'); pi.HasSpaceProximity(qx, qy) {
		t.Error("'q' is three rows above the space bar")
	}
}
