package suggest

import "testing"

func TestQueueKeepsTopN(t *testing.T) {
	q := NewQueue(3)
	for _, s := range []int{5, 9, 2, 7} {
		q.Offer("w", s, s)
	}
	// same word: dedup keeps the best score only
	if q.Len() != 1 {
		t.Fatalf("duplicate words must collapse, len = %d", q.Len())
	}
	if best, ok := q.Best(); !ok || best.Score != 9 {
		t.Fatalf("Best = %+v, want score 9", best)
	}

	q.Reset()
	words := map[string]int{"a": 5, "b": 9, "c": 2, "d": 7}
	for w, s := range words {
		q.Offer(w, s, s)
	}
	ranked := q.Ranked()
	if len(ranked) != 3 {
		t.Fatalf("capacity 3, got %d", len(ranked))
	}
	wantScores := []int{9, 7, 5}
	for i, want := range wantScores {
		if ranked[i].Score != want {
			t.Errorf("ranked[%d].Score = %d, want %d", i, ranked[i].Score, want)
		}
	}
}

func TestQueueRejectsBelowMinAtCapacity(t *testing.T) {
	q := NewQueue(2)
	q.Offer("a", 10, 10)
	q.Offer("b", 8, 8)
	if q.Offer("c", 3, 3) {
		t.Error("offer below the current minimum should be rejected at capacity")
	}
	if q.Offer("d", 9, 9) {
		// d displaces b
	} else {
		t.Error("offer above the current minimum should be accepted")
	}
	ranked := q.Ranked()
	if len(ranked) != 2 || ranked[0].Word != "a" || ranked[1].Word != "d" {
		t.Errorf("ranked = %+v, want [a d]", ranked)
	}
}

func TestQueueTieBreaks(t *testing.T) {
	q := NewQueue(4)
	q.Offer("later", 50, 10)
	q.Offer("earlier", 50, 10)
	q.Offer("frequent", 50, 90)
	ranked := q.Ranked()
	// equal scores: higher stored frequency first, then arrival order
	if ranked[0].Word != "frequent" {
		t.Errorf("ranked[0] = %q, want frequency to break the tie", ranked[0].Word)
	}
	if ranked[1].Word != "later" || ranked[2].Word != "earlier" {
		t.Errorf("equal score and frequency should keep arrival order, got %+v", ranked)
	}
}

func TestPool(t *testing.T) {
	p := NewPool(3, 4)
	if p.Master() != p.Queue(0) {
		t.Error("master must be slot 0")
	}
	if p.Queue(5) != nil {
		t.Error("out-of-range slot must be nil")
	}
	p.Queue(1).Offer("x", 1, 1)
	p.Reset()
	if p.Queue(1).Len() != 0 {
		t.Error("reset must clear every slot")
	}
}
