package suggest

import "sort"

// Candidate is one ranked suggestion.
type Candidate struct {
	Word      string
	Score     int
	Frequency int

	seq int
}

// Queue is a fixed-capacity ranked set of candidates. Once full, offering a
// new entry evicts the current minimum when the newcomer outranks it.
// Ranking is by score, then frequency, then insertion order (stable).
type Queue struct {
	capacity int
	items    []Candidate
	seq      int
}

// NewQueue returns a queue retaining at most capacity entries.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{capacity: capacity, items: make([]Candidate, 0, capacity)}
}

// Offer inserts a candidate and reports whether it was retained. A word
// already present keeps only its best-scoring entry.
func (q *Queue) Offer(word string, score, freq int) bool {
	q.seq++
	c := Candidate{Word: word, Score: score, Frequency: freq, seq: q.seq}

	for i, existing := range q.items {
		if existing.Word == word {
			if !ranksAbove(c, existing) {
				return false
			}
			c.seq = existing.seq
			q.items[i] = c
			return true
		}
	}

	if len(q.items) < q.capacity {
		q.items = append(q.items, c)
		return true
	}

	min := 0
	for i := 1; i < len(q.items); i++ {
		if ranksAbove(q.items[min], q.items[i]) {
			min = i
		}
	}
	if !ranksAbove(c, q.items[min]) {
		return false
	}
	q.items[min] = c
	return true
}

// ranksAbove reports whether a strictly outranks b: higher score wins, then
// higher frequency; full ties keep the earlier-inserted entry.
func ranksAbove(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	return a.seq < b.seq
}

// Len returns the number of retained candidates.
func (q *Queue) Len() int { return len(q.items) }

// Best returns the top-ranked candidate.
func (q *Queue) Best() (Candidate, bool) {
	if len(q.items) == 0 {
		return Candidate{}, false
	}
	best := q.items[0]
	for _, c := range q.items[1:] {
		if ranksAbove(c, best) {
			best = c
		}
	}
	return best, true
}

// Ranked returns the retained candidates in descending rank order.
func (q *Queue) Ranked() []Candidate {
	out := append([]Candidate(nil), q.items...)
	sort.Slice(out, func(i, j int) bool { return ranksAbove(out[i], out[j]) })
	return out
}

// Reset empties the queue for reuse.
func (q *Queue) Reset() {
	q.items = q.items[:0]
	q.seq = 0
}

// Pool holds one queue per word-slot index: slot 0 is the master queue for
// finished suggestions, higher slots serve multi-word segment searches.
type Pool struct {
	queues []*Queue
}

// NewPool creates slots queues of the given capacity.
func NewPool(slots, capacity int) *Pool {
	p := &Pool{queues: make([]*Queue, slots)}
	for i := range p.queues {
		p.queues[i] = NewQueue(capacity)
	}
	return p
}

// Queue returns the queue for a word-slot index, or nil when out of range.
func (p *Pool) Queue(slot int) *Queue {
	if slot < 0 || slot >= len(p.queues) {
		return nil
	}
	return p.queues[slot]
}

// Master returns the slot-0 queue.
func (p *Pool) Master() *Queue { return p.queues[0] }

// Reset empties every queue.
func (p *Pool) Reset() {
	for _, q := range p.queues {
		q.Reset()
	}
}
