package suggest

import (
	"strings"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/dict"
)

// bigramFilterBytes sizes the approximate first-character filter.
const bigramFilterBytes = 8

// BigramContext carries the previously committed word's bigram data into a
// suggestion request: a compact approximate filter consulted first, the
// previous word's node position for exact confirmation against the store,
// and the resolved next-word association map.
type BigramContext struct {
	PrevPos int
	Filter  []byte
	Words   map[string]int
}

// NewBigramContext resolves prev against the store and collects its bigram
// links. A previous word without dictionary presence yields a context that
// never boosts.
func NewBigramContext(prev string, store *dict.Store) *BigramContext {
	ctx := &BigramContext{PrevPos: -1}
	if store == nil || prev == "" {
		return ctx
	}
	pos, ok := store.PositionOf(strings.ToLower(prev))
	if !ok {
		return ctx
	}
	ctx.PrevPos = pos
	links := store.Bigrams(pos)
	if len(links) == 0 {
		return ctx
	}
	ctx.Filter = make([]byte, bigramFilterBytes)
	ctx.Words = make(map[string]int, len(links))
	for _, b := range links {
		ctx.Words[b.Word] = b.Weight
		for _, r := range b.Word {
			ctx.setInFilter(r)
			break
		}
	}
	return ctx
}

func (c *BigramContext) setInFilter(r rune) {
	bit := int(r) % (len(c.Filter) * 8)
	c.Filter[bit/8] |= 1 << (bit % 8)
}

func (c *BigramContext) inFilter(r rune) bool {
	if len(c.Filter) == 0 {
		return false
	}
	bit := int(r) % (len(c.Filter) * 8)
	return c.Filter[bit/8]&(1<<(bit%8)) != 0
}

// weightFor returns the boost weight for a candidate, consulting the cheap
// filter first and confirming exactly against the store only on a hit.
func (c *BigramContext) weightFor(word string, targetPos int, store *dict.Store) (int, bool) {
	if c == nil || word == "" {
		return 0, false
	}
	var first rune
	for _, r := range word {
		first = r
		break
	}
	if !c.inFilter(first) {
		return 0, false
	}
	if c.PrevPos >= 0 && store != nil {
		if w, ok := store.BigramWeightBetween(c.PrevPos, targetPos); ok {
			return w, true
		}
	}
	if w, ok := c.Words[word]; ok {
		return w, true
	}
	return 0, false
}
