// Package suggest walks the binary dictionary trie guided by per-keystroke
// proximity candidates and produces ranked word corrections, completions
// and multi-word splits.
package suggest

import (
	"math"
	"strings"
	"unicode"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/internal/charutil"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/dict"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/keyboard"
)

// Options is the tunable scoring and budget policy. Exact numbers are a
// policy choice; callers should rely on relative ordering only.
type Options struct {
	TypedLetterMultiplier int
	FullWordMultiplier    int

	MaxWordLength int
	MaxWords      int

	// MaxErrors bounds the edit primitives spent on one word; the
	// stricter MaxErrorsForSplit applies to each multi-word segment.
	MaxErrors         int
	MaxErrorsForSplit int
	MaxSplits         int

	// Demotion rates are integer percentages applied per occurrence.
	ProximityDemotionRate     int
	SubstitutionDemotionRate  int
	OmissionDemotionRate      int
	InsertionDemotionRate     int
	TranspositionDemotionRate int
	DigraphDemotionRate       int
	CompletionDemotionRate    int
	MultiWordDemotionRate     int
}

// DefaultOptions mirrors the tuning the original engine ships with.
func DefaultOptions() Options {
	return Options{
		TypedLetterMultiplier:     2,
		FullWordMultiplier:        2,
		MaxWordLength:             48,
		MaxWords:                  18,
		MaxErrors:                 2,
		MaxErrorsForSplit:         1,
		MaxSplits:                 2,
		ProximityDemotionRate:     80,
		SubstitutionDemotionRate:  50,
		OmissionDemotionRate:      70,
		InsertionDemotionRate:     70,
		TranspositionDemotionRate: 75,
		DigraphDemotionRate:       95,
		CompletionDemotionRate:    94,
		MultiWordDemotionRate:     80,
	}
}

// Searcher runs correction searches against one dictionary store. It holds
// no per-request state and is safe for concurrent Suggest calls.
type Searcher struct {
	store *dict.Store
	user  *UserDictionary
	opts  Options
}

// NewSearcher binds a store to a scoring policy.
func NewSearcher(store *dict.Store, opts Options) *Searcher {
	if opts.MaxWords < 1 {
		opts.MaxWords = 1
	}
	if opts.MaxWordLength < 1 {
		opts.MaxWordLength = 1
	}
	return &Searcher{store: store, opts: opts}
}

// SetUserDictionary attaches a dynamic user dictionary whose completions
// are merged into suggestion results.
func (s *Searcher) SetUserDictionary(u *UserDictionary) { s.user = u }

// Options returns the active scoring policy.
func (s *Searcher) Options() Options { return s.opts }

// Suggest returns ranked corrections for one in-progress word. xs, ys and
// codes are parallel per-keystroke arrays; bigrams optionally supplies the
// previous committed word's association data; useFullEditDistance allows
// substituting characters outside the proximity sets. Empty input yields
// an empty result, never an error. The call writes only into its own
// per-request state.
func (s *Searcher) Suggest(prox *keyboard.ProximityInfo, xs, ys []int, codes []rune, bigrams *BigramContext, useFullEditDistance bool) []Candidate {
	n := len(codes)
	if n == 0 || prox == nil || len(xs) != n || len(ys) != n {
		return nil
	}

	r := &run{
		opts:        s.opts,
		store:       s.store,
		prox:        prox,
		rules:       prox.Rules(),
		xs:          xs,
		ys:          ys,
		n:           n,
		bigrams:     bigrams,
		useFullEdit: useFullEditDistance,
		pool:        NewPool(1+s.opts.MaxSplits, s.opts.MaxWords),
		word:        make([]rune, s.opts.MaxWordLength),
	}
	r.prepare(codes)

	r.searchSegment(0, n, s.opts.MaxErrors, 0, true)
	r.multiWord()
	s.mergeUserWords(r)

	return r.pool.Master().Ranked()
}

// mergeUserWords offers user-dictionary completions of the literally typed
// prefix to the master queue.
func (s *Searcher) mergeUserWords(r *run) {
	if s.user == nil {
		return
	}
	typed := make([]rune, r.n)
	for i, pc := range r.cands {
		typed[i] = pc.primary
	}
	for _, c := range s.user.Completions(string(typed), s.opts.MaxWords) {
		extra := len(c.Word) - r.n
		score := c.Frequency * s.opts.TypedLetterMultiplier
		for i := 0; i < extra; i++ {
			score = demote(score, s.opts.CompletionDemotionRate)
		}
		r.pool.Master().Offer(c.Word, score, c.Frequency)
	}
}

// positionCandidates splits one keystroke's NearbyCodes result: the primary
// code, the grid-proximate codes, and the locale additional codes that
// follow the delimiter.
type positionCandidates struct {
	primary    rune
	near       []rune
	additional []rune
}

// run is the per-request traversal context. It is created per Suggest call
// and never shared.
type run struct {
	opts  Options
	store *dict.Store
	prox  *keyboard.ProximityInfo
	rules *keyboard.LocaleRules

	xs, ys []int
	codes  []rune // base-lowered typed codes
	cands  []positionCandidates
	n      int

	bigrams     *BigramContext
	useFullEdit bool

	pool *Pool
	word []rune // shared output buffer; frames address it by offset
}

func (r *run) prepare(codes []rune) {
	r.codes = make([]rune, r.n)
	r.cands = make([]positionCandidates, r.n)
	for i, c := range codes {
		r.codes[i] = charutil.ToBaseLower(c)
		list := r.prox.NearbyCodes(r.xs[i], r.ys[i], c)
		pc := positionCandidates{primary: charutil.ToBaseLower(list[0])}
		inAdditional := false
		for _, v := range list[1:] {
			if v == keyboard.CodeDelimiter {
				inAdditional = true
				continue
			}
			if inAdditional {
				pc.additional = append(pc.additional, charutil.ToBaseLower(v))
			} else {
				pc.near = append(pc.near, charutil.ToBaseLower(v))
			}
		}
		r.cands[i] = pc
	}
}

// Match kinds for one trie character against one input position.
const (
	matchNone = iota
	matchExact
	matchNear
	matchAdditional
)

func (r *run) matchKind(pos int, c rune) int {
	pc := &r.cands[pos]
	if c == pc.primary {
		return matchExact
	}
	for _, v := range pc.near {
		if v == c {
			return matchNear
		}
	}
	for _, v := range pc.additional {
		if v == c {
			return matchAdditional
		}
	}
	return matchNone
}

// editState tallies how a branch consumed its error budget. Every
// non-exact primitive costs one budget unit; they differ in demotion.
type editState struct {
	exact       int
	proximity   int
	substituted int
	omitted     int
	inserted    int
	transposed  int
	digraphs    int
	completion  int
}

func (e editState) errors() int {
	return e.proximity + e.substituted + e.omitted + e.inserted + e.transposed
}

// frame is one branch of the traversal: a position inside a group's
// character chain, an input cursor, and the edit state spent so far. The
// state machine per branch is exploring → terminal-candidate (emit, keep
// exploring children) | pruned (budget or length exceeded) | exhausted.
type frame struct {
	g     dict.Group
	ci    int // index into g.Chars
	in    int // input cursor
	out   int // output length
	st    editState
	trans bool // transposition pending: next char must match cands[in]
}

// searchSegment explores the trie against input positions [from, to) and
// offers terminal matches to the slot's queue.
func (r *run) searchSegment(from, to, maxErrors, slot int, allowCompletion bool) {
	q := r.pool.Queue(slot)
	if q == nil {
		return
	}
	stack := make([]frame, 0, 64)
	base := frame{in: from}
	r.pushChildren(&stack, r.store.RootPosition(), base)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.ci < len(f.g.Chars) {
			r.step(&stack, f, to, maxErrors, allowCompletion)
		} else {
			r.groupDone(&stack, f, to, maxErrors, slot, allowCompletion)
		}
	}
}

// pushChildren expands the node array at nodePos, inheriting the parent
// branch's cursor and edit state.
func (r *run) pushChildren(stack *[]frame, nodePos int, parent frame) {
	count, p, ok := r.store.ReadCount(nodePos)
	if !ok {
		return
	}
	for i := 0; i < count; i++ {
		g, ok := r.store.ReadGroup(p)
		if !ok {
			return
		}
		*stack = append(*stack, frame{
			g: g, in: parent.in, out: parent.out,
			st: parent.st, trans: parent.trans,
		})
		p = g.End
	}
}

// step consumes one trie character of the frame's group, branching over the
// applicable edit primitives.
func (r *run) step(stack *[]frame, f frame, to, maxErrors int, allowCompletion bool) {
	if f.out >= r.opts.MaxWordLength {
		return // pruned
	}
	c := f.g.Chars[f.ci]
	cl := charutil.ToBaseLower(c)
	r.word[f.out] = c

	succ := f
	succ.ci++
	succ.out++

	if f.trans {
		// Second half of a pending transposition: the earlier input
		// character must match here, then both inputs are consumed.
		if f.in < to {
			if k := r.matchKind(f.in, cl); k == matchExact || k == matchNear {
				nf := succ
				nf.in = f.in + 2
				nf.trans = false
				nf.st.transposed++
				*stack = append(*stack, nf)
			}
		}
		return
	}

	budget := maxErrors - f.st.errors()

	if f.in < to {
		switch r.matchKind(f.in, cl) {
		case matchExact:
			nf := succ
			nf.in++
			nf.st.exact++
			*stack = append(*stack, nf)
		case matchNear:
			if budget > 0 {
				nf := succ
				nf.in++
				nf.st.proximity++
				*stack = append(*stack, nf)
			}
		case matchAdditional:
			if budget > 0 {
				nf := succ
				nf.in++
				nf.st.substituted++
				*stack = append(*stack, nf)
			}
		default:
			if r.useFullEdit && budget > 0 {
				nf := succ
				nf.in++
				nf.st.substituted++
				*stack = append(*stack, nf)
			}
		}

		if f.in+1 < to {
			// Digraph: two input characters stand in for one trie
			// character at reduced cost.
			if repl, ok := r.rules.DigraphReplacement(r.codes[f.in], r.codes[f.in+1]); ok && unicode.ToLower(c) == repl {
				nf := succ
				nf.in = f.in + 2
				nf.st.digraphs++
				*stack = append(*stack, nf)
			}
			// Transposition: this trie character matches the next
			// input; the swapped partner is checked on the next step.
			if budget > 0 {
				if k := r.matchKind(f.in+1, cl); k == matchExact || k == matchNear {
					nf := succ
					nf.trans = true
					*stack = append(*stack, nf)
				}
			}
		}

		// Omission: the trie character was never typed.
		if budget > 0 {
			nf := succ
			nf.st.omitted++
			*stack = append(*stack, nf)
		}
		// Insertion: the input character was an extra keystroke.
		if budget > 0 {
			nf := f
			nf.in++
			nf.st.inserted++
			*stack = append(*stack, nf)
		}
	} else if allowCompletion {
		nf := succ
		nf.st.completion++
		*stack = append(*stack, nf)
	}
}

// groupDone handles a fully consumed character chain: emit on a terminal
// with the input used up, then descend into children.
func (r *run) groupDone(stack *[]frame, f frame, to, maxErrors, slot int, allowCompletion bool) {
	if f.g.IsTerminal() && f.in == to && !f.trans {
		r.emit(slot, string(r.word[:f.out]), &f.g, f.st)
	}
	if !f.g.HasChildren() {
		return // exhausted
	}
	if f.in < to || allowCompletion {
		r.pushChildren(stack, f.g.ChildrenPos, f)
	}
}

func (r *run) emit(slot int, word string, g *dict.Group, st editState) {
	q := r.pool.Queue(slot)
	if q == nil {
		return
	}
	q.Offer(word, r.score(g, st, word), g.Frequency)
}

// score combines the per-character weights with the stored frequency, per
// the policy in Options, and applies the bigram boost on a confirmed link.
func (r *run) score(g *dict.Group, st editState, word string) int {
	o := r.opts
	sc := g.Frequency
	if sc < 1 {
		sc = 1
	}
	for i := 0; i < st.exact; i++ {
		sc *= o.TypedLetterMultiplier
	}
	sc = demoteN(sc, st.proximity, o.ProximityDemotionRate)
	sc = demoteN(sc, st.substituted, o.SubstitutionDemotionRate)
	sc = demoteN(sc, st.omitted, o.OmissionDemotionRate)
	sc = demoteN(sc, st.inserted, o.InsertionDemotionRate)
	sc = demoteN(sc, st.transposed, o.TranspositionDemotionRate)
	sc = demoteN(sc, st.digraphs, o.DigraphDemotionRate)
	sc = demoteN(sc, st.completion, o.CompletionDemotionRate)

	if st.errors() == 0 && st.digraphs == 0 && st.completion == 0 {
		sc *= o.FullWordMultiplier
	}
	if w, ok := r.bigrams.weightFor(word, g.Pos, r.store); ok {
		sc = sc * (10 + w) / 10
	}
	return sc
}

func demote(sc, rate int) int {
	sc = sc * rate / 100
	if sc < 1 {
		sc = 1
	}
	return sc
}

func demoteN(sc, count, rate int) int {
	for i := 0; i < count; i++ {
		sc = demote(sc, rate)
	}
	return sc
}

// multiWord tries splitting the input at every keystroke boundary whose
// touch point has space proximity, recursively, and offers the joined
// phrases to the master queue.
func (r *run) multiWord() {
	if r.opts.MaxSplits < 1 {
		return
	}
	r.splitFrom(0, 1, nil, 0, math.MaxInt)
}

// splitFrom explores splits of input [start, n). slot indexes the
// sub-queue serving this word position; lowFreq tracks the rarest word
// accumulated so far.
func (r *run) splitFrom(start, slot int, words []string, accScore, lowFreq int) {
	if slot > r.opts.MaxSplits {
		return
	}
	for i := start + 1; i < r.n; i++ {
		if !r.prox.HasSpaceProximity(r.xs[i], r.ys[i]) {
			continue
		}
		head, ok := r.bestSegment(start, i, slot)
		if !ok {
			continue
		}
		withHead := append(append([]string(nil), words...), head.Word)
		headLow := min(lowFreq, head.Frequency)
		if tail, ok := r.bestSegment(i, r.n, slot); ok {
			r.emitJoined(append(withHead, tail.Word), accScore+head.Score+tail.Score, min(headLow, tail.Frequency))
		}
		r.splitFrom(i, slot+1, withHead, accScore+head.Score, headLow)
	}
}

// bestSegment runs a single-word search over input [from, to) under the
// stricter split budget and returns the slot queue's best candidate.
// Completions are disabled: a segment must consume its input exactly.
func (r *run) bestSegment(from, to, slot int) (Candidate, bool) {
	q := r.pool.Queue(slot)
	if q == nil {
		return Candidate{}, false
	}
	q.Reset()
	r.searchSegment(from, to, r.opts.MaxErrorsForSplit, slot, false)
	return q.Best()
}

// emitJoined offers a joined phrase to the master queue. The phrase's
// frequency is that of its rarest word, so frequency tie-breaking stays
// meaningful against single-word candidates.
func (r *run) emitJoined(words []string, total, freq int) {
	if len(words) < 2 {
		return
	}
	score := demote(total/len(words), r.opts.MultiWordDemotionRate)
	joined := strings.Join(words, " ")
	r.pool.Master().Offer(joined, score, freq)
}
