package dict

import (
	"fmt"
	"sort"
)

// Builder compiles words, bigram links and shortcut targets into the binary
// trie buffer a Store decodes. It is the packaging side of the format, used
// by tests and the demo dictionary; production dictionaries come prebuilt.
type Builder struct {
	root      *buildNode
	bigrams   []linkSpec
	shortcuts []linkSpec
}

type buildNode struct {
	children map[rune]*buildNode
	terminal bool
	freq     int
}

type linkSpec struct {
	from, to string
	weight   int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{root: &buildNode{children: map[rune]*buildNode{}}}
}

// AddWord inserts word with a terminal frequency clamped to one byte.
func (b *Builder) AddWord(word string, freq int) error {
	runes := []rune(word)
	if len(runes) == 0 {
		return fmt.Errorf("dict: cannot add empty word")
	}
	if freq < 1 {
		freq = 1
	}
	if freq > 255 {
		freq = 255
	}
	n := b.root
	for _, r := range runes {
		child := n.children[r]
		if child == nil {
			child = &buildNode{children: map[rune]*buildNode{}}
			n.children[r] = child
		}
		n = child
	}
	n.terminal = true
	n.freq = freq
	return nil
}

// AddBigram links from→to with a 4-bit weight. Both words must be added
// before Build.
func (b *Builder) AddBigram(from, to string, weight int) {
	b.bigrams = append(b.bigrams, linkSpec{from: from, to: to, weight: clampWeight(weight)})
}

// AddShortcut registers target as an alternate spelling attribute of word.
func (b *Builder) AddShortcut(word, target string, weight int) {
	b.shortcuts = append(b.shortcuts, linkSpec{from: word, to: target, weight: clampWeight(weight)})
}

func clampWeight(w int) int {
	if w < 0 {
		return 0
	}
	if w > 15 {
		return 15
	}
	return w
}

// group under construction: a compressed chain plus layout bookkeeping.
type outGroup struct {
	chars    []rune
	terminal bool
	freq     int
	children []*outGroup

	bigrams   []outLink
	shortcuts []outLink

	pos         int
	childrenPos int
}

type outLink struct {
	target *outGroup
	weight int
}

// Build lays the trie out depth-first and returns the buffer together with
// the store-wide character width it chose (2 bytes when any character
// exceeds one byte).
func (b *Builder) Build() ([]byte, int, error) {
	terminals := map[string]*outGroup{}
	roots := compress(b.root, nil, terminals)

	for _, bg := range b.bigrams {
		from, to := terminals[bg.from], terminals[bg.to]
		if from == nil || to == nil {
			return nil, 0, fmt.Errorf("dict: bigram %q -> %q references a missing word", bg.from, bg.to)
		}
		from.bigrams = append(from.bigrams, outLink{target: to, weight: bg.weight})
	}
	for _, sc := range b.shortcuts {
		from, to := terminals[sc.from], terminals[sc.to]
		if from == nil || to == nil {
			return nil, 0, fmt.Errorf("dict: shortcut %q -> %q references a missing word", sc.from, sc.to)
		}
		from.shortcuts = append(from.shortcuts, outLink{target: to, weight: sc.weight})
	}

	width := 1
	for w := range terminals {
		for _, r := range w {
			if r > 0xFF {
				width = 2
			}
		}
	}

	total := layoutArray(roots, rootPosition, width)
	buf := make([]byte, total)
	emitArray(buf, roots, width)
	return buf, width, nil
}

// compress folds single-child non-terminal runs into multi-character
// groups, recording each terminal's full word along the way.
func compress(n *buildNode, prefix []rune, terminals map[string]*outGroup) []*outGroup {
	codes := make([]rune, 0, len(n.children))
	for r := range n.children {
		codes = append(codes, r)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	groups := make([]*outGroup, 0, len(codes))
	for _, r := range codes {
		child := n.children[r]
		chars := []rune{r}
		for !child.terminal && len(child.children) == 1 {
			var next rune
			for k := range child.children {
				next = k
			}
			chars = append(chars, next)
			child = child.children[next]
		}
		g := &outGroup{chars: chars, terminal: child.terminal, freq: child.freq, childrenPos: -1}
		word := append(append([]rune{}, prefix...), chars...)
		if child.terminal {
			terminals[string(word)] = g
		}
		if len(child.children) > 0 {
			g.children = compress(child, word, terminals)
		}
		groups = append(groups, g)
	}
	return groups
}

// groupSize is the encoded byte length of one group. Children addresses and
// attribute offsets are always emitted in their 3-byte form.
func groupSize(g *outGroup, width int) int {
	size := 1 + width*len(g.chars)
	if len(g.chars) > 1 {
		size += width // terminator
	}
	if len(g.children) > 0 {
		size += 3
	}
	if g.terminal {
		size++
	}
	size += 4 * (len(g.shortcuts) + len(g.bigrams))
	return size
}

// layoutArray assigns absolute positions: the sibling run first, then each
// member's child array in order.
func layoutArray(groups []*outGroup, pos, width int) int {
	pos++ // count byte
	for _, g := range groups {
		g.pos = pos
		pos += groupSize(g, width)
	}
	for _, g := range groups {
		if len(g.children) > 0 {
			g.childrenPos = pos
			pos = layoutArray(g.children, pos, width)
		}
	}
	return pos
}

func emitArray(buf []byte, groups []*outGroup, width int) {
	if len(groups) == 0 {
		return
	}
	buf[groups[0].pos-1] = byte(len(groups))
	for _, g := range groups {
		emitGroup(buf, g, width)
		if len(g.children) > 0 {
			emitArray(buf, g.children, width)
		}
	}
}

func emitGroup(buf []byte, g *outGroup, width int) {
	flags := byte(0)
	if len(g.children) > 0 {
		flags |= flagGroupAddressThreeBytes
	}
	if len(g.chars) > 1 {
		flags |= flagHasMultipleChars
	}
	if g.terminal {
		flags |= flagIsTerminal
	}
	if len(g.shortcuts) > 0 {
		flags |= flagHasShortcuts
	}
	if len(g.bigrams) > 0 {
		flags |= flagHasBigrams
	}

	p := g.pos
	buf[p] = flags
	p++
	for _, r := range g.chars {
		p = putChar(buf, p, r, width)
	}
	if len(g.chars) > 1 {
		p = putChar(buf, p, charTerminator, width)
	}
	if len(g.children) > 0 {
		p = putAddress(buf, p, g.childrenPos)
	}
	if g.terminal {
		buf[p] = byte(g.freq)
		p++
	}
	p = emitLinks(buf, p, g.shortcuts)
	emitLinks(buf, p, g.bigrams)
}

func emitLinks(buf []byte, p int, links []outLink) int {
	for i, l := range links {
		flags := byte(flagAttributeAddressThreeBytes) | byte(l.weight&maskAttributeFrequency)
		if i < len(links)-1 {
			flags |= flagAttributeHasNext
		}
		offset := l.target.pos - p
		if offset < 0 {
			flags |= flagAttributeOffsetNegative
			offset = -offset
		}
		buf[p] = flags
		p = putAddress(buf, p+1, offset)
	}
	return p
}

func putChar(buf []byte, p int, r rune, width int) int {
	if width == 1 {
		buf[p] = byte(r)
		return p + 1
	}
	buf[p] = byte(r >> 8)
	buf[p+1] = byte(r)
	return p + 2
}

func putAddress(buf []byte, p, addr int) int {
	buf[p] = byte(addr >> 16)
	buf[p+1] = byte(addr >> 8)
	buf[p+2] = byte(addr)
	return p + 3
}
