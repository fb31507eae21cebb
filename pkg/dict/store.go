// Package dict decodes the precompiled binary dictionary into a navigable
// trie abstraction. The byte buffer is an immutable arena; node handles are
// integer offsets and every read goes through bounds-checked accessors, so
// a corrupt buffer surfaces as "not found" rather than a panic. Buffers are
// trusted, pre-built input: their contents are never repaired or validated
// beyond that.
package dict

import "fmt"

// Group flag byte layout. A group is one trie node: one or more characters,
// an optional children address, an optional terminal frequency and optional
// shortcut/bigram attribute lists.
const (
	maskGroupAddressType       = 0xC0
	flagGroupAddressNone       = 0x00
	flagGroupAddressOneByte    = 0x40
	flagGroupAddressTwoBytes   = 0x80
	flagGroupAddressThreeBytes = 0xC0

	flagHasMultipleChars = 0x20
	flagIsTerminal       = 0x10
	flagHasShortcuts     = 0x08
	flagHasBigrams       = 0x04
)

// Attribute flag byte layout, shared by shortcut and bigram entries.
const (
	flagAttributeHasNext        = 0x80
	flagAttributeOffsetNegative = 0x40

	maskAttributeAddressType       = 0x30
	flagAttributeAddressOneByte    = 0x10
	flagAttributeAddressTwoBytes   = 0x20
	flagAttributeAddressThreeBytes = 0x30

	maskAttributeFrequency = 0x0F
)

// charTerminator ends the character run of a multi-character group.
const charTerminator = 0x1F

// rootPosition is the fixed offset of the root node array.
const rootPosition = 0

// Store is a read-only decoded view over one dictionary buffer. It holds no
// mutable state and is safe to share across concurrent searches.
type Store struct {
	data      []byte
	charWidth int
}

// NewStore wraps a dictionary buffer. charWidth is the store-wide character
// width in bytes, 1 or 2.
func NewStore(data []byte, charWidth int) (*Store, error) {
	if charWidth != 1 && charWidth != 2 {
		return nil, fmt.Errorf("dict: character width must be 1 or 2 bytes, got %d", charWidth)
	}
	return &Store{data: data, charWidth: charWidth}, nil
}

// Size returns the buffer length in bytes.
func (s *Store) Size() int { return len(s.data) }

// CharWidth returns the store-wide character width in bytes.
func (s *Store) CharWidth() int { return s.charWidth }

// RootPosition returns the offset of the root node array.
func (s *Store) RootPosition() int { return rootPosition }

// Group is one decoded trie node. Chars holds the full compressed chain;
// matching a group consumes the chain atomically on exact lookups.
type Group struct {
	Pos   int
	Flags byte
	Chars []rune

	// ChildrenPos is the absolute offset of the child node array, or -1.
	ChildrenPos int
	// Frequency is the stored terminal frequency, or -1 for non-terminals.
	Frequency int

	shortcutsPos int
	bigramsPos   int

	// End is the offset just past the group, i.e. the next sibling.
	End int
}

// IsTerminal reports whether the group ends a valid word.
func (g *Group) IsTerminal() bool { return g.Flags&flagIsTerminal != 0 }

// HasChildren reports whether the group carries a child node array.
func (g *Group) HasChildren() bool { return g.ChildrenPos >= 0 }

// HasBigrams reports whether a bigram attribute list follows the group.
func (g *Group) HasBigrams() bool { return g.Flags&flagHasBigrams != 0 }

// HasShortcuts reports whether a shortcut attribute list follows the group.
func (g *Group) HasShortcuts() bool { return g.Flags&flagHasShortcuts != 0 }

// Attribute is one shortcut or bigram entry: a 4-bit weight and a signed
// variable-width offset to the target node, relative to the entry start.
type Attribute struct {
	Pos       int
	Frequency int
	Target    int
	HasNext   bool
	Next      int
}

func (s *Store) byteAt(pos int) (byte, bool) {
	if pos < 0 || pos >= len(s.data) {
		return 0, false
	}
	return s.data[pos], true
}

// readChar reads one character at pos, returning the value and the offset
// just past it. ok is false at the end of the buffer; terminator values are
// returned as-is for the caller to detect.
func (s *Store) readChar(pos int) (rune, int, bool) {
	if s.charWidth == 1 {
		b, ok := s.byteAt(pos)
		return rune(b), pos + 1, ok
	}
	hi, ok1 := s.byteAt(pos)
	lo, ok2 := s.byteAt(pos + 1)
	return rune(uint16(hi)<<8 | uint16(lo)), pos + 2, ok1 && ok2
}

// readAddress reads an n-byte big-endian absolute address.
func (s *Store) readAddress(pos, n int) (int, int, bool) {
	addr := 0
	for i := 0; i < n; i++ {
		b, ok := s.byteAt(pos + i)
		if !ok {
			return 0, 0, false
		}
		addr = addr<<8 | int(b)
	}
	return addr, pos + n, true
}

// ReadCount reads a node array's sibling count byte.
func (s *Store) ReadCount(pos int) (count, next int, ok bool) {
	b, ok := s.byteAt(pos)
	if !ok {
		return 0, 0, false
	}
	return int(b), pos + 1, true
}

// ReadGroup decodes the group at pos. On a truncated buffer it returns
// ok=false; traversals treat that as a dead branch.
func (s *Store) ReadGroup(pos int) (Group, bool) {
	g := Group{Pos: pos, ChildrenPos: -1, Frequency: -1, shortcutsPos: -1, bigramsPos: -1}

	flags, ok := s.byteAt(pos)
	if !ok {
		return g, false
	}
	g.Flags = flags
	p := pos + 1

	c, np, ok := s.readChar(p)
	if !ok {
		return g, false
	}
	g.Chars = append(g.Chars, c)
	p = np
	if flags&flagHasMultipleChars != 0 {
		for {
			c, np, ok = s.readChar(p)
			if !ok {
				return g, false
			}
			p = np
			if c == charTerminator {
				break
			}
			g.Chars = append(g.Chars, c)
		}
	}

	switch flags & maskGroupAddressType {
	case flagGroupAddressOneByte:
		g.ChildrenPos, p, ok = s.readAddress(p, 1)
	case flagGroupAddressTwoBytes:
		g.ChildrenPos, p, ok = s.readAddress(p, 2)
	case flagGroupAddressThreeBytes:
		g.ChildrenPos, p, ok = s.readAddress(p, 3)
	}
	if !ok {
		return g, false
	}

	if flags&flagIsTerminal != 0 {
		b, ok := s.byteAt(p)
		if !ok {
			return g, false
		}
		g.Frequency = int(b)
		p++
	}

	if flags&flagHasShortcuts != 0 {
		g.shortcutsPos = p
		p, ok = s.skipAttributes(p)
		if !ok {
			return g, false
		}
	}
	if flags&flagHasBigrams != 0 {
		g.bigramsPos = p
		p, ok = s.skipAttributes(p)
		if !ok {
			return g, false
		}
	}

	g.End = p
	return g, true
}

// ReadAttribute decodes one attribute entry at pos.
func (s *Store) ReadAttribute(pos int) (Attribute, bool) {
	flags, ok := s.byteAt(pos)
	if !ok {
		return Attribute{}, false
	}
	a := Attribute{
		Pos:       pos,
		Frequency: int(flags & maskAttributeFrequency),
		HasNext:   flags&flagAttributeHasNext != 0,
	}
	width := 0
	switch flags & maskAttributeAddressType {
	case flagAttributeAddressOneByte:
		width = 1
	case flagAttributeAddressTwoBytes:
		width = 2
	case flagAttributeAddressThreeBytes:
		width = 3
	default:
		return Attribute{}, false
	}
	offset, next, ok := s.readAddress(pos+1, width)
	if !ok {
		return Attribute{}, false
	}
	if flags&flagAttributeOffsetNegative != 0 {
		offset = -offset
	}
	a.Target = pos + offset
	a.Next = next
	return a, true
}

func (s *Store) skipAttributes(pos int) (int, bool) {
	for {
		a, ok := s.ReadAttribute(pos)
		if !ok {
			return 0, false
		}
		pos = a.Next
		if !a.HasNext {
			return pos, true
		}
	}
}

// terminalGroup descends from the root matching word literally, following
// multi-character chains as atomic units.
func (s *Store) terminalGroup(word []rune) (Group, bool) {
	if len(word) == 0 {
		return Group{}, false
	}
	nodePos := rootPosition
	idx := 0
	for {
		count, p, ok := s.ReadCount(nodePos)
		if !ok {
			return Group{}, false
		}
		advanced := false
		for i := 0; i < count; i++ {
			g, ok := s.ReadGroup(p)
			if !ok {
				return Group{}, false
			}
			if g.Chars[0] == word[idx] {
				if idx+len(g.Chars) > len(word) || !runesEqual(g.Chars, word[idx:idx+len(g.Chars)]) {
					return Group{}, false
				}
				idx += len(g.Chars)
				if idx == len(word) {
					return g, g.IsTerminal()
				}
				if !g.HasChildren() {
					return Group{}, false
				}
				nodePos = g.ChildrenPos
				advanced = true
				break
			}
			p = g.End
		}
		if !advanced {
			return Group{}, false
		}
	}
}

// FrequencyOf looks up word by exact character match and returns its stored
// terminal frequency. No fuzziness is applied.
func (s *Store) FrequencyOf(word string) (int, bool) {
	g, ok := s.terminalGroup([]rune(word))
	if !ok {
		return 0, false
	}
	return g.Frequency, true
}

// PositionOf returns the offset of word's terminal group.
func (s *Store) PositionOf(word string) (int, bool) {
	g, ok := s.terminalGroup([]rune(word))
	if !ok {
		return 0, false
	}
	return g.Pos, true
}

// WordAt reconstructs the word whose group starts at target by walking the
// trie from the root.
func (s *Store) WordAt(target int) (string, bool) {
	var acc []rune
	if !s.wordAt(rootPosition, target, &acc) {
		return "", false
	}
	return string(acc), true
}

func (s *Store) wordAt(nodePos, target int, acc *[]rune) bool {
	count, p, ok := s.ReadCount(nodePos)
	if !ok {
		return false
	}
	for i := 0; i < count; i++ {
		g, ok := s.ReadGroup(p)
		if !ok {
			return false
		}
		*acc = append(*acc, g.Chars...)
		if g.Pos == target {
			return true
		}
		if g.HasChildren() && s.wordAt(g.ChildrenPos, target, acc) {
			return true
		}
		*acc = (*acc)[:len(*acc)-len(g.Chars)]
		p = g.End
	}
	return false
}

// Bigram is a resolved bigram attribute of some terminal node.
type Bigram struct {
	Word   string
	Weight int
	Target int
}

// Bigrams resolves the bigram attribute list of the group at fromPos.
func (s *Store) Bigrams(fromPos int) []Bigram {
	return s.attributeWords(fromPos, false)
}

// Shortcuts resolves the shortcut attribute list of the group at fromPos.
func (s *Store) Shortcuts(fromPos int) []Bigram {
	return s.attributeWords(fromPos, true)
}

func (s *Store) attributeWords(fromPos int, shortcuts bool) []Bigram {
	g, ok := s.ReadGroup(fromPos)
	if !ok {
		return nil
	}
	pos := g.bigramsPos
	if shortcuts {
		pos = g.shortcutsPos
	}
	if pos < 0 {
		return nil
	}
	var out []Bigram
	for {
		a, ok := s.ReadAttribute(pos)
		if !ok {
			return out
		}
		if w, ok := s.WordAt(a.Target); ok {
			out = append(out, Bigram{Word: w, Weight: a.Frequency, Target: a.Target})
		}
		if !a.HasNext {
			return out
		}
		pos = a.Next
	}
}

// BigramTargetPosition scans the bigram list of the node at fromPos for an
// entry whose target spells word, returning the target's position and the
// entry's 4-bit weight.
func (s *Store) BigramTargetPosition(fromPos int, word string) (pos, weight int, ok bool) {
	for _, b := range s.Bigrams(fromPos) {
		if b.Word == word {
			return b.Target, b.Weight, true
		}
	}
	return 0, 0, false
}

// BigramWeightBetween returns the weight of the bigram link from the node
// at fromPos to the node at targetPos, without reconstructing words.
func (s *Store) BigramWeightBetween(fromPos, targetPos int) (int, bool) {
	g, ok := s.ReadGroup(fromPos)
	if !ok || g.bigramsPos < 0 {
		return 0, false
	}
	pos := g.bigramsPos
	for {
		a, ok := s.ReadAttribute(pos)
		if !ok {
			return 0, false
		}
		if a.Target == targetPos {
			return a.Frequency, true
		}
		if !a.HasNext {
			return 0, false
		}
		pos = a.Next
	}
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
