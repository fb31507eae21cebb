package suggest

import (
	"testing"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/dict"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/keyboard"
)

func buildTestStore(t *testing.T, words map[string]int) *dict.Store {
	t.Helper()
	b := dict.NewBuilder()
	for w, f := range words {
		if err := b.AddWord(w, f); err != nil {
			t.Fatal(err)
		}
	}
	data, width, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	s, err := dict.NewStore(data, width)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// strictLayout puts every letter a..z in its own grid cell with no other
// proximity codes, so only exact key hits match. The second grid row
// repeats the letters with the space code added, to stage word boundaries.
func strictLayout(t *testing.T, locale string) *keyboard.ProximityInfo {
	t.Helper()
	const maxProx = 4
	grid := make([]rune, 26*2*maxProx)
	for i := 0; i < 26; i++ {
		grid[i*maxProx] = rune('a' + i)
		grid[(26+i)*maxProx] = rune('a' + i)
		grid[(26+i)*maxProx+1] = keyboard.CodeSpace
	}
	pi, err := keyboard.New(keyboard.Params{
		Locale:             locale,
		MaxProximityChars:  maxProx,
		KeyboardWidth:      260,
		KeyboardHeight:     20,
		GridWidth:          26,
		GridHeight:         2,
		MostCommonKeyWidth: 10,
		Grid:               grid,
	})
	if err != nil {
		t.Fatal(err)
	}
	return pi
}

// strictCoords maps each letter to its own cell on the strict layout's
// first row. spaceNear marks positions whose touch lands on the second
// row, where the space code is present.
func strictCoords(word string, spaceNear ...int) (xs, ys []int) {
	codes := []rune(word)
	xs = make([]int, len(codes))
	ys = make([]int, len(codes))
	for i, c := range codes {
		xs[i] = int(c-'a')*10 + 5
		ys[i] = 5
	}
	for _, i := range spaceNear {
		ys[i] = 15
	}
	return xs, ys
}

// broadLayout is a single cell carrying all given codes, so every
// position sees every code as a proximity candidate.
func broadLayout(t *testing.T, codes string) *keyboard.ProximityInfo {
	t.Helper()
	const maxProx = 16
	grid := make([]rune, maxProx)
	copy(grid, []rune(codes))
	pi, err := keyboard.New(keyboard.Params{
		MaxProximityChars:  maxProx,
		KeyboardWidth:      10,
		KeyboardHeight:     10,
		GridWidth:          1,
		GridHeight:         1,
		MostCommonKeyWidth: 10,
		Grid:               grid,
	})
	if err != nil {
		t.Fatal(err)
	}
	return pi
}

func suggestWords(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Word
	}
	return out
}

func hasWord(cands []Candidate, word string) bool {
	for _, c := range cands {
		if c.Word == word {
			return true
		}
	}
	return false
}

func TestSuggestEmptyInput(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	if got := s.Suggest(pi, nil, nil, nil, nil, false); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}
	if got := s.Suggest(nil, []int{5}, []int{5}, []rune("a"), nil, false); got != nil {
		t.Errorf("nil layout should yield nil, got %v", got)
	}
	if got := s.Suggest(pi, []int{5}, []int{5, 5}, []rune("a"), nil, false); got != nil {
		t.Errorf("mismatched coordinate arrays should yield nil, got %v", got)
	}
}

func TestSuggestExactWord(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200, "help": 180})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("hello")
	cands := s.Suggest(pi, xs, ys, []rune("hello"), nil, false)
	if len(cands) == 0 || cands[0].Word != "hello" {
		t.Fatalf("exact word should rank first, got %v", suggestWords(cands))
	}
}

func TestSuggestProximityCorrection(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200, "help": 150})
	s := NewSearcher(store, DefaultOptions())
	pi := broadLayout(t, "ghelop")

	coords := func(word string) (xs, ys []int) {
		n := len(word)
		xs, ys = make([]int, n), make([]int, n)
		for i := range xs {
			xs[i], ys[i] = 5, 5
		}
		return xs, ys
	}

	xs, ys := coords("gello")
	cands := s.Suggest(pi, xs, ys, []rune("gello"), nil, false)
	if len(cands) == 0 || cands[0].Word != "hello" {
		t.Fatalf("'gello' should correct to 'hello', got %v", suggestWords(cands))
	}
}

func TestSuggestZeroErrorBudget(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200})
	opts := DefaultOptions()
	opts.MaxErrors = 0
	s := NewSearcher(store, opts)
	pi := broadLayout(t, "ghelop")

	xs := []int{5, 5, 5, 5, 5}
	ys := []int{5, 5, 5, 5, 5}
	cands := s.Suggest(pi, xs, ys, []rune("gello"), nil, false)
	if len(cands) != 0 {
		t.Errorf("zero budget permits exact matches only, got %v", suggestWords(cands))
	}
	// the exact word still matches under a zero budget
	cands = s.Suggest(pi, xs, ys, []rune("hello"), nil, false)
	if !hasWord(cands, "hello") {
		t.Errorf("exact input should survive a zero budget, got %v", suggestWords(cands))
	}
}

func TestSuggestCompletion(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200, "help": 150})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("hel")
	cands := s.Suggest(pi, xs, ys, []rune("hel"), nil, false)
	if !hasWord(cands, "hello") || !hasWord(cands, "help") {
		t.Fatalf("prefix should complete to both words, got %v", suggestWords(cands))
	}
}

func TestSuggestOmittedCharacter(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("helo")
	cands := s.Suggest(pi, xs, ys, []rune("helo"), nil, false)
	if !hasWord(cands, "hello") {
		t.Errorf("'helo' should reach 'hello' via omission, got %v", suggestWords(cands))
	}
}

func TestSuggestInsertedCharacter(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("heallo")
	cands := s.Suggest(pi, xs, ys, []rune("heallo"), nil, false)
	if !hasWord(cands, "hello") {
		t.Errorf("'heallo' should reach 'hello' via insertion, got %v", suggestWords(cands))
	}
}

func TestSuggestTransposition(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("hlelo")
	cands := s.Suggest(pi, xs, ys, []rune("hlelo"), nil, false)
	if !hasWord(cands, "hello") {
		t.Errorf("'hlelo' should reach 'hello' via transposition, got %v", suggestWords(cands))
	}
}

func TestSuggestFullEditDistance(t *testing.T) {
	store := buildTestStore(t, map[string]int{"hello": 200})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("hexlo")
	// on the strict layout 'x' is nowhere near 'l'
	cands := s.Suggest(pi, xs, ys, []rune("hexlo"), nil, false)
	if hasWord(cands, "hello") {
		t.Error("out-of-proximity substitution must not match without full edit distance")
	}
	cands = s.Suggest(pi, xs, ys, []rune("hexlo"), nil, true)
	if !hasWord(cands, "hello") {
		t.Errorf("full edit distance should allow the substitution, got %v", suggestWords(cands))
	}
}

func TestSuggestDigraph(t *testing.T) {
	store := buildTestStore(t, map[string]int{"über": 120})
	opts := DefaultOptions()
	opts.MaxErrors = 0 // digraphs spend no error budget
	s := NewSearcher(store, opts)
	pi := strictLayout(t, "de")

	xs, ys := strictCoords("ueber")
	cands := s.Suggest(pi, xs, ys, []rune("ueber"), nil, false)
	if !hasWord(cands, "über") {
		t.Errorf(`"ueber" should reach "über" via the german digraph, got %v`, suggestWords(cands))
	}
}

func TestSuggestMultiWordSplit(t *testing.T) {
	store := buildTestStore(t, map[string]int{"a": 250, "lot": 140})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	// the 'l' keystroke lands on the space-proximate row
	xs, ys := strictCoords("alot", 1)
	cands := s.Suggest(pi, xs, ys, []rune("alot"), nil, false)
	if !hasWord(cands, "a lot") {
		t.Fatalf("'alot' should split into 'a lot', got %v", suggestWords(cands))
	}
	// the phrase inherits the frequency of its rarest word
	for _, c := range cands {
		if c.Word == "a lot" && c.Frequency != 140 {
			t.Errorf("'a lot' frequency = %d, want 140 (rarest segment)", c.Frequency)
		}
	}
}

func TestSuggestNoSplitWithoutSpaceProximity(t *testing.T) {
	store := buildTestStore(t, map[string]int{"a": 250, "lot": 140})
	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("alot")
	cands := s.Suggest(pi, xs, ys, []rune("alot"), nil, false)
	if hasWord(cands, "a lot") {
		t.Error("splits require space proximity at the boundary keystroke")
	}
}

func TestSuggestBigramBoost(t *testing.T) {
	b := dict.NewBuilder()
	for w, f := range map[string]int{
		"good": 200, "morning": 100, "monthly": 100,
	} {
		if err := b.AddWord(w, f); err != nil {
			t.Fatal(err)
		}
	}
	b.AddBigram("good", "morning", 14)
	data, width, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	store, _ := dict.NewStore(data, width)

	s := NewSearcher(store, DefaultOptions())
	pi := strictLayout(t, "")

	xs, ys := strictCoords("mo")
	codes := []rune("mo")

	// without context both completions surface
	cands := s.Suggest(pi, xs, ys, codes, nil, false)
	if !hasWord(cands, "morning") || !hasWord(cands, "monthly") {
		t.Fatalf("both completions expected, got %v", suggestWords(cands))
	}

	// the previous word promotes its bigram target to the top
	ctx := NewBigramContext("good", store)
	cands = s.Suggest(pi, xs, ys, codes, ctx, false)
	if len(cands) == 0 || cands[0].Word != "morning" {
		t.Errorf("bigram context should rank 'morning' first, got %v", suggestWords(cands))
	}
}

func TestSuggestUserDictionaryMerge(t *testing.T) {
	store := buildTestStore(t, map[string]int{"graft": 90})
	s := NewSearcher(store, DefaultOptions())
	user := NewUserDictionary()
	user.AddWord("grafana", 120)
	s.SetUserDictionary(user)
	pi := strictLayout(t, "")

	xs, ys := strictCoords("graf")
	cands := s.Suggest(pi, xs, ys, []rune("graf"), nil, false)
	if !hasWord(cands, "grafana") {
		t.Errorf("user dictionary completion missing, got %v", suggestWords(cands))
	}
	if !hasWord(cands, "graft") {
		t.Errorf("main dictionary completion missing, got %v", suggestWords(cands))
	}
}

func BenchmarkSuggest(b *testing.B) {
	builder := dict.NewBuilder()
	words := []string{
		"hello", "help", "held", "helmet", "helium", "hollow",
		"world", "word", "work", "worse", "worth", "would",
		"good", "gone", "golf", "goat", "morning", "monthly",
	}
	for i, w := range words {
		if err := builder.AddWord(w, 255-i*10); err != nil {
			b.Fatal(err)
		}
	}
	data, width, err := builder.Build()
	if err != nil {
		b.Fatal(err)
	}
	store, _ := dict.NewStore(data, width)
	s := NewSearcher(store, DefaultOptions())

	grid := make([]rune, 16)
	copy(grid, []rune("ghelopwrd"))
	pi, err := keyboard.New(keyboard.Params{
		MaxProximityChars:  16,
		KeyboardWidth:      10,
		KeyboardHeight:     10,
		GridWidth:          1,
		GridHeight:         1,
		MostCommonKeyWidth: 10,
		Grid:               grid,
	})
	if err != nil {
		b.Fatal(err)
	}

	codes := []rune("gello")
	xs := []int{5, 5, 5, 5, 5}
	ys := []int{5, 5, 5, 5, 5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Suggest(pi, xs, ys, codes, nil, false)
	}
}
