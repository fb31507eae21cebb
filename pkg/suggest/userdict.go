package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// UserDictionary is the dynamic companion to the binary dictionary: words
// the user adds at runtime, kept in a patricia trie with frequencies. Its
// prefix completions are merged into the master queue alongside trie
// search results. Safe for concurrent use.
type UserDictionary struct {
	mu   sync.RWMutex
	trie *patricia.Trie
}

// NewUserDictionary returns an empty user dictionary.
func NewUserDictionary() *UserDictionary {
	return &UserDictionary{trie: patricia.NewTrie()}
}

// AddWord inserts or updates a word. Words are stored lowercased.
func (u *UserDictionary) AddWord(word string, freq int) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	if freq < 1 {
		freq = 1
	}
	u.mu.Lock()
	u.trie.Set(patricia.Prefix(word), freq)
	u.mu.Unlock()
}

// FrequencyOf returns the stored frequency of an exact word.
func (u *UserDictionary) FrequencyOf(word string) (int, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	item := u.trie.Get(patricia.Prefix(strings.ToLower(word)))
	if item == nil {
		return 0, false
	}
	return item.(int), true
}

// Completions returns up to limit words starting with prefix, ordered by
// descending frequency.
func (u *UserDictionary) Completions(prefix string, limit int) []Candidate {
	if u == nil || prefix == "" {
		return nil
	}
	u.mu.RLock()
	defer u.mu.RUnlock()

	var out []Candidate
	err := u.trie.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(p patricia.Prefix, item patricia.Item) error {
		freq, ok := item.(int)
		if !ok {
			log.Errorf("unexpected item type %T for user word %s", item, p)
			return nil
		}
		out = append(out, Candidate{Word: string(p), Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("visiting user dictionary subtree: %v", err)
		return nil
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
