// Package cli handles cmd line input and corrections for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/dict"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/keyboard"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/suggest"
)

// InputHandler processes user input from stdin and prints ranked
// corrections. Touch coordinates are synthesized from the layout's key
// centers, so a typed line behaves like a sequence of center presses.
type InputHandler struct {
	searcher         *suggest.Searcher
	store            *dict.Store
	prox             *keyboard.ProximityInfo
	suggestLimit     int
	fullEditDistance bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(searcher *suggest.Searcher, store *dict.Store, prox *keyboard.ProximityInfo, limit int, fullEditDistance bool) *InputHandler {
	return &InputHandler{
		searcher:         searcher,
		store:            store,
		prox:             prox,
		suggestLimit:     limit,
		fullEditDistance: fullEditDistance,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to the handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("Suggestd CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word (or \"previous word\") and press Enter to see corrections (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput corrects the last whitespace token of the line; the token
// before it, when present, seeds the bigram context.
func (h *InputHandler) handleInput(line string) {
	tokens := strings.Fields(line)
	word := tokens[len(tokens)-1]
	prev := ""
	if len(tokens) > 1 {
		prev = tokens[len(tokens)-2]
	}

	codes := []rune(word)
	xs := make([]int, len(codes))
	ys := make([]int, len(codes))
	for i, c := range codes {
		if x, y, ok := h.prox.KeyCenterOf(c); ok {
			xs[i], ys[i] = x, y
		} else {
			xs[i], ys[i] = -1, -1
		}
	}

	var bigrams *suggest.BigramContext
	if prev != "" {
		bigrams = suggest.NewBigramContext(prev, h.store)
	}

	start := time.Now()
	log.Debug("Processing request for", "word", word, "prev", prev)
	candidates := h.searcher.Suggest(h.prox, xs, ys, codes, bigrams, h.fullEditDistance)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if len(candidates) == 0 {
		log.Warnf("No corrections found for word: '%s'", word)
		return
	}
	if len(candidates) > h.suggestLimit {
		candidates = candidates[:h.suggestLimit]
	}

	log.Printf("Found %d corrections for word '%s':", len(candidates), word)
	for i, c := range candidates {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Word)
		log.Printf("%2d. %-40s (score: %8d)", i+1, clWord, c.Score)
	}
}
