package server

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/internal/logger"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/dict"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/keyboard"
	"github.com/mrgatesjunior/packages-inputmethods-LatinIME/pkg/suggest"
)

// protocolVersion names the wire message shapes, not the binary release.
const protocolVersion = "1"

// Server handles the IPC for corrections
type Server struct {
	searcher *suggest.Searcher
	store    *dict.Store
	prox     *keyboard.ProximityInfo
	user     *suggest.UserDictionary

	maxLimit         int
	maxInput         int
	fullEditDistance bool

	dec *msgpack.Decoder
	buf *bufio.Writer
	enc *msgpack.Encoder
}

// NewServer creates a correction server reading requests from r and
// writing responses to w. Pass os.Stdin and os.Stdout for stdio IPC.
func NewServer(searcher *suggest.Searcher, store *dict.Store, prox *keyboard.ProximityInfo, user *suggest.UserDictionary, maxLimit, maxInput int, fullEditDistance bool, r io.Reader, w io.Writer) *Server {
	if maxLimit < 1 {
		maxLimit = 18
	}
	if maxInput < 1 {
		maxInput = 48
	}
	buf := bufio.NewWriter(w)
	return &Server{
		searcher:         searcher,
		store:            store,
		prox:             prox,
		user:             user,
		maxLimit:         maxLimit,
		maxInput:         maxInput,
		fullEditDistance: fullEditDistance,
		dec:              msgpack.NewDecoder(r),
		buf:              buf,
		enc:              msgpack.NewEncoder(buf),
	}
}

// Start begins the decode loop. It returns nil on clean EOF.
func (s *Server) Start() error {
	slog := logger.New("server")
	slog.Debug("Starting server.")

	s.send(StatusResponse{Status: "ready"})

	for {
		var req SuggestRequest
		if err := s.dec.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			slog.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches on the request action
func (s *Server) handleRequest(req SuggestRequest) {
	switch req.Action {
	case "suggest", "":
		s.handleSuggest(req)
	case "add_word":
		s.handleAddWord(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "version":
		s.send(StatusResponse{ID: req.ID, Status: "protocol/" + protocolVersion})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

// handleSuggest runs one correction search. Touch coordinates, when not
// supplied by the client, are synthesized from the layout's key centers.
func (s *Server) handleSuggest(req SuggestRequest) {
	if req.Word == "" {
		s.sendError(req.ID, "Missing 'w' parameter", 400)
		return
	}
	codes := []rune(req.Word)
	if len(codes) > s.maxInput {
		s.sendError(req.ID, fmt.Sprintf("Input exceeds maximum length of %d characters", s.maxInput), 400)
		return
	}

	xs, ys := req.X, req.Y
	if len(xs) != len(codes) || len(ys) != len(codes) {
		xs, ys = s.synthesizeCoords(codes)
	}

	var bigrams *suggest.BigramContext
	if req.Prev != "" {
		bigrams = suggest.NewBigramContext(req.Prev, s.store)
	}

	limit := req.Limit
	if limit < 1 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	start := time.Now()
	cands := s.searcher.Suggest(s.prox, xs, ys, codes, bigrams, req.FullEditDistance || s.fullEditDistance)
	elapsed := time.Since(start)

	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]Suggestion, len(cands))
	for i, c := range cands {
		out[i] = Suggestion{Word: c.Word, Rank: uint16(i + 1), Score: c.Score}
	}
	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleAddWord inserts into the user dictionary
func (s *Server) handleAddWord(req SuggestRequest) {
	if s.user == nil {
		s.sendError(req.ID, "User dictionary is disabled", 400)
		return
	}
	if req.Word == "" {
		s.sendError(req.ID, "Missing 'w' parameter", 400)
		return
	}
	s.user.AddWord(req.Word, req.Frequency)
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

// synthesizeCoords maps typed characters to their key centers. Characters
// without a key get negative coordinates, which disables grid proximity
// for that position.
func (s *Server) synthesizeCoords(codes []rune) (xs, ys []int) {
	xs = make([]int, len(codes))
	ys = make([]int, len(codes))
	for i, c := range codes {
		if x, y, ok := s.prox.KeyCenterOf(c); ok {
			xs[i], ys[i] = x, y
		} else {
			xs[i], ys[i] = -1, -1
		}
	}
	return xs, ys
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		logger.New("server").Errorf("Encoding response: %v", err)
		return
	}
	s.buf.Flush()
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
