/*
Package server implements msgpack IPC for the correction engine.

The server reads structured messages from stdin and writes responses to
stdout using binary msgpack encoding. Messages are processed
synchronously with timing info included in responses.

# IPC

Each request carries an ID and an action. The main action is "suggest":

	{"id": "req_001", "action": "suggest", "w": "gello", "x": [...], "y": [...], "l": 18}

The optional x/y arrays are the per-keystroke touch coordinates; when
absent, the server synthesizes them from the built-in layout's key
centers. "prev" supplies the previously committed word for bigram
reranking. The server responds with suggestions ranked by score:

	{"id": "req_001", "s": [{"w": "hello", "r": 1, "s": 812}], "c": 1, "t": 145}

"add_word" inserts a word into the dynamic user dictionary:

	{"id": "req_002", "action": "add_word", "w": "grafana", "f": 120}

"health" answers with a status map. Unknown actions produce an error
response with a 400 code.

msgpack's binary format keeps messages small and parsing cheap compared
to JSON, which matters at per-keystroke request rates.
*/
package server

// SuggestRequest - correction request for one in-progress word
type SuggestRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Word   string `msgpack:"w,omitempty"`
	X      []int  `msgpack:"x,omitempty"`
	Y      []int  `msgpack:"y,omitempty"`
	Prev   string `msgpack:"prev,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	// Frequency applies to "add_word".
	Frequency int `msgpack:"f,omitempty"`
	// FullEditDistance permits substitutions outside the proximity sets.
	FullEditDistance bool `msgpack:"full,omitempty"`
}

// Suggestion - one ranked candidate
type Suggestion struct {
	Word  string `msgpack:"w"`
	Rank  uint16 `msgpack:"r"`
	Score int    `msgpack:"s"`
}

// SuggestResponse - correction response
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// StatusResponse - status reply for health and add_word
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
