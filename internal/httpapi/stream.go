package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// frameWriter encodes stream chunks onto the response body.
type frameWriter interface {
	text(s string) error
	fail(msg string) error
	done() error
}

// wantsNDJSON reports whether the client asked for newline-delimited JSON
// instead of server-sent events.
func wantsNDJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "ndjson" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "application/x-ndjson")
}

// sseWriter writes text/event-stream frames:
//
//	data: <text>\n\n
//	event: error\ndata: <msg>\n\n
//	data: [DONE]\n\n
//
// Multi-line text is split into consecutive data lines. The stream id is
// sent as the id field of the first frame.
type sseWriter struct {
	w     io.Writer
	flush func()
	id    string
}

func (s *sseWriter) frame(event, payload string) error {
	var b strings.Builder
	if s.id != "" {
		b.WriteString("id: ")
		b.WriteString(s.id)
		b.WriteByte('\n')
		s.id = ""
	}
	if event != "" {
		b.WriteString("event: ")
		b.WriteString(event)
		b.WriteByte('\n')
	}
	for _, line := range sseLines(payload) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return err
	}
	s.flush()
	return nil
}

// sseLines splits payload on CRLF, CR and LF, the line terminators of the
// event-stream grammar. Clients join data lines with LF.
func sseLines(payload string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(payload); i++ {
		switch payload[i] {
		case '\n':
			lines = append(lines, payload[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, payload[start:i])
			if i+1 < len(payload) && payload[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, payload[start:])
}

func (s *sseWriter) text(t string) error   { return s.frame("", t) }
func (s *sseWriter) fail(msg string) error { return s.frame("error", msg) }
func (s *sseWriter) done() error           { return s.frame("", "[DONE]") }

type ndjsonToken struct {
	Token string `json:"token"`
}

type ndjsonError struct {
	Error string `json:"error"`
}

type ndjsonDone struct {
	Done    bool   `json:"done"`
	Content string `json:"content"`
	Chunks  int    `json:"chunks"`
}

// ndjsonWriter writes one JSON object per line; the final line carries the
// aggregated content.
type ndjsonWriter struct {
	enc    *json.Encoder
	flush  func()
	buf    strings.Builder
	chunks int
}

func newNDJSONWriter(w io.Writer, flush func()) *ndjsonWriter {
	return &ndjsonWriter{enc: json.NewEncoder(w), flush: flush}
}

func (n *ndjsonWriter) write(v any) error {
	if err := n.enc.Encode(v); err != nil {
		return err
	}
	n.flush()
	return nil
}

func (n *ndjsonWriter) text(t string) error {
	n.buf.WriteString(t)
	n.chunks++
	return n.write(ndjsonToken{Token: t})
}

func (n *ndjsonWriter) fail(msg string) error { return n.write(ndjsonError{Error: msg}) }

func (n *ndjsonWriter) done() error {
	return n.write(ndjsonDone{Done: true, Content: n.buf.String(), Chunks: n.chunks})
}
