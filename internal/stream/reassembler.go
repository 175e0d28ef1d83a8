// Package stream decodes the relay's SSE byte stream back into text
// fragments. It is the consuming half of the wire protocol: the server
// pipes the upstream body through verbatim, and this package reassembles
// `data: {...}` lines into the answer text on the client side.
package stream

import (
	"bytes"
	"io"
	"strings"

	"github.com/bytedance/sonic"
)

const dataPrefix = "data: "

// doneToken terminates the stream.
const doneToken = "[DONE]"

// chunk mirrors the delta-bearing part of one upstream payload.
type chunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Reassembler incrementally decodes an SSE stream. Bytes are fed in
// arbitrary network-chunk sizes; only complete newline-terminated lines
// are parsed. A data line whose JSON fails to parse is treated as
// incomplete and held back until more bytes arrive; Flush at stream end
// processes whatever remains and silently drops lines that still fail.
//
// The final Content equals the exact concatenation of all delta
// fragments in arrival order.
type Reassembler struct {
	pending []byte
	content strings.Builder
	done    bool
}

// NewReassembler returns an empty reassembler.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Feed consumes the next network chunk and returns the text fragments
// completed by it, plus whether the terminal [DONE] marker was seen.
// After done, further input is ignored.
func (r *Reassembler) Feed(p []byte) ([]string, bool) {
	if r.done {
		return nil, true
	}
	r.pending = append(r.pending, p...)

	var fragments []string
	for {
		idx := bytes.IndexByte(r.pending, '\n')
		if idx < 0 {
			break
		}
		line := string(r.pending[:idx])
		rest := r.pending[idx+1:]

		payload, isData := dataPayload(line)
		if !isData {
			r.pending = rest
			continue
		}
		if payload == doneToken {
			r.done = true
			r.pending = nil
			return fragments, true
		}

		fragment, ok := parseDelta(payload)
		if !ok {
			// Looks truncated by a chunk boundary: keep the line
			// buffered and wait for more bytes.
			break
		}
		r.pending = rest
		if fragment != "" {
			fragments = append(fragments, fragment)
			r.content.WriteString(fragment)
		}
	}

	return fragments, false
}

// Flush processes any buffered remainder at stream end. Lines that still
// fail to parse are dropped.
func (r *Reassembler) Flush() []string {
	var fragments []string
	for _, line := range strings.Split(string(r.pending), "\n") {
		payload, isData := dataPayload(line)
		if !isData || payload == doneToken {
			continue
		}
		if fragment, ok := parseDelta(payload); ok && fragment != "" {
			fragments = append(fragments, fragment)
			r.content.WriteString(fragment)
		}
	}
	r.pending = nil
	return fragments
}

// Content returns the answer accumulated so far.
func (r *Reassembler) Content() string {
	return r.content.String()
}

// Done reports whether the terminal marker was seen.
func (r *Reassembler) Done() bool {
	return r.done
}

// dataPayload strips SSE framing from one line: blanks and `:` comments
// are skipped, only `data: ` lines carry a payload.
func dataPayload(line string) (string, bool) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" || strings.HasPrefix(line, ":") {
		return "", false
	}
	if !strings.HasPrefix(line, dataPrefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(dataPrefix):]), true
}

// parseDelta extracts choices[0].delta.content from one payload.
func parseDelta(payload string) (string, bool) {
	var ch chunk
	if err := sonic.Unmarshal([]byte(payload), &ch); err != nil {
		return "", false
	}
	if len(ch.Choices) == 0 {
		return "", true
	}
	return ch.Choices[0].Delta.Content, true
}

// Drain reads the whole stream, invoking fn once per fragment as it
// arrives, and returns the reassembled answer. Reading stops at the
// terminal marker or EOF, whichever comes first; a final flush handles
// any unterminated tail.
func Drain(r io.Reader, fn func(fragment string)) (string, error) {
	re := NewReassembler()
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			fragments, done := re.Feed(buf[:n])
			for _, f := range fragments {
				if fn != nil {
					fn(f)
				}
			}
			if done {
				return re.Content(), nil
			}
		}
		if err != nil {
			for _, f := range re.Flush() {
				if fn != nil {
					fn(f)
				}
			}
			if err == io.EOF {
				return re.Content(), nil
			}
			return re.Content(), err
		}
	}
}
