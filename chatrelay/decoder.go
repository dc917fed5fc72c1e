package chatrelay

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Event is one logical record decoded from the upstream stream: either an
// incremental content fragment or the terminal sentinel.
type Event struct {
	Content string
	Done    bool
}

// Decoder reassembles the upstream line-delimited event protocol from raw
// network chunks. Feed bytes in, get zero or more complete events out; any
// trailing incomplete line stays buffered for the next feed, so a chunk
// split mid-line still decodes into a single fragment.
type Decoder struct {
	buf []byte
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Feed appends a network chunk and returns the events completed by it.
// Decoding stops at the first [DONE] sentinel.
func (d *Decoder) Feed(p []byte) []Event {
	d.buf = append(d.buf, p...)

	var events []Event
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			return events
		}

		line := string(d.buf[:i])
		rest := d.buf[i+1:]
		line = strings.TrimSuffix(line, "\r")

		// Comments and keep-alive blank lines carry nothing.
		if strings.HasPrefix(line, ":") || strings.TrimSpace(line) == "" {
			d.buf = rest
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			d.buf = rest
			continue
		}

		payload := strings.TrimSpace(line[len("data: "):])
		if payload == "[DONE]" {
			d.buf = rest
			return append(events, Event{Done: true})
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// Not valid JSON yet: treat the line as an incomplete buffered
			// fragment and leave it in place for reassembly with the next
			// feed instead of discarding it.
			return events
		}

		d.buf = rest
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			events = append(events, Event{Content: chunk.Choices[0].Delta.Content})
		}
	}
}

// Flush drains whatever is left in the buffer at end of stream, parsing any
// complete records and silently dropping partial leftovers.
func (d *Decoder) Flush() []Event {
	var events []Event
	for _, raw := range strings.Split(string(d.buf), "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if raw == "" || strings.HasPrefix(raw, ":") || strings.TrimSpace(raw) == "" {
			continue
		}
		if !strings.HasPrefix(raw, "data: ") {
			continue
		}
		payload := strings.TrimSpace(raw[len("data: "):])
		if payload == "[DONE]" {
			continue
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			events = append(events, Event{Content: chunk.Choices[0].Delta.Content})
		}
	}
	d.buf = nil
	return events
}
