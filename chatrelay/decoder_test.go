package chatrelay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecoderFragmentsInOrder(t *testing.T) {
	d := &Decoder{}

	events := d.Feed([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n"))
	events = append(events, d.Feed([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n"))...)
	events = append(events, d.Feed([]byte("data: [DONE]\n"))...)

	assert.Equal(t, []Event{
		{Content: "Hel"},
		{Content: "lo"},
		{Done: true},
	}, events)
}

func TestDecoderMidLineSplit(t *testing.T) {
	d := &Decoder{}

	// Chunk boundary lands in the middle of the JSON payload
	events := d.Feed([]byte("data: {\"choi"))
	assert.Empty(t, events)

	events = d.Feed([]byte("ces\":[{\"delta\":{\"content\":\"Hello\"}}]}\n"))
	assert.Equal(t, []Event{{Content: "Hello"}}, events)
}

func TestDecoderSkipsCommentsAndBlanks(t *testing.T) {
	d := &Decoder{}

	events := d.Feed([]byte(": keep-alive\n\n\r\ndata: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n"))
	assert.Equal(t, []Event{{Content: "x"}}, events)
}

func TestDecoderStripsCarriageReturn(t *testing.T) {
	d := &Decoder{}

	events := d.Feed([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\r\n"))
	assert.Equal(t, []Event{{Content: "x"}}, events)
}

func TestDecoderEmptyDeltaProducesNoEvent(t *testing.T) {
	d := &Decoder{}

	events := d.Feed([]byte("data: {\"choices\":[{\"delta\":{}}]}\n"))
	assert.Empty(t, events)
}

func TestDecoderMultipleLinesInOneChunk(t *testing.T) {
	d := &Decoder{}

	chunk := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n" +
		"data: [DONE]\n"
	events := d.Feed([]byte(chunk))

	assert.Equal(t, []Event{{Content: "a"}, {Content: "b"}, {Done: true}}, events)
}

func TestDecoderInvalidJSONIsBufferedNotDropped(t *testing.T) {
	d := &Decoder{}

	// A complete line that is not yet valid JSON stays buffered instead of
	// being discarded outright
	events := d.Feed([]byte("data: {\"truncated\n"))
	assert.Empty(t, events)

	// Flush at end of stream drops the unparseable leftover
	assert.Empty(t, d.Flush())
}

func TestDecoderFlushParsesCompleteLeftover(t *testing.T) {
	d := &Decoder{}

	// Upstream closed without a trailing newline on the last record
	events := d.Feed([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"tail\"}}]}"))
	assert.Empty(t, events)

	assert.Equal(t, []Event{{Content: "tail"}}, d.Flush())
}
