package chatrelay

import (
	"complaintdesk/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
)

// Errors surfaced to the request boundary. Rate limiting and quota
// exhaustion keep their upstream statuses; everything else is a 500.
var (
	ErrNotConfigured      = errors.New("AI gateway is not configured")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrServiceUnavailable = errors.New("AI service temporarily unavailable")
	ErrNoBody             = errors.New("upstream stream ended without a body")
)

const chatModel = "google/gemini-2.5-flash"

// Message is one turn of the accumulated conversation.
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

const studentSystemPrompt = `You are the ComplaintDesk AI assistant helping a student.
You can explain the complaint process, what each status means (Pending, In Progress,
Waiting for Student, Resolved, Cancelled), how to submit or edit complaints, and how
voice/video calls with administrators work. Be concise and friendly. If asked about a
specific complaint's outcome, explain you cannot see complaint data and suggest
checking the dashboard.`

const adminSystemPrompt = `You are the ComplaintDesk AI assistant helping an administrator.
You can help draft resolution notes, suggest how to prioritise complaints by urgency and
category, and answer questions about managing the complaint workflow. Be concise and
professional. Do not invent details about specific complaints.`

func systemPrompt(userRole string) string {
	if userRole == "admin" {
		return adminSystemPrompt
	}
	return studentSystemPrompt
}

// Stream is an open incremental completion. Events come out in upstream
// order; the caller must Close it.
type Stream struct {
	body    io.ReadCloser
	dec     Decoder
	pending []Event
	eof     bool
	buf     []byte
}

// OpenStream forwards the conversation to the AI gateway and returns once
// the response status is known, so callers can still answer with a plain
// error before committing to a streamed response. Upstream 429 maps to
// ErrRateLimited, 402 to ErrServiceUnavailable.
func OpenStream(ctx context.Context, messages []Message, userRole string) (*Stream, error) {
	if config.AppConfig.AIGatewayKey == "" {
		return nil, ErrNotConfigured
	}

	payload := map[string]interface{}{
		"model":    chatModel,
		"stream":   true,
		"messages": append([]Message{{Role: "system", Content: systemPrompt(userRole)}}, messages...),
	}

	resp, err := resty.New().R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetAuthToken(config.AppConfig.AIGatewayKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(config.AppConfig.AIGatewayURL)
	if err != nil {
		return nil, fmt.Errorf("AI gateway request failed: %w", err)
	}

	body := resp.RawBody()
	if body == nil {
		return nil, ErrNoBody
	}

	switch resp.StatusCode() {
	case 200:
		return &Stream{body: body, buf: make([]byte, 4096)}, nil
	case 429:
		body.Close()
		return nil, ErrRateLimited
	case 402:
		body.Close()
		return nil, ErrServiceUnavailable
	default:
		body.Close()
		return nil, fmt.Errorf("AI gateway error: status %d", resp.StatusCode())
	}
}

// Next returns the next decoded event. io.EOF means the upstream closed
// without a terminal sentinel; an Event with Done set is the sentinel
// itself and the stream is finished after it.
func (s *Stream) Next() (Event, error) {
	for {
		if len(s.pending) > 0 {
			ev := s.pending[0]
			s.pending = s.pending[1:]
			return ev, nil
		}
		if s.eof {
			return Event{}, io.EOF
		}

		n, err := s.body.Read(s.buf)
		if n > 0 {
			s.pending = s.dec.Feed(s.buf[:n])
		}
		if err == io.EOF {
			s.pending = append(s.pending, s.dec.Flush()...)
			s.eof = true
			continue
		}
		if err != nil {
			return Event{}, fmt.Errorf("reading AI gateway stream: %w", err)
		}
	}
}

func (s *Stream) Close() error {
	return s.body.Close()
}

// StreamCompletion is the convenience wrapper: surfaces each fragment to
// onDelta in order and returns at the sentinel or end of stream. An error
// from onDelta (e.g. the caller went away) aborts the upstream read.
func StreamCompletion(ctx context.Context, messages []Message, userRole string, onDelta func(string) error) error {
	stream, err := OpenStream(ctx, messages, userRole)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		ev, err := stream.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if ev.Done {
			return nil
		}
		if err := onDelta(ev.Content); err != nil {
			return err
		}
	}
}

// FormatComplaint asks the gateway to rewrite a brief description into a
// well-structured complaint. Non-streaming.
func FormatComplaint(ctx context.Context, title, category, description string) (string, error) {
	if config.AppConfig.AIGatewayKey == "" {
		return "", ErrNotConfigured
	}

	systemMsg := `You are a complaint formatting assistant for students.
Transform brief complaint descriptions into well-structured, professional complaints.

Guidelines:
- Keep the tone respectful but clear about the issue
- Include: issue description, impact on studies/stay, and a polite request for resolution
- Keep it concise (150-250 words max)
- Do NOT add fictional details - only expand on what the user provided
- Do NOT include placeholders like [date] or [name]
- Write in first person ("I am facing...")
- Be specific about the problem without inventing facts`

	if category == "" {
		category = "General"
	}
	userMsg := fmt.Sprintf("Category: %s\nBrief description: %s\n\nPlease format this into a professional complaint.", category, description)
	if title != "" {
		userMsg = fmt.Sprintf("Category: %s\nTitle: %s\nBrief description: %s\n\nPlease format this into a professional complaint.", category, title, description)
	}

	resp, err := resty.New().R().
		SetContext(ctx).
		SetAuthToken(config.AppConfig.AIGatewayKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": chatModel,
			"messages": []Message{
				{Role: "system", Content: systemMsg},
				{Role: "user", Content: userMsg},
			},
		}).
		Post(config.AppConfig.AIGatewayURL)
	if err != nil {
		return "", fmt.Errorf("AI gateway request failed: %w", err)
	}

	switch resp.StatusCode() {
	case 200:
	case 429:
		return "", ErrRateLimited
	case 402:
		return "", ErrServiceUnavailable
	default:
		return "", fmt.Errorf("AI gateway error: status %d", resp.StatusCode())
	}

	var data struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return "", fmt.Errorf("invalid AI gateway response: %w", err)
	}
	if len(data.Choices) == 0 || data.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from AI")
	}
	return data.Choices[0].Message.Content, nil
}
