package chatControllers

import (
	"bufio"
	"complaintdesk/chatrelay"
	"complaintdesk/middleware"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// StreamChat proxies the conversation to the AI gateway and re-exposes the
// incremental token stream as server-sent events, so the client renders
// partial output without waiting for completion.
func StreamChat(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedChat").(*struct {
		Messages []chatrelay.Message `json:"messages"`
		UserRole string              `json:"userRole"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Open the upstream first: pre-stream failures still get a plain JSON
	// response with the right status.
	stream, err := chatrelay.OpenStream(context.Background(), reqData.Messages, reqData.UserRole)
	if err != nil {
		switch {
		case errors.Is(err, chatrelay.ErrRateLimited):
			return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Rate limit exceeded. Please try again in a moment.", nil)
		case errors.Is(err, chatrelay.ErrServiceUnavailable):
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "AI service temporarily unavailable.", nil)
		default:
			log.Printf("Error opening AI stream: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reach the AI service!", nil)
		}
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer stream.Close()

		for {
			ev, err := stream.Next()
			if err != nil {
				break // EOF or upstream read failure; nothing more to send
			}
			if ev.Done {
				break
			}

			chunk, err := json.Marshal(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"delta": map[string]string{"content": ev.Content}},
				},
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", chunk)
			if err := w.Flush(); err != nil {
				// Caller disconnected: stop reading from upstream too.
				return
			}
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	})

	return nil
}

// FormatComplaint turns a brief description into a professionally worded
// complaint the student can submit.
func FormatComplaint(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFormat").(*struct {
		Title       string `json:"title"`
		Category    string `json:"category"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	formatted, err := chatrelay.FormatComplaint(c.UserContext(), reqData.Title, reqData.Category, reqData.Description)
	if err != nil {
		switch {
		case errors.Is(err, chatrelay.ErrRateLimited):
			return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Rate limit exceeded. Please try again in a moment.", nil)
		case errors.Is(err, chatrelay.ErrServiceUnavailable):
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "AI service temporarily unavailable.", nil)
		default:
			log.Printf("Error formatting complaint: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to format complaint!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint formatted successfully!", fiber.Map{
		"formattedText": formatted,
	})
}
