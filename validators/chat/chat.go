package chatValidators

import (
	"complaintdesk/chatrelay"
	"complaintdesk/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func StreamChat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Messages []chatrelay.Message `json:"messages"`
			UserRole string              `json:"userRole"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Messages) == 0 {
			errors["messages"] = "At least one message is required!"
		}
		for _, m := range reqData.Messages {
			if m.Role != "user" && m.Role != "assistant" {
				errors["messages"] = "Message role must be 'user' or 'assistant'!"
				break
			}
			if strings.TrimSpace(m.Content) == "" {
				errors["messages"] = "Message content must not be empty!"
				break
			}
		}

		if reqData.UserRole != "student" && reqData.UserRole != "admin" {
			errors["userRole"] = "User role must be 'student' or 'admin'!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChat", reqData)
		return c.Next()
	}
}

func FormatComplaint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Category    string `json:"category"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Description = strings.TrimSpace(reqData.Description)
		if len(reqData.Description) < 10 {
			errors["description"] = "Description must be at least 10 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFormat", reqData)
		return c.Next()
	}
}
