package callValidators

import (
	"complaintdesk/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ComplaintID uint `json:"complaintId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ComplaintID == 0 {
			errors["complaintId"] = "Complaint ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateRoom", reqData)
		return c.Next()
	}
}

func EndCall() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			VideoCallID uint `json:"videoCallId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.VideoCallID == 0 {
			errors["videoCallId"] = "Video call ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEndCall", reqData)
		return c.Next()
	}
}
