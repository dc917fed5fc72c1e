package userValidator

import (
	"complaintdesk/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name  *string `json:"name"`
			Phone *string `json:"phone"`
			Batch *string `json:"batch"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil {
			*reqData.Name = strings.TrimSpace(*reqData.Name)
			if len(*reqData.Name) < 2 {
				errors["name"] = "Name must be at least 2 characters long!"
			}
		}
		if reqData.Phone != nil && *reqData.Phone != "" {
			if matched, _ := regexp.MatchString(`^[0-9+\- ]{7,15}$`, *reqData.Phone); !matched {
				errors["phone"] = "Invalid phone number!"
			}
		}
		if reqData.Batch != nil && len(*reqData.Batch) > 50 {
			errors["batch"] = "Batch must not exceed 50 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
