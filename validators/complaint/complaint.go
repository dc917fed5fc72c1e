package complaintValidators

import (
	"complaintdesk/middleware"
	"complaintdesk/models"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validCategory = map[string]bool{
	"System": true, "Hostel": true, "Internet": true,
	"Food": true, "Behaviour": true, "Others": true,
}

var validUrgency = map[string]bool{"Low": true, "Medium": true, "High": true}

var validStatus = map[string]bool{
	models.StatusPending:           true,
	models.StatusInProgress:        true,
	models.StatusWaitingForStudent: true,
	models.StatusResolved:          true,
	models.StatusCancelled:         true,
}

func CreateComplaint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" form:"title"`
			Category    string `json:"category" form:"category"`
			Description string `json:"description" form:"description"`
			Location    string `json:"location" form:"location"`
			Urgency     string `json:"urgency" form:"urgency"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else {
			if len(reqData.Title) < 3 {
				errors["title"] = "Title must be at least 3 characters long!"
			}
			if len(reqData.Title) > 100 {
				errors["title"] = "Title must not exceed 100 characters!"
			}
			if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Title); matched {
				errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
			}
		}

		reqData.Description = strings.TrimSpace(reqData.Description)
		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 10 {
			errors["description"] = "Description must be at least 10 characters long!"
		}

		if reqData.Category == "" {
			reqData.Category = "Others"
		} else if !validCategory[reqData.Category] {
			errors["category"] = "Invalid category! Allowed: System, Hostel, Internet, Food, Behaviour, Others"
		}

		if reqData.Urgency == "" {
			reqData.Urgency = "Low"
		} else if !validUrgency[reqData.Urgency] {
			errors["urgency"] = "Invalid urgency! Allowed: Low, Medium, High"
		}

		if len(reqData.Location) > 200 {
			errors["location"] = "Location must not exceed 200 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComplaint", reqData)
		return c.Next()
	}
}

func UpdateComplaint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ComplaintID uint    `json:"complaintId" form:"complaintId"`
			Title       *string `json:"title" form:"title"`
			Category    *string `json:"category" form:"category"`
			Description *string `json:"description" form:"description"`
			Location    *string `json:"location" form:"location"`
			Urgency     *string `json:"urgency" form:"urgency"`
			RemoveMedia []uint  `json:"removeMedia" form:"removeMedia"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ComplaintID == 0 {
			errors["complaintId"] = "Complaint ID is required!"
		}
		if reqData.Title != nil {
			*reqData.Title = strings.TrimSpace(*reqData.Title)
			if len(*reqData.Title) < 3 || len(*reqData.Title) > 100 {
				errors["title"] = "Title must be between 3 and 100 characters!"
			}
		}
		if reqData.Description != nil {
			*reqData.Description = strings.TrimSpace(*reqData.Description)
			if len(*reqData.Description) < 10 {
				errors["description"] = "Description must be at least 10 characters long!"
			}
		}
		if reqData.Category != nil && !validCategory[*reqData.Category] {
			errors["category"] = "Invalid category! Allowed: System, Hostel, Internet, Food, Behaviour, Others"
		}
		if reqData.Urgency != nil && !validUrgency[*reqData.Urgency] {
			errors["urgency"] = "Invalid urgency! Allowed: Low, Medium, High"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdate", reqData)
		return c.Next()
	}
}

func ListComplaints() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int    `query:"page"`
			Limit    *int    `query:"limit"`
			Status   *string `query:"status"`
			Category *string `query:"category"`
			Urgency  *string `query:"urgency"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Status != nil && !validStatus[*reqData.Status] {
			errors["status"] = "Invalid status! Must be one of: Pending, In Progress, Waiting for Student, Resolved, Cancelled."
		}
		if reqData.Category != nil && !validCategory[*reqData.Category] {
			errors["category"] = "Invalid category!"
		}
		if reqData.Urgency != nil && !validUrgency[*reqData.Urgency] {
			errors["urgency"] = "Invalid urgency!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func AdminUpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ComplaintID     uint    `json:"complaintId"`
			Status          string  `json:"status"`
			ResolutionNotes *string `json:"resolutionNotes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ComplaintID == 0 {
			errors["complaintId"] = "Complaint ID is required!"
		}
		if !validStatus[reqData.Status] {
			errors["status"] = "Invalid status! Must be one of: Pending, In Progress, Waiting for Student, Resolved, Cancelled."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatusUpdate", reqData)
		return c.Next()
	}
}
