package complaintControllers

import (
	"complaintdesk/database"
	"complaintdesk/middleware"
	"complaintdesk/models"
	"complaintdesk/utils"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

func AdminComplaintList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page     *int    `query:"page"`
		Limit    *int    `query:"limit"`
		Status   *string `query:"status"`
		Category *string `query:"category"`
		Urgency  *string `query:"urgency"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Complaint{}).Where("is_deleted = false")
	if reqData.Status != nil {
		db = db.Where("status = ?", *reqData.Status)
	}
	if reqData.Category != nil {
		db = db.Where("category = ?", *reqData.Category)
	}
	if reqData.Urgency != nil {
		db = db.Where("urgency = ?", *reqData.Urgency)
	}

	var total int64
	db.Count(&total)

	var complaints []models.Complaint
	if err := db.Preload("Media").Order("created_at DESC").Offset(offset).Limit(limit).Find(&complaints).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch complaints!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaints fetched successfully!", fiber.Map{
		"complaints": complaints,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func AdminUpdateStatus(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStatusUpdate").(*struct {
		ComplaintID     uint    `json:"complaintId"`
		Status          string  `json:"status"`
		ResolutionNotes *string `json:"resolutionNotes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var complaint models.Complaint
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", reqData.ComplaintID).First(&complaint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
	}

	updates := map[string]interface{}{"status": reqData.Status}
	if reqData.ResolutionNotes != nil {
		updates["resolution_notes"] = *reqData.ResolutionNotes
	}

	if err := database.Database.Db.Model(&complaint).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}

	// Tell the student their complaint moved
	complaintID := complaint.ID
	notification := models.Notification{
		UserID:      complaint.StudentID,
		ComplaintID: &complaintID,
		Type:        models.NotifyStatusUpdate,
		Message:     fmt.Sprintf("Your complaint \"%s\" is now: %s", complaint.Title, reqData.Status),
	}
	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Error creating status notification: %v", err)
	}

	// Email is best-effort, off the request path
	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", complaint.StudentID, false).First(&student).Error; err == nil {
		notes := ""
		if reqData.ResolutionNotes != nil {
			notes = *reqData.ResolutionNotes
		}
		go func(name, email, title, status, notes string) {
			if err := utils.SendStatusUpdateEmail(name, email, title, status, notes); err != nil {
				log.Printf("Error sending status email: %v", err)
			}
		}(student.Name, student.Email, complaint.Title, reqData.Status, notes)
	}

	database.Database.Db.First(&complaint, complaint.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated successfully!", complaint)
}
