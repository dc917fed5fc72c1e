package complaintControllers

import (
	"complaintdesk/config"
	"complaintdesk/database"
	"complaintdesk/middleware"
	"complaintdesk/models"
	"complaintdesk/utils"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func CreateComplaint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedComplaint").(*struct {
		Title       string `json:"title" form:"title"`
		Category    string `json:"category" form:"category"`
		Description string `json:"description" form:"description"`
		Location    string `json:"location" form:"location"`
		Urgency     string `json:"urgency" form:"urgency"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	complaint := models.Complaint{
		StudentID:   userId,
		Title:       reqData.Title,
		Category:    reqData.Category,
		Description: reqData.Description,
		Location:    reqData.Location,
		Urgency:     reqData.Urgency,
		Status:      models.StatusPending,
	}

	if err := database.Database.Db.Create(&complaint).Error; err != nil {
		log.Printf("Error creating complaint: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create complaint!", nil)
	}

	// Attachments are optional; a plain JSON body has no multipart form
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["media"] {
			mediaType := utils.DetectMediaType(file.Filename)
			if mediaType == "" {
				continue // unsupported type, skip silently like the UI filter does
			}
			storedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
			if err != nil {
				log.Printf("Error saving uploaded file %s: %v", file.Filename, err)
				continue
			}
			media := models.ComplaintMedia{
				ComplaintID: complaint.ID,
				FileName:    file.Filename,
				FilePath:    storedPath,
				MediaType:   mediaType,
			}
			if err := database.Database.Db.Create(&media).Error; err != nil {
				log.Printf("Error saving media record: %v", err)
			}
		}
	}

	// Let admins know a new complaint landed on the board
	notifyAdmins(&complaint, user.Name)

	database.Database.Db.Preload("Media").First(&complaint, complaint.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint created successfully!", complaint)
}

func notifyAdmins(complaint *models.Complaint, studentName string) {
	var admins []models.User
	if err := database.Database.Db.Where("role = ? AND is_deleted = ?", "ADMIN", false).Find(&admins).Error; err != nil {
		log.Printf("Error fetching admins for notification: %v", err)
		return
	}
	complaintID := complaint.ID
	for _, admin := range admins {
		n := models.Notification{
			UserID:      admin.ID,
			ComplaintID: &complaintID,
			Type:        models.NotifyNewComplaint,
			Message:     fmt.Sprintf("%s submitted a new complaint: \"%s\"", studentName, complaint.Title),
		}
		if err := database.Database.Db.Create(&n).Error; err != nil {
			log.Printf("Error creating admin notification: %v", err)
		}
	}
}

func ComplaintList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page     *int    `query:"page"`
		Limit    *int    `query:"limit"`
		Status   *string `query:"status"`
		Category *string `query:"category"`
		Urgency  *string `query:"urgency"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
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

	db := database.Database.Db.Model(&models.Complaint{}).Where("student_id = ? AND is_deleted = false", userId)
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
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetComplaint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	complaintId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || complaintId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid complaint ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var complaint models.Complaint
	query := database.Database.Db.Preload("Media").Where("id = ? AND is_deleted = false", complaintId)
	if user.Role != "ADMIN" {
		query = query.Where("student_id = ?", userId)
	}
	if err := query.First(&complaint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint fetched successfully!", complaint)
}

func UpdateComplaint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpdate").(*struct {
		ComplaintID uint    `json:"complaintId" form:"complaintId"`
		Title       *string `json:"title" form:"title"`
		Category    *string `json:"category" form:"category"`
		Description *string `json:"description" form:"description"`
		Location    *string `json:"location" form:"location"`
		Urgency     *string `json:"urgency" form:"urgency"`
		RemoveMedia []uint  `json:"removeMedia" form:"removeMedia"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var complaint models.Complaint
	if err := database.Database.Db.Where("id = ? AND student_id = ? AND is_deleted = false",
		reqData.ComplaintID, userId).First(&complaint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
	}

	// Students may only edit while the complaint is still Pending
	if complaint.Status != models.StatusPending {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only pending complaints can be edited!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Category != nil {
		updates["category"] = *reqData.Category
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Location != nil {
		updates["location"] = *reqData.Location
	}
	if reqData.Urgency != nil {
		updates["urgency"] = *reqData.Urgency
	}

	if len(updates) > 0 {
		if err := database.Database.Db.Model(&complaint).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update complaint!", nil)
		}
	}

	// Remove media the student dropped, stored file included
	for _, mediaId := range reqData.RemoveMedia {
		var media models.ComplaintMedia
		if err := database.Database.Db.Where("id = ? AND complaint_id = ?", mediaId, complaint.ID).First(&media).Error; err != nil {
			continue
		}
		if err := utils.DeleteStoredFile(media.FilePath); err != nil {
			log.Printf("Error deleting stored file %s: %v", media.FilePath, err)
		}
		database.Database.Db.Unscoped().Delete(&media)
	}

	// Newly attached media
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["media"] {
			mediaType := utils.DetectMediaType(file.Filename)
			if mediaType == "" {
				continue
			}
			storedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
			if err != nil {
				log.Printf("Error saving uploaded file %s: %v", file.Filename, err)
				continue
			}
			media := models.ComplaintMedia{
				ComplaintID: complaint.ID,
				FileName:    file.Filename,
				FilePath:    storedPath,
				MediaType:   mediaType,
			}
			database.Database.Db.Create(&media)
		}
	}

	database.Database.Db.Preload("Media").First(&complaint, complaint.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint updated successfully!", complaint)
}

func DeleteComplaint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	complaintId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || complaintId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid complaint ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var complaint models.Complaint
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", complaintId).First(&complaint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
	}

	// Owners may delete only while Pending; admins may delete any time
	if user.Role != "ADMIN" {
		if complaint.StudentID != userId {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this complaint!", nil)
		}
		if complaint.Status != models.StatusPending {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only pending complaints can be deleted!", nil)
		}
	}

	// Media rows and their stored files go with the complaint
	var mediaList []models.ComplaintMedia
	database.Database.Db.Where("complaint_id = ?", complaint.ID).Find(&mediaList)
	for _, media := range mediaList {
		if err := utils.DeleteStoredFile(media.FilePath); err != nil {
			log.Printf("Error deleting stored file %s: %v", media.FilePath, err)
		}
		database.Database.Db.Unscoped().Delete(&media)
	}

	if err := database.Database.Db.Model(&complaint).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete complaint!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint deleted successfully!", nil)
}
