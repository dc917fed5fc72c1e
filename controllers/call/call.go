package callControllers

import (
	"complaintdesk/callprovider"
	"complaintdesk/database"
	"complaintdesk/middleware"
	"complaintdesk/models"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrForbidden         = errors.New("caller is not allowed to start this call")
)

// ProvisionCall runs the full room workflow: create the room with the
// provider, then in one transaction end prior active calls (providers that
// do so), insert the new call record and notify the student. The external
// room is created first; if the store writes fail afterwards, the room is
// leaked until its TTL, which is accepted given the short lifetimes.
func ProvisionCall(db *gorm.DB, provider callprovider.Provider, caller *models.User, complaintID uint, notifyType string) (*models.VideoCall, *callprovider.Room, error) {
	isAdmin := caller.Role == "ADMIN"

	if provider.AdminOnly() && !isAdmin {
		return nil, nil, ErrForbidden
	}

	var complaint models.Complaint
	if err := db.Where("id = ? AND is_deleted = false", complaintID).First(&complaint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrComplaintNotFound
		}
		return nil, nil, err
	}

	room, err := provider.CreateRoom(context.Background(), complaint.ID)
	if err != nil {
		return nil, nil, err
	}

	call := models.VideoCall{
		ComplaintID:      complaint.ID,
		RoomID:           room.ID,
		RoomURL:          room.URL,
		ExpiresAt:        room.ExpiresAt,
		Status:           models.CallActive,
		InitiatedByAdmin: isAdmin,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if provider.EndsPriorCalls() {
			now := time.Now()
			if err := tx.Model(&models.VideoCall{}).
				Where("complaint_id = ? AND status = ?", complaint.ID, models.CallActive).
				Updates(map[string]interface{}{"status": models.CallEnded, "ended_at": now}).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&call).Error; err != nil {
			return err
		}

		// Only admin-initiated calls notify the counterparty; students
		// cannot address admins individually.
		if isAdmin {
			verb := "started a video call"
			if notifyType == models.NotifyCallRequest {
				verb = "is requesting a voice call"
			}
			complaintRef := complaint.ID
			notification := models.Notification{
				UserID:      complaint.StudentID,
				ComplaintID: &complaintRef,
				Type:        notifyType,
				Message:     fmt.Sprintf("Admin %s regarding your complaint: \"%s\"", verb, complaint.Title),
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &call, room, nil
}

func provisionRoomHandler(c *fiber.Ctx, provider callprovider.Provider, notifyType string) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCreateRoom").(*struct {
		ComplaintID uint `json:"complaintId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	call, room, err := ProvisionCall(database.Database.Db, provider, &user, reqData.ComplaintID, notifyType)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can start this call!", nil)
		case errors.Is(err, ErrComplaintNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
		default:
			log.Printf("Error provisioning call room: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create call room!", nil)
		}
	}

	data := fiber.Map{
		"videoCallId": call.ID,
		"roomId":      room.ID,
		"expiresAt":   call.ExpiresAt,
	}
	if room.URL != "" {
		data["roomUrl"] = room.URL
	}
	if room.Token != "" {
		data["token"] = room.Token
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Call room created successfully!", data)
}

// CreateVideoRoom provisions a URL-based video room. Either party may start
// one; only admin-initiated rooms generate a notification.
func CreateVideoRoom(c *fiber.Ctx) error {
	return provisionRoomHandler(c, callprovider.Video, models.NotifyVideoCallRequest)
}

// CreateVoiceRoom provisions a token-based voice room. Admin only.
func CreateVoiceRoom(c *fiber.Ctx) error {
	return provisionRoomHandler(c, callprovider.Voice, models.NotifyCallRequest)
}

// GetActiveCall returns the live call for a complaint, if any. Rows past
// their expiry are treated as inactive even if the sweeper has not flipped
// them yet.
func GetActiveCall(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	complaintId, err := strconv.ParseUint(c.Params("complaintId"), 10, 32)
	if err != nil || complaintId == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid complaint ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var complaint models.Complaint
	query := database.Database.Db.Where("id = ? AND is_deleted = false", complaintId)
	if user.Role != "ADMIN" {
		query = query.Where("student_id = ?", userId)
	}
	if err := query.First(&complaint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
	}

	var call models.VideoCall
	err = database.Database.Db.
		Where("complaint_id = ? AND status = ? AND expires_at > ?", complaint.ID, models.CallActive, time.Now()).
		Order("created_at DESC").
		First(&call).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No active call.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Active call fetched successfully!", call)
}

// EndCall flips an active call to ended (hangup).
func EndCall(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEndCall").(*struct {
		VideoCallID uint `json:"videoCallId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var call models.VideoCall
	if err := database.Database.Db.Where("id = ?", reqData.VideoCallID).First(&call).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Call not found!", nil)
	}

	// Only the complaint owner or an admin may hang up the record
	if user.Role != "ADMIN" {
		var complaint models.Complaint
		if err := database.Database.Db.Where("id = ? AND student_id = ?", call.ComplaintID, userId).First(&complaint).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this call!", nil)
		}
	}

	if call.Status != models.CallActive {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Call already ended.", call)
	}

	now := time.Now()
	if err := database.Database.Db.Model(&call).
		Updates(map[string]interface{}{"status": models.CallEnded, "ended_at": now}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to end call!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Call ended successfully!", call)
}
