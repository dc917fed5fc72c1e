package complaintControllers

import (
	"complaintdesk/database"
	"complaintdesk/middleware"
	"complaintdesk/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminStats returns the counters the admin dashboard header shows:
// per-status totals plus how many complaints came in today / this week /
// this month, and how many calls are currently live.
func AdminStats(c *fiber.Ctx) error {
	db := database.Database.Db

	statuses := []string{
		models.StatusPending,
		models.StatusInProgress,
		models.StatusWaitingForStudent,
		models.StatusResolved,
		models.StatusCancelled,
	}

	byStatus := fiber.Map{}
	for _, status := range statuses {
		var count int64
		db.Model(&models.Complaint{}).Where("is_deleted = false AND status = ?", status).Count(&count)
		byStatus[status] = count
	}

	var total int64
	db.Model(&models.Complaint{}).Where("is_deleted = false").Count(&total)

	var today, thisWeek, thisMonth int64
	db.Model(&models.Complaint{}).Where("is_deleted = false AND created_at >= ?", now.BeginningOfDay()).Count(&today)
	db.Model(&models.Complaint{}).Where("is_deleted = false AND created_at >= ?", now.BeginningOfWeek()).Count(&thisWeek)
	db.Model(&models.Complaint{}).Where("is_deleted = false AND created_at >= ?", now.BeginningOfMonth()).Count(&thisMonth)

	var activeCalls int64
	db.Model(&models.VideoCall{}).Where("status = ? AND expires_at > ?", models.CallActive, time.Now()).Count(&activeCalls)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total":        total,
		"by_status":    byStatus,
		"today":        today,
		"this_week":    thisWeek,
		"this_month":   thisMonth,
		"active_calls": activeCalls,
	})
}
