package utils

import (
	"complaintdesk/database"
	"complaintdesk/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logSweeper logs sweeper events with timestamp
func logSweeper(message string) {
	log.Printf("[CALL-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// SweepExpiredCalls flips active call records past their expiry to ended.
// Readers still compare expires_at against now, since a row can expire
// between ticks.
func SweepExpiredCalls() {
	now := time.Now()
	result := database.Database.Db.Model(&models.VideoCall{}).
		Where("status = ? AND expires_at < ?", models.CallActive, now).
		Updates(map[string]interface{}{
			"status":   models.CallEnded,
			"ended_at": now,
		})
	if result.Error != nil {
		logSweeper("sweep failed: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logSweeper("ended expired calls")
	}
}

// InitializeCallSweeper starts the every-minute expiry sweep.
func InitializeCallSweeper() *cron.Cron {
	c := cron.New()
	c.AddFunc("* * * * *", SweepExpiredCalls)
	c.Start()
	logSweeper("call sweeper started - runs every minute")
	return c
}
