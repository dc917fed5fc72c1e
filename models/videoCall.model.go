package models

import (
	"time"

	"gorm.io/gorm"
)

// Call statuses
const (
	CallActive = "active"
	CallEnded  = "ended"
)

// VideoCall is the stored reference to an ephemeral third-party call room.
// A row counts as live only while Status is "active" AND ExpiresAt is in the
// future; the sweeper flips stale rows to "ended" but readers must not rely
// on it having run.
type VideoCall struct {
	gorm.Model
	ComplaintID      uint       `json:"complaint_id" gorm:"index;not null"`
	RoomID           string     `json:"room_id" gorm:"not null"`
	RoomURL          string     `json:"room_url"` // empty for providers joined by room id + token
	ExpiresAt        time.Time  `json:"expires_at"`
	Status           string     `json:"status" gorm:"default:'active'"`
	EndedAt          *time.Time `json:"ended_at"`
	InitiatedByAdmin bool       `json:"initiated_by_admin" gorm:"default:false"`
}

// IsLive reports whether the call is still joinable at the given time.
func (v *VideoCall) IsLive(at time.Time) bool {
	return v.Status == CallActive && v.ExpiresAt.After(at)
}
