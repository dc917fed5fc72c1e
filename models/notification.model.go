package models

import "gorm.io/gorm"

// Notification types
const (
	NotifyStatusUpdate     = "status_update"
	NotifyNewComplaint     = "new_complaint"
	NotifyCallRequest      = "call_request"       // voice call invitation
	NotifyVideoCallRequest = "video_call_request" // video call invitation
)

type Notification struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	ComplaintID *uint  `json:"complaint_id" gorm:"index"`
	Type        string `json:"type" gorm:"not null"`
	Message     string `json:"message" gorm:"type:text;not null"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`
}
