package models

import "gorm.io/gorm"

// Complaint statuses
const (
	StatusPending           = "Pending"
	StatusInProgress        = "In Progress"
	StatusWaitingForStudent = "Waiting for Student"
	StatusResolved          = "Resolved"
	StatusCancelled         = "Cancelled"
)

type Complaint struct {
	gorm.Model
	StudentID       uint   `json:"student_id" gorm:"index;not null"`
	Title           string `json:"title" gorm:"not null"`
	Category        string `json:"category" gorm:"default:'Others'"` // System, Hostel, Internet, Food, Behaviour, Others
	Description     string `json:"description" gorm:"type:text;not null"`
	Location        string `json:"location" gorm:"default:''"`
	Urgency         string `json:"urgency" gorm:"default:'Low'"` // Low, Medium, High
	Status          string `json:"status" gorm:"default:'Pending'"`
	ResolutionNotes string `json:"resolution_notes" gorm:"type:text"`
	IsDeleted       bool   `json:"is_deleted" gorm:"default:false"`

	Media []ComplaintMedia `json:"media" gorm:"foreignKey:ComplaintID"`
}

type ComplaintMedia struct {
	gorm.Model
	ComplaintID uint   `json:"complaint_id" gorm:"index;not null"`
	FileName    string `json:"file_name"` // original filename as uploaded
	FilePath    string `json:"file_path"` // stored path under the upload dir
	MediaType   string `json:"media_type"` // image, video
}
