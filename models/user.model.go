package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Phone     string     `json:"phone" gorm:"default:''"`
	Batch     string     `json:"batch" gorm:"default:''"` // Cohort label, e.g. "BCK-49"
	Role      string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `json:"is_deleted" gorm:"default:false"`
}
