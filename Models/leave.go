package Models

import (
	"time"

	"gorm.io/gorm"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

type LeaveRequest struct {
	gorm.Model
	WorkerID  uint        `json:"worker_id" gorm:"index;not null"`
	StartDate string      `json:"start_date" gorm:"size:10;not null"` // YYYY-MM-DD
	EndDate   string      `json:"end_date" gorm:"size:10;not null"`   // YYYY-MM-DD
	Reason    string      `json:"reason" gorm:"type:text;not null"`
	Status    LeaveStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`

	DecidedByID *uint      `json:"decided_by_id"`
	DecidedAt   *time.Time `json:"decided_at"`

	Worker    *User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	DecidedBy *User `json:"decided_by,omitempty" gorm:"foreignKey:DecidedByID"`
}
