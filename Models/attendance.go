package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// Attendance is one session per (user, date). Created on check-in, the
// check-out half is written exactly once afterwards.
type Attendance struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_date"`
	Date   string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_user_date"` // YYYY-MM-DD

	CheckInTime time.Time `json:"check_in_time"`
	CheckInLat  float64   `json:"check_in_lat"`
	CheckInLng  float64   `json:"check_in_lng"`

	CheckOutTime *time.Time `json:"check_out_time"`
	CheckOutLat  *float64   `json:"check_out_lat"`
	CheckOutLng  *float64   `json:"check_out_lng"`

	Status string `json:"status" gorm:"type:varchar(20);not null;default:'Present'"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
