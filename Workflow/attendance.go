package Workflow

import (
	"errors"
	"time"

	"Harmony/Models"

	"gorm.io/gorm"
)

// CheckIn opens the attendance session for (caller, date). A second check-in
// on the same date is a conflict, not an update.
func CheckIn(db *gorm.DB, caller Models.User, date string, lat, lng float64) (*Models.Attendance, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, NewValidationError("date", "must be YYYY-MM-DD")
	}

	var attendance Models.Attendance
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Models.Attendance{}).
			Where("user_id = ? AND date = ?", caller.ID, date).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Reason: "already checked in for " + date}
		}

		attendance = Models.Attendance{
			UserID:      caller.ID,
			Date:        date,
			CheckInTime: time.Now(),
			CheckInLat:  lat,
			CheckInLng:  lng,
			Status:      Models.AttendancePresent,
		}
		return tx.Create(&attendance).Error
	})
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

// CheckOut closes the caller's own session exactly once.
func CheckOut(db *gorm.DB, caller Models.User, attendanceID uint, lat, lng float64) (*Models.Attendance, error) {
	var attendance Models.Attendance

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&attendance, attendanceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "attendance", ID: attendanceID}
			}
			return err
		}

		if attendance.UserID != caller.ID {
			return &AuthorizationError{Reason: "attendance record belongs to another user"}
		}

		// Rows written by the absence job carry no check-in and never close.
		if attendance.CheckInTime.IsZero() {
			return &InvalidTransitionError{
				Entity:    "attendance",
				Requested: "check-out",
				Current:   "not checked in",
			}
		}

		if attendance.CheckOutTime != nil {
			return &InvalidTransitionError{
				Entity:    "attendance",
				Requested: "check-out",
				Current:   "checked out",
			}
		}

		now := time.Now()
		res := tx.Model(&Models.Attendance{}).
			Where("id = ? AND check_out_time IS NULL", attendance.ID).
			Updates(map[string]interface{}{
				"check_out_time": now,
				"check_out_lat":  lat,
				"check_out_lng":  lng,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidTransitionError{
				Entity:    "attendance",
				Requested: "check-out",
				Current:   "checked out",
			}
		}

		return tx.First(&attendance, attendanceID).Error
	})
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

// VisibleAttendance scopes the attendance listing the same way as leaves.
func VisibleAttendance(db *gorm.DB, scope *Scope) *gorm.DB {
	query := db.Model(&Models.Attendance{})
	switch scope.Role {
	case Models.RoleWorker:
		return query.Where("user_id = ?", scope.User.ID)
	case Models.RoleManager:
		return query.Where("user_id IN ?", emptyToImpossible(scope.OwnedWorkerIDs))
	}
	return query
}

// MarkAbsentees inserts Absent rows for workers with no attendance on the
// given date. Weekends and holidays are skipped. Returns the number marked.
func MarkAbsentees(db *gorm.DB, date string) (int, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, NewValidationError("date", "must be YYYY-MM-DD")
	}
	if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		return 0, nil
	}

	var holidayCount int64
	if err := db.Model(&Models.Holiday{}).Where("date = ?", date).Count(&holidayCount).Error; err != nil {
		return 0, err
	}
	if holidayCount > 0 {
		return 0, nil
	}

	var workerIDs []uint
	if err := db.Model(&Models.User{}).
		Where("role = ?", Models.RoleWorker).
		Where("id NOT IN (?)", db.Model(&Models.Attendance{}).Select("user_id").Where("date = ?", date)).
		Pluck("id", &workerIDs).Error; err != nil {
		return 0, err
	}

	for _, id := range workerIDs {
		row := Models.Attendance{
			UserID: id,
			Date:   date,
			Status: Models.AttendanceAbsent,
		}
		if err := db.Create(&row).Error; err != nil {
			return 0, err
		}
	}
	return len(workerIDs), nil
}
