package Workflow

import (
	"errors"
	"strings"
	"time"

	"Harmony/Models"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// SubmitLeave files a new PENDING request for the calling worker. A request
// whose dates intersect an existing PENDING or APPROVED leave is refused, so
// a worker carries at most one open request per window.
func SubmitLeave(db *gorm.DB, caller Models.User, startDate, endDate, reason string) (*Models.LeaveRequest, error) {
	if !caller.IsWorker() {
		return nil, &AuthorizationError{Reason: "only workers submit leave requests"}
	}

	fields := map[string]string{}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		fields["start_date"] = "must be YYYY-MM-DD"
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		fields["end_date"] = "must be YYYY-MM-DD"
	}
	if strings.TrimSpace(reason) == "" {
		fields["reason"] = "reason is required"
	}
	if len(fields) == 0 && end.Before(start) {
		fields["end_date"] = "must not be before start_date"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var leave Models.LeaveRequest
	txErr := db.Transaction(func(tx *gorm.DB) error {
		var overlapping int64
		if err := tx.Model(&Models.LeaveRequest{}).
			Where("worker_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
				caller.ID,
				[]Models.LeaveStatus{Models.LeavePending, Models.LeaveApproved},
				endDate, startDate).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return NewValidationError("start_date", "dates overlap an existing pending or approved leave")
		}

		leave = Models.LeaveRequest{
			WorkerID:  caller.ID,
			StartDate: startDate,
			EndDate:   endDate,
			Reason:    strings.TrimSpace(reason),
			Status:    Models.LeavePending,
		}
		return tx.Create(&leave).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &leave, nil
}

func ApproveLeave(db *gorm.DB, caller Models.User, leaveID uint) (*Models.LeaveRequest, error) {
	return decideLeave(db, caller, leaveID, "approve", Models.LeaveApproved)
}

func RejectLeave(db *gorm.DB, caller Models.User, leaveID uint) (*Models.LeaveRequest, error) {
	return decideLeave(db, caller, leaveID, "reject", Models.LeaveRejected)
}

// decideLeave moves a PENDING request to its terminal state. Only the worker's
// direct manager or an admin may decide; the decision applies exactly once.
func decideLeave(db *gorm.DB, caller Models.User, leaveID uint, verb string, to Models.LeaveStatus) (*Models.LeaveRequest, error) {
	var leave Models.LeaveRequest

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&leave, leaveID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "leave request", ID: leaveID}
			}
			return err
		}

		var worker Models.User
		if err := tx.First(&worker, leave.WorkerID).Error; err != nil {
			return err
		}
		if !caller.CanDecideFor(&worker) {
			return &AuthorizationError{Reason: "you are not allowed to " + verb + " this leave request"}
		}

		if leave.Status != Models.LeavePending {
			return &InvalidTransitionError{
				Entity:    "leave request",
				Requested: verb,
				Current:   string(leave.Status),
			}
		}

		now := time.Now()
		res := tx.Model(&Models.LeaveRequest{}).
			Where("id = ? AND status = ?", leave.ID, Models.LeavePending).
			Updates(map[string]interface{}{
				"status":        to,
				"decided_by_id": caller.ID,
				"decided_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current Models.LeaveRequest
			tx.First(&current, leaveID)
			return &InvalidTransitionError{
				Entity:    "leave request",
				Requested: verb,
				Current:   string(current.Status),
			}
		}

		return tx.First(&leave, leaveID).Error
	})
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// VisibleLeaves scopes the leave listing: workers see their own, managers see
// their team's, admins see everything.
func VisibleLeaves(db *gorm.DB, scope *Scope) *gorm.DB {
	query := db.Model(&Models.LeaveRequest{})
	switch scope.Role {
	case Models.RoleWorker:
		return query.Where("worker_id = ?", scope.User.ID)
	case Models.RoleManager:
		return query.Where("worker_id IN ?", emptyToImpossible(scope.OwnedWorkerIDs))
	}
	return query
}

// emptyToImpossible keeps an IN clause valid for a manager with no workers.
func emptyToImpossible(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
