package Workflow

import (
	"errors"
	"strings"
	"time"

	"Harmony/Models"

	"gorm.io/gorm"
)

// Task lifecycle: Yet to start → Ongoing → In Review → Completed, with reject
// sending In Review back to Ongoing. Completed is terminal.
//
// Each transition is a single conditional UPDATE guarded by the expected
// current status, so two concurrent calls cannot both apply.

func StartTask(db *gorm.DB, caller Models.User, taskID uint) (*Models.Task, error) {
	return applyTaskTransition(db, caller, taskID, taskTransition{
		name:     "start",
		from:     Models.StatusYetToStart,
		to:       Models.StatusOngoing,
		byWorker: true,
	}, nil)
}

func SubmitTask(db *gorm.DB, caller Models.User, taskID uint) (*Models.Task, error) {
	return applyTaskTransition(db, caller, taskID, taskTransition{
		name:     "submit",
		from:     Models.StatusOngoing,
		to:       Models.StatusInReview,
		byWorker: true,
	}, nil)
}

func ApproveTask(db *gorm.DB, caller Models.User, taskID uint) (*Models.Task, error) {
	return applyTaskTransition(db, caller, taskID, taskTransition{
		name:      "approve",
		from:      Models.StatusInReview,
		to:        Models.StatusCompleted,
		byManager: true,
	}, map[string]interface{}{"rejection_reason": ""})
}

func RejectTask(db *gorm.DB, caller Models.User, taskID uint, reason string) (*Models.Task, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, NewValidationError("reason", "rejection reason is required")
	}
	return applyTaskTransition(db, caller, taskID, taskTransition{
		name:      "reject",
		from:      Models.StatusInReview,
		to:        Models.StatusOngoing,
		byManager: true,
	}, map[string]interface{}{"rejection_reason": reason})
}

type taskTransition struct {
	name      string
	from      Models.Status
	to        Models.Status
	byWorker  bool // assigned worker
	byManager bool // owning manager or admin
}

func applyTaskTransition(db *gorm.DB, caller Models.User, taskID uint, t taskTransition, extra map[string]interface{}) (*Models.Task, error) {
	var task Models.Task

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "task", ID: taskID}
			}
			return err
		}

		// Caller check comes before the state check: an outsider learns
		// nothing about the task's current state.
		allowed, err := transitionAllowed(tx, caller, &task, t)
		if err != nil {
			return err
		}
		if !allowed {
			return &AuthorizationError{Reason: "you are not allowed to " + t.name + " this task"}
		}

		if task.Status != t.from {
			return &InvalidTransitionError{
				Entity:    "task",
				Requested: t.name,
				Current:   string(task.Status),
			}
		}

		updates := map[string]interface{}{
			"status":     t.to,
			"updated_at": time.Now(),
		}
		for k, v := range extra {
			updates[k] = v
		}

		res := tx.Model(&Models.Task{}).
			Where("id = ? AND status = ?", task.ID, t.from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race with a concurrent transition.
			var current Models.Task
			tx.First(&current, taskID)
			return &InvalidTransitionError{
				Entity:    "task",
				Requested: t.name,
				Current:   string(current.Status),
			}
		}

		return tx.First(&task, taskID).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func transitionAllowed(tx *gorm.DB, caller Models.User, task *Models.Task, t taskTransition) (bool, error) {
	if t.byWorker && caller.IsWorker() {
		return isAssigned(tx, task.ID, caller.ID)
	}
	if t.byManager {
		return ownsTask(tx, caller, task)
	}
	return false, nil
}

// AssignWorker links a worker to a task. Only the owning manager or an admin
// may assign, and only workers under that manager are eligible.
func AssignWorker(db *gorm.DB, caller Models.User, taskID, workerID uint) (*Models.TaskAssignment, error) {
	var assignment Models.TaskAssignment

	err := db.Transaction(func(tx *gorm.DB) error {
		var task Models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "task", ID: taskID}
			}
			return err
		}

		owns, err := ownsTask(tx, caller, &task)
		if err != nil {
			return err
		}
		if !owns {
			return &AuthorizationError{Reason: "you are not allowed to assign workers on this task"}
		}

		var worker Models.User
		if err := tx.First(&worker, workerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "worker", ID: workerID}
			}
			return err
		}
		if !worker.IsWorker() {
			return NewValidationError("worker_id", "user is not a worker")
		}
		if caller.IsManager() && !caller.Manages(&worker) {
			return &AuthorizationError{Reason: "worker is not on your team"}
		}

		var count int64
		tx.Model(&Models.TaskAssignment{}).
			Where("task_id = ? AND worker_id = ?", taskID, workerID).
			Count(&count)
		if count > 0 {
			return &ConflictError{Reason: "worker already assigned to this task"}
		}

		assignment = Models.TaskAssignment{TaskID: taskID, WorkerID: workerID}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
