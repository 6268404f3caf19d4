package Notifications

import (
	"fmt"

	"Harmony/Models"

	"gorm.io/gorm"
)

// Workflow event fan-out. All of these are best-effort side channels; a
// failed push or Slack post never fails the transition that triggered it.

func TaskAssigned(db *gorm.DB, workerID uint, task *Models.Task) {
	pushToUser(db, workerID, "New task assigned",
		fmt.Sprintf("You have been assigned: %s", task.Title))
}

func TaskInReview(worker Models.User, task *Models.Task) {
	postOps(fmt.Sprintf("%s submitted task \"%s\" for review", worker.Name, task.Title))
}

func TaskDecision(db *gorm.DB, task *Models.Task, approved bool, reason string) {
	var workerIDs []uint
	if err := db.Model(&Models.TaskAssignment{}).
		Where("task_id = ?", task.ID).
		Pluck("worker_id", &workerIDs).Error; err != nil {
		return
	}

	title := "Task approved"
	body := fmt.Sprintf("\"%s\" was approved", task.Title)
	if !approved {
		title = "Task sent back"
		body = fmt.Sprintf("\"%s\" needs rework: %s", task.Title, reason)
	}
	for _, id := range workerIDs {
		pushToUser(db, id, title, body)
	}
}

func LeaveSubmitted(worker Models.User, leave *Models.LeaveRequest) {
	postOps(fmt.Sprintf("%s requested leave %s to %s", worker.Name, leave.StartDate, leave.EndDate))
}

func LeaveDecision(db *gorm.DB, leave *Models.LeaveRequest) {
	title := "Leave request decided"
	body := fmt.Sprintf("Your leave %s to %s is now %s", leave.StartDate, leave.EndDate, leave.Status)
	pushToUser(db, leave.WorkerID, title, body)
}
