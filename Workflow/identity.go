package Workflow

import (
	"Harmony/Models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Scope is the resolved ownership context for an authenticated caller: which
// workers and projects its role lets it see and act on.
type Scope struct {
	User            Models.User
	Role            Models.Role
	ManagerID       *uint  // set for workers
	OwnedWorkerIDs  []uint // set for managers
	OwnedProjectIDs []uint // set for managers
}

// ResolveScope is a pure lookup, no side effects.
func ResolveScope(db *gorm.DB, user Models.User) (*Scope, error) {
	scope := &Scope{
		User: user,
		Role: user.Role,
	}

	switch user.Role {
	case Models.RoleWorker:
		scope.ManagerID = user.ManagerID
	case Models.RoleManager:
		if err := db.Model(&Models.User{}).
			Where("manager_id = ? AND role = ?", user.ID, Models.RoleWorker).
			Pluck("id", &scope.OwnedWorkerIDs).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&Models.Project{}).
			Where("manager_id = ?", user.ID).
			Pluck("id", &scope.OwnedProjectIDs).Error; err != nil {
			return nil, err
		}
	}

	return scope, nil
}

func (s *Scope) OwnsWorker(workerID uint) bool {
	if s.Role == Models.RoleAdmin {
		return true
	}
	return slices.Contains(s.OwnedWorkerIDs, workerID)
}

func (s *Scope) OwnsProject(projectID uint) bool {
	if s.Role == Models.RoleAdmin {
		return true
	}
	return slices.Contains(s.OwnedProjectIDs, projectID)
}

// isAssigned reports whether the worker has an assignment row on the task.
func isAssigned(db *gorm.DB, taskID, workerID uint) (bool, error) {
	var count int64
	err := db.Model(&Models.TaskAssignment{}).
		Where("task_id = ? AND worker_id = ?", taskID, workerID).
		Count(&count).Error
	return count > 0, err
}

// ownsTask reports whether the caller manages the project the task belongs to.
func ownsTask(db *gorm.DB, caller Models.User, task *Models.Task) (bool, error) {
	if caller.IsAdmin() {
		return true, nil
	}
	if !caller.IsManager() {
		return false, nil
	}
	var count int64
	err := db.Model(&Models.Project{}).
		Where("id = ? AND manager_id = ?", task.ProjectID, caller.ID).
		Count(&count).Error
	return count > 0, err
}
