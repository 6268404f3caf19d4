package Models

import (
	"gorm.io/gorm"
)

type Task struct {
	gorm.Model
	ProjectID   uint   `json:"project_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD
	Status      Status `json:"status" gorm:"type:varchar(20);not null;default:'Yet to start'"`

	// Set when a manager sends the task back from review, cleared on approve.
	RejectionReason string `json:"rejection_reason" gorm:"type:text"`

	Project     *Project         `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Assignments []TaskAssignment `json:"assignments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

type TaskAssignment struct {
	gorm.Model
	TaskID   uint `json:"task_id" gorm:"index;not null;uniqueIndex:idx_task_worker"`
	WorkerID uint `json:"worker_id" gorm:"index;not null;uniqueIndex:idx_task_worker"`

	Worker *User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}
