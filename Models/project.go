package Models

import (
	"gorm.io/gorm"
)

// Status is the shared lifecycle vocabulary for projects and tasks.
type Status string

const (
	StatusYetToStart Status = "Yet to start"
	StatusOngoing    Status = "Ongoing"
	StatusInReview   Status = "In Review"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusYetToStart, StatusOngoing, StatusInReview, StatusCompleted:
		return true
	}
	return false
}

type Project struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	Status      Status `json:"status" gorm:"type:varchar(20);not null;default:'Yet to start'"`
	ManagerID   uint   `json:"manager_id" gorm:"index;not null"`

	// Site location
	LocationName string  `json:"location_name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lng"`

	Manager *User  `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Tasks   []Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
}
