package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailyReport is immutable once created. TaskIDs and Images are stored as JSON
// columns; Images holds the stored file references in upload order, each with
// its generated thumbnail path.
type DailyReport struct {
	gorm.Model
	WorkerID    uint           `json:"worker_id" gorm:"index;not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	ReportDate  string         `json:"report_date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	TaskIDs     datatypes.JSON `json:"task_ids"`
	Images      datatypes.JSON `json:"images"`

	Worker *User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// ReportImage is the element shape serialized into DailyReport.Images.
type ReportImage struct {
	Path      string `json:"path"`
	Thumbnail string `json:"thumbnail"`
	Original  string `json:"original_name"`
}
