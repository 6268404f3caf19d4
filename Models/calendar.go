package Models

import "gorm.io/gorm"

// Holiday rows come from the scraped public calendar. The absence-marking job
// skips these dates.
type Holiday struct {
	gorm.Model
	Date string `json:"date" gorm:"size:10;not null;uniqueIndex"` // YYYY-MM-DD
	Name string `json:"name" gorm:"not null"`
}
