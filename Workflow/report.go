package Workflow

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"Harmony/Models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const MaxReportImages = 5

// IngestReport validates and persists a worker's daily report. Reports are
// immutable after this point.
func IngestReport(db *gorm.DB, caller Models.User, description, reportDate string, taskIDs []uint, images []Models.ReportImage) (*Models.DailyReport, error) {
	if !caller.IsWorker() {
		return nil, &AuthorizationError{Reason: "only workers submit daily reports"}
	}

	fields := map[string]string{}
	if strings.TrimSpace(description) == "" {
		fields["description"] = "description is required"
	}
	if _, err := time.Parse(dateLayout, reportDate); err != nil {
		fields["report_date"] = "must be YYYY-MM-DD"
	}
	if len(images) > MaxReportImages {
		fields["images"] = "at most 5 images allowed"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var report Models.DailyReport
	err := db.Transaction(func(tx *gorm.DB) error {
		if len(taskIDs) > 0 {
			var assigned []uint
			if err := tx.Model(&Models.TaskAssignment{}).
				Where("worker_id = ?", caller.ID).
				Pluck("task_id", &assigned).Error; err != nil {
				return err
			}
			for _, id := range taskIDs {
				if !slices.Contains(assigned, id) {
					return NewValidationError("task_ids", "task is not assigned to you")
				}
			}
		}

		taskJSON, err := json.Marshal(taskIDs)
		if err != nil {
			return err
		}
		imageJSON, err := json.Marshal(images)
		if err != nil {
			return err
		}

		report = Models.DailyReport{
			WorkerID:    caller.ID,
			Description: strings.TrimSpace(description),
			ReportDate:  reportDate,
			TaskIDs:     taskJSON,
			Images:      imageJSON,
		}
		return tx.Create(&report).Error
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// DeleteReport removes a report. Admin only; reports are otherwise immutable.
func DeleteReport(db *gorm.DB, caller Models.User, reportID uint) error {
	if !caller.CanDeleteReports() {
		return &AuthorizationError{Reason: "only admins delete reports"}
	}

	var report Models.DailyReport
	if err := db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "daily report", ID: reportID}
		}
		return err
	}
	return db.Delete(&report).Error
}

// VisibleReports scopes listing: worker sees own, manager sees team, admin all.
func VisibleReports(db *gorm.DB, scope *Scope) *gorm.DB {
	query := db.Model(&Models.DailyReport{})
	switch scope.Role {
	case Models.RoleWorker:
		return query.Where("worker_id = ?", scope.User.ID)
	case Models.RoleManager:
		return query.Where("worker_id IN ?", emptyToImpossible(scope.OwnedWorkerIDs))
	}
	return query
}

// CanViewReport gates a single-report fetch without loading the whole list.
func CanViewReport(scope *Scope, report *Models.DailyReport) bool {
	switch scope.Role {
	case Models.RoleAdmin:
		return true
	case Models.RoleManager:
		return slices.Contains(scope.OwnedWorkerIDs, report.WorkerID)
	default:
		return report.WorkerID == scope.User.ID
	}
}
