package Workflow

import (
	"fmt"
	"testing"

	"Harmony/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeImages(n int) []Models.ReportImage {
	images := make([]Models.ReportImage, 0, n)
	for i := 0; i < n; i++ {
		images = append(images, Models.ReportImage{
			Path:      fmt.Sprintf("uploads/report_%d.jpg", i),
			Thumbnail: fmt.Sprintf("uploads/thumb_report_%d.jpg", i),
			Original:  fmt.Sprintf("photo_%d.jpg", i),
		})
	}
	return images
}

func TestIngestReportValidation(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	var verr *ValidationError

	_, err := IngestReport(db, tm.Worker, "  ", "2025-06-02", nil, nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "description")

	_, err = IngestReport(db, tm.Worker, "dug the trench", "June 2nd", nil, nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "report_date")

	// Only workers submit reports.
	var authz *AuthorizationError
	_, err = IngestReport(db, tm.Manager, "dug the trench", "2025-06-02", nil, nil)
	require.ErrorAs(t, err, &authz)
}

func TestIngestReportImageLimit(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	var verr *ValidationError
	_, err := IngestReport(db, tm.Worker, "dug the trench", "2025-06-02", nil, makeImages(6))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "images")

	report, err := IngestReport(db, tm.Worker, "dug the trench", "2025-06-02", nil, makeImages(5))
	require.NoError(t, err)
	assert.Equal(t, tm.Worker.ID, report.WorkerID)
}

func TestIngestReportTaskLinks(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	report, err := IngestReport(db, tm.Worker, "soil samples bagged", "2025-06-02", []uint{task.ID}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf("[%d]", task.ID), string(report.TaskIDs))

	// Tasks outside the worker's assignments are refused.
	var verr *ValidationError
	_, err = IngestReport(db, tm.OtherWorker, "someone else's samples", "2025-06-02", []uint{task.ID}, nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "task_ids")
}

func TestReportVisibilityScoping(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	mine, err := IngestReport(db, tm.Worker, "mine", "2025-06-02", nil, nil)
	require.NoError(t, err)
	theirs, err := IngestReport(db, tm.OtherWorker, "theirs", "2025-06-02", nil, nil)
	require.NoError(t, err)

	count := func(u Models.User) int64 {
		scope, err := ResolveScope(db, u)
		require.NoError(t, err)
		var n int64
		require.NoError(t, VisibleReports(db, scope).Count(&n).Error)
		return n
	}

	assert.Equal(t, int64(1), count(tm.Worker))
	assert.Equal(t, int64(1), count(tm.Manager))
	assert.Equal(t, int64(2), count(tm.Admin))

	managerScope, err := ResolveScope(db, tm.Manager)
	require.NoError(t, err)
	assert.True(t, CanViewReport(managerScope, mine))
	assert.False(t, CanViewReport(managerScope, theirs))

	workerScope, err := ResolveScope(db, tm.Worker)
	require.NoError(t, err)
	assert.True(t, CanViewReport(workerScope, mine))
	assert.False(t, CanViewReport(workerScope, theirs))
}

func TestDeleteReportAdminOnly(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	report, err := IngestReport(db, tm.Worker, "dug the trench", "2025-06-02", nil, nil)
	require.NoError(t, err)

	// Neither the author nor their manager may delete.
	var authz *AuthorizationError
	require.ErrorAs(t, DeleteReport(db, tm.Worker, report.ID), &authz)
	require.ErrorAs(t, DeleteReport(db, tm.Manager, report.ID), &authz)

	require.NoError(t, DeleteReport(db, tm.Admin, report.ID))

	var nf *NotFoundError
	require.ErrorAs(t, DeleteReport(db, tm.Admin, report.ID), &nf)
}
