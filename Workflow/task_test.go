package Workflow

import (
	"testing"

	"Harmony/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycleHappyPath(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	started, err := StartTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusOngoing, started.Status)

	submitted, err := SubmitTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusInReview, submitted.Status)

	approved, err := ApproveTask(db, tm.Manager, task.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusCompleted, approved.Status)
	assert.Empty(t, approved.RejectionReason)
}

func TestTaskRejectReturnsToOngoing(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	_, err := StartTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	_, err = SubmitTask(db, tm.Worker, task.ID)
	require.NoError(t, err)

	rejected, err := RejectTask(db, tm.Manager, task.ID, "needs more detail")
	require.NoError(t, err)
	assert.Equal(t, Models.StatusOngoing, rejected.Status)
	assert.Equal(t, "needs more detail", rejected.RejectionReason)

	// After rework the worker resubmits and the manager approves; the
	// rejection reason is cleared.
	_, err = SubmitTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	approved, err := ApproveTask(db, tm.Manager, task.ID)
	require.NoError(t, err)
	assert.Empty(t, approved.RejectionReason)
}

func TestTaskRejectRequiresReason(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	_, err := StartTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	_, err = SubmitTask(db, tm.Worker, task.ID)
	require.NoError(t, err)

	_, err = RejectTask(db, tm.Manager, task.ID, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "reason")
}

func TestTaskNoSkippingStates(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	// Yet to start → Completed directly is never possible.
	_, err := ApproveTask(db, tm.Manager, task.ID)
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, string(Models.StatusYetToStart), terr.Current)

	// submit before start
	_, err = SubmitTask(db, tm.Worker, task.ID)
	require.ErrorAs(t, err, &terr)

	var current Models.Task
	require.NoError(t, db.First(&current, task.ID).Error)
	assert.Equal(t, Models.StatusYetToStart, current.Status)
}

func TestTaskApproveIsIdempotentFailure(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	_, err := StartTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	_, err = SubmitTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	_, err = ApproveTask(db, tm.Manager, task.ID)
	require.NoError(t, err)

	// Second approve always fails and never mutates state.
	_, err = ApproveTask(db, tm.Manager, task.ID)
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, string(Models.StatusCompleted), terr.Current)

	var current Models.Task
	require.NoError(t, db.First(&current, task.ID).Error)
	assert.Equal(t, Models.StatusCompleted, current.Status)
}

func TestTaskAuthorizationBoundaries(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	var authz *AuthorizationError

	// Unassigned worker cannot start.
	_, err := StartTask(db, tm.OtherWorker, task.ID)
	require.ErrorAs(t, err, &authz)

	_, err = StartTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	_, err = SubmitTask(db, tm.Worker, task.ID)
	require.NoError(t, err)

	// A worker never approves, even their own task.
	_, err = ApproveTask(db, tm.Worker, task.ID)
	require.ErrorAs(t, err, &authz)

	// A manager from another team neither approves nor rejects.
	_, err = ApproveTask(db, tm.OtherManager, task.ID)
	require.ErrorAs(t, err, &authz)
	_, err = RejectTask(db, tm.OtherManager, task.ID, "nope")
	require.ErrorAs(t, err, &authz)

	// Admin may approve anything in review.
	approved, err := ApproveTask(db, tm.Admin, task.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusCompleted, approved.Status)
}

func TestTaskScenarioRejectThenWorkerCannotApprove(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID, tm.Worker.ID)

	_, err := StartTask(db, tm.Worker, task.ID)
	require.NoError(t, err)
	_, err = SubmitTask(db, tm.Worker, task.ID)
	require.NoError(t, err)

	rejected, err := RejectTask(db, tm.Manager, task.ID, "needs more detail")
	require.NoError(t, err)
	assert.Equal(t, Models.StatusOngoing, rejected.Status)
	assert.Equal(t, "needs more detail", rejected.RejectionReason)

	var authz *AuthorizationError
	_, err = ApproveTask(db, tm.Worker, task.ID)
	require.ErrorAs(t, err, &authz)
}

func TestTaskNotFound(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	var nf *NotFoundError
	_, err := StartTask(db, tm.Worker, 9999)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint(9999), nf.ID)
}

func TestAssignWorker(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)
	task := seedTask(t, db, tm.Manager.ID)

	_, err := AssignWorker(db, tm.Manager, task.ID, tm.Worker.ID)
	require.NoError(t, err)

	// Duplicate assignment conflicts.
	var conflict *ConflictError
	_, err = AssignWorker(db, tm.Manager, task.ID, tm.Worker.ID)
	require.ErrorAs(t, err, &conflict)

	// A manager cannot assign another team's worker.
	var authz *AuthorizationError
	_, err = AssignWorker(db, tm.Manager, task.ID, tm.OtherWorker.ID)
	require.ErrorAs(t, err, &authz)

	// Admin can assign across teams.
	_, err = AssignWorker(db, tm.Admin, task.ID, tm.OtherWorker.ID)
	require.NoError(t, err)

	// Assigning a non-worker is a validation error.
	var verr *ValidationError
	_, err = AssignWorker(db, tm.Admin, task.ID, tm.OtherManager.ID)
	require.ErrorAs(t, err, &verr)
}
