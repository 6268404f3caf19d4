package Workflow

import (
	"testing"

	"Harmony/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitLeaveValidation(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	var verr *ValidationError

	_, err := SubmitLeave(db, tm.Worker, "2025-07-10", "2025-07-08", "family trip")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")

	_, err = SubmitLeave(db, tm.Worker, "2025-07-10", "2025-07-12", "  ")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "reason")

	_, err = SubmitLeave(db, tm.Worker, "10/07/2025", "2025-07-12", "family trip")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "start_date")

	// Only workers file leave.
	var authz *AuthorizationError
	_, err = SubmitLeave(db, tm.Manager, "2025-07-10", "2025-07-12", "family trip")
	require.ErrorAs(t, err, &authz)
}

func TestSubmitLeaveOverlapRefused(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	first, err := SubmitLeave(db, tm.Worker, "2025-07-10", "2025-07-14", "family trip")
	require.NoError(t, err)
	assert.Equal(t, Models.LeavePending, first.Status)

	// Overlapping window against the pending request.
	var verr *ValidationError
	_, err = SubmitLeave(db, tm.Worker, "2025-07-13", "2025-07-16", "extension")
	require.ErrorAs(t, err, &verr)

	// Overlap still refused after approval.
	_, err = ApproveLeave(db, tm.Manager, first.ID)
	require.NoError(t, err)
	_, err = SubmitLeave(db, tm.Worker, "2025-07-14", "2025-07-14", "one more day")
	require.ErrorAs(t, err, &verr)

	// A disjoint window is fine, and other workers are unaffected.
	_, err = SubmitLeave(db, tm.Worker, "2025-07-20", "2025-07-22", "follow-up")
	require.NoError(t, err)
	_, err = SubmitLeave(db, tm.OtherWorker, "2025-07-10", "2025-07-14", "same dates, other worker")
	require.NoError(t, err)
}

func TestRejectedLeaveDoesNotBlockNewRequest(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	leave, err := SubmitLeave(db, tm.Worker, "2025-08-01", "2025-08-05", "vacation")
	require.NoError(t, err)
	_, err = RejectLeave(db, tm.Manager, leave.ID)
	require.NoError(t, err)

	// REJECTED is terminal; the worker files a fresh request for the window.
	again, err := SubmitLeave(db, tm.Worker, "2025-08-01", "2025-08-05", "vacation, take two")
	require.NoError(t, err)
	assert.Equal(t, Models.LeavePending, again.Status)
}

func TestLeaveDecisionAuthorization(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	leave, err := SubmitLeave(db, tm.Worker, "2025-09-01", "2025-09-03", "medical")
	require.NoError(t, err)

	var authz *AuthorizationError

	// The worker cannot decide their own request.
	_, err = ApproveLeave(db, tm.Worker, leave.ID)
	require.ErrorAs(t, err, &authz)

	// A manager from another team cannot decide it.
	_, err = ApproveLeave(db, tm.OtherManager, leave.ID)
	require.ErrorAs(t, err, &authz)

	// The direct manager can.
	approved, err := ApproveLeave(db, tm.Manager, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.LeaveApproved, approved.Status)
	require.NotNil(t, approved.DecidedByID)
	assert.Equal(t, tm.Manager.ID, *approved.DecidedByID)
	assert.NotNil(t, approved.DecidedAt)
}

func TestLeaveDecisionIsTerminal(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	leave, err := SubmitLeave(db, tm.Worker, "2025-10-01", "2025-10-02", "errand")
	require.NoError(t, err)

	_, err = ApproveLeave(db, tm.Admin, leave.ID)
	require.NoError(t, err)

	// Neither a second approve nor a late reject changes anything.
	var terr *InvalidTransitionError
	_, err = ApproveLeave(db, tm.Admin, leave.ID)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, string(Models.LeaveApproved), terr.Current)

	_, err = RejectLeave(db, tm.Manager, leave.ID)
	require.ErrorAs(t, err, &terr)

	var current Models.LeaveRequest
	require.NoError(t, db.First(&current, leave.ID).Error)
	assert.Equal(t, Models.LeaveApproved, current.Status)
}

func TestVisibleLeavesScoping(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	_, err := SubmitLeave(db, tm.Worker, "2025-11-01", "2025-11-02", "mine")
	require.NoError(t, err)
	_, err = SubmitLeave(db, tm.OtherWorker, "2025-11-01", "2025-11-02", "theirs")
	require.NoError(t, err)

	count := func(u Models.User) int64 {
		scope, err := ResolveScope(db, u)
		require.NoError(t, err)
		var n int64
		require.NoError(t, VisibleLeaves(db, scope).Count(&n).Error)
		return n
	}

	assert.Equal(t, int64(1), count(tm.Worker))
	assert.Equal(t, int64(1), count(tm.Manager))
	assert.Equal(t, int64(2), count(tm.Admin))
}
