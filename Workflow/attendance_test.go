package Workflow

import (
	"testing"

	"Harmony/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInOncePerDate(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	row, err := CheckIn(db, tm.Worker, "2025-06-02", 30.05, 31.23)
	require.NoError(t, err)
	assert.Equal(t, Models.AttendancePresent, row.Status)
	assert.Equal(t, 30.05, row.CheckInLat)
	assert.Nil(t, row.CheckOutTime)

	// Second check-in on the same date conflicts.
	var conflict *ConflictError
	_, err = CheckIn(db, tm.Worker, "2025-06-02", 30.05, 31.23)
	require.ErrorAs(t, err, &conflict)

	// Exactly one row per (worker, date).
	var count int64
	db.Model(&Models.Attendance{}).Where("user_id = ? AND date = ?", tm.Worker.ID, "2025-06-02").Count(&count)
	assert.Equal(t, int64(1), count)

	// A different date opens a fresh session.
	_, err = CheckIn(db, tm.Worker, "2025-06-03", 30.05, 31.23)
	require.NoError(t, err)
}

func TestCheckInRejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	var verr *ValidationError
	_, err := CheckIn(db, tm.Worker, "02-06-2025", 0, 0)
	require.ErrorAs(t, err, &verr)
}

func TestCheckOut(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	row, err := CheckIn(db, tm.Worker, "2025-06-02", 30.05, 31.23)
	require.NoError(t, err)

	out, err := CheckOut(db, tm.Worker, row.ID, 30.06, 31.24)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)
	require.NotNil(t, out.CheckOutLat)
	assert.Equal(t, 30.06, *out.CheckOutLat)

	// A second check-out is refused and the stamps stay untouched.
	var terr *InvalidTransitionError
	_, err = CheckOut(db, tm.Worker, row.ID, 99, 99)
	require.ErrorAs(t, err, &terr)

	var current Models.Attendance
	require.NoError(t, db.First(&current, row.ID).Error)
	assert.Equal(t, 30.06, *current.CheckOutLat)
}

func TestCheckOutGuards(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	// Check-out before any check-in never creates a row.
	var nf *NotFoundError
	_, err := CheckOut(db, tm.Worker, 4242, 0, 0)
	require.ErrorAs(t, err, &nf)

	var count int64
	db.Model(&Models.Attendance{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Another user's record is off limits.
	row, err := CheckIn(db, tm.Worker, "2025-06-02", 0, 0)
	require.NoError(t, err)

	var authz *AuthorizationError
	_, err = CheckOut(db, tm.OtherWorker, row.ID, 0, 0)
	require.ErrorAs(t, err, &authz)
}

func TestCheckOutRefusedOnAbsentRow(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	// The absence job writes a row with no check-in; it must never be closable.
	marked, err := MarkAbsentees(db, "2025-06-02")
	require.NoError(t, err)
	require.Equal(t, 2, marked)

	var absent Models.Attendance
	require.NoError(t, db.Where("user_id = ? AND date = ?", tm.Worker.ID, "2025-06-02").First(&absent).Error)

	var terr *InvalidTransitionError
	_, err = CheckOut(db, tm.Worker, absent.ID, 0, 0)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "not checked in", terr.Current)

	var current Models.Attendance
	require.NoError(t, db.First(&current, absent.ID).Error)
	assert.Equal(t, Models.AttendanceAbsent, current.Status)
	assert.Nil(t, current.CheckOutTime)
}

func TestMarkAbsentees(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	// 2025-06-02 is a Monday. Worker checked in, OtherWorker did not.
	_, err := CheckIn(db, tm.Worker, "2025-06-02", 0, 0)
	require.NoError(t, err)

	marked, err := MarkAbsentees(db, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	var row Models.Attendance
	require.NoError(t, db.Where("user_id = ? AND date = ?", tm.OtherWorker.ID, "2025-06-02").First(&row).Error)
	assert.Equal(t, Models.AttendanceAbsent, row.Status)

	// Re-running is a no-op.
	marked, err = MarkAbsentees(db, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestMarkAbsenteesSkipsWeekendsAndHolidays(t *testing.T) {
	db := newTestDB(t)
	seedTeam(t, db)

	// 2025-06-01 is a Sunday.
	marked, err := MarkAbsentees(db, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)

	require.NoError(t, db.Create(&Models.Holiday{Date: "2025-06-03", Name: "Founders Day"}).Error)
	marked, err = MarkAbsentees(db, "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)

	var count int64
	db.Model(&Models.Attendance{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
