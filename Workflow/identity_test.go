package Workflow

import (
	"testing"

	"Harmony/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScopeManager(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	project := Models.Project{Name: "Canal cleanup", Status: Models.StatusYetToStart, ManagerID: tm.Manager.ID}
	require.NoError(t, db.Create(&project).Error)

	scope, err := ResolveScope(db, tm.Manager)
	require.NoError(t, err)

	assert.Equal(t, Models.RoleManager, scope.Role)
	assert.Equal(t, []uint{tm.Worker.ID}, scope.OwnedWorkerIDs)
	assert.Equal(t, []uint{project.ID}, scope.OwnedProjectIDs)

	assert.True(t, scope.OwnsWorker(tm.Worker.ID))
	assert.False(t, scope.OwnsWorker(tm.OtherWorker.ID))
	assert.True(t, scope.OwnsProject(project.ID))
	assert.False(t, scope.OwnsProject(project.ID+1))
}

func TestResolveScopeWorker(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	scope, err := ResolveScope(db, tm.Worker)
	require.NoError(t, err)

	assert.Equal(t, Models.RoleWorker, scope.Role)
	require.NotNil(t, scope.ManagerID)
	assert.Equal(t, tm.Manager.ID, *scope.ManagerID)
	assert.Empty(t, scope.OwnedWorkerIDs)
	assert.False(t, scope.OwnsWorker(tm.Worker.ID))
}

func TestResolveScopeAdminOwnsEverything(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	scope, err := ResolveScope(db, tm.Admin)
	require.NoError(t, err)

	assert.Equal(t, Models.RoleAdmin, scope.Role)
	assert.True(t, scope.OwnsWorker(tm.Worker.ID))
	assert.True(t, scope.OwnsWorker(tm.OtherWorker.ID))
	assert.True(t, scope.OwnsProject(12345))
}

func TestManagerWithNoWorkersSeesNothing(t *testing.T) {
	db := newTestDB(t)
	tm := seedTeam(t, db)

	lonely := Models.User{Name: "Lena", Email: "lena@example.com", Password: []byte("x"), Role: Models.RoleManager}
	require.NoError(t, db.Create(&lonely).Error)

	_, err := SubmitLeave(db, tm.Worker, "2025-12-01", "2025-12-02", "year end")
	require.NoError(t, err)

	scope, err := ResolveScope(db, lonely)
	require.NoError(t, err)

	var n int64
	require.NoError(t, VisibleLeaves(db, scope).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}
