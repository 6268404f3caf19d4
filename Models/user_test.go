package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleRank(t *testing.T) {
	assert.Greater(t, RoleAdmin.Rank(), RoleManager.Rank())
	assert.Greater(t, RoleManager.Rank(), RoleWorker.Rank())
	assert.Equal(t, 0, Role("INTERN").Rank())

	assert.True(t, RoleWorker.Valid())
	assert.False(t, Role("INTERN").Valid())
}

func TestUserCapabilities(t *testing.T) {
	managerID := uint(2)
	admin := User{Role: RoleAdmin}
	manager := User{Role: RoleManager}
	manager.ID = managerID
	worker := User{Role: RoleWorker, ManagerID: &managerID}
	stray := User{Role: RoleWorker}

	assert.True(t, manager.Manages(&worker))
	assert.False(t, manager.Manages(&stray))
	assert.False(t, admin.Manages(&worker))
	assert.False(t, worker.Manages(&worker))

	assert.True(t, admin.CanDecideFor(&worker))
	assert.True(t, manager.CanDecideFor(&worker))
	assert.False(t, manager.CanDecideFor(&stray))
	assert.False(t, worker.CanDecideFor(&worker))

	assert.True(t, admin.CanCreateUser(RoleManager))
	assert.True(t, manager.CanCreateUser(RoleWorker))
	assert.False(t, manager.CanCreateUser(RoleManager))
	assert.False(t, worker.CanCreateUser(RoleWorker))

	assert.True(t, admin.CanManageSkills())
	assert.False(t, manager.CanManageSkills())
	assert.True(t, admin.CanDeleteReports())
	assert.False(t, manager.CanDeleteReports())
}
