package Workflow

import (
	"path/filepath"
	"testing"

	"Harmony/Models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	return db
}

// seedTeam creates an admin, a manager, a worker under that manager, and a
// second manager/worker pair for cross-team cases.
type team struct {
	Admin        Models.User
	Manager      Models.User
	Worker       Models.User
	OtherManager Models.User
	OtherWorker  Models.User
}

func seedTeam(t *testing.T, db *gorm.DB) team {
	t.Helper()

	admin := Models.User{Name: "Ada", Email: "ada@example.com", Password: []byte("x"), Role: Models.RoleAdmin}
	manager := Models.User{Name: "Mona", Email: "mona@example.com", Password: []byte("x"), Role: Models.RoleManager}
	otherManager := Models.User{Name: "Omar", Email: "omar@example.com", Password: []byte("x"), Role: Models.RoleManager}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&otherManager).Error)

	worker := Models.User{Name: "Wes", Email: "wes@example.com", Password: []byte("x"), Role: Models.RoleWorker, ManagerID: &manager.ID}
	otherWorker := Models.User{Name: "Olly", Email: "olly@example.com", Password: []byte("x"), Role: Models.RoleWorker, ManagerID: &otherManager.ID}
	require.NoError(t, db.Create(&worker).Error)
	require.NoError(t, db.Create(&otherWorker).Error)

	return team{Admin: admin, Manager: manager, Worker: worker, OtherManager: otherManager, OtherWorker: otherWorker}
}

func seedTask(t *testing.T, db *gorm.DB, managerID uint, workerIDs ...uint) Models.Task {
	t.Helper()

	project := Models.Project{Name: "Riverside survey", Status: Models.StatusYetToStart, ManagerID: managerID}
	require.NoError(t, db.Create(&project).Error)

	task := Models.Task{ProjectID: project.ID, Title: "Soil samples", Status: Models.StatusYetToStart}
	require.NoError(t, db.Create(&task).Error)

	for _, id := range workerIDs {
		require.NoError(t, db.Create(&Models.TaskAssignment{TaskID: task.ID, WorkerID: id}).Error)
	}
	return task
}
