package Models

import (
	"fmt"
	"log"

	"github.com/360EntSecGroup-Skylar/excelize"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(databasePath string) error {
	connection, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		return err
	}

	return seedDefaultAdmin(DB)
}

// Migrate runs AutoMigrate in dependency order.
func Migrate(db *gorm.DB) error {
	// 1. Base tables without foreign keys
	if err := db.AutoMigrate(
		&User{},
		&Skill{},
		&Holiday{},
	); err != nil {
		return err
	}

	// 2. Tables referencing users
	if err := db.AutoMigrate(
		&UserSkill{},
		&Project{},
		&Attendance{},
		&LeaveRequest{},
		&DailyReport{},
		&DeviceToken{},
	); err != nil {
		return err
	}

	// 3. Tables referencing projects
	return db.AutoMigrate(
		&Task{},
		&TaskAssignment{},
	)
}

func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&User{}).Where("role = ?", RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:     "Administrator",
		Email:    "admin@fieldharmony.local",
		Password: hashed,
		Role:     RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Default admin user created (email: admin@fieldharmony.local, password: admin)")
	return nil
}

// ImportWorkersFromExcel bulk-creates workers from a spreadsheet. Columns:
// name, email, manager email, initial password. Rows with an unknown manager
// are skipped with a log line rather than failing the whole import.
func ImportWorkersFromExcel(db *gorm.DB, path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("error opening worker import file: %w", err)
	}

	rows := f.GetRows("Sheet1")
	var workers []User
	for i, row := range rows {
		if len(row) < 4 {
			continue
		}
		name, email, managerEmail, password := row[0], row[1], row[2], row[3]
		if name == "" || email == "" {
			continue
		}

		var manager User
		if err := db.Where("email = ? AND role = ?", managerEmail, RoleManager).First(&manager).Error; err != nil {
			log.Printf("Skipping row %d: manager %s not found", i+1, managerEmail)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		managerID := manager.ID
		workers = append(workers, User{
			Name:      name,
			Email:     email,
			Password:  hashed,
			Role:      RoleWorker,
			ManagerID: &managerID,
		})
	}

	if len(workers) == 0 {
		return nil
	}
	if err := db.Create(&workers).Error; err != nil {
		return err
	}
	log.Printf("Imported %d workers from %s", len(workers), path)
	return nil
}
