package Models

import (
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleWorker  Role = "WORKER"
)

// Rank orders roles for route-level gates. Ownership checks are separate.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleWorker:
		return 1
	}
	return 0
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleWorker
}

type User struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  []byte `json:"-" gorm:"not null"`
	Role      Role   `json:"role" gorm:"type:varchar(20);not null;index"`
	ManagerID *uint  `json:"manager_id" gorm:"index"`

	Manager *User   `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Workers []User  `json:"workers,omitempty" gorm:"foreignKey:ManagerID"`
	Skills  []Skill `json:"skills,omitempty" gorm:"many2many:user_skills;"`
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsManager() bool { return u.Role == RoleManager }
func (u *User) IsWorker() bool  { return u.Role == RoleWorker }

// Manages reports whether u is the direct manager of the given worker.
func (u *User) Manages(worker *User) bool {
	return u.IsManager() && worker.ManagerID != nil && *worker.ManagerID == u.ID
}

// CanCreateUser centralizes the registration policy: admins create any role,
// managers create workers under themselves.
func (u *User) CanCreateUser(role Role) bool {
	if u.IsAdmin() {
		return true
	}
	return u.IsManager() && role == RoleWorker
}

// CanDecideFor reports whether u may approve or reject entities submitted by
// the given worker (leaves, reviewed tasks).
func (u *User) CanDecideFor(worker *User) bool {
	return u.IsAdmin() || u.Manages(worker)
}

func (u *User) CanManageSkills() bool {
	return u.IsAdmin()
}

func (u *User) CanDeleteReports() bool {
	return u.IsAdmin()
}

type Skill struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// UserSkill is the join table behind the many2many relation; declared so the
// migration and manual assignment queries have a named type.
type UserSkill struct {
	UserID  uint `json:"user_id" gorm:"primaryKey"`
	SkillID uint `json:"skill_id" gorm:"primaryKey"`
}
