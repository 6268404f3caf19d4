package Controllers

import (
	"net/http"

	"Harmony/Models"
	"Harmony/Workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUsers lists users within the caller's scope: admins see everyone,
// managers see their own workers.
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	caller := currentUser(c)

	query := uc.DB.Preload("Skills").Order("name")
	if caller.IsManager() {
		query = query.Where("manager_id = ?", caller.ID)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []Models.User
	if err := query.Find(&users).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// GetManagers backs the manager dropdown on user/project forms.
func (uc *UserController) GetManagers(c *fiber.Ctx) error {
	var managers []Models.User
	if err := uc.DB.Where("role = ?", Models.RoleManager).Order("name").Find(&managers).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch managers",
			"error":   err.Error(),
		})
	}
	return c.JSON(managers)
}

func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	var user Models.User
	if err := uc.DB.Preload("Manager").Preload("Skills").First(&user, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	caller := currentUser(c)
	if caller.IsManager() && user.ID != caller.ID && !caller.Manages(&user) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "User is not on your team",
		})
	}
	return c.JSON(user)
}

type UpdateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email" validate:"omitempty,email"`
	ManagerID *uint  `json:"manager_id"`
}

func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if fields := validateStruct(req); fields != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"fields":  fields,
		})
	}

	var user Models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	caller := currentUser(c)
	if !caller.IsAdmin() && !caller.Manages(&user) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "You are not allowed to update this user",
		})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	// Re-assigning a worker to another manager is admin-only.
	if req.ManagerID != nil && caller.IsAdmin() && user.IsWorker() {
		var manager Models.User
		if err := uc.DB.Where("id = ? AND role = ?", *req.ManagerID, Models.RoleManager).First(&manager).Error; err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"fields":  map[string]string{"manager_id": "manager not found"},
			})
		}
		user.ManagerID = req.ManagerID
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser soft-deletes; admin only. A manager with workers still assigned
// cannot be removed.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	var user Models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	if user.IsManager() {
		var workerCount int64
		uc.DB.Model(&Models.User{}).Where("manager_id = ?", user.ID).Count(&workerCount)
		if workerCount > 0 {
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"message": "Manager still has workers assigned",
			})
		}
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// GetScope exposes the resolved ownership context, mainly for the frontend to
// decide what to render.
func (uc *UserController) GetScope(c *fiber.Ctx) error {
	scope, err := Workflow.ResolveScope(uc.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(fiber.Map{
		"role":              scope.Role,
		"manager_id":        scope.ManagerID,
		"owned_worker_ids":  scope.OwnedWorkerIDs,
		"owned_project_ids": scope.OwnedProjectIDs,
	})
}
