package Controllers

import (
	"net/http"

	"Harmony/Models"
	"Harmony/Workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

type ProjectRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	StartDate    string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ManagerID    uint    `json:"manager_id" validate:"required"`
	LocationName string  `json:"location_name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lng"`
}

// GetProjects lists projects in scope: managers see their own, admins all.
// Workers see projects their assigned tasks belong to.
func (pc *ProjectController) GetProjects(c *fiber.Ctx) error {
	caller := currentUser(c)

	query := pc.DB.Preload("Manager").Order("created_at desc")
	switch {
	case caller.IsManager():
		query = query.Where("manager_id = ?", caller.ID)
	case caller.IsWorker():
		query = query.Where("id IN (?)",
			pc.DB.Model(&Models.Task{}).Select("project_id").
				Where("id IN (?)", pc.DB.Model(&Models.TaskAssignment{}).Select("task_id").Where("worker_id = ?", caller.ID)))
	}

	var projects []Models.Project
	if err := query.Find(&projects).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch projects",
			"error":   err.Error(),
		})
	}
	return c.JSON(projects)
}

func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid project id",
		})
	}

	var project Models.Project
	if err := pc.DB.Preload("Manager").Preload("Tasks").First(&project, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}
	return c.JSON(project)
}

// CreateProject is admin-only: the admin picks the owning manager.
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	var req ProjectRequest
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

	var manager Models.User
	if err := pc.DB.Where("id = ? AND role = ?", req.ManagerID, Models.RoleManager).First(&manager).Error; err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"fields":  map[string]string{"manager_id": "manager not found"},
		})
	}

	project := Models.Project{
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       Models.StatusYetToStart,
		ManagerID:    req.ManagerID,
		LocationName: req.LocationName,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	if err := pc.DB.Create(&project).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create project",
			"error":   err.Error(),
		})
	}
	return c.Status(http.StatusCreated).JSON(project)
}

type UpdateProjectRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	StartDate    string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status       string  `json:"status"`
	ManagerID    *uint   `json:"manager_id"`
	LocationName *string `json:"location_name"`
	Address      *string `json:"address"`
}

func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid project id",
		})
	}

	var req UpdateProjectRequest
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

	var project Models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}

	caller := currentUser(c)
	scope, err := Workflow.ResolveScope(pc.DB, caller)
	if err != nil {
		return workflowError(c, err)
	}
	if !scope.OwnsProject(project.ID) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "Project is not yours to update",
		})
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.StartDate != "" {
		project.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		project.EndDate = req.EndDate
	}
	if req.LocationName != nil {
		project.LocationName = *req.LocationName
	}
	if req.Address != nil {
		project.Address = *req.Address
	}
	if req.Status != "" {
		status := Models.Status(req.Status)
		if !status.Valid() {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"fields":  map[string]string{"status": "unknown status"},
			})
		}
		project.Status = status
	}
	// Handing the project to another manager is admin-only.
	if req.ManagerID != nil && caller.IsAdmin() {
		var manager Models.User
		if err := pc.DB.Where("id = ? AND role = ?", *req.ManagerID, Models.RoleManager).First(&manager).Error; err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"fields":  map[string]string{"manager_id": "manager not found"},
			})
		}
		project.ManagerID = *req.ManagerID
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update project",
			"error":   err.Error(),
		})
	}
	return c.JSON(project)
}

func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid project id",
		})
	}

	var project Models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}

	var taskCount int64
	pc.DB.Model(&Models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount)
	if taskCount > 0 {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message": "Project still has tasks",
		})
	}

	if err := pc.DB.Delete(&project).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete project",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}
