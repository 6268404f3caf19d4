package Controllers

import (
	"net/http"

	"Harmony/Models"
	"Harmony/Notifications"
	"Harmony/Workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

type TaskRequest struct {
	ProjectID   uint   `json:"project_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// GetTasks lists tasks in scope: workers see assigned tasks, managers their
// projects' tasks, admins everything.
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	caller := currentUser(c)

	query := tc.DB.Preload("Assignments").Preload("Project").Order("created_at desc")
	switch {
	case caller.IsWorker():
		query = query.Where("id IN (?)",
			tc.DB.Model(&Models.TaskAssignment{}).Select("task_id").Where("worker_id = ?", caller.ID))
	case caller.IsManager():
		query = query.Where("project_id IN (?)",
			tc.DB.Model(&Models.Project{}).Select("id").Where("manager_id = ?", caller.ID))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var tasks []Models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch tasks",
			"error":   err.Error(),
		})
	}
	return c.JSON(tasks)
}

func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	var task Models.Task
	if err := tc.DB.Preload("Project").Preload("Assignments.Worker").First(&task, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Task not found",
		})
	}
	return c.JSON(task)
}

// CreateTask requires the caller to own the target project.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var req TaskRequest
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

	caller := currentUser(c)
	scope, err := Workflow.ResolveScope(tc.DB, caller)
	if err != nil {
		return workflowError(c, err)
	}
	if !scope.OwnsProject(req.ProjectID) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "Project is not yours",
		})
	}

	var project Models.Project
	if err := tc.DB.First(&project, req.ProjectID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	}

	task := Models.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      Models.StatusYetToStart,
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create task",
			"error":   err.Error(),
		})
	}
	return c.Status(http.StatusCreated).JSON(task)
}

type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTask edits title/description/due date only. Status moves exclusively
// through the transition endpoints.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	var req UpdateTaskRequest
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

	var task Models.Task
	if err := tc.DB.First(&task, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Task not found",
		})
	}

	scope, err := Workflow.ResolveScope(tc.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}
	if !scope.OwnsProject(task.ProjectID) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "Task is not yours to update",
		})
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != "" {
		task.DueDate = req.DueDate
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update task",
			"error":   err.Error(),
		})
	}
	return c.JSON(task)
}

func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	var task Models.Task
	if err := tc.DB.First(&task, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Task not found",
		})
	}

	scope, err := Workflow.ResolveScope(tc.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}
	if !scope.OwnsProject(task.ProjectID) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "Task is not yours to delete",
		})
	}

	if err := tc.DB.Select("Assignments").Delete(&task).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete task",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Task deleted successfully",
	})
}

type AssignWorkerRequest struct {
	WorkerID uint `json:"worker_id" validate:"required"`
}

func (tc *TaskController) AssignWorker(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	var req AssignWorkerRequest
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

	assignment, err := Workflow.AssignWorker(tc.DB, currentUser(c), uint(id), req.WorkerID)
	if err != nil {
		return workflowError(c, err)
	}

	var task Models.Task
	tc.DB.First(&task, id)
	go Notifications.TaskAssigned(tc.DB, req.WorkerID, &task)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":    "Worker assigned successfully",
		"assignment": assignment,
	})
}

func (tc *TaskController) StartTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	task, err := Workflow.StartTask(tc.DB, currentUser(c), uint(id))
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(task)
}

func (tc *TaskController) SubmitTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	task, err := Workflow.SubmitTask(tc.DB, currentUser(c), uint(id))
	if err != nil {
		return workflowError(c, err)
	}

	go Notifications.TaskInReview(currentUser(c), task)
	return c.JSON(task)
}

func (tc *TaskController) ApproveTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	task, err := Workflow.ApproveTask(tc.DB, currentUser(c), uint(id))
	if err != nil {
		return workflowError(c, err)
	}

	go Notifications.TaskDecision(tc.DB, task, true, "")
	return c.JSON(task)
}

type RejectTaskRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (tc *TaskController) RejectTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task id",
		})
	}

	var req RejectTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	task, err := Workflow.RejectTask(tc.DB, currentUser(c), uint(id), req.Reason)
	if err != nil {
		return workflowError(c, err)
	}

	go Notifications.TaskDecision(tc.DB, task, false, req.Reason)
	return c.JSON(task)
}
