package Controllers

import (
	"net/http"

	"Harmony/Models"
	"Harmony/Notifications"
	"Harmony/Workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeaveController struct {
	DB *gorm.DB
}

func NewLeaveController(db *gorm.DB) *LeaveController {
	return &LeaveController{DB: db}
}

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required"`
}

func (lc *LeaveController) SubmitLeave(c *fiber.Ctx) error {
	var req SubmitLeaveRequest
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
	leave, err := Workflow.SubmitLeave(lc.DB, caller, req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		return workflowError(c, err)
	}

	go Notifications.LeaveSubmitted(caller, leave)
	return c.Status(http.StatusCreated).JSON(leave)
}

// GetLeaves lists requests within the caller's visibility scope. Optional
// status and date filters.
func (lc *LeaveController) GetLeaves(c *fiber.Ctx) error {
	scope, err := Workflow.ResolveScope(lc.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}

	query := Workflow.VisibleLeaves(lc.DB, scope).Preload("Worker").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("end_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("start_date <= ?", to)
	}

	var leaves []Models.LeaveRequest
	if err := query.Find(&leaves).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch leave requests",
			"error":   err.Error(),
		})
	}
	return c.JSON(leaves)
}

func (lc *LeaveController) ApproveLeave(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid leave id",
		})
	}

	leave, err := Workflow.ApproveLeave(lc.DB, currentUser(c), uint(id))
	if err != nil {
		return workflowError(c, err)
	}

	go Notifications.LeaveDecision(lc.DB, leave)
	return c.JSON(leave)
}

func (lc *LeaveController) RejectLeave(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid leave id",
		})
	}

	leave, err := Workflow.RejectLeave(lc.DB, currentUser(c), uint(id))
	if err != nil {
		return workflowError(c, err)
	}

	go Notifications.LeaveDecision(lc.DB, leave)
	return c.JSON(leave)
}
