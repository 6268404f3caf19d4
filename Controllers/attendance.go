package Controllers

import (
	"fmt"
	"net/http"
	"time"

	"Harmony/Models"
	"Harmony/Workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

type CheckInRequest struct {
	Date string  `json:"date" validate:"required,datetime=2006-01-02"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (ac *AttendanceController) CheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
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

	attendance, err := Workflow.CheckIn(ac.DB, currentUser(c), req.Date, req.Lat, req.Lng)
	if err != nil {
		return workflowError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(attendance)
}

type CheckOutRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (ac *AttendanceController) CheckOut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid attendance id",
		})
	}

	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	attendance, err := Workflow.CheckOut(ac.DB, currentUser(c), uint(id), req.Lat, req.Lng)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(attendance)
}

func (ac *AttendanceController) GetAttendance(c *fiber.Ctx) error {
	scope, err := Workflow.ResolveScope(ac.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}

	query := Workflow.VisibleAttendance(ac.DB, scope).Preload("User").Order("date desc")
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var rows []Models.Attendance
	if err := query.Find(&rows).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch attendance",
			"error":   err.Error(),
		})
	}
	return c.JSON(rows)
}

// ExportAttendance streams an xlsx of the caller's visible attendance for one
// month (?month=YYYY-MM, defaults to the current month).
func (ac *AttendanceController) ExportAttendance(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"fields":  map[string]string{"month": "must be YYYY-MM"},
		})
	}

	scope, err := Workflow.ResolveScope(ac.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}

	var rows []Models.Attendance
	if err := Workflow.VisibleAttendance(ac.DB, scope).
		Preload("User").
		Where("date LIKE ?", month+"%").
		Order("date, user_id").
		Find(&rows).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch attendance",
			"error":   err.Error(),
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"Worker", "Date", "Status", "Check In", "Check In Lat", "Check In Lng", "Check Out", "Check Out Lat", "Check Out Lng"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		name := ""
		if row.User != nil {
			name = row.User.Name
		}
		values := []interface{}{
			name,
			row.Date,
			row.Status,
			formatClock(row.CheckInTime),
			row.CheckInLat,
			row.CheckInLng,
			"",
			"",
			"",
		}
		if row.CheckOutTime != nil {
			values[6] = formatClock(*row.CheckOutTime)
			values[7] = *row.CheckOutLat
			values[8] = *row.CheckOutLng
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate workbook",
			"error":   err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, month))
	return c.Send(buf.Bytes())
}

func formatClock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
