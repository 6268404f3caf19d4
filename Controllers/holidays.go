package Controllers

import (
	"net/http"

	"Harmony/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HolidayController struct {
	DB *gorm.DB
}

func NewHolidayController(db *gorm.DB) *HolidayController {
	return &HolidayController{DB: db}
}

func (hc *HolidayController) GetHolidays(c *fiber.Ctx) error {
	query := hc.DB.Model(&Models.Holiday{}).Order("date")
	if year := c.Query("year"); year != "" {
		query = query.Where("date LIKE ?", year+"%")
	}

	var holidays []Models.Holiday
	if err := query.Find(&holidays).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch holidays",
			"error":   err.Error(),
		})
	}
	return c.JSON(holidays)
}
