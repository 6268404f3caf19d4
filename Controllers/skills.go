package Controllers

import (
	"net/http"

	"Harmony/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SkillController struct {
	DB *gorm.DB
}

func NewSkillController(db *gorm.DB) *SkillController {
	return &SkillController{DB: db}
}

func (sc *SkillController) GetSkills(c *fiber.Ctx) error {
	var skills []Models.Skill
	if err := sc.DB.Order("name").Find(&skills).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch skills",
			"error":   err.Error(),
		})
	}
	return c.JSON(skills)
}

type CreateSkillRequest struct {
	Name string `json:"name" validate:"required"`
}

func (sc *SkillController) CreateSkill(c *fiber.Ctx) error {
	var req CreateSkillRequest
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

	skill := Models.Skill{Name: req.Name}
	if err := sc.DB.Create(&skill).Error; err != nil {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message": "Skill already exists",
			"error":   err.Error(),
		})
	}
	return c.Status(http.StatusCreated).JSON(skill)
}

type AssignSkillRequest struct {
	SkillID uint `json:"skill_id" validate:"required"`
}

// AssignSkill tags a user with a skill. Managers may tag their own workers,
// admins anyone.
func (sc *SkillController) AssignSkill(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	var req AssignSkillRequest
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
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	caller := currentUser(c)
	if !caller.IsAdmin() && !caller.Manages(&user) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "You are not allowed to tag this user",
		})
	}

	var skill Models.Skill
	if err := sc.DB.First(&skill, req.SkillID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Skill not found",
		})
	}

	var count int64
	sc.DB.Model(&Models.UserSkill{}).
		Where("user_id = ? AND skill_id = ?", user.ID, skill.ID).
		Count(&count)
	if count > 0 {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message": "User already has this skill",
		})
	}

	link := Models.UserSkill{UserID: user.ID, SkillID: skill.ID}
	if err := sc.DB.Create(&link).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to assign skill",
			"error":   err.Error(),
		})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Skill assigned successfully",
	})
}

func (sc *SkillController) RemoveSkill(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}
	skillID, err := c.ParamsInt("skillId")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid skill id",
		})
	}

	var user Models.User
	if err := sc.DB.First(&user, userID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	caller := currentUser(c)
	if !caller.IsAdmin() && !caller.Manages(&user) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "You are not allowed to tag this user",
		})
	}

	res := sc.DB.Where("user_id = ? AND skill_id = ?", userID, skillID).Delete(&Models.UserSkill{})
	if res.Error != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to remove skill",
			"error":   res.Error.Error(),
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "User does not have this skill",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Skill removed successfully",
	})
}
