package Models

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DeviceToken is an FCM registration token for one of a user's devices.
type DeviceToken struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index;not null"`
	Value  string `json:"value" gorm:"uniqueIndex;not null"`
}

type RegisterTokenRequest struct {
	Value string `json:"value" validate:"required"`
}

// RegisterDeviceToken stores (or re-binds) an FCM token for the caller.
func RegisterDeviceToken(c *fiber.Ctx) error {
	var req RegisterTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token value is required",
		})
	}

	user, ok := c.Locals("user").(User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not Logged In.",
		})
	}

	var token DeviceToken
	err := DB.Where("value = ?", req.Value).FirstOrCreate(&token, DeviceToken{
		UserID: user.ID,
		Value:  req.Value,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to register token",
		})
	}

	// A token can move between accounts on shared devices.
	if token.UserID != user.ID {
		token.UserID = user.ID
		if err := DB.Save(&token).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to update token",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Token registered successfully",
		"token":   token,
	})
}
