package Controllers

import (
	"net/http"
	"strconv"
	"time"

	"Harmony/Models"
	"Harmony/config"
	"Harmony/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=ADMIN MANAGER WORKER"`
	ManagerID *uint  `json:"manager_id"`
}

// Register creates a user. Admins create any role; managers create workers
// under themselves (manager_id is forced to the caller in that case).
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
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
	role := Models.Role(req.Role)
	if !caller.CanCreateUser(role) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "You are not allowed to create users with this role",
		})
	}

	var managerID *uint
	switch role {
	case Models.RoleWorker:
		if caller.IsManager() {
			id := caller.ID
			managerID = &id
		} else {
			if req.ManagerID == nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{
					"message": "Validation failed",
					"fields":  map[string]string{"manager_id": "workers require a manager"},
				})
			}
			var manager Models.User
			if err := ac.DB.Where("id = ? AND role = ?", *req.ManagerID, Models.RoleManager).First(&manager).Error; err != nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{
					"message": "Validation failed",
					"fields":  map[string]string{"manager_id": "manager not found"},
				})
			}
			managerID = req.ManagerID
		}
	default:
		// Admins and managers never carry a manager_id.
		managerID = nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to hash password",
		})
	}

	user := Models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
		ManagerID: managerID,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"message": "Email already registered",
			"error":   err.Error(),
		})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
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
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"message": "Incorrect email or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(req.Password)); err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"message": "Incorrect email or password",
		})
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ac.Cfg.JWTExpiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(middleware.JWTSecret())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not login",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    signed,
		Expires:  time.Now().Add(ac.Cfg.JWTExpiration),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"token":   signed,
		"user":    user,
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// Profile returns the authenticated caller with manager and skills preloaded.
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	caller := currentUser(c)

	var user Models.User
	if err := ac.DB.Preload("Manager").Preload("Skills").First(&user, caller.ID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	return c.JSON(user)
}
