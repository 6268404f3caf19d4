package FiberConfig

import (
	"fmt"
	"log"

	"Harmony/Controllers"
	"Harmony/Models"
	"Harmony/config"
	"Harmony/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db, cfg)
	userController := Controllers.NewUserController(db)
	skillController := Controllers.NewSkillController(db)
	projectController := Controllers.NewProjectController(db)
	taskController := Controllers.NewTaskController(db)
	leaveController := Controllers.NewLeaveController(db)
	reportController := Controllers.NewReportController(db, cfg.UploadDir)
	attendanceController := Controllers.NewAttendanceController(db)
	holidayController := Controllers.NewHolidayController(db)

	// API group
	api := app.Group("/api")

	// Public routes
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)

	// Authenticated profile + device tokens
	api.Get("/user", middleware.Verify(Models.RoleWorker), authController.Profile)
	api.Get("/user/scope", middleware.Verify(Models.RoleWorker), userController.GetScope)
	api.Post("/device-tokens", middleware.Verify(Models.RoleWorker), Models.RegisterDeviceToken)

	// User management
	api.Post("/register", middleware.Verify(Models.RoleManager), authController.Register)
	users := api.Group("/users", middleware.Verify(Models.RoleManager))
	users.Get("/", userController.GetUsers)
	users.Get("/managers", userController.GetManagers)
	users.Get("/:id", userController.GetUser)
	users.Put("/:id", userController.UpdateUser)
	users.Delete("/:id", middleware.Verify(Models.RoleAdmin), userController.DeleteUser)
	users.Post("/:id/skills", skillController.AssignSkill)
	users.Delete("/:id/skills/:skillId", skillController.RemoveSkill)

	// Skill vocabulary
	skills := api.Group("/skills", middleware.Verify(Models.RoleWorker))
	skills.Get("/", skillController.GetSkills)
	skills.Post("/", middleware.Verify(Models.RoleAdmin), skillController.CreateSkill)

	// Project routes
	projects := api.Group("/projects", middleware.Verify(Models.RoleWorker))
	projects.Get("/", projectController.GetProjects)
	projects.Get("/:id", projectController.GetProject)
	projects.Post("/", middleware.Verify(Models.RoleAdmin), projectController.CreateProject)
	projects.Put("/:id", middleware.Verify(Models.RoleManager), projectController.UpdateProject)
	projects.Delete("/:id", middleware.Verify(Models.RoleAdmin), projectController.DeleteProject)

	// Task routes
	tasks := api.Group("/tasks", middleware.Verify(Models.RoleWorker))
	tasks.Get("/", taskController.GetTasks)
	tasks.Get("/:id", taskController.GetTask)
	tasks.Post("/", middleware.Verify(Models.RoleManager), taskController.CreateTask)
	tasks.Put("/:id", middleware.Verify(Models.RoleManager), taskController.UpdateTask)
	tasks.Delete("/:id", middleware.Verify(Models.RoleManager), taskController.DeleteTask)
	tasks.Post("/:id/assignments", middleware.Verify(Models.RoleManager), taskController.AssignWorker)

	// Lifecycle transitions; ownership checks live in the Workflow package
	tasks.Post("/:id/start", taskController.StartTask)
	tasks.Post("/:id/submit", taskController.SubmitTask)
	tasks.Post("/:id/approve", middleware.Verify(Models.RoleManager), taskController.ApproveTask)
	tasks.Post("/:id/reject", middleware.Verify(Models.RoleManager), taskController.RejectTask)

	// Leave routes
	leaves := api.Group("/leaves", middleware.Verify(Models.RoleWorker))
	leaves.Get("/", leaveController.GetLeaves)
	leaves.Post("/", leaveController.SubmitLeave)
	leaves.Patch("/:id/approve", middleware.Verify(Models.RoleManager), leaveController.ApproveLeave)
	leaves.Patch("/:id/reject", middleware.Verify(Models.RoleManager), leaveController.RejectLeave)

	// Daily report routes
	reports := api.Group("/daily-reports", middleware.Verify(Models.RoleWorker))
	reports.Get("/", reportController.GetReports)
	reports.Post("/", reportController.CreateReport)
	reports.Get("/:id", reportController.GetReport)
	reports.Delete("/:id", middleware.Verify(Models.RoleAdmin), reportController.DeleteReport)

	// Attendance routes
	attendance := api.Group("/attendance", middleware.Verify(Models.RoleWorker))
	attendance.Get("/", attendanceController.GetAttendance)
	attendance.Get("/export", middleware.Verify(Models.RoleManager), attendanceController.ExportAttendance)
	attendance.Post("/check-in", attendanceController.CheckIn)
	attendance.Patch("/:id/check-out", attendanceController.CheckOut)

	// Holiday calendar
	api.Get("/holidays", middleware.Verify(Models.RoleWorker), holidayController.GetHolidays)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func FiberConfig(cfg *config.Config) {
	fmt.Println("Server Up...")
	app := fiber.New(fiber.Config{
		BodyLimit: 60 << 20, // 5 report images at 10MB each, plus headroom
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300, // Max age for preflight requests caching (5 minutes)
	}))
	app.Static("/uploads", cfg.UploadDir)

	SetupRoutes(app, Models.DB, cfg)

	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
