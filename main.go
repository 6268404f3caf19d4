package main

import (
	"log"

	"Harmony/Calendar"
	"Harmony/CronJobs"
	"Harmony/FiberConfig"
	"Harmony/Models"
	"Harmony/Notifications"
	"Harmony/config"
	"Harmony/middleware"
)

func main() {
	cfg := config.Load()

	middleware.SetJWTSecret(cfg.JWTSecret)

	if err := Models.Connect(cfg.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.WorkerImportFile != "" {
		if err := Models.ImportWorkersFromExcel(Models.DB, cfg.WorkerImportFile); err != nil {
			log.Printf("Worker import failed: %v", err)
		}
	}

	if err := Notifications.InitFirebase(cfg.FirebaseCredentials); err != nil {
		log.Printf("Failed to initialize Firebase: %v", err)
	}
	Notifications.InitSlack(cfg.SlackBotToken, cfg.SlackOpsChannel)

	go func() {
		if err := Calendar.RefreshHolidays(Models.DB, cfg.HolidayCalendarURL); err != nil {
			log.Printf("Initial holiday refresh failed: %v", err)
		}
	}()

	scheduler := CronJobs.NewScheduler(Models.DB, cfg.HolidayCalendarURL)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	FiberConfig.FiberConfig(cfg)
}
