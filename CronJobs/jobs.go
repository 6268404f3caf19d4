package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Harmony/Calendar"
	"Harmony/Workflow"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the nightly absence-marking job and the weekly holiday
// calendar refresh.
type Scheduler struct {
	cronScheduler      *cron.Cron
	db                 *gorm.DB
	holidayCalendarURL string
	absenceJobID       cron.EntryID
	holidayJobID       cron.EntryID
}

func NewScheduler(db *gorm.DB, holidayCalendarURL string) *Scheduler {
	return &Scheduler{
		cronScheduler:      cron.New(cron.WithSeconds()),
		db:                 db,
		holidayCalendarURL: holidayCalendarURL,
	}
}

// Start registers and launches the scheduled jobs.
func (s *Scheduler) Start() error {
	var err error

	// Absentees for a day are marked shortly after midnight, for the day that
	// just ended.
	s.absenceJobID, err = s.cronScheduler.AddFunc("0 10 0 * * *", func() {
		s.runAbsenceCheck(time.Now().AddDate(0, 0, -1))
	})
	if err != nil {
		return fmt.Errorf("error scheduling absence job: %w", err)
	}

	s.holidayJobID, err = s.cronScheduler.AddFunc("0 0 3 * * 1", func() {
		s.runHolidayRefresh()
	})
	if err != nil {
		return fmt.Errorf("error scheduling holiday refresh: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Scheduler started: absence check daily at 00:10, holiday refresh Mondays at 03:00")
	return nil
}

// Stop terminates the scheduler
func (s *Scheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Scheduler stopped")
	}
}

// RunManualAbsenceCheck marks absentees for the given day outside the schedule.
func (s *Scheduler) RunManualAbsenceCheck(day time.Time) {
	s.runAbsenceCheck(day)
}

func (s *Scheduler) runAbsenceCheck(day time.Time) {
	date := day.Format("2006-01-02")
	marked, err := Workflow.MarkAbsentees(s.db, date)
	if err != nil {
		log.Printf("Error in absence check for %s: %v\n", date, err)
		return
	}
	log.Printf("Absence check for %s complete, %d workers marked absent\n", date, marked)
}

func (s *Scheduler) runHolidayRefresh() {
	if err := Calendar.RefreshHolidays(s.db, s.holidayCalendarURL); err != nil {
		log.Printf("Error refreshing holiday calendar: %v\n", err)
	}
}
