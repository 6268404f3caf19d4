package Calendar

import (
	"fmt"
	"log"
	"strings"
	"time"

	"Harmony/Models"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"gorm.io/gorm"
)

// dateFormats covers the layouts seen on public holiday calendars.
var dateFormats = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02/01/2006",
}

// RefreshHolidays scrapes the configured public-holiday page and upserts the
// holidays table. The page is expected to carry the holidays in a table with
// the date in the first cell and the name in the second.
func RefreshHolidays(db *gorm.DB, url string) error {
	if url == "" {
		return nil
	}

	collector := colly.NewCollector()
	var scraped int

	collector.OnHTML("table tr", func(e *colly.HTMLElement) {
		cells := e.DOM.Find("td")
		if cells.Length() < 2 {
			return
		}

		date, ok := parseHolidayDate(cellText(cells, 0))
		if !ok {
			return
		}
		name := cellText(cells, 1)
		if name == "" {
			return
		}

		var holiday Models.Holiday
		err := db.Where("date = ?", date).
			FirstOrCreate(&holiday, Models.Holiday{Date: date, Name: name}).Error
		if err != nil {
			log.Printf("Failed to store holiday %s: %v", date, err)
			return
		}
		scraped++
	})

	collector.OnError(func(r *colly.Response, err error) {
		log.Printf("Holiday calendar fetch failed (%d): %v", r.StatusCode, err)
	})

	if err := collector.Visit(url); err != nil {
		return fmt.Errorf("error visiting holiday calendar: %w", err)
	}

	log.Printf("Holiday calendar refreshed, %d entries", scraped)
	return nil
}

func cellText(cells *goquery.Selection, index int) string {
	return strings.TrimSpace(cells.Eq(index).Text())
}

func parseHolidayDate(raw string) (string, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
