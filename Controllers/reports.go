package Controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"Harmony/Models"
	"Harmony/Workflow"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxImageBytes = 10 << 20 // 10MB per attachment

type ReportController struct {
	DB        *gorm.DB
	UploadDir string
}

func NewReportController(db *gorm.DB, uploadDir string) *ReportController {
	return &ReportController{DB: db, UploadDir: uploadDir}
}

// CreateReport ingests a multipart daily report: description, report_date,
// task_ids (JSON array), images[]. Images are stored under the upload dir
// with a 300px thumbnail each.
func (rc *ReportController) CreateReport(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Expected multipart form data",
		})
	}

	description := formValue(form.Value, "description")
	reportDate := formValue(form.Value, "report_date")

	var taskIDs []uint
	if raw := formValue(form.Value, "task_ids"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &taskIDs); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"fields":  map[string]string{"task_ids": "must be a JSON array of task ids"},
			})
		}
	}

	files := form.File["images"]
	if len(files) > Workflow.MaxReportImages {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"fields":  map[string]string{"images": "at most 5 images allowed"},
		})
	}
	for _, file := range files {
		if file.Size > maxImageBytes {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"fields":  map[string]string{"images": fmt.Sprintf("%s exceeds the 10MB limit", file.Filename)},
			})
		}
	}

	if err := os.MkdirAll(rc.UploadDir, 0755); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to prepare upload directory",
			"error":   err.Error(),
		})
	}

	var images []Models.ReportImage
	var savedPaths []string
	cleanup := func() {
		for _, p := range savedPaths {
			os.Remove(p)
		}
	}

	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		name := uuid.NewString() + ext
		dest := filepath.Join(rc.UploadDir, name)

		if err := c.SaveFile(file, dest); err != nil {
			cleanup()
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to store image",
				"error":   err.Error(),
			})
		}
		savedPaths = append(savedPaths, dest)

		thumbPath, err := rc.makeThumbnail(dest, name)
		if err != nil {
			cleanup()
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"fields":  map[string]string{"images": fmt.Sprintf("%s is not a valid image", file.Filename)},
			})
		}
		savedPaths = append(savedPaths, thumbPath)

		images = append(images, Models.ReportImage{
			Path:      dest,
			Thumbnail: thumbPath,
			Original:  file.Filename,
		})
	}

	report, err := Workflow.IngestReport(rc.DB, currentUser(c), description, reportDate, taskIDs, images)
	if err != nil {
		cleanup()
		return workflowError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(report)
}

// makeThumbnail writes a 300px-wide JPEG next to the original.
func (rc *ReportController) makeThumbnail(path, name string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	thumbPath := filepath.Join(rc.UploadDir, "thumb_"+strings.TrimSuffix(name, filepath.Ext(name))+".jpg")
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", err
	}
	return thumbPath, nil
}

func (rc *ReportController) GetReports(c *fiber.Ctx) error {
	scope, err := Workflow.ResolveScope(rc.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}

	query := Workflow.VisibleReports(rc.DB, scope).Preload("Worker").Order("report_date desc")
	if date := c.Query("date"); date != "" {
		query = query.Where("report_date = ?", date)
	}
	if workerID := c.Query("worker_id"); workerID != "" {
		query = query.Where("worker_id = ?", workerID)
	}

	var reports []Models.DailyReport
	if err := query.Find(&reports).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch reports",
			"error":   err.Error(),
		})
	}
	return c.JSON(reports)
}

func (rc *ReportController) GetReport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid report id",
		})
	}

	var report Models.DailyReport
	if err := rc.DB.Preload("Worker").First(&report, id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"message": "Report not found",
		})
	}

	scope, err := Workflow.ResolveScope(rc.DB, currentUser(c))
	if err != nil {
		return workflowError(c, err)
	}
	if !Workflow.CanViewReport(scope, &report) {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"message": "Report is not visible to you",
		})
	}
	return c.JSON(report)
}

// DeleteReport is admin-only; stored files are removed best-effort.
func (rc *ReportController) DeleteReport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid report id",
		})
	}

	var report Models.DailyReport
	found := rc.DB.First(&report, id).Error == nil

	if err := Workflow.DeleteReport(rc.DB, currentUser(c), uint(id)); err != nil {
		return workflowError(c, err)
	}

	if found {
		var images []Models.ReportImage
		if jsonErr := json.Unmarshal(report.Images, &images); jsonErr == nil {
			for _, img := range images {
				if rmErr := os.Remove(img.Path); rmErr != nil && !os.IsNotExist(rmErr) {
					log.Printf("Failed to remove %s: %v", img.Path, rmErr)
				}
				if rmErr := os.Remove(img.Thumbnail); rmErr != nil && !os.IsNotExist(rmErr) {
					log.Printf("Failed to remove %s: %v", img.Thumbnail, rmErr)
				}
			}
		}
	}
	return c.JSON(fiber.Map{
		"message": "Report deleted successfully",
	})
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}
