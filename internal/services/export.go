package services

import (
	"time"

	"github.com/reflectboard/server/internal/analytics"
	"github.com/reflectboard/server/internal/models"
	"gorm.io/gorm"
)

type ExportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db, now: time.Now}
}

type ExportRequest struct {
	Search     string `form:"search"`
	DateRange  string `form:"date_range" binding:"omitempty,oneof=all week month quarter year"`
	Confidence string `form:"confidence" binding:"omitempty,oneof=all low medium high"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=recent oldest confidence"`
}

// ExportReflectionsCSV renders reflections, owner profile joined, as a CSV
// document. The same filter pipeline that drives listings selects the rows,
// so the download matches what the admin sees on screen. Returns the file
// body and the suggested filename.
func (s *ExportService) ExportReflectionsCSV(requestedBy string, req *ExportRequest) ([]byte, string, error) {
	var rows []models.Reflection
	if err := s.db.Preload("Profile").Find(&rows).Error; err != nil {
		return nil, "", err
	}

	records := make([]analytics.Reflection, 0, len(rows))
	for i := range rows {
		records = append(records, toAnalyticsReflection(&rows[i]))
	}

	now := s.now()
	filters := analytics.ReflectionFilters{
		Search:     req.Search,
		DateRange:  analytics.DateRange(req.DateRange),
		Confidence: analytics.ConfidenceBand(req.Confidence),
		SortBy:     analytics.SortKey(req.SortBy),
	}
	// Page size zero means the whole filtered set.
	records, _ = analytics.FilterReflections(records, filters, analytics.Page{}, now)

	body := analytics.ExportCSV(records)
	filename := analytics.ExportFilename(now)

	LogInfo("export", "csv", "reflections exported", &requestedBy,
		map[string]interface{}{"rows": len(records), "filename": filename})
	return body, filename, nil
}
