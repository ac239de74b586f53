package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/export"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ExportResult is a rendered download.
type ExportResult struct {
	Data        []byte
	FileName    string
	ContentType string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

// ExportService renders schedule weeks and the roster into downloadable files.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	xlsx   xlsxRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs the service, defaulting any nil renderer.
func NewExportService(csv csvRenderer, pdf pdfRenderer, xlsx xlsxRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{csv: csv, pdf: pdf, xlsx: xlsx, logger: logger, now: time.Now}
}

var scheduleHeaders = []string{"Date", "Day", "Time", "Title", "Type", "Course", "Location"}

// ScheduleWeek renders a week grid as CSV or PDF.
func (s *ExportService) ScheduleWeek(week *dto.ScheduleWeek, format string) (*ExportResult, error) {
	if week == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week is required")
	}
	dataset := export.Dataset{Headers: scheduleHeaders, Caption: week.Label}
	for _, day := range week.Days {
		for _, e := range day.Events {
			course := ""
			if e.CourseCode != nil {
				course = *e.CourseCode
			}
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Date":     day.Date,
				"Day":      day.Weekday,
				"Time":     e.StartTime.Format("15:04") + " - " + e.EndTime.Format("15:04"),
				"Title":    e.Title,
				"Type":     string(e.Type),
				"Course":   course,
				"Location": e.DisplayLocation,
			})
		}
	}

	base := "schedule-" + week.StartDate
	switch strings.ToLower(format) {
	case "", FormatPDF:
		data, err := s.pdf.Render(dataset, "Weekly Schedule")
		if err != nil {
			return nil, s.renderFailed(err, FormatPDF)
		}
		return &ExportResult{Data: data, FileName: base + ".pdf", ContentType: "application/pdf"}, nil
	case FormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, s.renderFailed(err, FormatCSV)
		}
		return &ExportResult{Data: data, FileName: base + ".csv", ContentType: "text/csv"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be pdf or csv")
	}
}

var rosterHeaders = []string{"ID", "Name", "Email", "Attendance (%)", "Average Grade (%)", "Risk Level", "Grade Trend"}

// Roster renders the student roster as an XLSX workbook.
func (s *ExportService) Roster(students []models.StudentProfile) (*ExportResult, error) {
	dataset := export.Dataset{Headers: rosterHeaders}
	for _, st := range students {
		trend := make([]string, 0, len(st.Grades))
		for _, g := range st.Grades {
			trend = append(trend, fmt.Sprintf("%s %.0f", g.Month, g.Score))
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":                st.ID,
			"Name":              st.Name,
			"Email":             st.Email,
			"Attendance (%)":    fmt.Sprintf("%.0f", st.Attendance),
			"Average Grade (%)": fmt.Sprintf("%.1f", st.AverageGrade),
			"Risk Level":        string(st.RiskLevel),
			"Grade Trend":       strings.Join(trend, ", "),
		})
	}
	data, err := s.xlsx.Render(dataset, "Roster")
	if err != nil {
		return nil, s.renderFailed(err, FormatXLSX)
	}
	return &ExportResult{
		Data:        data,
		FileName:    sanitizeFilename(fmt.Sprintf("roster-%s.xlsx", s.now().Format(dateLayout))),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func (s *ExportService) renderFailed(err error, format string) error {
	s.logger.Error("export render failed", zap.String("format", format), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeFilename(raw string) string {
	cleaned := unsafeFilename.ReplaceAllString(raw, "-")
	cleaned = strings.Trim(cleaned, "-.")
	if cleaned == "" {
		return "download"
	}
	return cleaned
}
