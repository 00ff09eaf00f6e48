package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-course-registry/internal/models"
	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
	"github.com/noah-isme/sma-course-registry/pkg/export"
	"github.com/noah-isme/sma-course-registry/pkg/logger"
)

type catalogReader interface {
	Courses() []*models.Course
	FindStudentByID(id string) (*models.Student, error)
	OverallGradeByID(id string) float64
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	CleanupOlderThan(ttl time.Duration, prefixes ...string) ([]string, error)
	Path(filename string) string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ReportService renders roster and transcript snapshots into stored files.
type ReportService struct {
	catalog catalogReader
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewReportService constructs a ReportService. Nil renderers fall back to the
// default exporters.
func NewReportService(catalog catalogReader, storage fileStorage, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ReportService{catalog: catalog, storage: storage, csv: csv, pdf: pdf, logger: logger}
}

// CourseRoster exports one row per catalog course.
func (s *ReportService) CourseRoster(ctx context.Context, format string) (*models.ReportResult, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	courses := s.catalog.Courses()
	dataset := export.Dataset{
		Title:   "Course Roster",
		Headers: []string{"code", "name", "enrolled", "capacity", "seats_left"},
		Rows:    make([]map[string]string, 0, len(courses)),
		Summary: []export.SummaryLine{{Label: "Total Courses", Value: strconv.Itoa(len(courses))}},
	}
	for _, course := range courses {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"code":       course.Code,
			"name":       course.Name,
			"enrolled":   strconv.Itoa(course.CurrentEnrollment),
			"capacity":   strconv.Itoa(course.MaximumCapacity),
			"seats_left": strconv.Itoa(course.AvailableSeats()),
		})
	}
	return s.store(ctx, models.ReportTypeRoster, "all", f, dataset)
}

// StudentTranscript exports the enrolled courses and grades of one student.
func (s *ReportService) StudentTranscript(ctx context.Context, studentID, format string) (*models.ReportResult, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	student, err := s.catalog.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	courses := student.EnrolledCourses()
	dataset := export.Dataset{
		Title:   fmt.Sprintf("Transcript %s - %s", student.StudentID, student.Name),
		Headers: []string{"code", "name", "grade"},
		Rows:    make([]map[string]string, 0, len(courses)),
	}
	for _, course := range courses {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"code":  course.Code,
			"name":  course.Name,
			"grade": FormatGrade(student.GradeFor(course)),
		})
	}
	dataset.Summary = []export.SummaryLine{
		{Label: "Courses", Value: strconv.Itoa(len(courses))},
		{Label: "Overall Average", Value: strconv.FormatFloat(s.catalog.OverallGradeByID(student.StudentID), 'f', 2, 64)},
	}
	return s.store(ctx, models.ReportTypeTranscript, student.StudentID, f, dataset)
}

// Cleanup removes roster and transcript files older than ttl. A non-positive
// ttl keeps everything.
func (s *ReportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		return nil, nil
	}
	deleted, err := s.storage.CleanupOlderThan(ttl, string(models.ReportTypeRoster)+"_", string(models.ReportTypeTranscript)+"_")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to clean up reports")
	}
	return deleted, nil
}

// FormatGrade renders a GradeFor result for display.
func FormatGrade(grade float64, ok bool) string {
	if !ok {
		return "ungraded"
	}
	return strconv.FormatFloat(grade, 'f', 2, 64)
}

func (s *ReportService) store(ctx context.Context, reportType models.ReportType, scope string, format models.ReportFormat, dataset export.Dataset) (*models.ReportResult, error) {
	var (
		payload []byte
		err     error
	)
	switch format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to render report")
	}

	relPath, err := s.storage.Save(buildFilename(reportType, scope, format), payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to store report")
	}

	logger.WithOperation(ctx, s.logger).Info("report exported",
		zap.String("type", string(reportType)),
		zap.String("format", string(format)),
		zap.String("path", relPath),
		zap.Int("rows", len(dataset.Rows)))
	return &models.ReportResult{
		Type:         reportType,
		Format:       format,
		RelativePath: relPath,
		Location:     s.storage.Path(relPath),
		Rows:         len(dataset.Rows),
	}, nil
}

func parseFormat(raw string) (models.ReportFormat, error) {
	f, ok := models.ParseReportFormat(raw)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", raw))
	}
	return f, nil
}

func buildFilename(reportType models.ReportType, scope string, format models.ReportFormat) string {
	return fmt.Sprintf("%s_%s_%s.%s", reportType, sanitizeFilename(scope), uuid.NewString(), format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
