package service

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/noah-isme/sma-course-registry/internal/models"
	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
)

// RegistryMetrics encapsulates Prometheus instrumentation for registry outcomes.
// A nil *RegistryMetrics is valid and records nothing.
type RegistryMetrics struct {
	registry       *prometheus.Registry
	coursesCreated prometheus.Counter
	studentsAdded  prometheus.Counter
	enrollments    prometheus.Counter
	rejections     *prometheus.CounterVec
	gradesAssigned prometheus.Counter
	gradeValue     prometheus.Histogram
	courseFill     *prometheus.GaugeVec
}

// NewRegistryMetrics registers the registry collectors on a private registry.
func NewRegistryMetrics() *RegistryMetrics {
	registry := prometheus.NewRegistry()

	coursesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registry_courses_created_total",
		Help: "Total number of courses added to the catalog",
	})

	studentsAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registry_students_registered_total",
		Help: "Total number of students registered, explicitly or on first enrollment",
	})

	enrollments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registry_enrollments_total",
		Help: "Total number of successful enrollments",
	})

	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_rejections_total",
		Help: "Total number of rejected registry operations",
	}, []string{"operation", "code"})

	gradesAssigned := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registry_grades_assigned_total",
		Help: "Total number of grade assignments, overwrites included",
	})

	gradeValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "registry_grade_value",
		Help:    "Distribution of assigned grades",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})

	courseFill := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "registry_course_fill_ratio",
		Help: "Share of seats taken per course",
	}, []string{"course"})

	registry.MustRegister(coursesCreated, studentsAdded, enrollments, rejections, gradesAssigned, gradeValue, courseFill)

	return &RegistryMetrics{
		registry:       registry,
		coursesCreated: coursesCreated,
		studentsAdded:  studentsAdded,
		enrollments:    enrollments,
		rejections:     rejections,
		gradesAssigned: gradesAssigned,
		gradeValue:     gradeValue,
		courseFill:     courseFill,
	}
}

// Gatherer exposes the underlying registry.
func (m *RegistryMetrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// CourseCreated records a new catalog entry.
func (m *RegistryMetrics) CourseCreated(course *models.Course) {
	if m == nil {
		return
	}
	m.coursesCreated.Inc()
	m.courseFill.WithLabelValues(course.Code).Set(course.FillRatio())
}

// StudentRegistered records a new student in the catalog.
func (m *RegistryMetrics) StudentRegistered() {
	if m == nil {
		return
	}
	m.studentsAdded.Inc()
}

// Enrolled records a successful enrollment and refreshes the course fill ratio.
func (m *RegistryMetrics) Enrolled(course *models.Course) {
	if m == nil {
		return
	}
	m.enrollments.Inc()
	m.courseFill.WithLabelValues(course.Code).Set(course.FillRatio())
}

// GradeAssigned records a grade assignment.
func (m *RegistryMetrics) GradeAssigned(grade float64) {
	if m == nil {
		return
	}
	m.gradesAssigned.Inc()
	m.gradeValue.Observe(grade)
}

// Rejected records a failed operation labelled by its error code.
func (m *RegistryMetrics) Rejected(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.rejections.WithLabelValues(operation, appErrors.CodeOf(err)).Inc()
}

// WriteText renders all collectors in the Prometheus text exposition format.
func (m *RegistryMetrics) WriteText(w io.Writer) error {
	families, err := m.Gatherer().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
