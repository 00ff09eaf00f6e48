package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-course-registry/internal/models"
	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
)

func TestRegistryMetricsNilSafe(t *testing.T) {
	var m *RegistryMetrics
	assert.NotPanics(t, func() {
		m.CourseCreated(&models.Course{Code: "CS101", MaximumCapacity: 1})
		m.StudentRegistered()
		m.Enrolled(&models.Course{Code: "CS101", MaximumCapacity: 1})
		m.GradeAssigned(50)
		m.Rejected(opEnroll, appErrors.ErrConflict)
	})
	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	assert.Empty(t, buf.String())
}

func TestRegistryMetricsWriteText(t *testing.T) {
	m := NewRegistryMetrics()
	m.CourseCreated(&models.Course{Code: "CS101", MaximumCapacity: 4, CurrentEnrollment: 1})
	m.GradeAssigned(85)
	m.Rejected(opAssignGrade, errors.New("unexpected"))

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "registry_courses_created_total 1")
	assert.Contains(t, out, `registry_course_fill_ratio{course="CS101"} 0.25`)
	assert.Contains(t, out, "registry_grade_value_count 1")
	assert.Contains(t, out, `registry_rejections_total{code="INTERNAL_ERROR",operation="assign_grade"} 1`)
}
