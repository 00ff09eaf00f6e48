package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-course-registry/internal/models"
	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
	"github.com/noah-isme/sma-course-registry/pkg/export"
	"github.com/noah-isme/sma-course-registry/pkg/storage"
)

func newReportServiceForTest(t *testing.T) (*ReportService, *Registry, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	reg := newTestRegistry()
	ctx := context.Background()
	cs, err := reg.AddCourse(ctx, "CS101", "Intro to CS", 2)
	require.NoError(t, err)
	math, err := reg.AddCourse(ctx, "MATH1", "Calculus", 30)
	require.NoError(t, err)
	student := models.NewStudent("Ada Lovelace", "S1")
	require.NoError(t, reg.EnrollStudent(ctx, student, cs))
	require.NoError(t, reg.EnrollStudent(ctx, student, math))
	require.NoError(t, reg.AssignGrade(ctx, student, cs, 91))

	svc := NewReportService(reg, store, zap.NewNop(), nil, nil)
	return svc, reg, store
}

func readReport(t *testing.T, store *storage.LocalStorage, rel string) string {
	t.Helper()
	data, err := os.ReadFile(store.Path(rel))
	require.NoError(t, err)
	return string(data)
}

func TestReportServiceCourseRosterCSV(t *testing.T) {
	svc, _, store := newReportServiceForTest(t)

	result, err := svc.CourseRoster(context.Background(), "CSV")
	require.NoError(t, err)
	assert.Equal(t, models.ReportTypeRoster, result.Type)
	assert.Equal(t, models.ReportFormatCSV, result.Format)
	assert.Equal(t, 2, result.Rows)
	assert.True(t, strings.HasPrefix(result.RelativePath, "roster_all_"))
	assert.True(t, strings.HasSuffix(result.RelativePath, ".csv"))
	assert.Equal(t, store.Path(result.RelativePath), result.Location)

	content := readReport(t, store, result.RelativePath)
	assert.Contains(t, content, "code,name,enrolled,capacity,seats_left\n")
	assert.Contains(t, content, "CS101,Intro to CS,1,2,1\n")
	assert.Contains(t, content, "MATH1,Calculus,1,30,29\n")
	assert.Contains(t, content, "Total Courses,2\n")
}

func TestReportServiceTranscriptCSV(t *testing.T) {
	svc, _, store := newReportServiceForTest(t)

	result, err := svc.StudentTranscript(context.Background(), "S1", "csv")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)

	content := readReport(t, store, result.RelativePath)
	assert.Contains(t, content, "CS101,Intro to CS,91.00\n")
	assert.Contains(t, content, "MATH1,Calculus,ungraded\n")
	assert.Contains(t, content, "Overall Average,91.00\n")
}

func TestReportServiceTranscriptPDF(t *testing.T) {
	svc, _, store := newReportServiceForTest(t)

	result, err := svc.StudentTranscript(context.Background(), "S1", "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.RelativePath, ".pdf"))
	assert.True(t, strings.HasPrefix(readReport(t, store, result.RelativePath), "%PDF-"))
}

func TestReportServiceRejects(t *testing.T) {
	svc, _, _ := newReportServiceForTest(t)
	ctx := context.Background()

	_, err := svc.CourseRoster(ctx, "xlsx")
	assert.True(t, appErrors.Is(err, appErrors.CodeValidation))

	_, err = svc.StudentTranscript(ctx, "nobody", "csv")
	assert.True(t, appErrors.Is(err, appErrors.CodeNotFound))
}

type failingRenderer struct{}

func (failingRenderer) Render(export.Dataset) ([]byte, error) {
	return nil, errors.New("renderer down")
}

func TestReportServiceRenderFailure(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewReportService(newTestRegistry(), store, nil, failingRenderer{}, nil)

	_, err = svc.CourseRoster(context.Background(), "csv")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.CodeInternal))
}

func TestReportServiceCleanup(t *testing.T) {
	svc, _, store := newReportServiceForTest(t)
	result, err := svc.CourseRoster(context.Background(), "csv")
	require.NoError(t, err)

	_, err = store.Save("notes.txt", []byte("keep me"))
	require.NoError(t, err)

	deleted, err := svc.Cleanup(0)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(store.Path(result.RelativePath), past, past))
	require.NoError(t, os.Chtimes(store.Path("notes.txt"), past, past))
	deleted, err = svc.Cleanup(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{result.RelativePath}, deleted)

	_, err = os.Stat(store.Path("notes.txt"))
	assert.NoError(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "S-1_x", sanitizeFilename("S/1 x"))
}
