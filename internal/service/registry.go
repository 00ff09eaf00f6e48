package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-course-registry/internal/models"
	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
	"github.com/noah-isme/sma-course-registry/pkg/logger"
)

const (
	opAddCourse   = "add_course"
	opAddStudent  = "add_student"
	opEnroll      = "enroll"
	opAssignGrade = "assign_grade"
)

// Registry is the catalog of courses and students. It enforces the rules that
// span both entities: unique identifiers, course capacity and enrollment before
// grading. Every operation either applies fully or not at all.
type Registry struct {
	mu sync.RWMutex

	courses  []*models.Course
	students []*models.Student
	// student ID -> course code -> grade, mirrors each student's own grades
	gradeIndex       map[string]map[string]float64
	totalEnrollments int

	metrics *RegistryMetrics
	logger  *zap.Logger
}

// NewRegistry constructs an empty Registry. metrics may be nil.
func NewRegistry(metrics *RegistryMetrics, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		gradeIndex: make(map[string]map[string]float64),
		metrics:    metrics,
		logger:     logger,
	}
}

// AddCourse validates and adds a course to the catalog.
func (r *Registry) AddCourse(ctx context.Context, code, name string, maxCapacity int) (*models.Course, error) {
	log := logger.WithOperation(ctx, r.logger)
	course, err := models.NewCourse(code, name, maxCapacity)
	if err != nil {
		return nil, r.reject(log, opAddCourse, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.courseByCode(code) != nil {
		return nil, r.reject(log, opAddCourse, appErrors.Clone(appErrors.ErrConflict, "course code already exists"))
	}
	r.courses = append(r.courses, course)

	r.metrics.CourseCreated(course)
	log.Info("course added", zap.String("course_code", course.Code), zap.Int("capacity", course.MaximumCapacity))
	return course, nil
}

// AddStudent registers student. Duplicates are detected by student ID.
func (r *Registry) AddStudent(ctx context.Context, student *models.Student) error {
	log := logger.WithOperation(ctx, r.logger)
	if student == nil {
		return r.reject(log, opAddStudent, appErrors.Clone(appErrors.ErrValidation, "student is required"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.studentByID(student.StudentID) != nil {
		return r.reject(log, opAddStudent, appErrors.Clone(appErrors.ErrConflict, "student id already exists"))
	}
	r.registerStudent(student)

	log.Info("student added", zap.String("student_id", student.StudentID))
	return nil
}

// FindCourseByCode returns the catalog course with exactly this code.
func (r *Registry) FindCourseByCode(code string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if course := r.courseByCode(code); course != nil {
		return course, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

// FindStudentByID returns the registered student with exactly this ID.
func (r *Registry) FindStudentByID(id string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if student := r.studentByID(id); student != nil {
		return student, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// EnrollStudent enrolls student in course. The course must be in the catalog;
// a student not yet registered is registered as part of the enrollment.
func (r *Registry) EnrollStudent(ctx context.Context, student *models.Student, course *models.Course) error {
	log := logger.WithOperation(ctx, r.logger)
	if student == nil || course == nil {
		return r.reject(log, opEnroll, appErrors.Clone(appErrors.ErrValidation, "student and course are required"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	target := r.courseByCode(course.Code)
	if target == nil {
		return r.reject(log, opEnroll, appErrors.Clone(appErrors.ErrNotFound, "course not found"))
	}
	registered := r.studentByID(student.StudentID)
	if registered != nil && registered != student {
		return r.reject(log, opEnroll, appErrors.Clone(appErrors.ErrConflict, "student id belongs to another student"))
	}
	if !target.HasCapacity() {
		return r.reject(log, opEnroll, appErrors.Clone(appErrors.ErrCapacityExceeded, ""))
	}
	if !student.Enroll(target) {
		return r.reject(log, opEnroll, appErrors.Clone(appErrors.ErrConflict, "student already enrolled in course"))
	}

	target.IncrementEnrollment()
	if registered == nil {
		r.registerStudent(student)
	}
	r.totalEnrollments++

	r.metrics.Enrolled(target)
	log.Info("student enrolled",
		zap.String("student_id", student.StudentID),
		zap.String("course_code", target.Code),
		zap.Int("enrollment", target.CurrentEnrollment),
		zap.Int("capacity", target.MaximumCapacity))
	return nil
}

// AssignGrade records grade for student in course and mirrors it into the
// registry-wide grade index.
func (r *Registry) AssignGrade(ctx context.Context, student *models.Student, course *models.Course, grade float64) error {
	log := logger.WithOperation(ctx, r.logger)
	if student == nil || course == nil {
		return r.reject(log, opAssignGrade, appErrors.Clone(appErrors.ErrValidation, "student and course are required"))
	}
	if !models.ValidGrade(grade) {
		return r.reject(log, opAssignGrade, appErrors.Clone(appErrors.ErrValidation, "grade must be between 0 and 100"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	registered := r.studentByID(student.StudentID)
	if registered == nil {
		return r.reject(log, opAssignGrade, appErrors.Clone(appErrors.ErrNotFound, "student not found"))
	}
	if registered != student {
		return r.reject(log, opAssignGrade, appErrors.Clone(appErrors.ErrConflict, "student id belongs to another student"))
	}
	if r.courseByCode(course.Code) == nil {
		return r.reject(log, opAssignGrade, appErrors.Clone(appErrors.ErrNotFound, "course not found"))
	}
	if !student.AssignGrade(course, grade) {
		return r.reject(log, opAssignGrade, appErrors.Clone(appErrors.ErrNotEnrolled, ""))
	}

	r.gradeIndex[student.StudentID][course.Code] = grade

	r.metrics.GradeAssigned(grade)
	log.Info("grade assigned",
		zap.String("student_id", student.StudentID),
		zap.String("course_code", course.Code),
		zap.Float64("grade", grade))
	return nil
}

// CalculateOverallGrade returns the student's average recorded grade, or 0 for
// a nil or unregistered student.
func (r *Registry) CalculateOverallGrade(student *models.Student) float64 {
	if student == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.studentByID(student.StudentID) != student {
		return 0
	}
	return student.OverallAverage()
}

// OverallGradeByID is CalculateOverallGrade for a registered ID; unknown IDs
// yield 0.
func (r *Registry) OverallGradeByID(id string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	student := r.studentByID(id)
	if student == nil {
		return 0
	}
	return student.OverallAverage()
}

// EnrollmentStatistics summarises the catalog. TotalEnrollments counts every
// successful enrollment over the registry's lifetime.
func (r *Registry) EnrollmentStatistics() models.Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.Statistics{
		TotalCourses:     len(r.courses),
		TotalStudents:    len(r.students),
		TotalEnrollments: r.totalEnrollments,
	}
}

// Courses returns the catalog in insertion order.
func (r *Registry) Courses() []*models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Course, len(r.courses))
	copy(out, r.courses)
	return out
}

// Students returns registered students in insertion order.
func (r *Registry) Students() []*models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Student, len(r.students))
	copy(out, r.students)
	return out
}

// GradeIndex returns a copy of the indexed grades for a student ID.
func (r *Registry) GradeIndex(studentID string) (map[string]float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	index, ok := r.gradeIndex[studentID]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(index))
	for code, grade := range index {
		out[code] = grade
	}
	return out, true
}

func (r *Registry) courseByCode(code string) *models.Course {
	for _, course := range r.courses {
		if course.Code == code {
			return course
		}
	}
	return nil
}

func (r *Registry) studentByID(id string) *models.Student {
	for _, student := range r.students {
		if student.StudentID == id {
			return student
		}
	}
	return nil
}

// registerStudent must be called with mu held. The index entry for the ID is
// replaced by the student's own grades.
func (r *Registry) registerStudent(student *models.Student) {
	r.students = append(r.students, student)
	r.gradeIndex[student.StudentID] = student.Grades()
	r.metrics.StudentRegistered()
}

func (r *Registry) reject(log *zap.Logger, operation string, err error) error {
	r.metrics.Rejected(operation, err)
	e := appErrors.FromError(err)
	log.Info("registry operation rejected",
		zap.String("operation", operation),
		zap.String("code", e.Code),
		zap.String("reason", e.Message))
	return err
}
