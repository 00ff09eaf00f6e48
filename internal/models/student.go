package models

import "fmt"

// Grade bounds.
const (
	MinGrade = 0.0
	MaxGrade = 100.0
)

// Ungraded is returned by GradeFor when no grade is recorded.
const Ungraded = -1.0

// ValidGrade reports whether grade lies in [MinGrade, MaxGrade].
func ValidGrade(grade float64) bool {
	return grade >= MinGrade && grade <= MaxGrade
}

// Student owns its enrolled courses and the grades recorded against them.
type Student struct {
	Name      string `json:"name"`
	StudentID string `json:"student_id"`

	courses []*Course
	grades  map[string]float64
}

// NewStudent returns a student with no enrollments.
func NewStudent(name, studentID string) *Student {
	return &Student{Name: name, StudentID: studentID, grades: make(map[string]float64)}
}

// Enroll appends course to the student's schedule. It returns false when the
// course is nil or already present.
func (s *Student) Enroll(course *Course) bool {
	if course == nil || s.IsEnrolled(course) {
		return false
	}
	s.courses = append(s.courses, course)
	return true
}

// IsEnrolled reports whether course is in the student's schedule.
func (s *Student) IsEnrolled(course *Course) bool {
	if course == nil {
		return false
	}
	for _, c := range s.courses {
		if c.Equal(course) {
			return true
		}
	}
	return false
}

// AssignGrade records grade for an enrolled course, overwriting any previous
// value. It returns false for out-of-range grades or courses not enrolled.
func (s *Student) AssignGrade(course *Course, grade float64) bool {
	if course == nil || !ValidGrade(grade) || !s.IsEnrolled(course) {
		return false
	}
	if s.grades == nil {
		s.grades = make(map[string]float64)
	}
	s.grades[course.Code] = grade
	return true
}

// GradeFor returns the recorded grade for course. Ungraded and false are
// returned both for ungraded enrollments and for courses not enrolled.
func (s *Student) GradeFor(course *Course) (float64, bool) {
	if course == nil {
		return Ungraded, false
	}
	grade, ok := s.grades[course.Code]
	if !ok {
		return Ungraded, false
	}
	return grade, true
}

// OverallAverage is the mean of recorded grades, or 0 when none exist.
func (s *Student) OverallAverage() float64 {
	if len(s.grades) == 0 {
		return 0
	}
	var sum float64
	for _, grade := range s.grades {
		sum += grade
	}
	return sum / float64(len(s.grades))
}

// EnrolledCourses returns the schedule in enrollment order.
func (s *Student) EnrolledCourses() []*Course {
	out := make([]*Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Grades returns a copy of the recorded grades keyed by course code.
func (s *Student) Grades() map[string]float64 {
	out := make(map[string]float64, len(s.grades))
	for code, grade := range s.grades {
		out[code] = grade
	}
	return out
}

func (s *Student) String() string {
	return fmt.Sprintf("%s - %s (%d courses)", s.StudentID, s.Name, len(s.courses))
}
