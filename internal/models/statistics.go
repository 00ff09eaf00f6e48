package models

import "fmt"

// Statistics summarises registry totals.
type Statistics struct {
	TotalCourses     int `json:"total_courses"`
	TotalStudents    int `json:"total_students"`
	TotalEnrollments int `json:"total_enrollments"`
}

func (s Statistics) String() string {
	return fmt.Sprintf("Total Courses: %d\nTotal Students: %d\nTotal Enrollments: %d\n",
		s.TotalCourses, s.TotalStudents, s.TotalEnrollments)
}
