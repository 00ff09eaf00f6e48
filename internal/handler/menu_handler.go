package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-course-registry/internal/models"
	"github.com/noah-isme/sma-course-registry/internal/service"
	"github.com/noah-isme/sma-course-registry/pkg/logger"
	"github.com/noah-isme/sma-course-registry/pkg/opid"
	"github.com/noah-isme/sma-course-registry/pkg/response"
)

// MenuConfig tunes the console menu.
type MenuConfig struct {
	Prompt        string
	DefaultFormat string
}

type menuCommand struct {
	label string
	run   func(ctx context.Context) error
}

// MenuHandler drives the registry from a line-oriented console.
type MenuHandler struct {
	registry *service.Registry
	reports  *service.ReportService
	metrics  *service.RegistryMetrics

	in     *bufio.Scanner
	out    io.Writer
	cfg    MenuConfig
	logger *zap.Logger

	commands []menuCommand
}

// NewMenuHandler constructs MenuHandler. reports and metrics may be nil, which
// disables the matching menu entries.
func NewMenuHandler(registry *service.Registry, reports *service.ReportService, metrics *service.RegistryMetrics, in io.Reader, out io.Writer, cfg MenuConfig, logger *zap.Logger) *MenuHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = string(models.ReportFormatCSV)
	}
	h := &MenuHandler{
		registry: registry,
		reports:  reports,
		metrics:  metrics,
		in:       bufio.NewScanner(in),
		out:      out,
		cfg:      cfg,
		logger:   logger,
	}
	h.commands = []menuCommand{
		{"Add a New Course", h.addCourse},
		{"Add a New Student", h.addStudent},
		{"Enroll Student in Course", h.enroll},
		{"Assign Grade to Student", h.assignGrade},
		{"Calculate Overall Grade for Student", h.overallGrade},
		{"Display All Courses", h.listCourses},
		{"Display All Students", h.listStudents},
		{"Display Enrollment Statistics", h.statistics},
		{"Export Course Roster", h.exportRoster},
		{"Export Student Transcript", h.exportTranscript},
		{"Display Metrics", h.showMetrics},
	}
	return h
}

// Run shows the menu until the user exits or input ends.
func (h *MenuHandler) Run(ctx context.Context) error {
	fmt.Fprintln(h.out, "Course Enrollment and Grade Management")
	for {
		h.printMenu()
		raw, err := h.readLine(h.cfg.Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		choice, err := strconv.Atoi(raw)
		if err != nil || choice < 0 || choice > len(h.commands) {
			response.Errorf(h.out, "invalid choice, enter a number between 0 and %d", len(h.commands))
			continue
		}
		if choice == 0 {
			fmt.Fprintln(h.out, "Goodbye!")
			return nil
		}

		cmd := h.commands[choice-1]
		opCtx, id := opid.New(ctx)
		log := h.logger.With(zap.String("operation_id", id))
		log.Debug("menu command", zap.String("command", cmd.label))
		response.Section(h.out, cmd.label)
		if err := cmd.run(opCtx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *MenuHandler) printMenu() {
	fmt.Fprintln(h.out)
	for i, cmd := range h.commands {
		fmt.Fprintf(h.out, "%d. %s\n", i+1, cmd.label)
	}
	fmt.Fprintln(h.out, "0. Exit")
}

func (h *MenuHandler) addCourse(ctx context.Context) error {
	code, err := h.readLine("Course code: ")
	if err != nil {
		return err
	}
	name, err := h.readLine("Course name: ")
	if err != nil {
		return err
	}
	capacity, err := h.readInt("Maximum capacity: ")
	if err != nil {
		return err
	}

	course, err := h.registry.AddCourse(ctx, code, name, capacity)
	if err != nil {
		response.Error(h.out, err)
		return nil
	}
	response.Success(h.out, "course added", course.String())
	return nil
}

func (h *MenuHandler) addStudent(ctx context.Context) error {
	name, err := h.readLine("Student name: ")
	if err != nil {
		return err
	}
	id, err := h.readLine("Student ID: ")
	if err != nil {
		return err
	}
	if name == "" || id == "" {
		response.Errorf(h.out, "name and ID cannot be empty")
		return nil
	}

	student := models.NewStudent(name, id)
	if err := h.registry.AddStudent(ctx, student); err != nil {
		response.Error(h.out, err)
		return nil
	}
	response.Success(h.out, "student added", student.String())
	return nil
}

func (h *MenuHandler) enroll(ctx context.Context) error {
	student, ok, err := h.promptStudent()
	if err != nil || !ok {
		return err
	}
	course, ok, err := h.promptCourse()
	if err != nil || !ok {
		return err
	}

	if err := h.registry.EnrollStudent(ctx, student, course); err != nil {
		response.Error(h.out, err)
		if !course.HasCapacity() {
			fmt.Fprintf(h.out, "Current enrollment: %d/%d\n", course.CurrentEnrollment, course.MaximumCapacity)
		}
		return nil
	}
	response.Success(h.out, "student enrolled",
		"Student: "+student.Name,
		"Course: "+course.Name)
	return nil
}

func (h *MenuHandler) assignGrade(ctx context.Context) error {
	student, ok, err := h.promptStudent()
	if err != nil || !ok {
		return err
	}
	courses := student.EnrolledCourses()
	if len(courses) == 0 {
		response.Errorf(h.out, "student is not enrolled in any courses")
		return nil
	}
	fmt.Fprintln(h.out, "Enrolled courses:")
	for i, course := range courses {
		fmt.Fprintf(h.out, "%d. %s - %s (grade: %s)\n", i+1, course.Code, course.Name, service.FormatGrade(student.GradeFor(course)))
	}

	course, ok, err := h.promptCourse()
	if err != nil || !ok {
		return err
	}
	grade, err := h.readFloat("Grade (0-100): ")
	if err != nil {
		return err
	}

	if err := h.registry.AssignGrade(ctx, student, course, grade); err != nil {
		response.Error(h.out, err)
		return nil
	}
	response.Success(h.out, "grade assigned",
		"Student: "+student.Name,
		"Course: "+course.Name,
		"Grade: "+strconv.FormatFloat(grade, 'f', 2, 64))
	return nil
}

func (h *MenuHandler) overallGrade(ctx context.Context) error {
	student, ok, err := h.promptStudent()
	if err != nil || !ok {
		return err
	}
	fmt.Fprintf(h.out, "Student: %s (ID: %s)\n", student.Name, student.StudentID)
	courses := student.EnrolledCourses()
	if len(courses) == 0 {
		fmt.Fprintln(h.out, "No courses enrolled.")
		return nil
	}
	for _, course := range courses {
		fmt.Fprintf(h.out, "  %s - %s: %s\n", course.Code, course.Name, service.FormatGrade(student.GradeFor(course)))
	}
	fmt.Fprintf(h.out, "Overall Average: %.2f\n", h.registry.CalculateOverallGrade(student))
	return nil
}

func (h *MenuHandler) listCourses(ctx context.Context) error {
	courses := h.registry.Courses()
	if len(courses) == 0 {
		fmt.Fprintln(h.out, "No courses available.")
		return nil
	}
	for _, course := range courses {
		fmt.Fprintln(h.out, course.String())
	}
	return nil
}

func (h *MenuHandler) listStudents(ctx context.Context) error {
	students := h.registry.Students()
	if len(students) == 0 {
		fmt.Fprintln(h.out, "No students registered.")
		return nil
	}
	for _, student := range students {
		fmt.Fprintln(h.out, student.String())
	}
	return nil
}

func (h *MenuHandler) statistics(ctx context.Context) error {
	fmt.Fprint(h.out, h.registry.EnrollmentStatistics().String())
	return nil
}

func (h *MenuHandler) exportRoster(ctx context.Context) error {
	if h.reports == nil {
		response.Errorf(h.out, "reports are disabled")
		return nil
	}
	format, err := h.readFormat()
	if err != nil {
		return err
	}
	result, err := h.reports.CourseRoster(ctx, format)
	if err != nil {
		h.reportFailure(ctx, err)
		return nil
	}
	response.Success(h.out, "roster exported", "File: "+result.RelativePath, "Location: "+result.Location)
	return nil
}

func (h *MenuHandler) exportTranscript(ctx context.Context) error {
	if h.reports == nil {
		response.Errorf(h.out, "reports are disabled")
		return nil
	}
	id, err := h.readLine("Student ID: ")
	if err != nil {
		return err
	}
	format, err := h.readFormat()
	if err != nil {
		return err
	}
	result, err := h.reports.StudentTranscript(ctx, id, format)
	if err != nil {
		h.reportFailure(ctx, err)
		return nil
	}
	response.Success(h.out, "transcript exported", "File: "+result.RelativePath, "Location: "+result.Location)
	return nil
}

func (h *MenuHandler) showMetrics(ctx context.Context) error {
	if h.metrics == nil {
		response.Errorf(h.out, "metrics are disabled")
		return nil
	}
	if err := h.metrics.WriteText(h.out); err != nil {
		h.reportFailure(ctx, err)
	}
	return nil
}

func (h *MenuHandler) reportFailure(ctx context.Context, err error) {
	logger.WithOperation(ctx, h.logger).Warn("menu command failed", zap.Error(err))
	response.Error(h.out, err)
}

// promptStudent reads an ID and resolves it. ok is false when the student is
// unknown; the error has already been printed.
func (h *MenuHandler) promptStudent() (*models.Student, bool, error) {
	id, err := h.readLine("Student ID: ")
	if err != nil {
		return nil, false, err
	}
	student, err := h.registry.FindStudentByID(id)
	if err != nil {
		response.Errorf(h.out, "student not found with ID: %s", id)
		return nil, false, nil
	}
	return student, true, nil
}

func (h *MenuHandler) promptCourse() (*models.Course, bool, error) {
	code, err := h.readLine("Course code: ")
	if err != nil {
		return nil, false, err
	}
	course, err := h.registry.FindCourseByCode(code)
	if err != nil {
		response.Errorf(h.out, "course not found with code: %s", code)
		return nil, false, nil
	}
	return course, true, nil
}

func (h *MenuHandler) readFormat() (string, error) {
	format, err := h.readLine(fmt.Sprintf("Format (csv/pdf) [%s]: ", h.cfg.DefaultFormat))
	if err != nil {
		return "", err
	}
	if format == "" {
		return h.cfg.DefaultFormat, nil
	}
	return format, nil
}

// readLine prints prompt and returns the next trimmed line, or io.EOF.
func (h *MenuHandler) readLine(prompt string) (string, error) {
	fmt.Fprint(h.out, prompt)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(h.in.Text()), nil
}

// readInt re-prompts until a whole number is entered.
func (h *MenuHandler) readInt(prompt string) (int, error) {
	for {
		raw, err := h.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(raw)
		if err == nil {
			return v, nil
		}
		response.Errorf(h.out, "please enter a whole number")
	}
}

// readFloat re-prompts until a number is entered.
func (h *MenuHandler) readFloat(prompt string) (float64, error) {
	for {
		raw, err := h.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return v, nil
		}
		response.Errorf(h.out, "please enter a number")
	}
}
