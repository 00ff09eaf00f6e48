package models

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
	"github.com/noah-isme/sma-course-registry/pkg/validation"
)

// Course is a catalog entry with bounded capacity. Two courses are the same
// course when their codes match. CurrentEnrollment stays within
// 0..MaximumCapacity only when it is changed through IncrementEnrollment, which
// the Registry does on enrollment; callers should not assign it directly.
type Course struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	MaximumCapacity   int    `json:"maximum_capacity"`
	CurrentEnrollment int    `json:"current_enrollment"`
}

type courseInput struct {
	Code            string `label:"code" validate:"required"`
	Name            string `label:"name" validate:"required"`
	MaximumCapacity int    `label:"maximum capacity" validate:"gt=0"`
}

// NewCourse validates the inputs and returns an empty course.
func NewCourse(code, name string, maxCapacity int) (*Course, error) {
	v := validation.Default()
	input := courseInput{
		Code:            strings.TrimSpace(code),
		Name:            strings.TrimSpace(name),
		MaximumCapacity: maxCapacity,
	}
	if err := v.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid course: "+v.Translate(err))
	}
	return &Course{Code: code, Name: name, MaximumCapacity: maxCapacity}, nil
}

// HasCapacity reports whether another student can be enrolled.
func (c *Course) HasCapacity() bool {
	return c.CurrentEnrollment < c.MaximumCapacity
}

// IncrementEnrollment takes one seat. It does nothing when the course is full;
// callers are expected to check HasCapacity first.
func (c *Course) IncrementEnrollment() {
	if c.HasCapacity() {
		c.CurrentEnrollment++
	}
}

// AvailableSeats returns the number of free seats.
func (c *Course) AvailableSeats() int {
	return c.MaximumCapacity - c.CurrentEnrollment
}

// FillRatio returns the share of seats taken, in [0, 1].
func (c *Course) FillRatio() float64 {
	if c.MaximumCapacity <= 0 {
		return 0
	}
	return float64(c.CurrentEnrollment) / float64(c.MaximumCapacity)
}

// Equal compares courses by code.
func (c *Course) Equal(other *Course) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Code == other.Code
}

func (c *Course) String() string {
	return fmt.Sprintf("%s - %s (%d/%d)", c.Code, c.Name, c.CurrentEnrollment, c.MaximumCapacity)
}
