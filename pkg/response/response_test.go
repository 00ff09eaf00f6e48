package response

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
)

func TestSuccess(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "course added", "CS101 - Intro (0/2)")
	assert.Equal(t, "Success: course added\nCS101 - Intro (0/2)\n", buf.String())
}

func TestErrorUsesMessage(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, appErrors.Clone(appErrors.ErrNotFound, "course not found"))
	Error(&buf, errors.New("disk full"))
	Error(&buf, nil)
	assert.Equal(t, "Error: course not found\nError: disk full\n", buf.String())
}

func TestErrorfAndSection(t *testing.T) {
	var buf bytes.Buffer
	Section(&buf, "All Courses")
	Errorf(&buf, "invalid choice %q", "x")
	assert.Equal(t, "\n--- All Courses ---\nError: invalid choice \"x\"\n", buf.String())
}
