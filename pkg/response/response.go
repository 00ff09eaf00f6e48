package response

import (
	"errors"
	"fmt"
	"io"

	appErrors "github.com/noah-isme/sma-course-registry/pkg/errors"
)

// Success prints a "Success:" line followed by optional detail lines.
func Success(w io.Writer, message string, details ...string) {
	fmt.Fprintf(w, "Success: %s\n", message)
	for _, d := range details {
		fmt.Fprintln(w, d)
	}
}

// Error prints the message carried by an application error, or the raw text of
// any other error.
func Error(w io.Writer, err error) {
	if err == nil {
		return
	}
	var appErr *appErrors.Error
	if !errors.As(err, &appErr) {
		fmt.Fprintf(w, "Error: %s\n", err.Error())
		return
	}
	fmt.Fprintf(w, "Error: %s\n", appErr.Message)
}

// Errorf prints a presentation-level error that never reached the registry.
func Errorf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "Error: %s\n", fmt.Sprintf(format, args...))
}

// Section prints a command heading.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
}
