package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterDataset() Dataset {
	return Dataset{
		Title:   "Course Roster",
		Headers: []string{"code", "name", "enrolled"},
		Rows: []map[string]string{
			{"code": "CS101", "name": "Intro, Part 1", "enrolled": "2"},
			{"code": "MATH1", "name": "Calculus", "enrolled": "0"},
		},
		Summary: []SummaryLine{{Label: "Total Courses", Value: "2"}},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterDataset())
	require.NoError(t, err)

	expected := "code,name,enrolled\n" +
		"CS101,\"Intro, Part 1\",2\n" +
		"MATH1,Calculus,0\n" +
		"\n" +
		"Total Courses,2\n"
	assert.Equal(t, expected, string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{Title: "empty"})
	assert.Error(t, err)
}
