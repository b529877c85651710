package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resulto-ai/resulto/internal/grading"
)

func TestParseName(t *testing.T) {
	assert.Equal(t, "Jane Doe", Parse("Name: Jane Doe").StudentName)
	assert.Equal(t, "Jane Doe", Parse("Student Name: Jane Doe, Reg No: X1").StudentName)
	assert.Equal(t, "JOHN", Parse("NAME   JOHN").StudentName)
	assert.Equal(t, "", Parse("no identifying fields here").StudentName)
}

func TestParseRegNumber(t *testing.T) {
	assert.Equal(t, "CSC/2021/001", Parse("Reg. No: CSC/2021/001").RegNumber)
	assert.Equal(t, "2021ABC", Parse("reg number: 2021ABC").RegNumber)
	assert.Equal(t, "U99", Parse("RegNo.U99").RegNumber)
	assert.Equal(t, "", Parse("Registration pending").RegNumber)
}

func TestParseSingleCourse(t *testing.T) {
	rec := Parse("MTH101 Elementary Math A")
	require.Len(t, rec.Courses, 1)
	assert.Equal(t, grading.Course{
		Code:  "MTH101",
		Title: "Elementary Mathematics I",
		Units: 3,
		Grade: "A",
	}, rec.Courses[0])
}

func TestParseCoursesInDocumentOrder(t *testing.T) {
	rec := Parse("MTH101 A; PHY101 B+; CHM101 C; MTH101 F")
	require.Len(t, rec.Courses, 4)

	var got []string
	for _, c := range rec.Courses {
		got = append(got, c.Code+":"+c.Grade)
	}
	assert.Equal(t, []string{"MTH101:A", "PHY101:B+", "CHM101:C", "MTH101:F"}, got)
}

func TestParseCourseCaseInsensitive(t *testing.T) {
	rec := Parse("csc101 (intro) b")
	require.Len(t, rec.Courses, 1)
	assert.Equal(t, "csc101", rec.Courses[0].Code)
	assert.Equal(t, grading.UnknownCourseTitle, rec.Courses[0].Title)
	assert.Equal(t, "b", rec.Courses[0].Grade)
}

func TestParseCourseFillerSpansLines(t *testing.T) {
	// The filler class includes whitespace, so without punctuation between
	// rows the greedy match runs to the last grade letter.
	rec := Parse("MTH101 A\nPHY101 B")
	require.Len(t, rec.Courses, 1)
	assert.Equal(t, "MTH101", rec.Courses[0].Code)
	assert.Equal(t, "B", rec.Courses[0].Grade)
}

func TestParseNoCourses(t *testing.T) {
	rec := Parse("Name: Jane Doe")
	assert.NotNil(t, rec.Courses)
	assert.Empty(t, rec.Courses)
}

func TestParseUnicodeText(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"accented title", "MTH101 Mathématiques A", []string{"MTH101:A"}},
		{"no-break space", "CSC101 Computing B", []string{"CSC101:B"}},
		{"arabic-indic digits", "PHY١٠١ B+", []string{"PHY١٠١:B+"}},
		{"mixed separators", "MTH101 Élémentaire (Algèbre) C+; CHM101 Chimie E", []string{"MTH101:C+", "CHM101:E"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, c := range Parse(tc.text).Courses {
				got = append(got, c.Code+":"+c.Grade)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFieldsAcrossNoBreakSpaces(t *testing.T) {
	rec := Parse("Name: Jane Doe ")
	assert.Equal(t, "Jane Doe", rec.StudentName)
	assert.Equal(t, "CSC/2021/001", Parse("Reg No: CSC/2021/001").RegNumber)
}
