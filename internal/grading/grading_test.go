package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePoint(t *testing.T) {
	assert.Equal(t, 13.5, GradePoint(3, "B+"))
	assert.Equal(t, 15.0, GradePoint(3, "A"))
	assert.Equal(t, 0.0, GradePoint(3, "Z"))
	assert.Equal(t, 0.0, GradePoint(3, "F"))
}

func TestRemarkThresholds(t *testing.T) {
	cases := map[float64]string{
		5.0:  "First Class",
		4.5:  "First Class",
		4.49: "Second Class Upper",
		3.5:  "Second Class Upper",
		3.49: "Second Class Lower",
		2.5:  "Second Class Lower",
		1.5:  "Third Class",
		1.0:  "Pass",
		0:    "Pass",
	}
	for cgpa, want := range cases {
		assert.Equal(t, want, Remark(cgpa), "cgpa %v", cgpa)
	}
}

func TestCourseTitle(t *testing.T) {
	assert.Equal(t, "Elementary Mathematics I", CourseTitle("MTH101"))
	assert.Equal(t, UnknownCourseTitle, CourseTitle("XYZ999"))
	assert.Equal(t, UnknownCourseTitle, CourseTitle("mth101"))
}

func TestSummarize(t *testing.T) {
	cgpa, total := Summarize([]Course{
		{Code: "MTH101", Units: 3, Grade: "A"},
		{Code: "PHY101", Units: 3, Grade: "B+"},
		{Code: "GST101", Units: 2, Grade: "C"},
	})
	// (15 + 13.5 + 6) / 8 = 4.3125
	assert.Equal(t, "4.31", cgpa)
	assert.Equal(t, 8, total)

	cgpa, total = Summarize(nil)
	assert.Equal(t, "0.00", cgpa)
	assert.Equal(t, 0, total)
}

func TestFormatPoint(t *testing.T) {
	assert.Equal(t, "13.5", FormatPoint(13.5))
	assert.Equal(t, "15.0", FormatPoint(15))
	assert.Equal(t, "0.0", FormatPoint(0))
}
