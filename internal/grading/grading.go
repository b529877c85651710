// Package grading holds the fixed academic tables used by extraction and
// rendering: letter-grade points, course titles and degree-class remarks.
package grading

import (
	"math"
	"strconv"
)

// DefaultUnits is the credit weight assigned to courses found by OCR.
const DefaultUnits = 3

// UnknownCourseTitle is used for course codes missing from the title table.
const UnknownCourseTitle = "Unknown Course"

var gradePoints = map[string]float64{
	"A":  5.0,
	"B+": 4.5,
	"B":  4.0,
	"C+": 3.5,
	"C":  3.0,
	"D":  2.0,
	"E":  1.0,
	"F":  0.0,
}

var courseTitles = map[string]string{
	"MTH101": "Elementary Mathematics I",
	"PHY101": "General Physics I",
	"CHM101": "General Chemistry I",
	"BIO101": "General Biology I",
	"GST101": "Communication Skills",
	"ENG101": "Introduction to Engineering",
	"CSC101": "Introduction to Computing",
	"STA101": "Introduction to Statistics",
}

// Course is one graded course on a result card.
type Course struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Units int    `json:"units"`
	Grade string `json:"grade"`
}

// Points returns the point value of a letter grade. Lookup is exact.
func Points(grade string) (float64, bool) {
	p, ok := gradePoints[grade]
	return p, ok
}

// GradePoint is units multiplied by the grade's point value, or 0 for an
// unrecognized grade.
func GradePoint(units int, grade string) float64 {
	p, _ := Points(grade)
	return float64(units) * p
}

// CourseTitle looks up the catalogue title for code.
func CourseTitle(code string) string {
	if title, ok := courseTitles[code]; ok {
		return title
	}
	return UnknownCourseTitle
}

// Remark maps a CGPA to its degree class.
func Remark(cgpa float64) string {
	switch {
	case cgpa >= 4.5:
		return "First Class"
	case cgpa >= 3.5:
		return "Second Class Upper"
	case cgpa >= 2.5:
		return "Second Class Lower"
	case cgpa >= 1.5:
		return "Third Class"
	default:
		return "Pass"
	}
}

// Summarize computes total credit units and the CGPA (two decimals) for a
// list of courses. With no units the CGPA is "0.00".
func Summarize(courses []Course) (cgpa string, totalCredits int) {
	var points float64
	for _, c := range courses {
		totalCredits += c.Units
		points += GradePoint(c.Units, c.Grade)
	}
	if totalCredits <= 0 {
		return "0.00", totalCredits
	}
	return strconv.FormatFloat(points/float64(totalCredits), 'f', 2, 64), totalCredits
}

// FormatPoint renders a grade point the way result cards print it: whole
// numbers keep one decimal ("15.0"), others use the shortest form ("13.5").
func FormatPoint(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
