package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/resulto-ai/resulto/internal/grading"
)

// Record is the structured candidate pulled out of recognized text. It is
// best-effort and meant to be corrected by a human before rendering.
type Record struct {
	StudentName string           `json:"studentName"`
	RegNumber   string           `json:"regNumber"`
	Courses     []grading.Course `json:"courses"`
}

// space and word match what \s and \w match on Unicode text; RE2's own
// classes are ASCII-only.
const (
	space = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`
	word  = `\p{L}\p{N}_`
)

var (
	namePattern   = regexp.MustCompile(`(?i)Name:?[` + space + `]*([A-Za-z` + space + `]+)`)
	regNoPattern  = regexp.MustCompile(`(?i)Reg\.?[` + space + `]*(?:No\.?|Number):?[` + space + `]*([A-Za-z0-9/]+)`)
	coursePattern = regexp.MustCompile(`(?i)([A-Z]{3}\p{Nd}{3})[` + space + word + `()]*(A|B\+?|C\+?|D|E|F)`)
)

// Parse scans recognized text for the student's name, registration number
// and every course-code/grade occurrence, in document order.
func Parse(text string) Record {
	rec := Record{
		StudentName: firstGroup(namePattern, text),
		RegNumber:   firstGroup(regNoPattern, text),
		Courses:     []grading.Course{},
	}
	for _, m := range coursePattern.FindAllStringSubmatch(text, -1) {
		code, grade := m[1], m[2]
		rec.Courses = append(rec.Courses, grading.Course{
			Code:  code,
			Title: grading.CourseTitle(code),
			Units: grading.DefaultUnits,
			Grade: grade,
		})
	}
	return rec
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimFunc(m[1], isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
