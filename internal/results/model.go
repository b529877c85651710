package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/resulto-ai/resulto/internal/grading"
)

// StudentInfo names the student a result belongs to.
type StudentInfo struct {
	Name      string `json:"name"`
	RegNumber string `json:"regNumber"`
}

// Result is one rendered result card. Results are immutable once saved.
type Result struct {
	ID           string           `json:"-"`
	UserID       string           `json:"userId"`
	StudentInfo  StudentInfo      `json:"studentInfo"`
	Grades       []grading.Course `json:"grades"`
	CGPA         string           `json:"cgpa"`
	TotalCredits string           `json:"totalCredits"`
	ImageURL     string           `json:"imageUrl"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Figure is a summary value clients send either as a JSON string ("4.50")
// or as a bare number (4.5). It is kept as text.
type Figure string

// UnmarshalJSON accepts strings, numbers and null.
func (f *Figure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Figure(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = Figure(n.String())
	return nil
}

// GenerateInput is the client-edited record to render. IsPremium is
// accepted for compatibility with older clients and ignored.
type GenerateInput struct {
	StudentInfo  StudentInfo      `json:"studentInfo"`
	Grades       []grading.Course `json:"grades"`
	CGPA         Figure           `json:"cgpa"`
	TotalCredits Figure           `json:"totalCredits"`
	IsPremium    bool             `json:"isPremium"`
}
