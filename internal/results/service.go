package results

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/resulto-ai/resulto/internal/grading"
	"github.com/resulto-ai/resulto/internal/render"
)

var (
	// ErrInvalidCGPA is returned when the CGPA is not a number.
	ErrInvalidCGPA = errors.New("cgpa must be numeric")
	// ErrUpload wraps object storage failures.
	ErrUpload = errors.New("image upload failed")
	// ErrPersistence wraps result store failures.
	ErrPersistence = errors.New("database error")
)

// PremiumLookup reports whether a user has paid for watermark-free cards.
type PremiumLookup interface {
	IsPremium(ctx context.Context, uid string) (bool, error)
}

// Renderer draws a card as an encoded image.
type Renderer interface {
	Render(card render.Card) ([]byte, error)
}

// Uploader stores rendered images and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service runs the generate pipeline and serves history.
type Service struct {
	repo     Repository
	premium  PremiumLookup
	renderer Renderer
	uploader Uploader
	now      func() time.Time
}

// NewService wires the result pipeline.
func NewService(repo Repository, premium PremiumLookup, renderer Renderer, uploader Uploader) *Service {
	return &Service{repo: repo, premium: premium, renderer: renderer, uploader: uploader, now: time.Now}
}

// Generate renders in for uid, uploads the PNG and records the result.
// The watermark decision comes from the user store, never from the input.
func (s *Service) Generate(ctx context.Context, uid string, in GenerateInput) (Result, error) {
	cgpa := strings.TrimSpace(string(in.CGPA))
	credits := strings.TrimSpace(string(in.TotalCredits))
	if cgpa == "" || credits == "" {
		computed, total := grading.Summarize(in.Grades)
		if cgpa == "" {
			cgpa = computed
		}
		if credits == "" {
			credits = strconv.Itoa(total)
		}
	}
	if _, err := strconv.ParseFloat(cgpa, 64); err != nil {
		return Result{}, ErrInvalidCGPA
	}
	grades := in.Grades
	if grades == nil {
		grades = []grading.Course{}
	}

	premium, err := s.premium.IsPremium(ctx, uid)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	now := s.now().UTC()
	img, err := s.renderer.Render(render.Card{
		Student:      render.Student{Name: in.StudentInfo.Name, RegNumber: in.StudentInfo.RegNumber},
		Grades:       grades,
		CGPA:         cgpa,
		TotalCredits: credits,
		Premium:      premium,
		IssuedAt:     now,
	})
	if err != nil {
		return Result{}, fmt.Errorf("render result: %w", err)
	}

	id := uuid.NewString()
	url, err := s.uploader.Upload(ctx, fmt.Sprintf("results/%s/%s.png", uid, id), img, "image/png")
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	result := Result{
		ID:           id,
		UserID:       uid,
		StudentInfo:  in.StudentInfo,
		Grades:       grades,
		CGPA:         cgpa,
		TotalCredits: credits,
		ImageURL:     url,
		CreatedAt:    now,
	}
	if _, err := s.repo.Save(ctx, result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return result, nil
}

// History lists every result uid has generated.
func (s *Service) History(ctx context.Context, uid string) ([]Result, error) {
	out, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return out, nil
}
