package extract

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrOCRFailed wraps any failure of the recognition step.
	ErrOCRFailed = errors.New("ocr processing failed")
	// ErrNoImage is returned when the upload is empty.
	ErrNoImage = errors.New("no image provided")
)

// Service extracts a structured record from an uploaded image.
type Service struct {
	recognizer Recognizer
}

// NewService constructs an extraction service.
func NewService(recognizer Recognizer) *Service {
	return &Service{recognizer: recognizer}
}

// Extract recognizes text in image and parses it. Only recognition errors
// fail the call; parsing never does.
func (s *Service) Extract(ctx context.Context, image []byte) (Record, error) {
	if len(image) == 0 {
		return Record{}, ErrNoImage
	}
	text, err := s.recognizer.Recognize(ctx, image)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}
	return Parse(text), nil
}
