package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type fakeRecognizer struct {
	text string
	err  error
	got  []byte
}

func (f *fakeRecognizer) Recognize(_ context.Context, image []byte) (string, error) {
	f.got = image
	return f.text, f.err
}

func TestExtractParsesRecognizedText(t *testing.T) {
	rec := &fakeRecognizer{text: "Name: Ada Obi\nReg No: CSC/19/7\nCSC101 A; MTH101 B+"}
	svc := NewService(rec)

	got, err := svc.Extract(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), rec.got)
	assert.Equal(t, "CSC/19/7", got.RegNumber)
	require.Len(t, got.Courses, 2)
	assert.Equal(t, "Introduction to Computing", got.Courses[0].Title)
	assert.Equal(t, "B+", got.Courses[1].Grade)
}

func TestExtractEmptyImage(t *testing.T) {
	svc := NewService(&fakeRecognizer{})
	_, err := svc.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestExtractRecognizerFailure(t *testing.T) {
	svc := NewService(&fakeRecognizer{err: errors.New("tesseract crashed")})
	_, err := svc.Extract(context.Background(), []byte("img"))
	require.ErrorIs(t, err, ErrOCRFailed)
	assert.Contains(t, err.Error(), "tesseract crashed")
}

func newUploadApp(rec Recognizer) *fiber.App {
	app := fiber.New()
	app.Post("/upload", NewHandler(NewService(rec)).Upload)
	return app
}

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, "result.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	app := newUploadApp(&fakeRecognizer{text: "Name: Jane Doe, PHY101 C"})
	body, ct := multipartBody(t, "image", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Jane Doe", got["studentName"])
	assert.Equal(t, "", got["regNumber"])
	courses := got["courses"].([]any)
	require.Len(t, courses, 1)
	assert.Equal(t, "PHY101", courses[0].(map[string]any)["code"])
}

func TestUploadHandlerMissingImage(t *testing.T) {
	app := newUploadApp(&fakeRecognizer{})
	body, ct := multipartBody(t, "file", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadHandlerOCRFailure(t *testing.T) {
	app := newUploadApp(&fakeRecognizer{err: errors.New("boom")})
	body, ct := multipartBody(t, "image", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestTesseractRecognizer(t *testing.T) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed")
	}

	small := image.NewRGBA(image.Rect(0, 0, 120, 24))
	xdraw.Draw(small, small.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, 17),
	}
	d.DrawString("HELLO RESULT")

	// basicfont glyphs are too small for tesseract at native size.
	img := image.NewRGBA(image.Rect(0, 0, 480, 96))
	xdraw.NearestNeighbor.Scale(img, img.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	text, err := NewTesseractRecognizer("eng").Recognize(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, strings.ToUpper(text), "RESULT")
}
