// Package render draws result cards as PNG images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/resulto-ai/resulto/internal/grading"
)

// Canvas dimensions in pixels.
const (
	Width  = 1000
	Height = 1200
)

// WatermarkText is drawn across non-premium cards.
const WatermarkText = "FOR ENTERTAINMENT ONLY"

const (
	watermarkAngle = 30.0
	rowStart       = 380
	rowStep        = 40
)

var (
	white     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	brand     = color.RGBA{0x43, 0x61, 0xee, 0xff}
	bandGrey  = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	ruleGrey  = color.RGBA{0xde, 0xe2, 0xe6, 0xff}
	boxGrey   = color.RGBA{0xf8, 0xf9, 0xfa, 0xff}
	watermark = color.NRGBA{0xef, 0x47, 0x6f, 0xa0}
)

// Student identifies whose record is on the card.
type Student struct {
	Name      string `json:"name"`
	RegNumber string `json:"regNumber"`
}

// Card is everything a rendered result depends on.
type Card struct {
	Student      Student
	Grades       []grading.Course
	CGPA         string
	TotalCredits string
	Premium      bool
	IssuedAt     time.Time
}

// Renderer turns cards into PNG bytes.
type Renderer struct {
	fonts *Fonts
}

// NewRenderer constructs a renderer. A nil font set uses the bitmap fallback.
func NewRenderer(fonts *Fonts) *Renderer {
	if fonts == nil {
		fonts = FallbackFonts()
	}
	return &Renderer{fonts: fonts}
}

type anchor int

const (
	leftTop     anchor = iota // PIL "la"
	middle                    // PIL "mm"
	rightMiddle               // PIL "rm"
)

// Render draws card and encodes it as PNG. CGPA must parse as a number.
func (r *Renderer) Render(card Card) ([]byte, error) {
	cgpa, err := strconv.ParseFloat(strings.TrimSpace(card.CGPA), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cgpa %q: %w", card.CGPA, err)
	}

	fs, err := r.fonts.faces()
	if err != nil {
		return nil, err
	}
	defer fs.Close()

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillRect(img, 0, 0, Width, Height, white)

	// Header.
	fillRect(img, 0, 0, 1000, 120, brand)
	drawText(img, fs.title, white, 500, 50, "UNIVERSITY OF EXCELLENCE", middle)
	drawText(img, fs.subtitle, white, 500, 85, "STUDENT ACADEMIC RECORD", middle)
	drawText(img, fs.subtitle, black, 500, 150, "2024/2025 ACADEMIC SESSION - FIRST SEMESTER", middle)

	// Student block.
	drawText(img, fs.body, black, 50, 200, "Student Name:", leftTop)
	drawText(img, fs.body, black, 50, 230, "Registration Number:", leftTop)
	drawText(img, fs.body, black, 50, 260, "Level:", leftTop)
	drawText(img, fs.body, black, 500, 200, "Faculty/Department:", leftTop)
	drawText(img, fs.body, black, 500, 230, "Date Issued:", leftTop)
	drawText(img, fs.body, black, 180, 200, card.Student.Name, leftTop)
	drawText(img, fs.body, black, 220, 230, card.Student.RegNumber, leftTop)
	drawText(img, fs.body, black, 110, 260, "200 Level", leftTop)
	drawText(img, fs.body, black, 650, 200, "Science and Technology / Computer Science", leftTop)
	drawText(img, fs.body, black, 590, 230, card.IssuedAt.Format("2006-01-02"), leftTop)

	// Grades table.
	fillRect(img, 50, 300, 950, 340, bandGrey)
	for _, col := range []struct {
		x     int
		label string
	}{
		{70, "S/N"},
		{120, "COURSE CODE"},
		{270, "COURSE TITLE"},
		{650, "UNITS"},
		{730, "GRADE"},
		{810, "GRADE POINT"},
	} {
		drawText(img, fs.table, black, col.x, 325, col.label, leftTop)
	}
	hLine(img, 50, 950, 340, ruleGrey)

	for i, c := range card.Grades {
		y := rowStart + i*rowStep
		drawText(img, fs.table, black, 70, y, strconv.Itoa(i+1), leftTop)
		drawText(img, fs.table, black, 120, y, c.Code, leftTop)
		drawText(img, fs.table, black, 270, y, c.Title, leftTop)
		drawText(img, fs.table, black, 650, y, strconv.Itoa(c.Units), leftTop)
		drawText(img, fs.table, black, 730, y, c.Grade, leftTop)
		drawText(img, fs.table, black, 810, y, grading.FormatPoint(grading.GradePoint(c.Units, c.Grade)), leftTop)
		hLine(img, 50, 950, y+15, ruleGrey)
	}

	// Summary.
	fillRect(img, 600, 750, 950, 870, boxGrey)
	strokeRect(img, 600, 750, 950, 870, ruleGrey)
	drawText(img, fs.body, black, 650, 780, "SUMMARY", leftTop)
	drawText(img, fs.table, black, 650, 810, "Total Credit Units:", leftTop)
	drawText(img, fs.table, black, 650, 840, "CGPA:", leftTop)
	drawText(img, fs.table, black, 900, 810, card.TotalCredits, rightMiddle)
	drawText(img, fs.table, black, 900, 840, card.CGPA, rightMiddle)
	drawText(img, fs.body, brand, 500, 920, "Remark: "+grading.Remark(cgpa), middle)

	// Signatures.
	hLine(img, 200, 350, 1000, black)
	hLine(img, 650, 800, 1000, black)
	drawText(img, fs.table, black, 275, 1020, "Registrar", middle)
	drawText(img, fs.table, black, 725, 1020, "Dean of Faculty", middle)

	if !card.Premium {
		drawWatermark(img, fs.watermark, 500, 600)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// fillRect fills the inclusive box (x0,y0)-(x1,y1).
func fillRect(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	draw.Draw(img, image.Rect(x0, y0, x1+1, y1+1), image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws a one pixel outline of the inclusive box.
func strokeRect(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	hLine(img, x0, x1, y0, c)
	hLine(img, x0, x1, y1, c)
	fillRect(img, x0, y0, x0, y1, c)
	fillRect(img, x1, y0, x1, y1, c)
}

func hLine(img draw.Image, x0, x1, y int, c color.Color) {
	fillRect(img, x0, y, x1, y, c)
}

// origin converts an anchored position to the drawer's baseline origin.
func origin(face font.Face, x, y int, s string, a anchor) fixed.Point26_6 {
	m := face.Metrics()
	width := font.MeasureString(face, s)
	px, py := fixed.I(x), fixed.I(y)
	switch a {
	case middle:
		return fixed.Point26_6{X: px - width/2, Y: py + (m.Ascent-m.Descent)/2}
	case rightMiddle:
		return fixed.Point26_6{X: px - width, Y: py + (m.Ascent-m.Descent)/2}
	default:
		return fixed.Point26_6{X: px, Y: py + m.Ascent}
	}
}

func drawText(img draw.Image, face font.Face, c color.Color, x, y int, s string, a anchor) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  origin(face, x, y, s, a),
	}
	d.DrawString(s)
}

// drawWatermark renders the watermark text onto its own layer and composites
// it rotated counterclockwise about (cx, cy).
func drawWatermark(dst draw.Image, face font.Face, cx, cy int) {
	m := face.Metrics()
	width := font.MeasureString(face, WatermarkText).Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	if width == 0 || height == 0 {
		return
	}

	layer := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(watermark),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(WatermarkText)

	theta := watermarkAngle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	sx, sy := float64(width)/2, float64(height)/2
	tx, ty := float64(cx), float64(cy)
	// Source to destination; y grows downward so a positive angle turns
	// the baseline up and to the right.
	s2d := f64.Aff3{
		cos, sin, tx - cos*sx - sin*sy,
		-sin, cos, ty + sin*sx - cos*sy,
	}
	draw.BiLinear.Transform(dst, s2d, layer, layer.Bounds(), draw.Over, nil)
}
