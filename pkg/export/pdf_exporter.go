package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/campusgrid/timetable-api/internal/models"
)

// TimetableDocument carries one finished schedule plus display metadata
// for rendering.
type TimetableDocument struct {
	Title      string
	Department string
	Term       string
	Days       []string
	Slots      []string
	Sessions   []models.ScheduledSession
}

// PDFExporter lays a weekly timetable out as a printable grid with a
// color legend keyed by session kind.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

type kindColor struct {
	r, g, b int
}

var kindColors = map[models.SessionKind]kindColor{
	models.SessionKindLab:   {r: 187, g: 222, b: 251},
	models.SessionKindBreak: {r: 255, g: 245, b: 157},
	models.SessionKindLunch: {r: 255, g: 204, b: 128},
}

var defaultKindColor = kindColor{r: 255, g: 255, b: 255}

// Render creates the grid PDF. Days become columns, slots become rows;
// every session is placed by its (day, slot) coordinate.
func (e *PDFExporter) Render(doc TimetableDocument) ([]byte, error) {
	if len(doc.Days) == 0 || len(doc.Slots) == 0 {
		return nil, fmt.Errorf("pdf requires at least one day and one time slot")
	}

	cells := make(map[string]map[string]models.ScheduledSession, len(doc.Days))
	for _, session := range doc.Sessions {
		if cells[session.Day] == nil {
			cells[session.Day] = make(map[string]models.ScheduledSession)
		}
		cells[session.Day][session.TimeSlot] = session
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(doc.Title), "", 1, "C", false, 0, "")
	}
	if doc.Department != "" || doc.Term != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, strings.TrimSpace(doc.Department+"  "+doc.Term), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	const slotColWidth = 32.0
	dayColWidth := (277.0 - slotColWidth) / float64(len(doc.Days))

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(224, 224, 224)
	pdf.CellFormat(slotColWidth, 8, "Time", "1", 0, "C", true, 0, "")
	for _, day := range doc.Days {
		pdf.CellFormat(dayColWidth, 8, day, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, slot := range doc.Slots {
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(slotColWidth, 10, slot, "1", 0, "C", true, 0, "")
		for _, day := range doc.Days {
			session, ok := cells[day][slot]
			if !ok {
				pdf.CellFormat(dayColWidth, 10, "", "1", 0, "", false, 0, "")
				continue
			}
			color := colorFor(session.Kind)
			pdf.SetFillColor(color.r, color.g, color.b)
			pdf.CellFormat(dayColWidth, 10, cellText(session), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	renderLegend(pdf)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderLegend(pdf *gofpdf.Fpdf) {
	entries := []struct {
		label string
		color kindColor
	}{
		{"Lab", kindColors[models.SessionKindLab]},
		{"Break", kindColors[models.SessionKindBreak]},
		{"Lunch", kindColors[models.SessionKindLunch]},
		{"Theory", defaultKindColor},
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 8)
	for _, entry := range entries {
		pdf.SetFillColor(entry.color.r, entry.color.g, entry.color.b)
		pdf.CellFormat(6, 5, "", "1", 0, "", true, 0, "")
		pdf.CellFormat(22, 5, " "+entry.label, "", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func colorFor(kind models.SessionKind) kindColor {
	if color, ok := kindColors[kind]; ok {
		return color
	}
	return defaultKindColor
}

func cellText(session models.ScheduledSession) string {
	text := session.Subject
	if session.Room != "" {
		text = fmt.Sprintf("%s (%s)", text, session.Room)
	}
	return text
}
