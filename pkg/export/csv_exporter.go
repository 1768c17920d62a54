package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/campusgrid/timetable-api/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// SessionsDataset flattens scheduled sessions into the column layout
// used by CSV downloads, one row per session.
func SessionsDataset(sessions []models.ScheduledSession) Dataset {
	dataset := Dataset{
		Headers: []string{"Day", "Time", "Subject", "Instructor", "Room", "Kind"},
	}
	for _, session := range sessions {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":        session.Day,
			"Time":       session.TimeSlot,
			"Subject":    session.Subject,
			"Instructor": session.Instructor,
			"Room":       session.Room,
			"Kind":       string(session.Kind),
		})
	}
	return dataset
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
