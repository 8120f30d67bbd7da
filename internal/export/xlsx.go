package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
)

var (
	contactHeader  = []string{"ID", "Name", "Relationship", "Email", "Phone", "Birthday", "Last Interaction", "Notes"}
	dateHeader     = []string{"ID", "Contact", "Title", "Date", "Type", "Reminder", "Reminder Days", "Description"}
	questionHeader = []string{"Survey ID", "Survey", "Created", "Question ID", "Question", "Type", "Options"}
	responseHeader = []string{"Survey ID", "Question ID", "Contact", "Answer", "Date"}
)

// XLSX writes one sheet per collection, each with a bold header row.
// Survey questions and responses get separate sheets.
func XLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	names := make(map[string]string, len(doc.Contacts))
	contacts := make([][]any, 0, len(doc.Contacts))
	for _, c := range doc.Contacts {
		names[c.ID] = c.Name
		contacts = append(contacts, []any{c.ID, c.Name, c.Relationship, c.Email, c.Phone, dateCell(c.Birthday), dateCell(c.LastInteraction), c.Notes})
	}

	dates := make([][]any, 0, len(doc.ImportantDates))
	for _, d := range doc.ImportantDates {
		reminder, days := "no", ""
		if d.Reminder != nil && *d.Reminder {
			reminder = "yes"
		}
		if d.ReminderDays != nil {
			days = strconv.Itoa(*d.ReminderDays)
		}
		dates = append(dates, []any{d.ID, contactLabel(names, d.ContactID), d.Title, d.Date.String(), string(d.Type), reminder, days, d.Description})
	}

	var questions, responses [][]any
	for _, sv := range doc.Surveys {
		for _, q := range sv.Questions {
			questions = append(questions, []any{sv.ID, sv.Title, sv.Date.Format(time.RFC3339), q.ID, q.Text, string(q.Type), strings.Join(q.Options, ", ")})
		}
		for _, r := range sv.Responses {
			responses = append(responses, []any{sv.ID, r.QuestionID, contactLabel(names, r.ContactID), r.Answer, r.Date.Format(time.RFC3339)})
		}
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{"Contacts", contactHeader, contacts},
		{"Important Dates", dateHeader, dates},
		{"Survey Questions", questionHeader, questions},
		{"Survey Responses", responseHeader, responses},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh.name, sh.header, sh.rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, style int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", sheet, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}

func dateCell(d *relationship.CalendarDate) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func contactLabel(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}
