package relationship

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const calendarLayout = "2006-01-02"

// CalendarDate is a date without time of day, serialized as YYYY-MM-DD.
// Full RFC 3339 timestamps are accepted on decode and truncated.
type CalendarDate struct {
	time.Time
}

func NewCalendarDate(y int, m time.Month, d int) CalendarDate {
	return CalendarDate{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseCalendarDate(s string) (CalendarDate, error) {
	if t, err := time.Parse(calendarLayout, s); err == nil {
		return CalendarDate{t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q", s)
	}
	y, m, d := t.Date()
	return NewCalendarDate(y, m, d), nil
}

func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(calendarLayout)
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *CalendarDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = CalendarDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = CalendarDate{}
		return nil
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Contact struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Relationship    string        `json:"relationship"`
	Email           string        `json:"email,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	Birthday        *CalendarDate `json:"birthday,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	LastInteraction *CalendarDate `json:"lastInteraction,omitempty"`
}

// ContactInput is a contact before it has been assigned an id.
type ContactInput struct {
	Name            string        `json:"name"`
	Relationship    string        `json:"relationship"`
	Email           string        `json:"email,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	Birthday        *CalendarDate `json:"birthday,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	LastInteraction *CalendarDate `json:"lastInteraction,omitempty"`
}

// ContactPatch lists the fields to change; nil fields are left untouched.
// A non-nil empty date clears birthday or lastInteraction.
type ContactPatch struct {
	Name            *string       `json:"name"`
	Relationship    *string       `json:"relationship"`
	Email           *string       `json:"email"`
	Phone           *string       `json:"phone"`
	Birthday        *CalendarDate `json:"birthday"`
	Notes           *string       `json:"notes"`
	LastInteraction *CalendarDate `json:"lastInteraction"`
}

type DateType string

const (
	DateTypeBirthday    DateType = "birthday"
	DateTypeAnniversary DateType = "anniversary"
	DateTypeOther       DateType = "other"
)

func (t DateType) Valid() bool {
	switch t {
	case DateTypeBirthday, DateTypeAnniversary, DateTypeOther:
		return true
	}
	return false
}

type ImportantDate struct {
	ID           string       `json:"id"`
	ContactID    string       `json:"contactId"`
	Title        string       `json:"title"`
	Date         CalendarDate `json:"date"`
	Type         DateType     `json:"type"`
	Description  string       `json:"description,omitempty"`
	Reminder     *bool        `json:"reminder,omitempty"`
	ReminderDays *int         `json:"reminderDays,omitempty"`
}

// RemindersOn reports whether a reminder is configured with a usable lead time.
func (d ImportantDate) RemindersOn() bool {
	return d.Reminder != nil && *d.Reminder && d.ReminderDays != nil && *d.ReminderDays > 0
}

type ImportantDateInput struct {
	ContactID    string       `json:"contactId"`
	Title        string       `json:"title"`
	Date         CalendarDate `json:"date"`
	Type         DateType     `json:"type"`
	Description  string       `json:"description,omitempty"`
	Reminder     *bool        `json:"reminder,omitempty"`
	ReminderDays *int         `json:"reminderDays,omitempty"`
}

type ImportantDatePatch struct {
	ContactID    *string       `json:"contactId"`
	Title        *string       `json:"title"`
	Date         *CalendarDate `json:"date"`
	Type         *DateType     `json:"type"`
	Description  *string       `json:"description"`
	Reminder     *bool         `json:"reminder"`
	ReminderDays *int          `json:"reminderDays"`
}

type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionRating         QuestionType = "rating"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionMultipleChoice, QuestionRating:
		return true
	}
	return false
}

type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
}

type QuestionInput struct {
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
}

// Response is one answer to one question, nested inside its survey.
type Response struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"questionId"`
	ContactID  string    `json:"contactId"`
	Answer     string    `json:"answer"`
	Date       time.Time `json:"date"`
}

type ResponseInput struct {
	QuestionID string    `json:"questionId"`
	ContactID  string    `json:"contactId"`
	Answer     string    `json:"answer"`
	Date       time.Time `json:"date"`
}

type Survey struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Date      time.Time  `json:"date"`
	Questions []Question `json:"questions"`
	Responses []Response `json:"responses"`
}

type SurveyInput struct {
	Title     string          `json:"title"`
	Date      time.Time       `json:"date"`
	Questions []QuestionInput `json:"questions"`
	Responses []Response      `json:"responses,omitempty"`
}

// SurveyPatch replaces whole question or response lists when they are non-nil.
type SurveyPatch struct {
	Title     *string    `json:"title"`
	Date      *time.Time `json:"date"`
	Questions []Question `json:"questions"`
	Responses []Response `json:"responses"`
}

// Occurrence is an important date projected onto the calendar.
type Occurrence struct {
	ImportantDate
	ContactName string       `json:"contactName,omitempty"`
	Next        CalendarDate `json:"next"`
	DaysUntil   int          `json:"daysUntil"`
	Label       string       `json:"label"`
}
