package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
)

type ContactRequest struct {
	Name            string                     `json:"name"`
	Relationship    string                     `json:"relationship"`
	Email           string                     `json:"email"`
	Phone           string                     `json:"phone"`
	Birthday        *relationship.CalendarDate `json:"birthday"`
	Notes           string                     `json:"notes"`
	LastInteraction *relationship.CalendarDate `json:"lastInteraction"`
}

func (r *ContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return validationError("name is required")
	}
	if strings.TrimSpace(r.Relationship) == "" {
		return validationError("relationship is required")
	}
	return nil
}

func (r *ContactRequest) Input() relationship.ContactInput {
	return relationship.ContactInput{
		Name:            strings.TrimSpace(r.Name),
		Relationship:    strings.TrimSpace(r.Relationship),
		Email:           r.Email,
		Phone:           r.Phone,
		Birthday:        nonZero(r.Birthday),
		Notes:           r.Notes,
		LastInteraction: nonZero(r.LastInteraction),
	}
}

// ContactPatchRequest is a partial update; absent fields are left alone.
type ContactPatchRequest relationship.ContactPatch

func (r *ContactPatchRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return validationError("name cannot be empty")
	}
	if r.Relationship != nil && strings.TrimSpace(*r.Relationship) == "" {
		return validationError("relationship cannot be empty")
	}
	return nil
}

func (r *ContactPatchRequest) Patch() relationship.ContactPatch {
	return relationship.ContactPatch(*r)
}

type ImportantDateRequest struct {
	ContactID    string                    `json:"contactId"`
	Title        string                    `json:"title"`
	Date         relationship.CalendarDate `json:"date"`
	Type         relationship.DateType     `json:"type"`
	Description  string                    `json:"description"`
	Reminder     *bool                     `json:"reminder"`
	ReminderDays *int                      `json:"reminderDays"`
}

// ApplyDefaults turns reminders on with defaultDays of lead time unless the
// request says otherwise.
func (r *ImportantDateRequest) ApplyDefaults(defaultDays int) {
	if r.Reminder == nil {
		on := true
		r.Reminder = &on
	}
	if *r.Reminder && r.ReminderDays == nil {
		d := defaultDays
		r.ReminderDays = &d
	}
}

func (r *ImportantDateRequest) Validate() error {
	if r.ContactID == "" {
		return validationError("contactId is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return validationError("title is required")
	}
	if r.Date.IsZero() {
		return validationError("date is required")
	}
	if !r.Type.Valid() {
		return validationError(fmt.Sprintf("type must be one of birthday, anniversary, other; got %q", r.Type))
	}
	return validateReminder(r.Reminder, r.ReminderDays)
}

func (r *ImportantDateRequest) Input() relationship.ImportantDateInput {
	return relationship.ImportantDateInput{
		ContactID:    r.ContactID,
		Title:        strings.TrimSpace(r.Title),
		Date:         r.Date,
		Type:         r.Type,
		Description:  r.Description,
		Reminder:     r.Reminder,
		ReminderDays: r.ReminderDays,
	}
}

type ImportantDatePatchRequest relationship.ImportantDatePatch

func (r *ImportantDatePatchRequest) Validate() error {
	if r.ContactID != nil && *r.ContactID == "" {
		return validationError("contactId cannot be empty")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return validationError("title cannot be empty")
	}
	if r.Date != nil && r.Date.IsZero() {
		return validationError("date cannot be empty")
	}
	if r.Type != nil && !r.Type.Valid() {
		return validationError(fmt.Sprintf("type must be one of birthday, anniversary, other; got %q", *r.Type))
	}
	remindersOff := r.Reminder != nil && !*r.Reminder
	if r.ReminderDays != nil && *r.ReminderDays <= 0 && !remindersOff {
		return validationError("reminderDays must be greater than 0 when reminder is on")
	}
	return nil
}

// ValidateAgainst checks the request and the reminder rule on the date that
// results from applying it to current.
func (r *ImportantDatePatchRequest) ValidateAgainst(current relationship.ImportantDate) error {
	if err := r.Validate(); err != nil {
		return err
	}
	reminder, days := current.Reminder, current.ReminderDays
	if r.Reminder != nil {
		reminder = r.Reminder
	}
	if r.ReminderDays != nil {
		days = r.ReminderDays
	}
	return validateReminder(reminder, days)
}

func (r *ImportantDatePatchRequest) Patch() relationship.ImportantDatePatch {
	return relationship.ImportantDatePatch(*r)
}

func validateReminder(reminder *bool, days *int) error {
	if reminder == nil || !*reminder {
		return nil
	}
	if days == nil || *days <= 0 {
		return validationError("reminderDays must be greater than 0 when reminder is on")
	}
	return nil
}

type QuestionRequest struct {
	ID      string                    `json:"id,omitempty"`
	Text    string                    `json:"text"`
	Type    relationship.QuestionType `json:"type"`
	Options []string                  `json:"options"`
}

func (q *QuestionRequest) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return validationError("question text is required")
	}
	if !q.Type.Valid() {
		return validationError(fmt.Sprintf("question type must be one of text, multiple-choice, rating; got %q", q.Type))
	}
	return nil
}

type SurveyRequest struct {
	Title     string            `json:"title"`
	Date      time.Time         `json:"date"`
	Questions []QuestionRequest `json:"questions"`
}

func (r *SurveyRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return validationError("title is required")
	}
	for i := range r.Questions {
		if err := r.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *SurveyRequest) Input() relationship.SurveyInput {
	qs := make([]relationship.QuestionInput, 0, len(r.Questions))
	for _, q := range r.Questions {
		qs = append(qs, relationship.QuestionInput{
			Text:    strings.TrimSpace(q.Text),
			Type:    q.Type,
			Options: append([]string{}, q.Options...),
		})
	}
	return relationship.SurveyInput{Title: strings.TrimSpace(r.Title), Date: r.Date, Questions: qs}
}

// SurveyPatchRequest replaces the whole question list when questions is sent.
// Questions without an id get one from newID.
type SurveyPatchRequest struct {
	Title     *string                 `json:"title"`
	Date      *time.Time              `json:"date"`
	Questions []QuestionRequest       `json:"questions"`
	Responses []relationship.Response `json:"responses"`
}

func (r *SurveyPatchRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return validationError("title cannot be empty")
	}
	for i := range r.Questions {
		if err := r.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *SurveyPatchRequest) Patch(newID func() string) relationship.SurveyPatch {
	p := relationship.SurveyPatch{Title: r.Title, Date: r.Date, Responses: r.Responses}
	if r.Questions != nil {
		p.Questions = make([]relationship.Question, 0, len(r.Questions))
		for _, q := range r.Questions {
			id := q.ID
			if id == "" {
				id = newID()
			}
			p.Questions = append(p.Questions, relationship.Question{
				ID:      id,
				Text:    strings.TrimSpace(q.Text),
				Type:    q.Type,
				Options: append([]string{}, q.Options...),
			})
		}
	}
	return p
}

type ResponseRequest struct {
	QuestionID string    `json:"questionId"`
	ContactID  string    `json:"contactId"`
	Answer     string    `json:"answer"`
	Date       time.Time `json:"date"`
}

func (r *ResponseRequest) Validate() error {
	if r.QuestionID == "" {
		return validationError("questionId is required")
	}
	if r.ContactID == "" {
		return validationError("contactId is required")
	}
	return nil
}

func (r *ResponseRequest) Input() relationship.ResponseInput {
	return relationship.ResponseInput{
		QuestionID: r.QuestionID,
		ContactID:  r.ContactID,
		Answer:     r.Answer,
		Date:       r.Date,
	}
}

type UpcomingDateResponse struct {
	Dates      []relationship.Occurrence `json:"dates"`
	WindowDays int                       `json:"windowDays"`
}

type ReminderDispatchResponse struct {
	Available bool `json:"available"`
	Sent      int  `json:"sent"`
}

func nonZero(d *relationship.CalendarDate) *relationship.CalendarDate {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}
