package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
)

func TestContactRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, (&ContactRequest{Relationship: "friend"}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&ContactRequest{Name: "Ada", Relationship: "  "}).Validate(), ErrValidation)
	assert.NoError(t, (&ContactRequest{Name: "Ada", Relationship: "friend"}).Validate())
}

func TestContactRequest_InputDropsEmptyDates(t *testing.T) {
	var req ContactRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":" Ada ","relationship":"friend","birthday":""}`), &req))

	in := req.Input()
	assert.Equal(t, "Ada", in.Name)
	assert.Nil(t, in.Birthday)
}

func TestImportantDateRequest_Defaults(t *testing.T) {
	req := ImportantDateRequest{
		ContactID: "c1",
		Title:     "Birthday",
		Date:      relationship.NewCalendarDate(1990, 3, 15),
		Type:      relationship.DateTypeBirthday,
	}
	req.ApplyDefaults(7)
	require.NoError(t, req.Validate())
	assert.True(t, *req.Reminder)
	assert.Equal(t, 7, *req.ReminderDays)

	off := false
	req = ImportantDateRequest{ContactID: "c1", Title: "x", Date: relationship.NewCalendarDate(2000, 1, 1), Type: relationship.DateTypeOther, Reminder: &off}
	req.ApplyDefaults(7)
	require.NoError(t, req.Validate())
	assert.Nil(t, req.ReminderDays, "no lead time when reminders are off")
}

func TestImportantDateRequest_Validate(t *testing.T) {
	valid := func() ImportantDateRequest {
		on, days := true, 3
		return ImportantDateRequest{
			ContactID: "c1", Title: "t", Date: relationship.NewCalendarDate(2000, 1, 1),
			Type: relationship.DateTypeAnniversary, Reminder: &on, ReminderDays: &days,
		}
	}

	cases := map[string]func(r *ImportantDateRequest){
		"missing contact": func(r *ImportantDateRequest) { r.ContactID = "" },
		"missing title":   func(r *ImportantDateRequest) { r.Title = " " },
		"missing date":    func(r *ImportantDateRequest) { r.Date = relationship.CalendarDate{} },
		"bad type":        func(r *ImportantDateRequest) { r.Type = "holiday" },
		"zero lead time":  func(r *ImportantDateRequest) { r.ReminderDays = new(int) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrValidation)
		})
	}

	r := valid()
	assert.NoError(t, r.Validate())
}

func TestImportantDatePatchRequest_ReminderRule(t *testing.T) {
	on, off := true, false
	withLeadTime := relationship.ImportantDate{ID: "d1", Reminder: &on, ReminderDays: intPtr(7)}
	withoutLeadTime := relationship.ImportantDate{ID: "d2", Reminder: &off}

	assert.ErrorIs(t, (&ImportantDatePatchRequest{ReminderDays: new(int)}).Validate(), ErrValidation)
	assert.NoError(t, (&ImportantDatePatchRequest{Reminder: &off, ReminderDays: new(int)}).Validate(), "zero is fine with reminders off")

	cases := []struct {
		name    string
		req     ImportantDatePatchRequest
		current relationship.ImportantDate
		wantErr bool
	}{
		{"zero lead time on enabled date", ImportantDatePatchRequest{ReminderDays: new(int)}, withLeadTime, true},
		{"enable without lead time", ImportantDatePatchRequest{Reminder: &on}, withoutLeadTime, true},
		{"enable with lead time", ImportantDatePatchRequest{Reminder: &on, ReminderDays: intPtr(2)}, withoutLeadTime, false},
		{"enable keeps stored lead time", ImportantDatePatchRequest{Reminder: &on}, relationship.ImportantDate{Reminder: &off, ReminderDays: intPtr(3)}, false},
		{"change lead time", ImportantDatePatchRequest{ReminderDays: intPtr(1)}, withLeadTime, false},
		{"turn off", ImportantDatePatchRequest{Reminder: &off}, withLeadTime, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.ValidateAgainst(tc.current)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSurveyRequest_Validate(t *testing.T) {
	req := SurveyRequest{Title: "Check-in", Questions: []QuestionRequest{{Text: "Pick one", Type: relationship.QuestionMultipleChoice}}}
	assert.NoError(t, req.Validate(), "options are not enforced")

	req.Questions[0].Type = "essay"
	assert.ErrorIs(t, req.Validate(), ErrValidation)

	assert.ErrorIs(t, (&SurveyRequest{}).Validate(), ErrValidation)
}

func TestSurveyPatchRequest_AssignsMissingQuestionIDs(t *testing.T) {
	req := SurveyPatchRequest{Questions: []QuestionRequest{
		{ID: "q1", Text: "Keep", Type: relationship.QuestionText},
		{Text: "New", Type: relationship.QuestionRating},
	}}
	p := req.Patch(func() string { return "generated" })

	require.Len(t, p.Questions, 2)
	assert.Equal(t, "q1", p.Questions[0].ID)
	assert.Equal(t, "generated", p.Questions[1].ID)

	assert.Nil(t, (&SurveyPatchRequest{}).Patch(func() string { return "x" }).Questions, "absent list is left alone")
}

func TestSignInRequest(t *testing.T) {
	assert.ErrorIs(t, (&SignInRequest{}).Validate(), ErrValidation)
	req := SignInRequest{ID: "u1", Name: "Ada"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "u1", req.Identity().ID)
}

func intPtr(i int) *int { return &i }
