package relationship

func applyContactPatch(c Contact, p ContactPatch) Contact {
	c = cloneContact(c)
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Relationship != nil {
		c.Relationship = *p.Relationship
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Birthday != nil {
		c.Birthday = nonZeroDate(p.Birthday)
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.LastInteraction != nil {
		c.LastInteraction = nonZeroDate(p.LastInteraction)
	}
	return c
}

func applyDatePatch(d ImportantDate, p ImportantDatePatch) ImportantDate {
	d = cloneDate(d)
	if p.ContactID != nil {
		d.ContactID = *p.ContactID
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Reminder != nil {
		d.Reminder = clonePtr(p.Reminder)
	}
	if p.ReminderDays != nil {
		d.ReminderDays = clonePtr(p.ReminderDays)
	}
	return d
}

func applySurveyPatch(sv Survey, p SurveyPatch) Survey {
	sv = cloneSurvey(sv)
	if p.Title != nil {
		sv.Title = *p.Title
	}
	if p.Date != nil {
		sv.Date = *p.Date
	}
	if p.Questions != nil {
		sv.Questions = cloneQuestions(p.Questions)
	}
	if p.Responses != nil {
		sv.Responses = append([]Response{}, p.Responses...)
	}
	return sv
}

// nonZeroDate copies d; an empty date clears the field.
func nonZeroDate(d *CalendarDate) *CalendarDate {
	if d == nil || d.IsZero() {
		return nil
	}
	return clonePtr(d)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneContact(c Contact) Contact {
	c.Birthday = clonePtr(c.Birthday)
	c.LastInteraction = clonePtr(c.LastInteraction)
	return c
}

func cloneDate(d ImportantDate) ImportantDate {
	d.Reminder = clonePtr(d.Reminder)
	d.ReminderDays = clonePtr(d.ReminderDays)
	return d
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

func cloneSurvey(sv Survey) Survey {
	sv.Questions = cloneQuestions(sv.Questions)
	sv.Responses = append([]Response{}, sv.Responses...)
	return sv
}
