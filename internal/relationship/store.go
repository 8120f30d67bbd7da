// Package relationship owns the contacts, important dates and surveys of the
// active identity. Every mutation is written through to durable storage
// before it returns.
package relationship

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/projection"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/storage"
	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no active identity")

func ContactsKey(userID string) string       { return "contacts_" + userID }
func ImportantDatesKey(userID string) string { return "importantDates_" + userID }
func SurveysKey(userID string) string        { return "surveys_" + userID }

type Option func(*Store)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

type Store struct {
	kv    storage.Storage
	now   func() time.Time
	newID func() string

	mu       sync.RWMutex
	userID   string
	contacts []Contact
	dates    []ImportantDate
	surveys  []Survey
}

func NewStore(kv storage.Storage, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		contacts: []Contact{},
		dates:    []ImportantDate{},
		surveys:  []Survey{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SwitchIdentity discards every in-memory collection and loads the ones
// stored for userID. On a load error the store stays empty and unbound.
func (s *Store) SwitchIdentity(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	if userID == "" {
		return nil
	}

	contacts, err := load[Contact](ctx, s.kv, ContactsKey(userID))
	if err != nil {
		return err
	}
	dates, err := load[ImportantDate](ctx, s.kv, ImportantDatesKey(userID))
	if err != nil {
		return err
	}
	surveys, err := load[Survey](ctx, s.kv, SurveysKey(userID))
	if err != nil {
		return err
	}

	s.userID = userID
	s.contacts = contacts
	s.dates = dates
	s.surveys = surveys

	slog.Info("relationship store loaded", "user_id", userID,
		"contacts", len(contacts), "important_dates", len(dates), "surveys", len(surveys))
	return nil
}

// Reset unbinds the store from any identity.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.userID = ""
	s.contacts = []Contact{}
	s.dates = []ImportantDate{}
	s.surveys = []Survey{}
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// --- Contacts ---

func (s *Store) AddContact(ctx context.Context, in ContactInput) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return Contact{}, ErrNoIdentity
	}

	c := cloneContact(Contact{
		ID:              s.newID(),
		Name:            in.Name,
		Relationship:    in.Relationship,
		Email:           in.Email,
		Phone:           in.Phone,
		Birthday:        in.Birthday,
		Notes:           in.Notes,
		LastInteraction: in.LastInteraction,
	})
	next := append(append(make([]Contact, 0, len(s.contacts)+1), s.contacts...), c)
	if err := s.persist(ctx, ContactsKey(s.userID), next); err != nil {
		return Contact{}, err
	}
	s.contacts = next
	return cloneContact(c), nil
}

func (s *Store) UpdateContact(ctx context.Context, id string, p ContactPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoIdentity
	}

	next := make([]Contact, len(s.contacts))
	copy(next, s.contacts)
	for i := range next {
		if next[i].ID == id {
			next[i] = applyContactPatch(next[i], p)
		}
	}
	if err := s.persist(ctx, ContactsKey(s.userID), next); err != nil {
		return err
	}
	s.contacts = next
	return nil
}

// DeleteContact removes the contact and every important date that
// references it.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoIdentity
	}

	contacts := make([]Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if c.ID != id {
			contacts = append(contacts, c)
		}
	}
	dates := make([]ImportantDate, 0, len(s.dates))
	for _, d := range s.dates {
		if d.ContactID != id {
			dates = append(dates, d)
		}
	}

	// Dates first: a failure between the two writes must not leave orphans.
	if err := s.persist(ctx, ImportantDatesKey(s.userID), dates); err != nil {
		return err
	}
	s.dates = dates
	if err := s.persist(ctx, ContactsKey(s.userID), contacts); err != nil {
		return err
	}
	s.contacts = contacts
	return nil
}

func (s *Store) GetContactByID(id string) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contacts {
		if c.ID == id {
			return cloneContact(c), true
		}
	}
	return Contact{}, false
}

func (s *Store) Contacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Contact, len(s.contacts))
	for i, c := range s.contacts {
		out[i] = cloneContact(c)
	}
	return out
}

// SearchContacts matches q case-insensitively against name and relationship.
func (s *Store) SearchContacts(q string) []Contact {
	q = strings.ToLower(strings.TrimSpace(q))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Contact{}
	for _, c := range s.contacts {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Relationship), q) {
			out = append(out, cloneContact(c))
		}
	}
	return out
}

// --- Important dates ---

func (s *Store) AddImportantDate(ctx context.Context, in ImportantDateInput) (ImportantDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ImportantDate{}, ErrNoIdentity
	}

	d := cloneDate(ImportantDate{
		ID:           s.newID(),
		ContactID:    in.ContactID,
		Title:        in.Title,
		Date:         in.Date,
		Type:         in.Type,
		Description:  in.Description,
		Reminder:     in.Reminder,
		ReminderDays: in.ReminderDays,
	})
	next := append(append(make([]ImportantDate, 0, len(s.dates)+1), s.dates...), d)
	if err := s.persist(ctx, ImportantDatesKey(s.userID), next); err != nil {
		return ImportantDate{}, err
	}
	s.dates = next
	return cloneDate(d), nil
}

func (s *Store) UpdateImportantDate(ctx context.Context, id string, p ImportantDatePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoIdentity
	}

	next := make([]ImportantDate, len(s.dates))
	copy(next, s.dates)
	for i := range next {
		if next[i].ID == id {
			next[i] = applyDatePatch(next[i], p)
		}
	}
	if err := s.persist(ctx, ImportantDatesKey(s.userID), next); err != nil {
		return err
	}
	s.dates = next
	return nil
}

func (s *Store) DeleteImportantDate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoIdentity
	}

	next := make([]ImportantDate, 0, len(s.dates))
	for _, d := range s.dates {
		if d.ID != id {
			next = append(next, d)
		}
	}
	if err := s.persist(ctx, ImportantDatesKey(s.userID), next); err != nil {
		return err
	}
	s.dates = next
	return nil
}

func (s *Store) ImportantDates() []ImportantDate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ImportantDate, len(s.dates))
	for i, d := range s.dates {
		out[i] = cloneDate(d)
	}
	return out
}

func (s *Store) GetImportantDateByID(id string) (ImportantDate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.dates {
		if d.ID == id {
			return cloneDate(d), true
		}
	}
	return ImportantDate{}, false
}

// SearchImportantDates matches q against the title or the referenced
// contact's name.
func (s *Store) SearchImportantDates(q string) []ImportantDate {
	q = strings.ToLower(strings.TrimSpace(q))
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := s.contactNamesLocked()
	out := []ImportantDate{}
	for _, d := range s.dates {
		if q == "" ||
			strings.Contains(strings.ToLower(d.Title), q) ||
			strings.Contains(strings.ToLower(names[d.ContactID]), q) {
			out = append(out, cloneDate(d))
		}
	}
	return out
}

// GetUpcomingDates returns, in insertion order, the dates whose this-year
// occurrence falls within [today, today+windowDays].
func (s *Store) GetUpcomingDates(windowDays int) []ImportantDate {
	today := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []ImportantDate{}
	for _, d := range s.dates {
		if projection.OccursWithinWindowThisYear(d.Date.Time, today, windowDays) {
			out = append(out, cloneDate(d))
		}
	}
	return out
}

// UpcomingOccurrences is GetUpcomingDates with the this-year date and
// days-until attached, as the dashboard shows them.
func (s *Store) UpcomingOccurrences(windowDays int) []Occurrence {
	today := projection.Civil(s.now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := s.contactNamesLocked()
	out := []Occurrence{}
	for _, d := range s.dates {
		if !projection.OccursWithinWindowThisYear(d.Date.Time, today, windowDays) {
			continue
		}
		out = append(out, occurrence(d, names[d.ContactID], projection.ThisYear(d.Date.Time, today), today))
	}
	return out
}

// ListByNextOccurrence projects every date onto its rolling next occurrence,
// nearest first. Ties keep insertion order.
func (s *Store) ListByNextOccurrence() []Occurrence {
	today := projection.Civil(s.now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := s.contactNamesLocked()
	out := make([]Occurrence, 0, len(s.dates))
	for _, d := range s.dates {
		out = append(out, occurrence(d, names[d.ContactID], projection.NextOccurrence(d.Date.Time, today), today))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	return out
}

// DueReminders returns dates with a reminder whose next occurrence is at
// most reminderDays away.
func (s *Store) DueReminders() []Occurrence {
	out := []Occurrence{}
	for _, o := range s.ListByNextOccurrence() {
		if o.RemindersOn() && o.DaysUntil <= *o.ReminderDays {
			out = append(out, o)
		}
	}
	return out
}

func occurrence(d ImportantDate, contactName string, next, today time.Time) Occurrence {
	days := projection.DaysUntil(next, today)
	y, m, day := next.Date()
	return Occurrence{
		ImportantDate: cloneDate(d),
		ContactName:   contactName,
		Next:          NewCalendarDate(y, m, day),
		DaysUntil:     days,
		Label:         projection.Label(days),
	}
}

func (s *Store) contactNamesLocked() map[string]string {
	names := make(map[string]string, len(s.contacts))
	for _, c := range s.contacts {
		names[c.ID] = c.Name
	}
	return names
}

// --- Surveys ---

// AddSurvey assigns ids to the survey and to each of its questions in one step.
func (s *Store) AddSurvey(ctx context.Context, in SurveyInput) (Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return Survey{}, ErrNoIdentity
	}

	sv := Survey{
		ID:        s.newID(),
		Title:     in.Title,
		Date:      in.Date,
		Questions: make([]Question, 0, len(in.Questions)),
		Responses: append([]Response{}, in.Responses...),
	}
	if sv.Date.IsZero() {
		sv.Date = s.now().UTC()
	}
	for _, q := range in.Questions {
		sv.Questions = append(sv.Questions, Question{
			ID:      s.newID(),
			Text:    q.Text,
			Type:    q.Type,
			Options: append([]string(nil), q.Options...),
		})
	}

	next := append(append(make([]Survey, 0, len(s.surveys)+1), s.surveys...), sv)
	if err := s.persist(ctx, SurveysKey(s.userID), next); err != nil {
		return Survey{}, err
	}
	s.surveys = next
	return cloneSurvey(sv), nil
}

func (s *Store) UpdateSurvey(ctx context.Context, id string, p SurveyPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoIdentity
	}

	next := make([]Survey, len(s.surveys))
	copy(next, s.surveys)
	for i := range next {
		if next[i].ID == id {
			next[i] = applySurveyPatch(next[i], p)
		}
	}
	if err := s.persist(ctx, SurveysKey(s.userID), next); err != nil {
		return err
	}
	s.surveys = next
	return nil
}

// DeleteSurvey removes the survey together with its nested responses.
func (s *Store) DeleteSurvey(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return ErrNoIdentity
	}

	next := make([]Survey, 0, len(s.surveys))
	for _, sv := range s.surveys {
		if sv.ID != id {
			next = append(next, sv)
		}
	}
	if err := s.persist(ctx, SurveysKey(s.userID), next); err != nil {
		return err
	}
	s.surveys = next
	return nil
}

// AddResponse appends a response to the survey. The bool is false when the
// survey does not exist, in which case nothing is written.
func (s *Store) AddResponse(ctx context.Context, surveyID string, in ResponseInput) (Response, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return Response{}, false, ErrNoIdentity
	}

	idx := -1
	for i, sv := range s.surveys {
		if sv.ID == surveyID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Response{}, false, nil
	}

	r := Response{
		ID:         s.newID(),
		QuestionID: in.QuestionID,
		ContactID:  in.ContactID,
		Answer:     in.Answer,
		Date:       in.Date,
	}
	if r.Date.IsZero() {
		r.Date = s.now().UTC()
	}

	next := make([]Survey, len(s.surveys))
	copy(next, s.surveys)
	updated := cloneSurvey(next[idx])
	updated.Responses = append(updated.Responses, r)
	next[idx] = updated

	if err := s.persist(ctx, SurveysKey(s.userID), next); err != nil {
		return Response{}, false, err
	}
	s.surveys = next
	return r, true, nil
}

func (s *Store) GetSurveyByID(id string) (Survey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sv := range s.surveys {
		if sv.ID == id {
			return cloneSurvey(sv), true
		}
	}
	return Survey{}, false
}

func (s *Store) Surveys() []Survey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Survey, len(s.surveys))
	for i, sv := range s.surveys {
		out[i] = cloneSurvey(sv)
	}
	return out
}

// --- persistence ---

func (s *Store) persist(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		slog.Error("persist failed", "user_id", s.userID, "action", "persist", "key", key, "error", err)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func load[T any](ctx context.Context, kv storage.Storage, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
