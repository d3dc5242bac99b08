package app

import (
	"strings"
	"time"

	coremission "github.com/example/missionctl/internal/core/mission"
	coresession "github.com/example/missionctl/internal/core/session"
	"github.com/example/missionctl/internal/ports/secondary"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// localTimeLayouts are zone-less forms written by datetime-local inputs.
// They are read as local time.
var localTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTime accepts RFC 3339, a bare date (UTC midnight) and the zone-less
// local forms above.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), true
	}
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// storedForms remembers how time and number fields were written in storage,
// keyed by mission and field. A value that is unchanged on save is written in
// its stored form, so a load followed by a save only rewrites what migration
// or the user changed.
type storedForms struct {
	times  map[string]string
	quoted map[string]string
}

func newStoredForms() *storedForms {
	return &storedForms{times: map[string]string{}, quoted: map[string]string{}}
}

func formKey(missionID string, field ...string) string {
	return missionID + "/" + strings.Join(field, "/")
}

func (f *storedForms) rememberTime(key, raw string) {
	if f != nil && raw != "" {
		f.times[key] = raw
	}
}

func (f *storedForms) rememberNumber(key string, n secondary.Number) {
	if f != nil && n.Quoted {
		f.quoted[key] = n.Text
	}
}

func (f *storedForms) forget(key string) {
	if f != nil {
		delete(f.times, key)
		delete(f.quoted, key)
	}
}

// timeText formats t, keeping the stored text when it denotes the same instant.
// Text that never parsed is kept while the value is still unset.
func (f *storedForms) timeText(key string, t time.Time) string {
	if f != nil {
		if raw, ok := f.times[key]; ok {
			parsed, valid := parseTime(raw)
			if (valid && parsed.Equal(t)) || (!valid && t.IsZero()) {
				return raw
			}
		}
	}
	return formatTime(t)
}

func (f *storedForms) intNumber(key string, v int) secondary.Number {
	if f != nil {
		if raw, ok := f.quoted[key]; ok {
			if parsed, _ := secondary.ParseNumber(raw); int(parsed) == v {
				return secondary.Number{Value: parsed, Text: raw, Quoted: true}
			}
		}
	}
	return secondary.Num(float64(v))
}

func (f *storedForms) floatNumber(key string, v float64) secondary.Number {
	if f != nil {
		if raw, ok := f.quoted[key]; ok {
			if parsed, _ := secondary.ParseNumber(raw); parsed == v {
				return secondary.Number{Value: parsed, Text: raw, Quoted: true}
			}
		}
	}
	return secondary.Num(v)
}

// recordToMission converts a stored record, noting the stored forms in forms
// when it is non-nil.
func recordToMission(r *secondary.MissionRecord, forms *storedForms) *coremission.Mission {
	createdAt, _ := parseTime(r.CreatedAt)
	updatedAt, _ := parseTime(r.UpdatedAt)
	forms.rememberTime(formKey(r.ID, "createdAt"), r.CreatedAt)
	forms.rememberTime(formKey(r.ID, "updatedAt"), r.UpdatedAt)
	forms.rememberNumber(formKey(r.ID, "progress"), r.Progress)
	forms.rememberNumber(formKey(r.ID, "estimatedDuration"), r.EstimatedDuration)

	m := &coremission.Mission{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		Status:            coremission.Status(r.Status),
		Priority:          coremission.Priority(r.Priority),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
		Progress:          r.Progress.Int(),
		EstimatedDuration: r.EstimatedDuration.Int(),
		Department:        r.Department,
		ClientName:        r.ClientName,
	}

	// Only the list shape is carried forward; Migrate fills in a missing one.
	if r.AssignedTo.Shape != secondary.AssigneesMissing {
		m.AssignedTo = r.AssignedTo.Names()
	}
	if r.Deadline != "" {
		forms.rememberTime(formKey(r.ID, "deadline"), r.Deadline)
		if d, ok := parseTime(r.Deadline); ok {
			m.Deadline = &d
		}
	}
	if r.Logs != nil {
		m.Logs = make([]coremission.Log, len(r.Logs))
		for i, l := range r.Logs {
			ts, _ := parseTime(l.Timestamp)
			forms.rememberTime(formKey(r.ID, "logs", l.ID), l.Timestamp)
			m.Logs[i] = coremission.Log{
				ID:        l.ID,
				Timestamp: ts,
				Level:     coremission.LogLevel(l.Level),
				Message:   l.Message,
				Details:   l.Details,
				Author:    l.Author,
			}
		}
	}
	if r.Location != nil {
		forms.rememberNumber(formKey(r.ID, "location", "lat"), r.Location.Lat)
		forms.rememberNumber(formKey(r.ID, "location", "lng"), r.Location.Lng)
		m.Location = &coremission.Location{Name: r.Location.Name, Lat: r.Location.Lat.Value, Lng: r.Location.Lng.Value}
	}
	if r.ActualDuration != nil {
		forms.rememberNumber(formKey(r.ID, "actualDuration"), *r.ActualDuration)
		a := r.ActualDuration.Int()
		m.ActualDuration = &a
	}
	if r.Budget != nil {
		forms.rememberNumber(formKey(r.ID, "budget"), *r.Budget)
		b := r.Budget.Value
		m.Budget = &b
	}
	return m
}

func missionToRecord(m *coremission.Mission, forms *storedForms) *secondary.MissionRecord {
	r := &secondary.MissionRecord{
		ID:                m.ID,
		Title:             m.Title,
		Description:       m.Description,
		Status:            string(m.Status),
		Priority:          string(m.Priority),
		AssignedTo:        secondary.AssigneeList(m.AssignedTo),
		CreatedAt:         forms.timeText(formKey(m.ID, "createdAt"), m.CreatedAt),
		UpdatedAt:         forms.timeText(formKey(m.ID, "updatedAt"), m.UpdatedAt),
		Progress:          forms.intNumber(formKey(m.ID, "progress"), m.Progress),
		Logs:              make([]secondary.LogRecord, len(m.Logs)),
		EstimatedDuration: forms.intNumber(formKey(m.ID, "estimatedDuration"), m.EstimatedDuration),
		Department:        m.Department,
		ClientName:        m.ClientName,
	}
	if m.Deadline != nil {
		r.Deadline = forms.timeText(formKey(m.ID, "deadline"), *m.Deadline)
	} else {
		r.Deadline = forms.timeText(formKey(m.ID, "deadline"), time.Time{})
	}
	for i, l := range m.Logs {
		r.Logs[i] = secondary.LogRecord{
			ID:        l.ID,
			Timestamp: forms.timeText(formKey(m.ID, "logs", l.ID), l.Timestamp),
			Level:     string(l.Level),
			Message:   l.Message,
			Details:   l.Details,
			Author:    l.Author,
		}
	}
	if m.Location != nil {
		r.Location = &secondary.LocationRecord{
			Name: m.Location.Name,
			Lat:  forms.floatNumber(formKey(m.ID, "location", "lat"), m.Location.Lat),
			Lng:  forms.floatNumber(formKey(m.ID, "location", "lng"), m.Location.Lng),
		}
	}
	if m.ActualDuration != nil {
		a := forms.intNumber(formKey(m.ID, "actualDuration"), *m.ActualDuration)
		r.ActualDuration = &a
	}
	if m.Budget != nil {
		b := forms.floatNumber(formKey(m.ID, "budget"), *m.Budget)
		r.Budget = &b
	}
	return r
}

func missionsToRecords(missions []*coremission.Mission, forms *storedForms) []*secondary.MissionRecord {
	out := make([]*secondary.MissionRecord, len(missions))
	for i, m := range missions {
		out[i] = missionToRecord(m, forms)
	}
	return out
}

func recordToSubject(r *secondary.UserRecord) *coresession.Subject {
	return &coresession.Subject{
		ID:         r.ID,
		Username:   r.Username,
		Role:       coresession.Role(r.Role),
		LastLogin:  lastLogin(r.LastLogin),
		Department: r.Department,
		FullName:   r.FullName,
	}
}

func subjectToRecord(s *coresession.Subject) *secondary.UserRecord {
	return &secondary.UserRecord{
		ID:         s.ID,
		Username:   s.Username,
		Role:       string(s.Role),
		LastLogin:  formatTime(s.LastLogin),
		Department: s.Department,
		FullName:   s.FullName,
	}
}

func lastLogin(s string) time.Time {
	t, _ := parseTime(s)
	return t
}
