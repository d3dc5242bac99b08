package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/missionctl/internal/ports/secondary"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339 millis", "2024-01-15T10:30:00.000Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"rfc3339 offset", "2024-01-15T12:30:00+02:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"datetime-local", "2024-02-01T14:30", time.Date(2024, 2, 1, 14, 30, 0, 0, time.Local), true},
		{"datetime-local seconds", "2024-02-01T14:30:15", time.Date(2024, 2, 1, 14, 30, 15, 0, time.Local), true},
		{"date only is UTC", "2024-02-01", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"blank", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestStoredForms_TimeText(t *testing.T) {
	forms := newStoredForms()
	forms.rememberTime("m/deadline", "2024-02-01T14:30")
	forms.rememberTime("m/createdAt", "not a time")

	same := time.Date(2024, 2, 1, 14, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-02-01T14:30", forms.timeText("m/deadline", same))

	moved := same.Add(time.Hour)
	assert.Equal(t, formatTime(moved), forms.timeText("m/deadline", moved))

	assert.Equal(t, "not a time", forms.timeText("m/createdAt", time.Time{}), "unparseable text survives while unset")
	assert.Equal(t, "", forms.timeText("other/deadline", time.Time{}))

	forms.forget("m/createdAt")
	assert.Equal(t, "", forms.timeText("m/createdAt", time.Time{}))
}

func TestStoredForms_Numbers(t *testing.T) {
	forms := newStoredForms()
	forms.rememberNumber("m/estimatedDuration", secondary.Number{Value: 300, Text: "300", Quoted: true})
	forms.rememberNumber("m/progress", secondary.Num(40))

	assert.Equal(t, secondary.Number{Value: 300, Text: "300", Quoted: true}, forms.intNumber("m/estimatedDuration", 300))
	assert.Equal(t, secondary.Num(120), forms.intNumber("m/estimatedDuration", 120))
	assert.Equal(t, secondary.Num(40), forms.intNumber("m/progress", 40), "unquoted numbers are not tracked")

	var nilForms *storedForms
	assert.Equal(t, secondary.Num(1.5), nilForms.floatNumber("m/budget", 1.5))
	assert.Equal(t, "", nilForms.timeText("m/deadline", time.Time{}))
}

func TestRecordToMission_KeepsDeadlineText(t *testing.T) {
	forms := newStoredForms()
	rec := &secondary.MissionRecord{
		ID:                "m",
		CreatedAt:         "2024-01-15T10:30:00.000Z",
		UpdatedAt:         "2024-01-15T10:30:00.000Z",
		Deadline:          "2024-02-01T14:30",
		EstimatedDuration: secondary.Number{Value: 300, Text: "300", Quoted: true},
	}

	m := recordToMission(rec, forms)
	out := missionToRecord(m, forms)

	assert.Equal(t, rec.Deadline, out.Deadline)
	assert.Equal(t, rec.CreatedAt, out.CreatedAt)
	assert.Equal(t, rec.EstimatedDuration, out.EstimatedDuration)
}
