// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// KeyValueStore is the storage primitive behind every persisted key.
// Values are opaque bytes; a missing key is reported through the bool, not an error.
type KeyValueStore interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// StateRepository is the typed view of the three persisted keys.
type StateRepository interface {
	// LoadMissions reads the mission collection. A missing key yields an empty slice.
	// Records that cannot be decoded are skipped; the records that could are
	// returned alongside an error describing the rest.
	LoadMissions(ctx context.Context) ([]*MissionRecord, error)

	// SaveMissions replaces the whole mission collection.
	SaveMissions(ctx context.Context, missions []*MissionRecord) error

	// LoadUser reads the persisted session subject, or nil when none is stored.
	LoadUser(ctx context.Context) (*UserRecord, error)

	// SaveUser stores the session subject. A nil user clears the key.
	SaveUser(ctx context.Context, user *UserRecord) error

	// LoadTheme returns the stored theme, or "" when none is stored.
	LoadTheme(ctx context.Context) (string, error)

	// SaveTheme stores the theme.
	SaveTheme(ctx context.Context, theme string) error

	// ClearAll deletes every key owned by the application.
	ClearAll(ctx context.Context) error
}

// MissionRecord represents a mission as stored in persistence.
// Timestamps are kept as the strings found in storage.
type MissionRecord struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	Priority          string          `json:"priority"`
	AssignedTo        AssignedTo      `json:"assignedTo"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
	Deadline          string          `json:"deadline,omitempty"`
	Progress          Number          `json:"progress"`
	Logs              []LogRecord     `json:"logs"`
	Location          *LocationRecord `json:"location,omitempty"`
	EstimatedDuration Number          `json:"estimatedDuration"`
	ActualDuration    *Number         `json:"actualDuration,omitempty"`
	Department        string          `json:"department,omitempty"`
	Budget            *Number         `json:"budget,omitempty"`
	ClientName        string          `json:"clientName,omitempty"`
}

// LogRecord represents a mission log entry as stored in persistence.
type LogRecord struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Author    string `json:"author,omitempty"`
}

// LocationRecord is the stored geographic location of a mission.
type LocationRecord struct {
	Name string `json:"name"`
	Lat  Number `json:"lat"`
	Lng  Number `json:"lng"`
}

// UserRecord represents the persisted session subject.
type UserRecord struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	LastLogin  string `json:"lastLogin"`
	Department string `json:"department,omitempty"`
	FullName   string `json:"fullName,omitempty"`
}

// AssigneeShape records which form the assignedTo field had in storage.
type AssigneeShape int

const (
	// AssigneesMissing means the field was absent, null, or of an unknown type.
	AssigneesMissing AssigneeShape = iota
	// AssigneesScalar means the field held a single legacy string.
	AssigneesScalar
	// AssigneesList means the field held a list of names.
	AssigneesList
)

// AssignedTo decodes the three historical shapes of the assignedTo field.
// It always encodes as a list.
type AssignedTo struct {
	Shape  AssigneeShape
	Scalar string
	List   []string
}

// AssigneeList builds a list-shaped AssignedTo.
func AssigneeList(names []string) AssignedTo {
	return AssignedTo{Shape: AssigneesList, List: append([]string{}, names...)}
}

// Names resolves the stored shape to a list: a scalar is wrapped as-is,
// a missing field becomes empty.
func (a AssignedTo) Names() []string {
	switch a.Shape {
	case AssigneesScalar:
		return []string{a.Scalar}
	case AssigneesList:
		return append([]string{}, a.List...)
	default:
		return []string{}
	}
}

// MarshalJSON always writes the list form.
func (a AssignedTo) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Names())
}

// UnmarshalJSON accepts a list, a single string, or anything else (treated as missing).
func (a *AssignedTo) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*a = AssignedTo{}

	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		a.Shape = AssigneesScalar
		a.Scalar = s
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		a.Shape = AssigneesList
		a.List = list
		if a.List == nil {
			a.List = []string{}
		}
	}
	return nil
}

// Number is a numeric field that may have been stored as a JSON string.
// Form inputs wrote numbers back as the text typed, so "300" and 300 are
// both valid. A quoted number encodes as the same string it was read as.
type Number struct {
	Value  float64
	Text   string
	Quoted bool
}

// Num builds an unquoted Number.
func Num(v float64) Number {
	return Number{Value: v}
}

// Int truncates the value toward zero.
func (n Number) Int() int {
	return int(n.Value)
}

// MarshalJSON writes the stored text for a quoted number and a JSON number otherwise.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.Quoted {
		return json.Marshal(n.Text)
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number, a numeric string, or null (zero).
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*n = Number{}

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		n.Quoted = true
		n.Text = s
		n.Value, _ = ParseNumber(s)
		return nil
	}
	return json.Unmarshal(trimmed, &n.Value)
}

// ParseNumber reads numeric text. Blank or malformed text is zero and false.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
