package mission

import "time"

// Operative is an individual who can be assigned to missions.
type Operative struct {
	ID         string
	Name       string
	Department string
	Role       string
}

// Operatives is the directory offered when assigning missions.
var Operatives = []Operative{
	{ID: "agent-001", Name: "Agent Smith", Department: "Operations", Role: "Field Operative"},
	{ID: "agent-002", Name: "Agent Johnson", Department: "Intelligence", Role: "Analyst"},
	{ID: "agent-003", Name: "Agent Williams", Department: "Security", Role: "Security Specialist"},
	{ID: "agent-004", Name: "Agent Brown", Department: "Technology", Role: "Technical Operative"},
	{ID: "agent-005", Name: "Agent Davis", Department: "Logistics", Role: "Logistics Coordinator"},
	{ID: "agent-006", Name: "Agent Miller", Department: "Operations", Role: "Team Lead"},
}

// KnownDepartments are the departments offered by the create form.
var KnownDepartments = []string{"Operations", "Security", "Intelligence", "Logistics", "Technology"}

// DemoMissions returns the built-in dataset used to seed an empty store.
// Timestamps are relative to now so the dashboard always has live examples:
// one critical active mission, one overdue mission, one recent completion.
func DemoMissions(now time.Time) []*Mission {
	at := func(d time.Duration) time.Time { return now.Add(d).UTC() }
	ptr := func(t time.Time) *time.Time { return &t }
	money := func(v float64) *float64 { return &v }
	minutes := func(v int) *int { return &v }

	return []*Mission{
		{
			ID:          "msn-001",
			Title:       "Operation Nightfall",
			Description: "Covert surveillance of a suspected arms exchange at the harbour warehouse district.",
			Status:      StatusActive,
			Priority:    PriorityCritical,
			AssignedTo:  []string{"Agent Smith", "Agent Williams"},
			CreatedAt:   at(-6 * time.Hour),
			UpdatedAt:   at(-30 * time.Minute),
			Deadline:    ptr(at(18 * time.Hour)),
			Progress:    45,
			Logs: []Log{
				{ID: "log-001", Timestamp: at(-6 * time.Hour), Level: LevelInfo, Message: "Mission briefing completed", Details: "Team assembled at safehouse Bravo", Author: "Agent Smith"},
				{ID: "log-002", Timestamp: at(-2 * time.Hour), Level: LevelWarning, Message: "Unexpected patrol activity", Details: "Rerouted approach via service tunnel", Author: "Agent Williams"},
			},
			Location:          &Location{Name: "Harbour District", Lat: 51.5055, Lng: -0.0754},
			EstimatedDuration: 720,
			Department:        "Operations",
			Budget:            money(250000),
			ClientName:        "Ministry of Defence",
		},
		{
			ID:          "msn-002",
			Title:       "Operation Glass Key",
			Description: "Recover encrypted ledger from compromised courier before handover.",
			Status:      StatusPending,
			Priority:    PriorityHigh,
			AssignedTo:  []string{"Agent Johnson"},
			CreatedAt:   at(-72 * time.Hour),
			UpdatedAt:   at(-48 * time.Hour),
			Deadline:    ptr(at(-12 * time.Hour)),
			Progress:    10,
			Logs: []Log{
				{ID: "log-003", Timestamp: at(-72 * time.Hour), Level: LevelInfo, Message: "Courier identified", Author: "Agent Johnson"},
			},
			EstimatedDuration: 240,
			Department:        "Intelligence",
		},
		{
			ID:          "msn-003",
			Title:       "Operation Silent Relay",
			Description: "Replace compromised relay hardware at the northern listening post.",
			Status:      StatusCompleted,
			Priority:    PriorityMedium,
			AssignedTo:  []string{"Agent Brown", "Agent Davis"},
			CreatedAt:   at(-30 * time.Hour),
			UpdatedAt:   at(-20 * time.Minute),
			Progress:    100,
			Logs: []Log{
				{ID: "log-004", Timestamp: at(-30 * time.Hour), Level: LevelInfo, Message: "Hardware dispatched", Author: "Agent Davis"},
				{ID: "log-005", Timestamp: at(-20 * time.Minute), Level: LevelSuccess, Message: "Mission completed successfully", Details: "Relay online, signal verified", Author: "Agent Brown"},
			},
			Location:          &Location{Name: "Northern Listening Post", Lat: 60.1699, Lng: 24.9384},
			EstimatedDuration: 480,
			ActualDuration:    minutes(510),
			Department:        "Technology",
			Budget:            money(48000),
		},
		{
			ID:          "msn-004",
			Title:       "Operation Ember Watch",
			Description: "Security audit of the embassy perimeter following the breach attempt.",
			Status:      StatusFailed,
			Priority:    PriorityLow,
			AssignedTo:  []string{"Agent Miller"},
			CreatedAt:   at(-120 * time.Hour),
			UpdatedAt:   at(-96 * time.Hour),
			Progress:    60,
			Logs: []Log{
				{ID: "log-006", Timestamp: at(-96 * time.Hour), Level: LevelError, Message: "Mission marked as failed", Details: "Access revoked by host nation", Author: "Agent Miller"},
			},
			EstimatedDuration: 360,
			Department:        "Security",
			ClientName:        "Foreign Office",
		},
	}
}
