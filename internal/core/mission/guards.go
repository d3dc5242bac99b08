// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/example/missionctl/pkg/errors"
)

// Role represents the role of the acting operative.
// Defined here to avoid import cycles with internal/core/session.
type Role string

const (
	// RoleAdmin may create and modify missions.
	RoleAdmin Role = "admin"
	// RoleOperator has read-only access to missions.
	RoleOperator Role = "operator"
)

// GuardContext provides the context needed for role-based guard evaluation.
type GuardContext struct {
	Role     Role
	Username string
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
// Denials wrap errors.ErrForbidden.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", errors.ErrForbidden, r.Reason)
}

func adminOnly(ctx GuardContext, action string) GuardResult {
	if ctx.Role != RoleAdmin {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only administrators can %s (user: %s, role: %s)", action, ctx.Username, ctx.Role),
		}
	}
	return GuardResult{Allowed: true}
}

// CanCreateMission evaluates whether the operative can deploy a new mission.
// Rule: only admins create missions.
func CanCreateMission(ctx GuardContext) GuardResult {
	return adminOnly(ctx, "deploy new operations")
}

// CanEditMission evaluates whether the operative can change status, progress
// or other fields of a mission.
// Rule: only admins edit missions.
func CanEditMission(ctx GuardContext) GuardResult {
	return adminOnly(ctx, "edit missions")
}

// CanAddLog evaluates whether the operative can append to a mission log.
// Rule: only admins write log entries.
func CanAddLog(ctx GuardContext) GuardResult {
	return adminOnly(ctx, "add mission log entries")
}

// CanDeleteMission evaluates whether the operative can delete a mission.
// Rule: only admins delete missions.
func CanDeleteMission(ctx GuardContext) GuardResult {
	return adminOnly(ctx, "delete missions")
}

// ValidateCreate checks the fields of a new mission the way the create form
// does. All failing fields are reported together.
func ValidateCreate(f Fields, now time.Time) error {
	var errs errors.ValidationErrors

	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, errors.NewValidationError("title", "Mission title is required"))
	}
	if strings.TrimSpace(f.Description) == "" {
		errs = append(errs, errors.NewValidationError("description", "Mission description is required"))
	}
	if len(f.AssignedTo) == 0 {
		errs = append(errs, errors.NewValidationError("assignedTo", "At least one operative must be assigned"))
	}
	if f.EstimatedDuration <= 0 {
		errs = append(errs, errors.NewValidationError("estimatedDuration", "Duration must be greater than 0"))
	}
	if f.Deadline != nil && !f.Deadline.After(now) {
		errs = append(errs, errors.NewValidationError("deadline", "Deadline must be in the future"))
	}
	if f.Status != "" && !f.Status.Valid() {
		errs = append(errs, errors.NewValidationError("status", fmt.Sprintf("unknown status %q", f.Status)))
	}
	if f.Priority != "" && !f.Priority.Valid() {
		errs = append(errs, errors.NewValidationError("priority", fmt.Sprintf("unknown priority %q", f.Priority)))
	}
	if f.Progress < 0 || f.Progress > 100 {
		errs = append(errs, errors.NewValidationError("progress", "Progress must be between 0 and 100"))
	}
	if f.ActualDuration != nil && *f.ActualDuration < 0 {
		errs = append(errs, errors.NewValidationError("actualDuration", "Actual duration cannot be negative"))
	}
	errs = append(errs, validateBudget(f.Budget)...)
	errs = append(errs, validateLocation(f.Location)...)

	return errs.OrNil()
}

// ValidatePatch checks the enum values and numeric ranges of a partial update.
// Deadlines are not required to be in the future once a mission exists.
func ValidatePatch(p Patch) error {
	var errs errors.ValidationErrors

	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		errs = append(errs, errors.NewValidationError("title", "Mission title is required"))
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		errs = append(errs, errors.NewValidationError("description", "Mission description is required"))
	}
	if p.Status != nil && !p.Status.Valid() {
		errs = append(errs, errors.NewValidationError("status", fmt.Sprintf("unknown status %q", *p.Status)))
	}
	if p.Priority != nil && !p.Priority.Valid() {
		errs = append(errs, errors.NewValidationError("priority", fmt.Sprintf("unknown priority %q", *p.Priority)))
	}
	if p.Progress != nil {
		if err := ValidateProgress(*p.Progress); err != nil {
			errs = append(errs, err.(*errors.ValidationError))
		}
	}
	if p.EstimatedDuration != nil && *p.EstimatedDuration <= 0 {
		errs = append(errs, errors.NewValidationError("estimatedDuration", "Duration must be greater than 0"))
	}
	if p.ActualDuration != nil && *p.ActualDuration < 0 {
		errs = append(errs, errors.NewValidationError("actualDuration", "Actual duration cannot be negative"))
	}
	errs = append(errs, validateBudget(p.Budget)...)
	errs = append(errs, validateLocation(p.Location)...)

	return errs.OrNil()
}

// ValidateProgress checks that progress lies within 0..100.
func ValidateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return errors.NewValidationError("progress", "Progress must be between 0 and 100")
	}
	return nil
}

// ValidateLog checks a log entry before it is appended.
func ValidateLog(f LogFields) error {
	var errs errors.ValidationErrors
	if strings.TrimSpace(f.Message) == "" {
		errs = append(errs, errors.NewValidationError("message", "Log message is required"))
	}
	if f.Level != "" && !f.Level.Valid() {
		errs = append(errs, errors.NewValidationError("level", fmt.Sprintf("unknown log level %q", f.Level)))
	}
	return errs.OrNil()
}

func validateBudget(budget *float64) errors.ValidationErrors {
	if budget == nil {
		return nil
	}
	if math.IsNaN(*budget) || math.IsInf(*budget, 0) || *budget < 0 {
		return errors.ValidationErrors{errors.NewValidationError("budget", "Budget must be a valid number")}
	}
	return nil
}

func validateLocation(loc *Location) errors.ValidationErrors {
	if loc == nil {
		return nil
	}
	var errs errors.ValidationErrors
	if math.IsNaN(loc.Lat) || loc.Lat < -90 || loc.Lat > 90 {
		errs = append(errs, errors.NewValidationError("locationLat", "Latitude must be between -90 and 90"))
	}
	if math.IsNaN(loc.Lng) || loc.Lng < -180 || loc.Lng > 180 {
		errs = append(errs, errors.NewValidationError("locationLng", "Longitude must be between -180 and 180"))
	}
	return errs
}
