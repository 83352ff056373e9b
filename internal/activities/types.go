// Package activities provides the core domain types for the signup service.
// It defines Activity, the Registry that stores activities keyed by name,
// and the Service that owns the signup rules.
package activities

import (
	"fmt"
	"slices"
)

// Activity represents a named extracurricular offering.
// The name is the registry key and is unique across all activities.
type Activity struct {
	// Name is the unique human-readable identifier (e.g. "Chess Club").
	// It is carried as the map key on the wire, not in the body.
	Name string `json:"-"`

	// Description is a short summary of the activity.
	Description string `json:"description"`

	// Schedule is free-form text describing when the activity meets.
	Schedule string `json:"schedule"`

	// MaxParticipants is the advertised capacity. It is informational
	// only: signups are never rejected for being over capacity.
	MaxParticipants int `json:"max_participants"`

	// Participants holds the signed-up emails in signup order.
	// An email appears at most once per activity.
	Participants []string `json:"participants"`
}

// Validate checks that the Activity has all required fields
// and that the roster contains no duplicate emails.
func (a *Activity) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	if a.Description == "" {
		return fmt.Errorf("description is required")
	}
	if a.Schedule == "" {
		return fmt.Errorf("schedule is required")
	}
	if a.MaxParticipants <= 0 {
		return fmt.Errorf("max_participants must be positive, got %d", a.MaxParticipants)
	}

	seen := make(map[string]bool, len(a.Participants))
	for _, email := range a.Participants {
		if email == "" {
			return fmt.Errorf("participant email cannot be empty")
		}
		if seen[email] {
			return fmt.Errorf("duplicate participant %s", email)
		}
		seen[email] = true
	}

	return nil
}

// HasParticipant returns true if email is already on the roster.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a deep copy of the activity. The registry hands out
// clones so callers never share roster storage with it.
func (a *Activity) Clone() *Activity {
	clone := *a
	clone.Participants = slices.Clone(a.Participants)
	return &clone
}
