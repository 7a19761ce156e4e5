package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{2,6}[0-9]{2,4}$`)

type Project struct {
	ID           string
	ShortID      string
	Name         string
	DepartmentID string
	Variant      Variant
	CurrentPhase Phase
	StartDate    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 2-6 uppercase letters followed by 2-4 digits (e.g. VS01, MARK0234).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 2-6 uppercase letters followed by 2-4 digits (e.g. VS01)", p.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// EffectivePhase returns the project's current phase, defaulting to the
// first phase of its variant when unset.
func (p *Project) EffectivePhase() Phase {
	if p.CurrentPhase != "" {
		return p.CurrentPhase
	}
	return p.Variant.FirstPhase()
}

// SchedulingAnchor is the base instant for time-lock offsets: the start
// date when set, otherwise the creation time.
func (p *Project) SchedulingAnchor() time.Time {
	return TimeFromPtrWithDefault(p.CreatedAt, p.StartDate)
}
