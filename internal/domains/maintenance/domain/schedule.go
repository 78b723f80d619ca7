package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInterval = errors.New("interval must be at least one day")
	ErrInactive        = errors.New("schedule is inactive")
	ErrNoChecklistItem = errors.New("no such checklist item")
)

// ChecklistItem is one step of the inspection round, ticked off as the
// technician works through the schedule.
type ChecklistItem struct {
	Description string
	Done        bool
}

// Schedule is a recurring preventive maintenance plan for an asset.
type Schedule struct {
	ID              int64
	AssetID         int64
	Title           string
	Description     string
	IntervalDays    int
	NextDueAt       time.Time
	LastCompletedAt *time.Time
	Active          bool
	Checklist       []ChecklistItem
}

// NewSchedule builds an active schedule with its first due date.
func NewSchedule(assetID int64, title, description string, intervalDays int, firstDue time.Time) (*Schedule, error) {
	if assetID <= 0 {
		return nil, ErrMissingAsset
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if intervalDays < 1 {
		return nil, ErrInvalidInterval
	}
	return &Schedule{
		AssetID:      assetID,
		Title:        title,
		Description:  strings.TrimSpace(description),
		IntervalDays: intervalDays,
		NextDueAt:    firstDue,
		Active:       true,
	}, nil
}

// SetChecklist replaces the inspection steps. Blank entries are dropped
// and every step starts unticked.
func (s *Schedule) SetChecklist(descriptions []string) {
	s.Checklist = nil
	for _, description := range descriptions {
		description = strings.TrimSpace(description)
		if description == "" {
			continue
		}
		s.Checklist = append(s.Checklist, ChecklistItem{Description: description})
	}
}

// CheckItem ticks or unticks one checklist step by position.
func (s *Schedule) CheckItem(position int, done bool) error {
	if !s.Active {
		return ErrInactive
	}
	if position < 0 || position >= len(s.Checklist) {
		return ErrNoChecklistItem
	}
	s.Checklist[position].Done = done
	return nil
}

// Due reports whether the schedule needs attention at the given instant.
func (s *Schedule) Due(asOf time.Time) bool {
	return s.Active && !s.NextDueAt.After(asOf)
}

// MarkCompleted records a completed round and advances the next due date.
// The next date is anchored on the completion instant, not the planned one,
// so a late completion does not cause an immediately overdue schedule.
func (s *Schedule) MarkCompleted(at time.Time) error {
	if !s.Active {
		return ErrInactive
	}
	completed := at
	s.LastCompletedAt = &completed
	s.NextDueAt = at.AddDate(0, 0, s.IntervalDays)
	// The next round starts with a fresh, unticked checklist.
	for i := range s.Checklist {
		s.Checklist[i].Done = false
	}
	return nil
}

// Deactivate suspends the schedule without deleting its history.
func (s *Schedule) Deactivate() {
	s.Active = false
}

// Reactivate resumes a suspended schedule with a fresh due date.
func (s *Schedule) Reactivate(nextDue time.Time) {
	s.Active = true
	s.NextDueAt = nextDue
}

// Clone returns a deep copy of the schedule.
func (s *Schedule) Clone() *Schedule {
	clone := *s
	if s.LastCompletedAt != nil {
		at := *s.LastCompletedAt
		clone.LastCompletedAt = &at
	}
	if s.Checklist != nil {
		clone.Checklist = make([]ChecklistItem, len(s.Checklist))
		copy(clone.Checklist, s.Checklist)
	}
	return &clone
}
