package mapper

import (
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
)

// Request is the HTTP representation of a corrective maintenance ticket.
type Request struct {
	ID          int64      `json:"id,omitempty"`
	AssetID     int64      `json:"assetId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	RequestedBy string     `json:"requestedBy,omitempty"`
	Sector      string     `json:"sector,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	PhotoURLs   []string   `json:"photoUrls,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// MutationRequest is the payload accepted when opening a ticket.
type MutationRequest struct {
	AssetID     int64    `json:"assetId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	RequestedBy string   `json:"requestedBy,omitempty"`
	Sector      string   `json:"sector,omitempty"`
	PhotoURLs   []string `json:"photoUrls,omitempty"`
}

// AssignRequestBody carries the technician taking over a ticket.
type AssignRequestBody struct {
	Technician string `json:"technician"`
}

// CompleteRequestBody carries the closing resolution summary.
type CompleteRequestBody struct {
	Resolution string `json:"resolution,omitempty"`
}

// ChecklistItem is one inspection step of a preventive schedule.
type ChecklistItem struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Schedule is the HTTP representation of a preventive maintenance plan.
type Schedule struct {
	ID              int64           `json:"id,omitempty"`
	AssetID         int64           `json:"assetId"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	IntervalDays    int             `json:"intervalDays"`
	NextDueAt       time.Time       `json:"nextDueAt,omitempty"`
	LastCompletedAt *time.Time      `json:"lastCompletedAt,omitempty"`
	Active          bool            `json:"active"`
	Checklist       []ChecklistItem `json:"checklist,omitempty"`
}

// MutationSchedule is the payload accepted when creating a plan.
type MutationSchedule struct {
	AssetID      int64      `json:"assetId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	IntervalDays int        `json:"intervalDays"`
	FirstDue     *time.Time `json:"firstDue,omitempty"`
	Checklist    []string   `json:"checklist,omitempty"`
}

// CheckItemBody carries the tick state for one checklist step.
type CheckItemBody struct {
	Done bool `json:"done"`
}

// ToCreateRequestInput maps the mutation payload to the application input.
func ToCreateRequestInput(payload MutationRequest) ports.CreateRequestInput {
	return ports.CreateRequestInput{
		AssetID:     payload.AssetID,
		Title:       payload.Title,
		Description: payload.Description,
		Priority:    domain.Priority(payload.Priority),
		RequestedBy: payload.RequestedBy,
		Sector:      payload.Sector,
		PhotoURLs:   payload.PhotoURLs,
	}
}

// ToCreateScheduleInput maps the mutation payload to the application input.
// A missing first due date is left zero for the service to default.
func ToCreateScheduleInput(payload MutationSchedule) ports.CreateScheduleInput {
	input := ports.CreateScheduleInput{
		AssetID:      payload.AssetID,
		Title:        payload.Title,
		Description:  payload.Description,
		IntervalDays: payload.IntervalDays,
		Checklist:    payload.Checklist,
	}
	if payload.FirstDue != nil {
		input.FirstDue = *payload.FirstDue
	}
	return input
}

// FromDomainRequest maps a domain request to its HTTP representation.
func FromDomainRequest(r *domain.Request) Request {
	return Request{
		ID:          r.ID,
		AssetID:     r.AssetID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		RequestedBy: r.RequestedBy,
		Sector:      r.Sector,
		AssignedTo:  r.AssignedTo,
		Resolution:  r.Resolution,
		PhotoURLs:   r.PhotoURLs,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

// FromDomainRequestList maps a slice of domain requests.
func FromDomainRequestList(requests []*domain.Request) []Request {
	out := make([]Request, 0, len(requests))
	for _, r := range requests {
		out = append(out, FromDomainRequest(r))
	}
	return out
}

// FromDomainSchedule maps a domain schedule to its HTTP representation.
func FromDomainSchedule(s *domain.Schedule) Schedule {
	checklist := make([]ChecklistItem, 0, len(s.Checklist))
	for _, item := range s.Checklist {
		checklist = append(checklist, ChecklistItem{Description: item.Description, Done: item.Done})
	}
	return Schedule{
		ID:              s.ID,
		AssetID:         s.AssetID,
		Title:           s.Title,
		Description:     s.Description,
		IntervalDays:    s.IntervalDays,
		NextDueAt:       s.NextDueAt,
		LastCompletedAt: s.LastCompletedAt,
		Active:          s.Active,
		Checklist:       checklist,
	}
}

// FromDomainScheduleList maps a slice of domain schedules.
func FromDomainScheduleList(schedules []*domain.Schedule) []Schedule {
	out := make([]Schedule, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, FromDomainSchedule(s))
	}
	return out
}
