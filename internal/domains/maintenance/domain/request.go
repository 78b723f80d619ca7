package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrMissingAsset    = errors.New("asset reference is required")
	ErrInvalidPriority = errors.New("unknown priority")
	ErrRequestClosed   = errors.New("request is already closed")
	ErrNotAssigned     = errors.New("request has no assigned technician")
)

// Priority ranks how urgently a repair is needed.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// RequestStatus tracks a corrective maintenance request through its lifecycle.
type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCanceled   RequestStatus = "canceled"
)

// Closed reports whether the request reached a final state.
func (s RequestStatus) Closed() bool {
	return s == RequestCompleted || s == RequestCanceled
}

// Request is a corrective maintenance ticket raised against an asset.
type Request struct {
	ID          int64
	AssetID     int64
	Title       string
	Description string
	Priority    Priority
	Status      RequestStatus
	RequestedBy string
	Sector      string
	AssignedTo  string
	Resolution  string
	PhotoURLs   []string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewRequest builds an open request against an asset.
func NewRequest(assetID int64, title, description, requestedBy, sector string, priority Priority) (*Request, error) {
	if assetID <= 0 {
		return nil, ErrMissingAsset
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	return &Request{
		AssetID:     assetID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Status:      RequestOpen,
		RequestedBy: strings.TrimSpace(requestedBy),
		Sector:      strings.TrimSpace(sector),
	}, nil
}

// Assign hands the request to a technician and moves it in progress.
func (r *Request) Assign(technician string) error {
	if r.Status.Closed() {
		return ErrRequestClosed
	}
	technician = strings.TrimSpace(technician)
	if technician == "" {
		return ErrNotAssigned
	}
	r.AssignedTo = technician
	r.Status = RequestInProgress
	return nil
}

// Complete closes the request with a resolution summary.
func (r *Request) Complete(resolution string, at time.Time) error {
	if r.Status.Closed() {
		return ErrRequestClosed
	}
	if r.AssignedTo == "" {
		return ErrNotAssigned
	}
	r.Resolution = strings.TrimSpace(resolution)
	r.Status = RequestCompleted
	completed := at
	r.CompletedAt = &completed
	return nil
}

// Cancel closes the request without resolution.
func (r *Request) Cancel() error {
	if r.Status.Closed() {
		return ErrRequestClosed
	}
	r.Status = RequestCanceled
	return nil
}

// AttachPhotos appends evidence photo URLs.
func (r *Request) AttachPhotos(urls []string) {
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u != "" {
			r.PhotoURLs = append(r.PhotoURLs, u)
		}
	}
}

// Clone returns a deep copy of the request.
func (r *Request) Clone() *Request {
	clone := *r
	clone.PhotoURLs = append([]string(nil), r.PhotoURLs...)
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		clone.CompletedAt = &at
	}
	return &clone
}
