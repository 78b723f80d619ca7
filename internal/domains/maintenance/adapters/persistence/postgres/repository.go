package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
)

var (
	_ ports.RequestRepository  = (*RequestRepository)(nil)
	_ ports.ScheduleRepository = (*ScheduleRepository)(nil)
)

type requestRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	AssetID     int64          `gorm:"column:asset_id;index"`
	Title       string         `gorm:"column:title"`
	Description string         `gorm:"column:description"`
	Priority    string         `gorm:"column:priority"`
	Status      string         `gorm:"column:status;index"`
	RequestedBy string         `gorm:"column:requested_by"`
	Sector      string         `gorm:"column:sector;index"`
	AssignedTo  string         `gorm:"column:assigned_to"`
	Resolution  string         `gorm:"column:resolution"`
	PhotoURLs   pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	CompletedAt *time.Time     `gorm:"column:completed_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (requestRecord) TableName() string { return "maintenance_requests" }

type checklistEntry struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

type scheduleRecord struct {
	ID              int64            `gorm:"primaryKey;column:id"`
	AssetID         int64            `gorm:"column:asset_id;index"`
	Title           string           `gorm:"column:title"`
	Description     string           `gorm:"column:description"`
	IntervalDays    int              `gorm:"column:interval_days"`
	NextDueAt       time.Time        `gorm:"column:next_due_at;index"`
	LastCompletedAt *time.Time       `gorm:"column:last_completed_at"`
	Active          bool             `gorm:"column:active;index"`
	Checklist       []checklistEntry `gorm:"column:checklist;type:jsonb;serializer:json"`
	CreatedAt       time.Time        `gorm:"column:created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at"`
}

func (scheduleRecord) TableName() string { return "maintenance_schedules" }

// RequestRepository persists maintenance requests in PostgreSQL using GORM.
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	repo := &RequestRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&requestRecord{})
	}
	return repo
}

func (r *RequestRepository) Save(ctx context.Context, request *domain.Request) (*domain.Request, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("request is nil")
	}
	record := requestToRecord(request)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record requestRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *RequestRepository) List(ctx context.Context, filter ports.RequestFilter) ([]*domain.Request, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id asc")
	if filter.AssetID != 0 {
		query = query.Where("asset_id = ?", filter.AssetID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Sector != "" {
		query = query.Where("sector = ?", filter.Sector)
	}
	var records []requestRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	requests := make([]*domain.Request, 0, len(records))
	for i := range records {
		requests = append(requests, records[i].toDomain())
	}
	return requests, nil
}

func (r *RequestRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres request repository not configured")
	}
	return nil
}

// ScheduleRepository persists preventive schedules in PostgreSQL using GORM.
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	repo := &ScheduleRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&scheduleRecord{})
	}
	return repo
}

func (r *ScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, errors.New("schedule is nil")
	}
	record := scheduleToRecord(schedule)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record scheduleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *ScheduleRepository) List(ctx context.Context, assetID int64) ([]*domain.Schedule, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id asc")
	if assetID != 0 {
		query = query.Where("asset_id = ?", assetID)
	}
	var records []scheduleRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	schedules := make([]*domain.Schedule, 0, len(records))
	for i := range records {
		schedules = append(schedules, records[i].toDomain())
	}
	return schedules, nil
}

func (r *ScheduleRepository) ListDue(ctx context.Context, asOf time.Time) ([]*domain.Schedule, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []scheduleRecord
	if err := r.db.WithContext(ctx).
		Where("active = ? AND next_due_at <= ?", true, asOf).
		Order("next_due_at asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	schedules := make([]*domain.Schedule, 0, len(records))
	for i := range records {
		schedules = append(schedules, records[i].toDomain())
	}
	return schedules, nil
}

func (r *ScheduleRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres schedule repository not configured")
	}
	return nil
}

func requestToRecord(request *domain.Request) requestRecord {
	return requestRecord{
		ID:          request.ID,
		AssetID:     request.AssetID,
		Title:       request.Title,
		Description: request.Description,
		Priority:    string(request.Priority),
		Status:      string(request.Status),
		RequestedBy: request.RequestedBy,
		Sector:      request.Sector,
		AssignedTo:  request.AssignedTo,
		Resolution:  request.Resolution,
		PhotoURLs:   pq.StringArray(request.PhotoURLs),
		CreatedAt:   request.CreatedAt,
		CompletedAt: request.CompletedAt,
	}
}

func (r requestRecord) toDomain() *domain.Request {
	return &domain.Request{
		ID:          r.ID,
		AssetID:     r.AssetID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Status:      domain.RequestStatus(r.Status),
		RequestedBy: r.RequestedBy,
		Sector:      r.Sector,
		AssignedTo:  r.AssignedTo,
		Resolution:  r.Resolution,
		PhotoURLs:   []string(r.PhotoURLs),
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

func scheduleToRecord(schedule *domain.Schedule) scheduleRecord {
	checklist := make([]checklistEntry, 0, len(schedule.Checklist))
	for _, item := range schedule.Checklist {
		checklist = append(checklist, checklistEntry{Description: item.Description, Done: item.Done})
	}
	return scheduleRecord{
		ID:              schedule.ID,
		AssetID:         schedule.AssetID,
		Title:           schedule.Title,
		Description:     schedule.Description,
		IntervalDays:    schedule.IntervalDays,
		NextDueAt:       schedule.NextDueAt,
		LastCompletedAt: schedule.LastCompletedAt,
		Active:          schedule.Active,
		Checklist:       checklist,
	}
}

func (r scheduleRecord) toDomain() *domain.Schedule {
	var checklist []domain.ChecklistItem
	for _, entry := range r.Checklist {
		checklist = append(checklist, domain.ChecklistItem{Description: entry.Description, Done: entry.Done})
	}
	return &domain.Schedule{
		ID:              r.ID,
		AssetID:         r.AssetID,
		Title:           r.Title,
		Description:     r.Description,
		IntervalDays:    r.IntervalDays,
		NextDueAt:       r.NextDueAt,
		LastCompletedAt: r.LastCompletedAt,
		Active:          r.Active,
		Checklist:       checklist,
	}
}
