package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists notifications in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&notificationRecord{})
	}
	return repo
}

type notificationRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Recipient string    `gorm:"column:recipient;index"`
	Kind      string    `gorm:"column:kind"`
	Subject   string    `gorm:"column:subject"`
	Body      string    `gorm:"column:body"`
	Read      bool      `gorm:"column:read;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (notificationRecord) TableName() string { return "notifications" }

// Save inserts or updates a notification.
func (r *Repository) Save(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, errors.New("notification is nil")
	}
	record := toRecord(notification)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a notification by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record notificationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByRecipient returns notifications for a user, newest first.
func (r *Repository) ListByRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("recipient = ?", recipient).Order("created_at desc")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var records []notificationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	notifications := make([]*domain.Notification, 0, len(records))
	for i := range records {
		notifications = append(notifications, records[i].toDomain())
	}
	return notifications, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres notification repository not configured")
	}
	return nil
}

func toRecord(notification *domain.Notification) notificationRecord {
	return notificationRecord{
		ID:        notification.ID,
		Recipient: notification.Recipient,
		Kind:      string(notification.Kind),
		Subject:   notification.Subject,
		Body:      notification.Body,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

func (r notificationRecord) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:        r.ID,
		Recipient: r.Recipient,
		Kind:      domain.Kind(r.Kind),
		Subject:   r.Subject,
		Body:      r.Body,
		Read:      r.Read,
		CreatedAt: r.CreatedAt,
	}
}
