package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/azaconnect/maintenance-api/internal/domains/inventory/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

type needleChangeRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Loom      string    `gorm:"column:loom;index"`
	Size      string    `gorm:"column:size"`
	Quantity  int       `gorm:"column:quantity"`
	Employee  string    `gorm:"column:employee"`
	Date      time.Time `gorm:"column:date;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (needleChangeRecord) TableName() string { return "needle_changes" }

// Repository persists the needle log in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&needleChangeRecord{})
	}
	return repo
}

func (r *Repository) Save(ctx context.Context, change *domain.NeedleChange) (*domain.NeedleChange, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if change == nil {
		return nil, errors.New("change is nil")
	}
	record := changeToRecord(change)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, loom string) ([]*domain.NeedleChange, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("date desc, id desc")
	if loom != "" {
		query = query.Where("loom = ?", loom)
	}
	var records []needleChangeRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	changes := make([]*domain.NeedleChange, 0, len(records))
	for i := range records {
		changes = append(changes, records[i].toDomain())
	}
	return changes, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&needleChangeRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres needle repository not configured")
	}
	return nil
}

func changeToRecord(change *domain.NeedleChange) needleChangeRecord {
	return needleChangeRecord{
		ID:       change.ID,
		Loom:     change.Loom,
		Size:     change.Size,
		Quantity: change.Quantity,
		Employee: change.Employee,
		Date:     change.Date,
	}
}

func (r needleChangeRecord) toDomain() *domain.NeedleChange {
	return &domain.NeedleChange{
		ID:       r.ID,
		Loom:     r.Loom,
		Size:     r.Size,
		Quantity: r.Quantity,
		Employee: r.Employee,
		Date:     r.Date,
	}
}
