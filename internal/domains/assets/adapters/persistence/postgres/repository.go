package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists assets in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&assetRecord{})
	}
	return repo
}

type assetRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name"`
	Type         string    `gorm:"column:type"`
	Number       string    `gorm:"column:number;uniqueIndex"`
	Model        string    `gorm:"column:model"`
	SerialNumber string    `gorm:"column:serial_number"`
	Sector       string    `gorm:"column:sector;index"`
	Status       string    `gorm:"column:status;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (assetRecord) TableName() string { return "assets" }

// Save inserts or updates an asset.
func (r *Repository) Save(ctx context.Context, asset *domain.Asset) (*domain.Asset, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, errors.New("asset is nil")
	}
	clone := *asset
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an asset by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record assetRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an asset by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&assetRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns assets matching the filter ordered by inventory number.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Asset, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("number asc")
	if filter.Sector != "" {
		query = query.Where("sector = ?", filter.Sector)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	var records []assetRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	assets := make([]*domain.Asset, 0, len(records))
	for i := range records {
		assets = append(assets, records[i].toDomain())
	}
	return assets, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres asset repository not configured")
	}
	return nil
}

func toRecord(asset *domain.Asset) assetRecord {
	return assetRecord{
		ID:           asset.ID,
		Name:         asset.Name,
		Type:         asset.Type,
		Number:       asset.Number,
		Model:        asset.Model,
		SerialNumber: asset.SerialNumber,
		Sector:       asset.Sector,
		Status:       string(asset.Status),
	}
}

func (r assetRecord) toDomain() *domain.Asset {
	return &domain.Asset{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type,
		Number:       r.Number,
		Model:        r.Model,
		SerialNumber: r.SerialNumber,
		Sector:       r.Sector,
		Status:       domain.Status(r.Status),
	}
}
