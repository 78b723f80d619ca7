package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/azaconnect/maintenance-api/internal/domains/assets/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
)

var _ ports.SectorRepository = (*SectorRepository)(nil)

type sectorRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Active      bool      `gorm:"column:active;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (sectorRecord) TableName() string { return "sectors" }

// SectorRepository persists the sector registry in PostgreSQL using GORM.
type SectorRepository struct {
	db *gorm.DB
}

// NewSectorRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewSectorRepository(db *gorm.DB) *SectorRepository {
	repo := &SectorRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&sectorRecord{})
	}
	return repo
}

func (r *SectorRepository) SaveSector(ctx context.Context, sector *domain.Sector) (*domain.Sector, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if sector == nil {
		return nil, errors.New("sector is nil")
	}
	record := sectorToRecord(sector)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *SectorRepository) GetSector(ctx context.Context, id int64) (*domain.Sector, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record sectorRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *SectorRepository) ListSectors(ctx context.Context) ([]*domain.Sector, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []sectorRecord
	if err := r.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	sectors := make([]*domain.Sector, 0, len(records))
	for i := range records {
		sectors = append(sectors, records[i].toDomain())
	}
	return sectors, nil
}

func (r *SectorRepository) DeleteSector(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&sectorRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *SectorRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres sector repository not configured")
	}
	return nil
}

func sectorToRecord(sector *domain.Sector) sectorRecord {
	return sectorRecord{
		ID:          sector.ID,
		Name:        sector.Name,
		Description: sector.Description,
		Active:      sector.Active,
	}
}

func (r sectorRecord) toDomain() *domain.Sector {
	return &domain.Sector{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
	}
}
