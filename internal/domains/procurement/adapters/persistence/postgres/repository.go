package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists procurement orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{}, &receiptEventRecord{})
	}
	return repo
}

type orderRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Number      string    `gorm:"column:order_number;uniqueIndex"`
	RequestedBy string    `gorm:"column:requested_by"`
	Sector      string    `gorm:"column:sector"`
	Status      string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "accessory_orders" }

type orderItemRecord struct {
	ID               int64            `gorm:"primaryKey;column:id"`
	OrderID          int64            `gorm:"column:order_id;index"`
	Code             string           `gorm:"column:code"`
	Description      string           `gorm:"column:description"`
	Unit             string           `gorm:"column:unit;type:varchar(16)"`
	OrderedQuantity  decimal.Decimal  `gorm:"column:ordered_quantity;type:numeric(14,4)"`
	ApprovedQuantity *decimal.Decimal `gorm:"column:approved_quantity;type:numeric(14,4)"`
	ReceivedQuantity decimal.Decimal  `gorm:"column:received_quantity;type:numeric(14,4)"`
	Status           string           `gorm:"column:status;type:varchar(32);index"`
	Version          int64            `gorm:"column:version"`
	CreatedAt        time.Time        `gorm:"column:created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at"`
}

func (orderItemRecord) TableName() string { return "accessory_order_items" }

type receiptEventRecord struct {
	ID         uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	ItemID     int64           `gorm:"column:item_id;index:idx_receipt_events_item_seq"`
	Seq        int             `gorm:"column:seq;index:idx_receipt_events_item_seq"`
	Quantity   decimal.Decimal `gorm:"column:quantity;type:numeric(14,4)"`
	Condition  string          `gorm:"column:condition;type:varchar(16)"`
	Note       string          `gorm:"column:note"`
	RecordedAt time.Time       `gorm:"column:recorded_at"`
}

func (receiptEventRecord) TableName() string { return "receipt_events" }

// SaveOrder inserts a new order with its items or updates the order row.
func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	var saved *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			itemRecord := toItemRecord(item)
			itemRecord.OrderID = record.ID
			if err := tx.Save(&itemRecord).Error; err != nil {
				return err
			}
			item.ID = itemRecord.ID
			item.OrderID = record.ID
		}
		order.ID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	saved, err = r.GetOrder(ctx, record.ID)
	return saved, err
}

// GetOrder loads an order with its items and their receipt histories.
func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order := record.toDomain()
	order.Items = items
	return order, nil
}

// ListOrders returns all orders with their items, oldest first.
func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		items, err := r.loadItems(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		order := records[i].toDomain()
		order.Items = items
		orders = append(orders, order)
	}
	return orders, nil
}

// GetItem loads a single item with its receipt history.
func (r *Repository) GetItem(ctx context.Context, id int64) (*domain.OrderItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderItemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	events, err := r.loadEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	item := record.toDomain()
	item.Receipts = events
	return item, nil
}

// SaveItem writes the item guarded by its version and, in the same
// transaction, appends the new receipt event or clears the persisted
// history when the item carries none. A stale version yields ErrConflict.
func (r *Repository) SaveItem(ctx context.Context, item *domain.OrderItem, appended *domain.ReceiptEvent) (*domain.OrderItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"code":              item.Code,
			"description":       item.Description,
			"unit":              item.Unit,
			"approved_quantity": item.ApprovedQuantity,
			"received_quantity": item.ReceivedQuantity,
			"status":            string(item.Status),
			"version":           item.Version + 1,
			"updated_at":        time.Now(),
		}
		result := tx.Model(&orderItemRecord{}).
			Where("id = ? AND version = ?", item.ID, item.Version).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&orderItemRecord{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ports.ErrNotFound
			}
			return ports.ErrConflict
		}
		if appended != nil {
			record := toEventRecord(*appended)
			record.ItemID = item.ID
			record.Seq = len(item.Receipts)
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		if len(item.Receipts) == 0 {
			if err := tx.Where("item_id = ?", item.ID).Delete(&receiptEventRecord{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetItem(ctx, item.ID)
}

// SaveCanceledOrder writes the cancel override in one transaction: every
// item row is updated guarded by its loaded version, then the order status.
// Any stale item rolls the whole commit back with ErrConflict.
func (r *Repository) SaveCanceledOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			result := tx.Model(&orderItemRecord{}).
				Where("id = ? AND version = ?", item.ID, item.Version).
				Updates(map[string]any{
					"status":     string(item.Status),
					"version":    item.Version + 1,
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&orderItemRecord{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return ports.ErrNotFound
				}
				return ports.ErrConflict
			}
		}
		result := tx.Model(&orderRecord{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{"status": string(order.Status), "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, order.ID)
}

// ListItemStatuses returns the statuses of the order's items in item order.
func (r *Repository) ListItemStatuses(ctx context.Context, orderID int64) ([]domain.ItemStatus, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var raw []string
	if err := r.db.WithContext(ctx).
		Model(&orderItemRecord{}).
		Where("order_id = ?", orderID).
		Order("id").
		Pluck("status", &raw).Error; err != nil {
		return nil, err
	}
	statuses := make([]domain.ItemStatus, 0, len(raw))
	for _, s := range raw {
		statuses = append(statuses, domain.ItemStatus(s))
	}
	return statuses, nil
}

// SaveOrderStatus overwrites the derived order status.
func (r *Repository) SaveOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", orderID).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) loadItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	var records []orderItemRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.OrderItem, 0, len(records))
	for i := range records {
		events, err := r.loadEvents(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		item := records[i].toDomain()
		item.Receipts = events
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) loadEvents(ctx context.Context, itemID int64) ([]domain.ReceiptEvent, error) {
	var records []receiptEventRecord
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	events := make([]domain.ReceiptEvent, 0, len(records))
	for _, record := range records {
		events = append(events, record.toDomain())
	}
	return events, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres procurement repository not configured")
	}
	return nil
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:          order.ID,
		Number:      order.Number,
		RequestedBy: order.RequestedBy,
		Sector:      order.Sector,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		Number:      r.Number,
		RequestedBy: r.RequestedBy,
		Sector:      r.Sector,
		Status:      domain.OrderStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func toItemRecord(item *domain.OrderItem) orderItemRecord {
	return orderItemRecord{
		ID:               item.ID,
		OrderID:          item.OrderID,
		Code:             item.Code,
		Description:      item.Description,
		Unit:             item.Unit,
		OrderedQuantity:  item.OrderedQuantity,
		ApprovedQuantity: item.ApprovedQuantity,
		ReceivedQuantity: item.ReceivedQuantity,
		Status:           string(item.Status),
		Version:          item.Version,
	}
}

func (r orderItemRecord) toDomain() *domain.OrderItem {
	return &domain.OrderItem{
		ID:               r.ID,
		OrderID:          r.OrderID,
		Code:             r.Code,
		Description:      r.Description,
		Unit:             r.Unit,
		OrderedQuantity:  r.OrderedQuantity,
		ApprovedQuantity: r.ApprovedQuantity,
		ReceivedQuantity: r.ReceivedQuantity,
		Status:           domain.ItemStatus(r.Status),
		Version:          r.Version,
	}
}

func toEventRecord(event domain.ReceiptEvent) receiptEventRecord {
	return receiptEventRecord{
		ID:         event.ID,
		ItemID:     event.ItemID,
		Quantity:   event.Quantity,
		Condition:  string(event.Condition),
		Note:       event.Note,
		RecordedAt: event.RecordedAt,
	}
}

func (r receiptEventRecord) toDomain() domain.ReceiptEvent {
	return domain.ReceiptEvent{
		ID:         r.ID,
		ItemID:     r.ItemID,
		Quantity:   r.Quantity,
		Condition:  domain.ReceiptCondition(r.Condition),
		Note:       r.Note,
		RecordedAt: r.RecordedAt,
	}
}
