package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderItemRecord{},
		&receiptEventRecord{},
		&userRecord{},
		&sessionRecord{},
		&assetRecord{},
		&sectorRecord{},
		&requestRecord{},
		&scheduleRecord{},
		&needleChangeRecord{},
		&notificationRecord{},
	)
}

// Accessory order schema mirrors the procurement Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	Sector       string    `gorm:"column:sector"`
	Active       bool      `gorm:"column:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Asset schema mirrors the assets Postgres adapter.
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

// Sector registry schema mirrors the assets Postgres adapter.
type sectorRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Active      bool      `gorm:"column:active;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (sectorRecord) TableName() string { return "sectors" }

// Maintenance request schema mirrors the maintenance Postgres adapter.
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

// Preventive schedule schema mirrors the maintenance Postgres adapter.
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

// Needle change schema mirrors the inventory Postgres adapter.
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

// Notification schema mirrors the notifications Postgres adapter.
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
