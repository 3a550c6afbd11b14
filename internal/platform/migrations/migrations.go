package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&customerRecord{},
		&preferenceRecord{},
		&ingredientRecord{},
		&dishRecord{},
		&dishIngredientRecord{},
		&orderRecord{},
		&itemRecord{},
		&historyRecord{},
		&counterRecord{},
	); err != nil {
		return err
	}
	// Ingredient names are unique regardless of case, which a plain
	// uniqueIndex tag cannot express.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ingredients_name_lower ON ingredients (LOWER(name))",
	).Error
}

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	Name      string    `gorm:"column:name;index"`
	Phone     string    `gorm:"column:phone;type:varchar(32);uniqueIndex"`
	Email     string    `gorm:"column:email"`
	Address   string    `gorm:"column:address"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

type preferenceRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	CustomerID uuid.UUID `gorm:"type:uuid;column:customer_id;uniqueIndex:idx_customer_pref,priority:1"`
	Kind       string    `gorm:"column:kind;type:varchar(32);uniqueIndex:idx_customer_pref,priority:2"`
	Value      string    `gorm:"column:value;uniqueIndex:idx_customer_pref,priority:3"`
	Notes      string    `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (preferenceRecord) TableName() string { return "customer_preferences" }

// Catalog schema mirrors the catalog Postgres adapters.
type ingredientRecord struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	Name         string          `gorm:"column:name;index"`
	Unit         string          `gorm:"column:unit;type:varchar(32)"`
	CurrentStock decimal.Decimal `gorm:"column:current_stock;type:numeric(10,3)"`
	MinStock     decimal.Decimal `gorm:"column:min_stock;type:numeric(10,3)"`
	CostPerUnit  decimal.Decimal `gorm:"column:cost_per_unit;type:numeric(10,2)"`
	Supplier     string          `gorm:"column:supplier;index"`
	Category     string          `gorm:"column:category;index"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (ingredientRecord) TableName() string { return "ingredients" }

type dishRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	Name        string          `gorm:"column:name;index"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Category    string          `gorm:"column:category;index"`
	Available   bool            `gorm:"column:available;index"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (dishRecord) TableName() string { return "dishes" }

type dishIngredientRecord struct {
	DishID       uuid.UUID       `gorm:"type:uuid;primaryKey;column:dish_id"`
	IngredientID uuid.UUID       `gorm:"type:uuid;primaryKey;column:ingredient_id"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric(10,3)"`
	Notes        string          `gorm:"column:notes"`
}

func (dishIngredientRecord) TableName() string { return "dish_ingredients" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	Number          string          `gorm:"column:number;uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;column:customer_id;index"`
	CustomerName    string          `gorm:"column:customer_name"`
	CustomerPhone   string          `gorm:"column:customer_phone"`
	CustomerEmail   string          `gorm:"column:customer_email"`
	OrderDate       time.Time       `gorm:"column:order_date;index"`
	DeliveryDate    time.Time       `gorm:"column:delivery_date;index"`
	DeliveryAddress string          `gorm:"column:delivery_address"`
	Notes           string          `gorm:"column:notes"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	Status          string          `gorm:"column:status;type:varchar(16);index"`
	CreatedAt       time.Time       `gorm:"column:created_at;index"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type itemRecord struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	OrderID  uuid.UUID       `gorm:"type:uuid;column:order_id;index"`
	DishID   uuid.UUID       `gorm:"type:uuid;column:dish_id;index"`
	DishName string          `gorm:"column:dish_name"`
	Quantity int             `gorm:"column:quantity"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Notes    string          `gorm:"column:notes"`
}

func (itemRecord) TableName() string { return "order_items" }

type historyRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;column:id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;column:order_id;index"`
	Action    string         `gorm:"column:action;type:varchar(32)"`
	Details   map[string]any `gorm:"column:details;serializer:json"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
}

func (historyRecord) TableName() string { return "order_history" }

// counterRecord backs the yearly order-number sequence.
type counterRecord struct {
	Year int `gorm:"primaryKey;column:year"`
	Seq  int `gorm:"column:seq"`
}

func (counterRecord) TableName() string { return "order_counters" }
