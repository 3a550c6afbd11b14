package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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
	Items           []itemRecord    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History         []historyRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
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

// Create allocates the next yearly sequence value and inserts the order, its
// items, and the initial history entry in one transaction. The counter
// increment is a single atomic upsert, so concurrent creations never share a
// number.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	record := toOrderRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := order.OrderDate.Year()
		if order.OrderDate.IsZero() {
			year = time.Now().Year()
		}
		var seq int
		if err := tx.Raw(
			`INSERT INTO order_counters (year, seq) VALUES (?, 1)
			 ON CONFLICT (year) DO UPDATE SET seq = order_counters.seq + 1
			 RETURNING seq`, year,
		).Scan(&seq).Error; err != nil {
			return err
		}
		record.Number = domain.FormatNumber(year, seq)

		created := domain.CreatedEntry(order)
		created.Details["number"] = record.Number
		record.History = []historyRecord{toHistoryRecord(created)}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with items and the newest history entries.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var record orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(ports.HistoryLimit)
		}).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns a filtered page of orders (with items, without history) plus
// the total match count, newest created first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.DeliveryFrom != nil {
		query = query.Where("delivery_date >= ?", *filter.DeliveryFrom)
	}
	if filter.DeliveryTo != nil {
		query = query.Where("delivery_date < ?", *filter.DeliveryTo)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(number) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_phone LIKE ?",
			pattern, pattern, pattern,
		)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []orderRecord
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, total, nil
}

// ListByDeliveryRange returns all orders with items delivered in [from, to).
func (r *Repository) ListByDeliveryRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("delivery_date >= ? AND delivery_date < ?", from, to).
		Order("delivery_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// ListByOrderDateRange returns all orders with items placed in [from, to).
func (r *Repository) ListByOrderDateRange(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_date >= ? AND order_date < ?", from, to).
		Order("order_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// ApplyUpdate replaces the order row, its full item set, and appends history
// entries as one transaction. Any failure rolls back every step.
func (r *Repository) ApplyUpdate(ctx context.Context, order *domain.Order, entries []domain.HistoryEntry) (*domain.Order, error) {
	record := toOrderRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orderRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
			"delivery_date":    record.DeliveryDate,
			"delivery_address": record.DeliveryAddress,
			"notes":            record.Notes,
			"total_amount":     record.TotalAmount,
			"status":           record.Status,
			"updated_at":       time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		if err := tx.Delete(&itemRecord{}, "order_id = ?", record.ID).Error; err != nil {
			return err
		}
		if len(record.Items) > 0 {
			if err := tx.Create(&record.Items).Error; err != nil {
				return err
			}
		}
		for _, entry := range entries {
			historyRow := toHistoryRecord(entry)
			if err := tx.Create(&historyRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// Delete removes an order; items and history cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&historyRecord{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&itemRecord{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&orderRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

func toOrderRecord(order *domain.Order) orderRecord {
	items := make([]itemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, itemRecord{
			ID:       item.ID,
			OrderID:  order.ID,
			DishID:   item.DishID,
			DishName: item.DishName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Notes:    item.Notes,
		})
	}
	return orderRecord{
		ID:              order.ID,
		Number:          order.Number,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerEmail:   order.CustomerEmail,
		OrderDate:       order.OrderDate,
		DeliveryDate:    order.DeliveryDate,
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		Items:           items,
	}
}

func toHistoryRecord(entry domain.HistoryEntry) historyRecord {
	return historyRecord{
		ID:      entry.ID,
		OrderID: entry.OrderID,
		Action:  string(entry.Action),
		Details: entry.Details,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.Item{
			ID:       item.ID,
			OrderID:  item.OrderID,
			DishID:   item.DishID,
			DishName: item.DishName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Notes:    item.Notes,
		})
	}
	history := make([]domain.HistoryEntry, 0, len(r.History))
	for _, entry := range r.History {
		history = append(history, domain.HistoryEntry{
			ID:        entry.ID,
			OrderID:   entry.OrderID,
			Action:    domain.HistoryAction(entry.Action),
			Details:   entry.Details,
			CreatedAt: entry.CreatedAt,
		})
	}
	return &domain.Order{
		ID:              r.ID,
		Number:          r.Number,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		OrderDate:       r.OrderDate,
		DeliveryDate:    r.DeliveryDate,
		DeliveryAddress: r.DeliveryAddress,
		Notes:           r.Notes,
		TotalAmount:     r.TotalAmount,
		Status:          domain.Status(r.Status),
		Items:           items,
		History:         history,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
