package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// customerRecord maps the customer aggregate to a relational table.
type customerRecord struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey;column:id"`
	Name        string             `gorm:"column:name;index"`
	Phone       string             `gorm:"column:phone;type:varchar(32);uniqueIndex"`
	Email       string             `gorm:"column:email"`
	Address     string             `gorm:"column:address"`
	Notes       string             `gorm:"column:notes"`
	Preferences []preferenceRecord `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"column:created_at"`
	UpdatedAt   time.Time          `gorm:"column:updated_at"`
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

// Create inserts a new customer, rejecting duplicate canonical phones.
func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	record := toRecord(customer)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicatePhone
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// Update saves the customer's own fields. Preferences are managed separately.
func (r *Repository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	record := toRecord(customer)
	result := r.db.WithContext(ctx).Model(&customerRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":       record.Name,
			"phone":      record.Phone,
			"email":      record.Email,
			"address":    record.Address,
			"notes":      record.Notes,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicatePhone
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a customer with its preferences.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var record customerRecord
	if err := r.db.WithContext(ctx).Preload("Preferences").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByPhone fetches a customer by canonical phone.
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	var record customerRecord
	if err := r.db.WithContext(ctx).Preload("Preferences").First(&record, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns a filtered page of customers plus the total match count.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&customerRecord{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []customerRecord
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Preload("Preferences").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	customers := make([]*domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, total, nil
}

// Delete removes a customer unless orders still reference it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Table("orders").Where("customer_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ports.ErrReferencedByOrders
		}
		if err := tx.Delete(&preferenceRecord{}, "customer_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&customerRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

// AddPreference inserts a preference entry; (customer, kind, value) is unique.
func (r *Repository) AddPreference(ctx context.Context, pref *domain.Preference) (*domain.Preference, error) {
	record := preferenceRecord{
		ID:         pref.ID,
		CustomerID: pref.CustomerID,
		Kind:       string(pref.Kind),
		Value:      pref.Value,
		Notes:      pref.Notes,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicatePreference
		}
		return nil, err
	}
	saved := record.toDomain()
	return &saved, nil
}

// RemovePreference deletes a preference entry belonging to the customer.
func (r *Repository) RemovePreference(ctx context.Context, customerID, prefID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&preferenceRecord{}, "id = ? AND customer_id = ?", prefID, customerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrPreferenceNotFound
	}
	return nil
}

func toRecord(customer *domain.Customer) customerRecord {
	return customerRecord{
		ID:      customer.ID,
		Name:    customer.Name,
		Phone:   customer.Phone,
		Email:   customer.Email,
		Address: customer.Address,
		Notes:   customer.Notes,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	prefs := make([]domain.Preference, 0, len(r.Preferences))
	for _, p := range r.Preferences {
		prefs = append(prefs, p.toDomain())
	}
	return &domain.Customer{
		ID:          r.ID,
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email,
		Address:     r.Address,
		Notes:       r.Notes,
		Preferences: prefs,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r preferenceRecord) toDomain() domain.Preference {
	return domain.Preference{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Kind:       domain.PreferenceKind(r.Kind),
		Value:      r.Value,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}
}
