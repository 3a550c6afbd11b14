package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/domain"
	"github.com/itayost/AmosKitchen-sub001/internal/domains/catalog/ports"
)

var (
	_ ports.DishRepository       = (*DishRepository)(nil)
	_ ports.IngredientRepository = (*IngredientRepository)(nil)
)

type dishRecord struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey;column:id"`
	Name        string                 `gorm:"column:name;index"`
	Description string                 `gorm:"column:description"`
	Price       decimal.Decimal        `gorm:"column:price;type:numeric(10,2)"`
	Category    string                 `gorm:"column:category;index"`
	Available   bool                   `gorm:"column:available;index"`
	Tags        pq.StringArray         `gorm:"column:tags;type:text[]"`
	Ingredients []dishIngredientRecord `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time              `gorm:"column:created_at"`
	UpdatedAt   time.Time              `gorm:"column:updated_at"`
}

func (dishRecord) TableName() string { return "dishes" }

type dishIngredientRecord struct {
	DishID       uuid.UUID       `gorm:"type:uuid;primaryKey;column:dish_id"`
	IngredientID uuid.UUID       `gorm:"type:uuid;primaryKey;column:ingredient_id"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric(10,3)"`
	Notes        string          `gorm:"column:notes"`
}

func (dishIngredientRecord) TableName() string { return "dish_ingredients" }

// Ingredient names are unique regardless of case, enforced by an expression
// index on LOWER(name) created in migrations.
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

// DishRepository persists dishes in PostgreSQL using GORM.
type DishRepository struct {
	db *gorm.DB
}

// NewDishRepository wires a PostgreSQL-backed dish repository. Caller manages
// DB lifecycle.
func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{db: db}
}

// Create inserts a dish together with its bill of materials.
func (r *DishRepository) Create(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	record := toDishRecord(dish)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// Update replaces the dish row and its bill of materials in one transaction.
func (r *DishRepository) Update(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	record := toDishRecord(dish)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&dishRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
			"name":        record.Name,
			"description": record.Description,
			"price":       record.Price,
			"category":    record.Category,
			"available":   record.Available,
			"tags":        record.Tags,
			"updated_at":  time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrDishNotFound
		}
		if err := tx.Delete(&dishIngredientRecord{}, "dish_id = ?", record.ID).Error; err != nil {
			return err
		}
		if len(record.Ingredients) > 0 {
			if err := tx.Create(&record.Ingredients).Error; err != nil {
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

// GetByID fetches a dish with its bill of materials.
func (r *DishRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dish, error) {
	var record dishRecord
	if err := r.db.WithContext(ctx).Preload("Ingredients").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrDishNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByIDs fetches several dishes keyed by id; missing ids are absent from
// the result rather than an error.
func (r *DishRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Dish, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*domain.Dish{}, nil
	}
	var records []dishRecord
	if err := r.db.WithContext(ctx).Preload("Ingredients").Find(&records, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]*domain.Dish, len(records))
	for i := range records {
		result[records[i].ID] = records[i].toDomain()
	}
	return result, nil
}

// List returns dishes matching the filter, name-ordered.
func (r *DishRepository) List(ctx context.Context, filter ports.DishFilter) ([]*domain.Dish, error) {
	query := r.db.WithContext(ctx).Model(&dishRecord{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var records []dishRecord
	if err := query.Preload("Ingredients").Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	dishes := make([]*domain.Dish, 0, len(records))
	for i := range records {
		dishes = append(dishes, records[i].toDomain())
	}
	return dishes, nil
}

// Delete removes a dish unless order items still reference it.
func (r *DishRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Table("order_items").Where("dish_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ports.ErrDishReferencedByOrders
		}
		if err := tx.Delete(&dishIngredientRecord{}, "dish_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&dishRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrDishNotFound
		}
		return nil
	})
}

// IngredientRepository persists inventory ingredients in PostgreSQL.
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository wires a PostgreSQL-backed ingredient repository.
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// Create inserts an ingredient, rejecting duplicate names.
func (r *IngredientRepository) Create(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	record := toIngredientRecord(ing)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateIngredientName
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update saves an ingredient's fields.
func (r *IngredientRepository) Update(ctx context.Context, ing *domain.Ingredient) (*domain.Ingredient, error) {
	record := toIngredientRecord(ing)
	result := r.db.WithContext(ctx).Model(&ingredientRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":          record.Name,
			"unit":          record.Unit,
			"current_stock": record.CurrentStock,
			"min_stock":     record.MinStock,
			"cost_per_unit": record.CostPerUnit,
			"supplier":      record.Supplier,
			"category":      record.Category,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateIngredientName
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrIngredientNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an ingredient by identifier.
func (r *IngredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ingredient, error) {
	var record ingredientRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrIngredientNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns ingredients matching the filter, name-ordered.
func (r *IngredientRepository) List(ctx context.Context, filter ports.IngredientFilter) ([]*domain.Ingredient, error) {
	query := r.db.WithContext(ctx).Model(&ingredientRecord{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Supplier != "" {
		query = query.Where("supplier = ?", filter.Supplier)
	}
	if filter.LowStockOnly {
		query = query.Where("current_stock < min_stock")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var records []ingredientRecord
	if err := query.Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	ingredients := make([]*domain.Ingredient, 0, len(records))
	for i := range records {
		ingredients = append(ingredients, records[i].toDomain())
	}
	return ingredients, nil
}

// Delete removes an ingredient unless a dish bill of materials uses it.
func (r *IngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&dishIngredientRecord{}).Where("ingredient_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ports.ErrIngredientInUse
		}
		result := tx.Delete(&ingredientRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrIngredientNotFound
		}
		return nil
	})
}

func toDishRecord(dish *domain.Dish) dishRecord {
	links := make([]dishIngredientRecord, 0, len(dish.Ingredients))
	for _, ing := range dish.Ingredients {
		links = append(links, dishIngredientRecord{
			DishID:       dish.ID,
			IngredientID: ing.IngredientID,
			Quantity:     ing.Quantity,
			Notes:        ing.Notes,
		})
	}
	return dishRecord{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		Price:       dish.Price,
		Category:    dish.Category,
		Available:   dish.Available,
		Tags:        pq.StringArray(dish.Tags),
		Ingredients: links,
	}
}

func (r dishRecord) toDomain() *domain.Dish {
	bom := make([]domain.DishIngredient, 0, len(r.Ingredients))
	for _, link := range r.Ingredients {
		bom = append(bom, domain.DishIngredient{
			IngredientID: link.IngredientID,
			Quantity:     link.Quantity,
			Notes:        link.Notes,
		})
	}
	return &domain.Dish{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Available:   r.Available,
		Tags:        []string(r.Tags),
		Ingredients: bom,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toIngredientRecord(ing *domain.Ingredient) ingredientRecord {
	return ingredientRecord{
		ID:           ing.ID,
		Name:         ing.Name,
		Unit:         ing.Unit,
		CurrentStock: ing.CurrentStock,
		MinStock:     ing.MinStock,
		CostPerUnit:  ing.CostPerUnit,
		Supplier:     ing.Supplier,
		Category:     ing.Category,
	}
}

func (r ingredientRecord) toDomain() *domain.Ingredient {
	return &domain.Ingredient{
		ID:           r.ID,
		Name:         r.Name,
		Unit:         r.Unit,
		CurrentStock: r.CurrentStock,
		MinStock:     r.MinStock,
		CostPerUnit:  r.CostPerUnit,
		Supplier:     r.Supplier,
		Category:     r.Category,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
