// Package catalog is the product store: filtered listing, CRUD and the
// stock-adjustment primitive the checkout flow relies on.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mgvega/tienda-backend/internal/apperr"
	"github.com/mgvega/tienda-backend/models"
)

// DefaultLimit is the page size when the caller does not ask for one.
const DefaultLimit = 12

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Filter is a conjunction of optional predicates; zero values mean
// "no restriction".
type Filter struct {
	CategoryID uint
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Brand      string
	MinStock   *int
}

type Page struct {
	Limit  int
	Offset int
}

type ListResult struct {
	Products []models.Product
	// Total counts every matching row, independent of the page.
	Total int64
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.Brand != "" {
		q = q.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(f.Brand)+"%")
	}
	if f.MinStock != nil {
		q = q.Where("stock >= ?", *f.MinStock)
	}
	return q
}

func (s *Store) List(f Filter, p Page) (ListResult, error) {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	var res ListResult
	if err := f.apply(s.db.Model(&models.Product{})).Count(&res.Total).Error; err != nil {
		return ListResult{}, fmt.Errorf("count products: %w", err)
	}
	err := f.apply(s.db.Model(&models.Product{})).
		Order("id").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&res.Products).Error
	if err != nil {
		return ListResult{}, fmt.Errorf("list products: %w", err)
	}
	return res, nil
}

func (s *Store) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// CreateSpec carries the fields of a product-creation request. Stock is a
// pointer so a missing value can be told apart from an explicit zero.
type CreateSpec struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       *int
	CategoryID  uint
	Brand       string
	Image       string
}

func (s *Store) Create(spec CreateSpec) (*models.Product, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, apperr.Validation("el nombre es obligatorio")
	}
	if !spec.Price.IsPositive() {
		return nil, apperr.Validation("el precio debe ser positivo")
	}
	if spec.Stock == nil || *spec.Stock < 0 {
		return nil, apperr.Validation("el stock es obligatorio y no puede ser negativo")
	}
	p := models.Product{
		Name:        spec.Name,
		Description: spec.Description,
		Price:       spec.Price,
		Stock:       *spec.Stock,
		CategoryID:  spec.CategoryID,
		Brand:       spec.Brand,
		Image:       spec.Image,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// Update changes a product's name and price. It reports changed=false (not an
// error) when the stored values already match.
func (s *Store) Update(id uint, name string, price decimal.Decimal) (changed bool, err error) {
	p, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if p.Name == name && p.Price.Equal(price) {
		return false, nil
	}
	err = s.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "price": price}).Error
	if err != nil {
		return false, fmt.Errorf("update product %d: %w", id, err)
	}
	return true, nil
}

func (s *Store) Delete(id uint) error {
	if err := s.db.Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (s *Store) GetStock(id uint) (int, error) {
	p, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

// AdjustStock adds delta (may be negative) to a product's stock and returns
// the refreshed product. Fails with ErrInsufficientStock when the result
// would be negative, leaving the row untouched.
func (s *Store) AdjustStock(id uint, delta int) (*models.Product, error) {
	if err := AdjustStockIn(s.db, id, delta); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// AdjustStockIn runs the stock adjustment against db, which may be a
// transaction. The update is a single conditional statement so concurrent
// adjustments on the same product can never lose an update or drive stock
// below zero.
func AdjustStockIn(db *gorm.DB, id uint, delta int) error {
	res := db.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("adjust stock of product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.Model(&models.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("adjust stock of product %d: %w", id, err)
		}
		if n == 0 {
			return apperr.ErrNotFound
		}
		return apperr.ErrInsufficientStock
	}
	return nil
}
