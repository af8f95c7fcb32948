// Package orders implements the order placement workflow: precondition
// checks, then header, lines, loyalty points and stock reconciliation as one
// transaction. A failed checkout leaves no trace in storage.
package orders

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mgvega/tienda-backend/internal/apperr"
	"github.com/mgvega/tienda-backend/internal/catalog"
	"github.com/mgvega/tienda-backend/internal/customers"
	"github.com/mgvega/tienda-backend/models"
)

// Loyalty accrual: 10 points per full 50 spent.
const (
	pointsStep    = 50
	pointsPerStep = 10
)

type Service struct {
	db        *gorm.DB
	directory *customers.Directory
	now       func() time.Time
}

func NewService(db *gorm.DB, directory *customers.Directory) *Service {
	return &Service{db: db, directory: directory, now: time.Now}
}

// Line is one distinct product in the submitted cart. UnitPrice is the
// client-captured snapshot, deliberately not re-read from the catalog.
type Line struct {
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

type Receipt struct {
	OrderID       uint
	PointsAwarded int
}

func validPayment(method string) bool {
	switch method {
	case models.PaymentCard, models.PaymentPaypal, models.PaymentCash:
		return true
	}
	return false
}

// PointsFor computes the loyalty points an order total earns.
func PointsFor(total decimal.Decimal) int {
	steps := total.Div(decimal.NewFromInt(pointsStep)).Floor().IntPart()
	return int(steps) * pointsPerStep
}

// Place runs the checkout for the buyer identified by email. Preconditions
// are checked in order before anything touches storage; the persistence
// sequence then runs inside a single transaction, so an insufficient-stock
// failure on any line rolls back the header, every line and the points.
func (s *Service) Place(email string, lines []Line, paymentMethod string, total decimal.Decimal) (*Receipt, error) {
	buyer, err := s.directory.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperr.ErrEmptyCart
	}
	if !validPayment(paymentMethod) {
		return nil, apperr.ErrInvalidPayment
	}
	if !total.IsPositive() {
		return nil, apperr.ErrInvalidTotal
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, apperr.Validation("la cantidad debe ser al menos 1")
		}
	}

	points := PointsFor(total)
	var orderID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			CustomerID:    buyer.ID,
			PlacedAt:      s.now(),
			Status:        models.OrderStatusPending,
			Total:         total,
			PaymentMethod: paymentMethod,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for _, l := range lines {
			line := models.OrderLine{
				OrderID:   order.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("create order line: %w", err)
			}
		}
		if points > 0 {
			if err := customers.CreditPointsIn(tx, buyer.ID, points); err != nil {
				return err
			}
		}
		for _, l := range lines {
			if err := catalog.AdjustStockIn(tx, l.ProductID, -l.Quantity); err != nil {
				return err
			}
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Receipt{OrderID: orderID, PointsAwarded: points}, nil
}

// History returns the customer's orders with their lines, newest first
// (date descending, then order id descending).
func (s *Service) History(email string) ([]models.Order, error) {
	buyer, err := s.directory.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	err = s.db.Preload("Lines").
		Where("customer_id = ?", buyer.ID).
		Order("placed_at DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	return orders, nil
}

// Complete marks a pending order as completed. Only the pending → completed
// transition exists; anything else is a conflict.
func (s *Service) Complete(orderID uint) error {
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		UpdateColumn("status", models.OrderStatusCompleted)
	if res.Error != nil {
		return fmt.Errorf("complete order %d: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.db.Model(&models.Order{}).Where("id = ?", orderID).Count(&n).Error; err != nil {
			return fmt.Errorf("complete order %d: %w", orderID, err)
		}
		if n == 0 {
			return apperr.ErrNotFound
		}
		return apperr.ErrConflict
	}
	return nil
}
