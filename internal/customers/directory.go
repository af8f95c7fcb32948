// Package customers is the customer directory: registration, credential
// checks, loyalty points and profile updates.
package customers

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mgvega/tienda-backend/internal/apperr"
	"github.com/mgvega/tienda-backend/models"
)

type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// normalizeEmail: addresses are matched case-insensitively, so they are
// stored lower-cased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns ErrCustomerNotFound when the address is unknown,
// distinct from storage errors.
func (d *Directory) FindByEmail(email string) (*models.Customer, error) {
	var c models.Customer
	err := d.db.Where("email = ?", normalizeEmail(email)).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	return &c, nil
}

func (d *Directory) FindByID(id uint) (*models.Customer, error) {
	var c models.Customer
	if err := d.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer %d: %w", id, err)
	}
	return &c, nil
}

// Register creates a customer with a hashed credential and zero points.
func (d *Directory) Register(name, surnames, email, password string) (*models.Customer, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(surnames) == "" {
		return nil, apperr.Validation("faltan nombre o apellidos")
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperr.Validation("faltan campos")
	}
	email = normalizeEmail(email)

	if _, err := d.FindByEmail(email); err == nil {
		return nil, apperr.ErrConflict
	} else if !errors.Is(err, apperr.ErrCustomerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	c := models.Customer{
		Name:         name,
		Surnames:     surnames,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := d.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &c, nil
}

// Create registers a contact without credentials (the storefront's plain
// customer-creation path; such customers cannot log in until they register).
func (d *Directory) Create(name, surnames, email string) (*models.Customer, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(surnames) == "" || strings.TrimSpace(email) == "" {
		return nil, apperr.Validation("faltan campos obligatorios")
	}
	email = normalizeEmail(email)
	if _, err := d.FindByEmail(email); err == nil {
		return nil, apperr.ErrConflict
	} else if !errors.Is(err, apperr.ErrCustomerNotFound) {
		return nil, err
	}
	c := models.Customer{Name: name, Surnames: surnames, Email: email}
	if err := d.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &c, nil
}

// Authenticate returns the public profile on success; the hash never leaves
// this package.
func (d *Directory) Authenticate(email, password string) (*models.Customer, error) {
	c, err := d.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredential
	}
	c.PasswordHash = ""
	return c, nil
}

// CreditPoints adds amount to the stored balance atomically.
func (d *Directory) CreditPoints(customerID uint, amount int) error {
	return CreditPointsIn(d.db, customerID, amount)
}

// CreditPointsIn runs the credit against db, which may be a transaction. A
// single additive UPDATE keeps concurrent credits for the same customer from
// losing each other.
func CreditPointsIn(db *gorm.DB, customerID uint, amount int) error {
	if amount < 0 {
		return apperr.Validation("los puntos no pueden ser negativos")
	}
	res := db.Model(&models.Customer{}).
		Where("id = ?", customerID).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("credit points to customer %d: %w", customerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrCustomerNotFound
	}
	return nil
}

// NormalizePhone strips common separators and validates the rest: digits
// only, at least 7 of them.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-', '(', ')':
			return -1
		}
		return r
	}, phone)
	if len(cleaned) < 7 {
		return "", apperr.Validation("el teléfono debe tener al menos 7 dígitos")
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", apperr.Validation("el teléfono solo puede contener dígitos")
		}
	}
	return cleaned, nil
}

func (d *Directory) UpdatePhone(email, phone string) (*models.Customer, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	c, err := d.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := d.db.Model(c).UpdateColumn("phone", normalized).Error; err != nil {
		return nil, fmt.Errorf("update phone of customer %d: %w", c.ID, err)
	}
	c.Phone = normalized
	return c, nil
}
