package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/finance"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// DonationCategoryModel is the persistence model for DonationCategory
type DonationCategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DonationCategoryModel) TableName() string {
	return "donation_categories"
}

// ToDomain converts the persistence model to a domain DonationCategory
func (m *DonationCategoryModel) ToDomain() *finance.DonationCategory {
	return &finance.DonationCategory{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// DonationCategoryModelFromDomain creates a persistence model from a domain DonationCategory
func DonationCategoryModelFromDomain(c *finance.DonationCategory) *DonationCategoryModel {
	m := &DonationCategoryModel{Name: c.Name, Description: c.Description}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ExpenseCategoryModel is the persistence model for ExpenseCategory
type ExpenseCategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain ExpenseCategory
func (m *ExpenseCategoryModel) ToDomain() *finance.ExpenseCategory {
	return &finance.ExpenseCategory{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// ExpenseCategoryModelFromDomain creates a persistence model from a domain ExpenseCategory
func ExpenseCategoryModelFromDomain(c *finance.ExpenseCategory) *ExpenseCategoryModel {
	m := &ExpenseCategoryModel{Name: c.Name, Description: c.Description}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// DonationModel is the persistence model for Donation
type DonationModel struct {
	AggregateModel
	MemberID      *uuid.UUID      `gorm:"type:uuid;index"`
	DonorName     string          `gorm:"type:varchar(200)"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DonationType  string          `gorm:"type:varchar(20);not null"`
	Date          time.Time       `gorm:"not null;index"`
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DonationModel) TableName() string {
	return "donations"
}

// ToDomain converts the persistence model to a domain Donation
func (m *DonationModel) ToDomain() *finance.Donation {
	return &finance.Donation{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MemberID:          m.MemberID,
		DonorName:         m.DonorName,
		CategoryID:        m.CategoryID,
		Amount:            valueobject.NewMoneyINR(m.Amount),
		DonationType:      finance.DonationType(m.DonationType),
		Date:              m.Date,
		ReceiptNumber:     m.ReceiptNumber,
		Notes:             m.Notes,
	}
}

// DonationModelFromDomain creates a persistence model from a domain Donation
func DonationModelFromDomain(d *finance.Donation) *DonationModel {
	m := &DonationModel{
		MemberID:      d.MemberID,
		DonorName:     d.DonorName,
		CategoryID:    d.CategoryID,
		Amount:        d.Amount.Amount(),
		DonationType:  d.DonationType.String(),
		Date:          d.Date,
		ReceiptNumber: d.ReceiptNumber,
		Notes:         d.Notes,
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	return m
}

// ExpenseModel is the persistence model for Expense
type ExpenseModel struct {
	AggregateModel
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Description   string          `gorm:"type:varchar(255);not null"`
	ApprovedBy    string          `gorm:"type:varchar(100)"`
	Vendor        string          `gorm:"type:varchar(200)"`
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CategoryID:        m.CategoryID,
		Amount:            valueobject.NewMoneyINR(m.Amount),
		Date:              m.Date,
		Description:       m.Description,
		ApprovedBy:        m.ApprovedBy,
		Vendor:            m.Vendor,
		ReceiptNumber:     m.ReceiptNumber,
	}
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		CategoryID:    e.CategoryID,
		Amount:        e.Amount.Amount(),
		Date:          e.Date,
		Description:   e.Description,
		ApprovedBy:    e.ApprovedBy,
		Vendor:        e.Vendor,
		ReceiptNumber: e.ReceiptNumber,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
