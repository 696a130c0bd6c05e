package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/billing"
	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice aggregate
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber  string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	HouseID        *uuid.UUID             `gorm:"type:uuid;index"`
	ShopID         *uuid.UUID             `gorm:"type:uuid;index"`
	PropertyUnitID *uuid.UUID             `gorm:"type:uuid;index"`
	DateIssued     time.Time              `gorm:"not null;index"`
	DueDate        time.Time              `gorm:"not null;index"`
	Status         string                 `gorm:"type:varchar(20);not null;index"`
	TotalAmount    decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	AmountPaid     decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Notes          string                 `gorm:"type:text"`
	LineItems      []InvoiceLineItemModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		HouseID:           m.HouseID,
		ShopID:            m.ShopID,
		PropertyUnitID:    m.PropertyUnitID,
		DateIssued:        m.DateIssued,
		DueDate:           m.DueDate,
		Status:            billing.InvoiceStatus(m.Status),
		TotalAmount:       valueobject.NewMoneyINR(m.TotalAmount),
		AmountPaid:        valueobject.NewMoneyINR(m.AmountPaid),
		Notes:             m.Notes,
	}
	inv.LineItems = make([]billing.InvoiceLineItem, len(m.LineItems))
	for i, l := range m.LineItems {
		inv.LineItems[i] = l.ToDomain()
	}
	return inv
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		InvoiceNumber:  inv.InvoiceNumber,
		HouseID:        inv.HouseID,
		ShopID:         inv.ShopID,
		PropertyUnitID: inv.PropertyUnitID,
		DateIssued:     inv.DateIssued,
		DueDate:        inv.DueDate,
		Status:         inv.Status.String(),
		TotalAmount:    inv.TotalAmount.Amount(),
		AmountPaid:     inv.AmountPaid.Amount(),
		Notes:          inv.Notes,
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.LineItems = make([]InvoiceLineItemModel, len(inv.LineItems))
	for i, l := range inv.LineItems {
		m.LineItems[i] = InvoiceLineItemModelFromDomain(l)
	}
	return m
}

// InvoiceLineItemModel is the persistence model for InvoiceLineItem
type InvoiceLineItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description      string          `gorm:"type:varchar(255);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MembershipDuesID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineItemModel) TableName() string {
	return "invoice_line_items"
}

// ToDomain converts the persistence model to a domain InvoiceLineItem
func (m *InvoiceLineItemModel) ToDomain() billing.InvoiceLineItem {
	return billing.InvoiceLineItem{
		ID:               m.ID,
		InvoiceID:        m.InvoiceID,
		Description:      m.Description,
		Amount:           valueobject.NewMoneyINR(m.Amount),
		MembershipDuesID: m.MembershipDuesID,
	}
}

// InvoiceLineItemModelFromDomain creates a persistence model from a domain InvoiceLineItem
func InvoiceLineItemModelFromDomain(l billing.InvoiceLineItem) InvoiceLineItemModel {
	return InvoiceLineItemModel{
		ID:               l.ID,
		InvoiceID:        l.InvoiceID,
		Description:      l.Description,
		Amount:           l.Amount.Amount(),
		MembershipDuesID: l.MembershipDuesID,
	}
}

// BillingPaymentModel is the persistence model for BillingPayment
type BillingPaymentModel struct {
	AggregateModel
	InvoiceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate    time.Time       `gorm:"not null;index"`
	PaymentMethod  string          `gorm:"type:varchar(20);not null"`
	TransactionRef string          `gorm:"type:varchar(100)"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BillingPaymentModel) TableName() string {
	return "billing_payments"
}

// ToDomain converts the persistence model to a domain BillingPayment
func (m *BillingPaymentModel) ToDomain() *billing.BillingPayment {
	return &billing.BillingPayment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceID:         m.InvoiceID,
		Amount:            valueobject.NewMoneyINR(m.Amount),
		PaymentDate:       m.PaymentDate,
		PaymentMethod:     membership.PaymentMethod(m.PaymentMethod),
		TransactionRef:    m.TransactionRef,
		Notes:             m.Notes,
	}
}

// BillingPaymentModelFromDomain creates a persistence model from a domain BillingPayment
func BillingPaymentModelFromDomain(p *billing.BillingPayment) *BillingPaymentModel {
	m := &BillingPaymentModel{
		InvoiceID:      p.InvoiceID,
		Amount:         p.Amount.Amount(),
		PaymentDate:    p.PaymentDate,
		PaymentMethod:  p.PaymentMethod.String(),
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ShopModel is the persistence model for Shop
type ShopModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(100);not null"`
	TenantName  string          `gorm:"type:varchar(100)"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IsActive    bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ShopModel) TableName() string {
	return "shops"
}

// ToDomain converts the persistence model to a domain Shop
func (m *ShopModel) ToDomain() *billing.Shop {
	return &billing.Shop{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TenantName:        m.TenantName,
		MonthlyRent:       valueobject.NewMoneyINR(m.MonthlyRent),
		IsActive:          m.IsActive,
	}
}

// ShopModelFromDomain creates a persistence model from a domain Shop
func ShopModelFromDomain(s *billing.Shop) *ShopModel {
	m := &ShopModel{
		Name:        s.Name,
		TenantName:  s.TenantName,
		MonthlyRent: s.MonthlyRent.Amount(),
		IsActive:    s.IsActive,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
