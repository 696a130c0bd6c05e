package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// HouseModel is the persistence model for House
type HouseModel struct {
	AggregateModel
	HouseName   string `gorm:"type:varchar(100);not null"`
	HouseNumber string `gorm:"type:varchar(50);not null;index"`
	Ward        string `gorm:"type:varchar(50);index"`
	Address     string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (HouseModel) TableName() string {
	return "houses"
}

// ToDomain converts the persistence model to a domain House
func (m *HouseModel) ToDomain() *membership.House {
	return &membership.House{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		HouseName:         m.HouseName,
		HouseNumber:       m.HouseNumber,
		Ward:              m.Ward,
		Address:           m.Address,
		IsActive:          m.IsActive,
	}
}

// HouseModelFromDomain creates a persistence model from a domain House
func HouseModelFromDomain(h *membership.House) *HouseModel {
	m := &HouseModel{
		HouseName:   h.HouseName,
		HouseNumber: h.HouseNumber,
		Ward:        h.Ward,
		Address:     h.Address,
		IsActive:    h.IsActive,
	}
	m.FromDomainAggregateRoot(h.BaseAggregateRoot)
	return m
}

// MemberModel is the persistence model for Member
type MemberModel struct {
	AggregateModel
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100)"`
	HouseID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Phone     string    `gorm:"type:varchar(30)"`
	Email     string    `gorm:"type:varchar(255)"`
	IsActive  bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts the persistence model to a domain Member
func (m *MemberModel) ToDomain() *membership.Member {
	return &membership.Member{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		HouseID:           m.HouseID,
		Phone:             m.Phone,
		Email:             m.Email,
		IsActive:          m.IsActive,
	}
}

// MemberModelFromDomain creates a persistence model from a domain Member
func MemberModelFromDomain(mem *membership.Member) *MemberModel {
	m := &MemberModel{
		FirstName: mem.FirstName,
		LastName:  mem.LastName,
		HouseID:   mem.HouseID,
		Phone:     mem.Phone,
		Email:     mem.Email,
		IsActive:  mem.IsActive,
	}
	m.FromDomainAggregateRoot(mem.BaseAggregateRoot)
	return m
}

// MembershipDuesModel is the persistence model for MembershipDues.
// The composite unique index enforces one dues row per house and period.
type MembershipDuesModel struct {
	AggregateModel
	HouseID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_dues_house_period,priority:1"`
	Year      int             `gorm:"not null;uniqueIndex:idx_dues_house_period,priority:2;index:idx_dues_period"`
	Month     int             `gorm:"not null;uniqueIndex:idx_dues_house_period,priority:3;index:idx_dues_period"`
	AmountDue decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DueDate   time.Time       `gorm:"not null;index"`
	IsPaid    bool            `gorm:"not null;default:false;index"`
	PaidAt    *time.Time
}

// TableName returns the table name for GORM
func (MembershipDuesModel) TableName() string {
	return "membership_dues"
}

// ToDomain converts the persistence model to a domain MembershipDues
func (m *MembershipDuesModel) ToDomain() *membership.MembershipDues {
	return &membership.MembershipDues{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		HouseID:           m.HouseID,
		Year:              m.Year,
		Month:             m.Month,
		AmountDue:         valueobject.NewMoneyINR(m.AmountDue),
		DueDate:           m.DueDate,
		IsPaid:            m.IsPaid,
		PaidAt:            m.PaidAt,
	}
}

// MembershipDuesModelFromDomain creates a persistence model from a domain MembershipDues
func MembershipDuesModelFromDomain(d *membership.MembershipDues) *MembershipDuesModel {
	m := &MembershipDuesModel{
		HouseID:   d.HouseID,
		Year:      d.Year,
		Month:     d.Month,
		AmountDue: d.AmountDue.Amount(),
		DueDate:   d.DueDate,
		IsPaid:    d.IsPaid,
		PaidAt:    d.PaidAt,
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	return m
}

// MemberPaymentModel is the persistence model for MemberPayment
type MemberPaymentModel struct {
	AggregateModel
	HouseID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string                 `gorm:"type:varchar(20);not null"`
	PaymentDate   time.Time              `gorm:"not null;index"`
	ReceiptNumber string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Notes         string                 `gorm:"type:text"`
	CoveredDues   []PaymentDuesLinkModel `gorm:"foreignKey:PaymentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MemberPaymentModel) TableName() string {
	return "member_payments"
}

// ToDomain converts the persistence model to a domain MemberPayment
func (m *MemberPaymentModel) ToDomain() *membership.MemberPayment {
	p := &membership.MemberPayment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		HouseID:           m.HouseID,
		Amount:            valueobject.NewMoneyINR(m.Amount),
		PaymentMethod:     membership.PaymentMethod(m.PaymentMethod),
		PaymentDate:       m.PaymentDate,
		ReceiptNumber:     m.ReceiptNumber,
		Notes:             m.Notes,
	}
	p.CoveredDuesIDs = make([]uuid.UUID, len(m.CoveredDues))
	for i, link := range m.CoveredDues {
		p.CoveredDuesIDs[i] = link.DuesID
	}
	return p
}

// MemberPaymentModelFromDomain creates a persistence model from a domain MemberPayment
func MemberPaymentModelFromDomain(p *membership.MemberPayment) *MemberPaymentModel {
	m := &MemberPaymentModel{
		HouseID:       p.HouseID,
		Amount:        p.Amount.Amount(),
		PaymentMethod: p.PaymentMethod.String(),
		PaymentDate:   p.PaymentDate,
		ReceiptNumber: p.ReceiptNumber,
		Notes:         p.Notes,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.CoveredDues = make([]PaymentDuesLinkModel, len(p.CoveredDuesIDs))
	for i, duesID := range p.CoveredDuesIDs {
		m.CoveredDues[i] = PaymentDuesLinkModel{
			ID:        uuid.New(),
			PaymentID: p.ID,
			DuesID:    duesID,
		}
	}
	return m
}

// PaymentDuesLinkModel joins a member payment to the dues it covered
type PaymentDuesLinkModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index"`
	DuesID    uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (PaymentDuesLinkModel) TableName() string {
	return "member_payment_dues"
}
