package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/ledger"
)

// AccountCategoryModel is the persistence model for AccountCategory
type AccountCategoryModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	CategoryType string `gorm:"type:varchar(20);not null;index"`
	Description  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AccountCategoryModel) TableName() string {
	return "account_categories"
}

// ToDomain converts the persistence model to a domain AccountCategory
func (m *AccountCategoryModel) ToDomain() *ledger.AccountCategory {
	return &ledger.AccountCategory{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		CategoryType: ledger.CategoryType(m.CategoryType),
		Description:  m.Description,
	}
}

// AccountCategoryModelFromDomain creates a persistence model from a domain AccountCategory
func AccountCategoryModelFromDomain(c *ledger.AccountCategory) *AccountCategoryModel {
	m := &AccountCategoryModel{
		Name:         c.Name,
		CategoryType: c.CategoryType.String(),
		Description:  c.Description,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// AccountModel is the persistence model for Account
type AccountModel struct {
	BaseModel
	Code         string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(100);not null"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryType string    `gorm:"type:varchar(20);not null;index"`
	Description  string    `gorm:"type:text"`
	IsActive     bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity:   m.BaseModel.ToDomain(),
		Code:         m.Code,
		Name:         m.Name,
		CategoryID:   m.CategoryID,
		CategoryType: ledger.CategoryType(m.CategoryType),
		Description:  m.Description,
		IsActive:     m.IsActive,
	}
}

// AccountModelFromDomain creates a persistence model from a domain Account
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{
		Code:         a.Code,
		Name:         a.Name,
		CategoryID:   a.CategoryID,
		CategoryType: a.CategoryType.String(),
		Description:  a.Description,
		IsActive:     a.IsActive,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// TransactionModel is the persistence model for the Transaction aggregate
type TransactionModel struct {
	AggregateModel
	Date        time.Time           `gorm:"not null;index"`
	Description string              `gorm:"type:varchar(255);not null"`
	Reference   string              `gorm:"type:varchar(100);index"`
	Entries     []JournalEntryModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	tx := &ledger.Transaction{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Date:              m.Date,
		Description:       m.Description,
		Reference:         m.Reference,
	}
	tx.Entries = make([]ledger.JournalEntry, len(m.Entries))
	for i, e := range m.Entries {
		tx.Entries[i] = e.ToDomain()
	}
	return tx
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction
func TransactionModelFromDomain(tx *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{
		Date:        tx.Date,
		Description: tx.Description,
		Reference:   tx.Reference,
	}
	m.FromDomainAggregateRoot(tx.BaseAggregateRoot)
	m.Entries = make([]JournalEntryModel, len(tx.Entries))
	for i, e := range tx.Entries {
		m.Entries[i] = JournalEntryModelFromDomain(e)
	}
	return m
}

// JournalEntryModel is the persistence model for JournalEntry
type JournalEntryModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Debit         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Credit        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Memo          string          `gorm:"type:varchar(255)"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry
func (m *JournalEntryModel) ToDomain() ledger.JournalEntry {
	return ledger.JournalEntry{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Memo:          m.Memo,
	}
}

// JournalEntryModelFromDomain creates a persistence model from a domain JournalEntry
func JournalEntryModelFromDomain(e ledger.JournalEntry) JournalEntryModel {
	return JournalEntryModel{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		AccountID:     e.AccountID,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Memo:          e.Memo,
	}
}
