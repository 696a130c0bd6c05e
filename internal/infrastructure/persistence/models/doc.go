// Package models contains the GORM persistence models. They are kept
// separate from the domain entities; each model knows how to convert
// to and from its domain counterpart.
package models

// All returns every persistence model for schema migration
func All() []any {
	return []any{
		&AccountCategoryModel{},
		&AccountModel{},
		&TransactionModel{},
		&JournalEntryModel{},
		&HouseModel{},
		&MemberModel{},
		&MembershipDuesModel{},
		&MemberPaymentModel{},
		&PaymentDuesLinkModel{},
		&InvoiceModel{},
		&InvoiceLineItemModel{},
		&BillingPaymentModel{},
		&ShopModel{},
		&DonationCategoryModel{},
		&ExpenseCategoryModel{},
		&DonationModel{},
		&ExpenseModel{},
		&StudentModel{},
		&ClassModel{},
		&StudentEnrollmentModel{},
		&StudentFeePaymentModel{},
	}
}
