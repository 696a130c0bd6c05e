package education

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/education"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/persistence"
	"github.com/mms/backend/tests/testutil"
)

type educationFixture struct {
	db       *gorm.DB
	service  *EnrollmentService
	posting  *appledger.PostingService
	txRepo   *persistence.GormTransactionRepository
	accounts config.AccountsConfig
}

func setupEducation(t *testing.T) *educationFixture {
	db := testutil.SetupTestDB(t)
	accountRepo := persistence.NewGormAccountRepository(db)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	posting := appledger.NewPostingService(accountRepo, categoryRepo, txRepo)
	accounts := config.AccountsConfig{
		Cash:             config.AccountEntry{Code: "1001", Name: "Main Cash"},
		EducationRevenue: config.AccountEntry{Code: "4004", Name: "Education Fees Revenue"},
	}

	return &educationFixture{
		db: db,
		service: NewEnrollmentService(
			persistence.NewGormStudentRepository(db),
			persistence.NewGormClassRepository(db),
			persistence.NewGormEnrollmentRepository(db),
			persistence.NewGormFeePaymentRepository(db),
			posting,
			persistence.NewTxManager(db),
			accounts,
		),
		posting:  posting,
		txRepo:   txRepo,
		accounts: accounts,
	}
}

func (f *educationFixture) createStudent(t *testing.T, name string) *education.Student {
	t.Helper()
	student, err := f.service.CreateStudent(context.Background(), name, "", "Guardian", "")
	require.NoError(t, err)
	return student
}

func (f *educationFixture) createClass(t *testing.T, name string, fee int64, maxStudents int) *education.Class {
	t.Helper()
	class, err := f.service.CreateClass(context.Background(), name, "Grade 5", "Quran", decimal.NewFromInt(fee), maxStudents)
	require.NoError(t, err)
	return class
}

func TestEnrollmentService_Enroll(t *testing.T) {
	f := setupEducation(t)
	ctx := context.Background()

	t.Run("paid class starts pending", func(t *testing.T) {
		student := f.createStudent(t, "Ayesha")
		class := f.createClass(t, "Hifz A", 100, 0)

		enrollment, err := f.service.Enroll(ctx, EnrollRequest{StudentID: student.GetID(), ClassID: class.GetID()})
		require.NoError(t, err)
		assert.Equal(t, string(education.PaymentStatusPending), enrollment.PaymentStatus)
		assert.Equal(t, string(education.EnrollmentStatusActive), enrollment.Status)
	})

	t.Run("free class is exempt", func(t *testing.T) {
		student := f.createStudent(t, "Bilal")
		class := f.createClass(t, "Weekend Class", 0, 0)

		enrollment, err := f.service.Enroll(ctx, EnrollRequest{StudentID: student.GetID(), ClassID: class.GetID()})
		require.NoError(t, err)
		assert.Equal(t, string(education.PaymentStatusExempt), enrollment.PaymentStatus)
	})

	t.Run("duplicate enrollment is rejected", func(t *testing.T) {
		student := f.createStudent(t, "Zainab")
		class := f.createClass(t, "Hifz B", 100, 0)

		_, err := f.service.Enroll(ctx, EnrollRequest{StudentID: student.GetID(), ClassID: class.GetID()})
		require.NoError(t, err)
		_, err = f.service.Enroll(ctx, EnrollRequest{StudentID: student.GetID(), ClassID: class.GetID()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already enrolled")
	})

	t.Run("capacity is enforced", func(t *testing.T) {
		class := f.createClass(t, "Small Class", 50, 1)
		first := f.createStudent(t, "First")
		second := f.createStudent(t, "Second")

		_, err := f.service.Enroll(ctx, EnrollRequest{StudentID: first.GetID(), ClassID: class.GetID()})
		require.NoError(t, err)
		_, err = f.service.Enroll(ctx, EnrollRequest{StudentID: second.GetID(), ClassID: class.GetID()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum enrollment")
	})

	t.Run("closed class rejects enrollment", func(t *testing.T) {
		class := f.createClass(t, "Closed Class", 50, 0)
		class.Deactivate()
		require.NoError(t, persistence.NewGormClassRepository(f.db).Save(ctx, class))

		student := f.createStudent(t, "Latecomer")
		_, err := f.service.Enroll(ctx, EnrollRequest{StudentID: student.GetID(), ClassID: class.GetID()})
		assert.Error(t, err)
	})
}

func TestEnrollmentService_RecordFeePayment(t *testing.T) {
	f := setupEducation(t)
	ctx := context.Background()

	student := f.createStudent(t, "Ayesha")
	class := f.createClass(t, "Hifz A", 100, 0)
	enrollment, err := f.service.Enroll(ctx, EnrollRequest{StudentID: student.GetID(), ClassID: class.GetID()})
	require.NoError(t, err)

	t.Run("partial payment", func(t *testing.T) {
		updated, err := f.service.RecordFeePayment(ctx, enrollment.ID, RecordFeePaymentRequest{
			Amount: decimal.NewFromInt(40),
		})
		require.NoError(t, err)
		assert.Equal(t, string(education.PaymentStatusPartial), updated.PaymentStatus)
		assert.True(t, updated.TotalPaid.Equal(decimal.NewFromInt(40)))
	})

	t.Run("completing payment marks paid", func(t *testing.T) {
		updated, err := f.service.RecordFeePayment(ctx, enrollment.ID, RecordFeePaymentRequest{
			Amount: decimal.NewFromInt(60),
		})
		require.NoError(t, err)
		assert.Equal(t, string(education.PaymentStatusPaid), updated.PaymentStatus)
	})

	t.Run("payments are posted to education revenue", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.EducationRevenue.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(100)))
	})
}

func TestEnrollmentService_DeleteFeePayment(t *testing.T) {
	f := setupEducation(t)
	ctx := context.Background()

	student := f.createStudent(t, "Bilal")
	class := f.createClass(t, "Hifz B", 100, 0)
	enrollment, err := f.service.Enroll(ctx, EnrollRequest{StudentID: student.GetID(), ClassID: class.GetID()})
	require.NoError(t, err)

	_, err = f.service.RecordFeePayment(ctx, enrollment.ID, RecordFeePaymentRequest{
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	payments, err := f.service.ListFeePayments(ctx, enrollment.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	updated, err := f.service.DeleteFeePayment(ctx, payments[0].GetID())
	require.NoError(t, err)

	t.Run("payment status is recomputed", func(t *testing.T) {
		assert.Equal(t, string(education.PaymentStatusPending), updated.PaymentStatus)
		assert.True(t, updated.TotalPaid.IsZero())
	})

	t.Run("the ledger posting stays in place", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.EducationRevenue.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(100)))
	})
}
