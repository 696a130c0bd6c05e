package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mms/backend/internal/domain/education"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/persistence/models"
)

// GormStudentRepository implements education.StudentRepository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// FindByID finds a student by its ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*education.Student, error) {
	var model models.StudentModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists students with filtering
func (r *GormStudentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]education.Student, error) {
	var studentModels []models.StudentModel
	query := session(ctx, r.db).Model(&models.StudentModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(first_name LIKE ? OR last_name LIKE ?)", pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&studentModels).Error; err != nil {
		return nil, err
	}
	students := make([]education.Student, len(studentModels))
	for i, model := range studentModels {
		students[i] = *model.ToDomain()
	}
	return students, nil
}

// Save creates or updates a student
func (r *GormStudentRepository) Save(ctx context.Context, student *education.Student) error {
	model := models.StudentModelFromDomain(student)
	return session(ctx, r.db).Save(model).Error
}

// GormClassRepository implements education.ClassRepository using GORM
type GormClassRepository struct {
	db *gorm.DB
}

// NewGormClassRepository creates a new GormClassRepository
func NewGormClassRepository(db *gorm.DB) *GormClassRepository {
	return &GormClassRepository{db: db}
}

// FindByID finds a class by its ID
func (r *GormClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*education.Class, error) {
	var model models.ClassModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists classes with filtering
func (r *GormClassRepository) FindAll(ctx context.Context, filter shared.Filter) ([]education.Class, error) {
	var classModels []models.ClassModel
	query := session(ctx, r.db).Model(&models.ClassModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name LIKE ? OR subject LIKE ?)", pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&classModels).Error; err != nil {
		return nil, err
	}
	classes := make([]education.Class, len(classModels))
	for i, model := range classModels {
		classes[i] = *model.ToDomain()
	}
	return classes, nil
}

// FindActive lists classes open for enrollment
func (r *GormClassRepository) FindActive(ctx context.Context) ([]education.Class, error) {
	var classModels []models.ClassModel
	if err := session(ctx, r.db).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&classModels).Error; err != nil {
		return nil, err
	}
	classes := make([]education.Class, len(classModels))
	for i, model := range classModels {
		classes[i] = *model.ToDomain()
	}
	return classes, nil
}

// Save creates or updates a class
func (r *GormClassRepository) Save(ctx context.Context, class *education.Class) error {
	model := models.ClassModelFromDomain(class)
	return session(ctx, r.db).Save(model).Error
}

// GormEnrollmentRepository implements education.EnrollmentRepository using GORM
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GormEnrollmentRepository
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// FindByID finds an enrollment by its ID
func (r *GormEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*education.StudentEnrollment, error) {
	var model models.StudentEnrollmentModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudentAndClass resolves the unique (student, class) pair
func (r *GormEnrollmentRepository) FindByStudentAndClass(ctx context.Context, studentID, classID uuid.UUID) (*education.StudentEnrollment, error) {
	var model models.StudentEnrollmentModel
	if err := session(ctx, r.db).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByClass lists enrollments of a class
func (r *GormEnrollmentRepository) FindByClass(ctx context.Context, classID uuid.UUID) ([]education.StudentEnrollment, error) {
	var enrollmentModels []models.StudentEnrollmentModel
	if err := session(ctx, r.db).
		Where("class_id = ?", classID).
		Order("enrollment_date ASC").
		Find(&enrollmentModels).Error; err != nil {
		return nil, err
	}
	enrollments := make([]education.StudentEnrollment, len(enrollmentModels))
	for i, model := range enrollmentModels {
		enrollments[i] = *model.ToDomain()
	}
	return enrollments, nil
}

// FindByStudent lists enrollments of a student
func (r *GormEnrollmentRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]education.StudentEnrollment, error) {
	var enrollmentModels []models.StudentEnrollmentModel
	if err := session(ctx, r.db).
		Where("student_id = ?", studentID).
		Order("enrollment_date ASC").
		Find(&enrollmentModels).Error; err != nil {
		return nil, err
	}
	enrollments := make([]education.StudentEnrollment, len(enrollmentModels))
	for i, model := range enrollmentModels {
		enrollments[i] = *model.ToDomain()
	}
	return enrollments, nil
}

// CountActiveByClass counts active enrollments for the capacity check
func (r *GormEnrollmentRepository) CountActiveByClass(ctx context.Context, classID uuid.UUID) (int64, error) {
	var count int64
	if err := session(ctx, r.db).Model(&models.StudentEnrollmentModel{}).
		Where("class_id = ? AND status = ?", classID, string(education.EnrollmentStatusActive)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an enrollment
func (r *GormEnrollmentRepository) Save(ctx context.Context, enrollment *education.StudentEnrollment) error {
	model := models.StudentEnrollmentModelFromDomain(enrollment)
	return session(ctx, r.db).Save(model).Error
}

// GormFeePaymentRepository implements education.FeePaymentRepository using GORM
type GormFeePaymentRepository struct {
	db *gorm.DB
}

// NewGormFeePaymentRepository creates a new GormFeePaymentRepository
func NewGormFeePaymentRepository(db *gorm.DB) *GormFeePaymentRepository {
	return &GormFeePaymentRepository{db: db}
}

// FindByID finds a fee payment by its ID
func (r *GormFeePaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*education.StudentFeePayment, error) {
	var model models.StudentFeePaymentModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEnrollment lists fee payments of one enrollment
func (r *GormFeePaymentRepository) FindByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]education.StudentFeePayment, error) {
	var paymentModels []models.StudentFeePaymentModel
	if err := session(ctx, r.db).
		Where("enrollment_id = ?", enrollmentID).
		Order("date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]education.StudentFeePayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// SumByEnrollment totals all payments against one enrollment
func (r *GormFeePaymentRepository) SumByEnrollment(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := session(ctx, r.db).Model(&models.StudentFeePaymentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("enrollment_id = ?", enrollmentID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a fee payment
func (r *GormFeePaymentRepository) Save(ctx context.Context, payment *education.StudentFeePayment) error {
	model := models.StudentFeePaymentModelFromDomain(payment)
	return session(ctx, r.db).Save(model).Error
}

// Delete removes a fee payment
func (r *GormFeePaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.StudentFeePaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
