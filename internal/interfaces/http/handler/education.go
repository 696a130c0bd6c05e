package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/application/education"
)

// EducationHandler exposes students, classes, enrollments and fee payments
type EducationHandler struct {
	BaseHandler
	enrollmentService *education.EnrollmentService
}

// NewEducationHandler creates a new education handler
func NewEducationHandler(enrollmentService *education.EnrollmentService) *EducationHandler {
	return &EducationHandler{enrollmentService: enrollmentService}
}

// RegisterRoutes registers education routes
func (h *EducationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	students.POST("", h.CreateStudent)
	students.GET("", h.ListStudents)
	students.GET("/:id/enrollments", h.ListStudentEnrollments)

	classes := rg.Group("/classes")
	classes.POST("", h.CreateClass)
	classes.GET("", h.ListClasses)
	classes.GET("/:id/enrollments", h.ListClassEnrollments)

	enrollments := rg.Group("/enrollments")
	enrollments.POST("", h.Enroll)
	enrollments.GET("/:id", h.GetEnrollment)
	enrollments.POST("/:id/payments", h.RecordFeePayment)
	enrollments.GET("/:id/payments", h.ListFeePayments)

	feePayments := rg.Group("/fee-payments")
	feePayments.DELETE("/:id", h.DeleteFeePayment)
}

type createStudentRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	GuardianName string `json:"guardian_name"`
	Phone        string `json:"phone"`
}

// CreateStudent registers a student
func (h *EducationHandler) CreateStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.enrollmentService.CreateStudent(
		c.Request.Context(), req.FirstName, req.LastName, req.GuardianName, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, student)
}

// ListStudents returns registered students
func (h *EducationHandler) ListStudents(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	students, err := h.enrollmentService.ListStudents(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, students)
}

type createClassRequest struct {
	Name        string          `json:"name" binding:"required"`
	GradeLevel  string          `json:"grade_level"`
	Subject     string          `json:"subject"`
	CourseFee   decimal.Decimal `json:"course_fee"`
	MaxStudents int             `json:"max_students" binding:"omitempty,min=0"`
}

// CreateClass registers a class
func (h *EducationHandler) CreateClass(c *gin.Context) {
	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	class, err := h.enrollmentService.CreateClass(
		c.Request.Context(), req.Name, req.GradeLevel, req.Subject, req.CourseFee, req.MaxStudents)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, class)
}

// ListClasses returns registered classes
func (h *EducationHandler) ListClasses(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	classes, err := h.enrollmentService.ListClasses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, classes)
}

// Enroll enrolls a student in a class
func (h *EducationHandler) Enroll(c *gin.Context) {
	var req education.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, enrollment)
}

// GetEnrollment returns an enrollment with its payment totals
func (h *EducationHandler) GetEnrollment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}

	enrollment, err := h.enrollmentService.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollment)
}

// ListStudentEnrollments returns a student's enrollments
func (h *EducationHandler) ListStudentEnrollments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	enrollments, err := h.enrollmentService.ListStudentEnrollments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollments)
}

// ListClassEnrollments returns a class roster
func (h *EducationHandler) ListClassEnrollments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid class ID")
		return
	}

	enrollments, err := h.enrollmentService.ListClassEnrollments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollments)
}

// RecordFeePayment records a fee payment against an enrollment
func (h *EducationHandler) RecordFeePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}

	var req education.RecordFeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	enrollment, err := h.enrollmentService.RecordFeePayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, enrollment)
}

// ListFeePayments returns the payments recorded for an enrollment
func (h *EducationHandler) ListFeePayments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid enrollment ID")
		return
	}

	payments, err := h.enrollmentService.ListFeePayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// DeleteFeePayment removes a fee payment and recomputes the enrollment's
// payment status
func (h *EducationHandler) DeleteFeePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	enrollment, err := h.enrollmentService.DeleteFeePayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, enrollment)
}
