package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mms/backend/internal/application/finance"
)

// FinanceHandler exposes donations, expenses and the financial summary
type FinanceHandler struct {
	BaseHandler
	donationService *finance.DonationService
	expenseService  *finance.ExpenseService
	summaryService  *finance.SummaryService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(
	donationService *finance.DonationService,
	expenseService *finance.ExpenseService,
	summaryService *finance.SummaryService,
) *FinanceHandler {
	return &FinanceHandler{
		donationService: donationService,
		expenseService:  expenseService,
		summaryService:  summaryService,
	}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	donations := rg.Group("/donations")
	donations.POST("", h.RecordDonation)
	donations.GET("", h.ListDonations)
	donations.GET("/:id", h.GetDonation)

	donationCategories := rg.Group("/donation-categories")
	donationCategories.POST("", h.CreateDonationCategory)
	donationCategories.GET("", h.ListDonationCategories)

	expenses := rg.Group("/expenses")
	expenses.POST("", h.RecordExpense)
	expenses.GET("", h.ListExpenses)
	expenses.GET("/:id", h.GetExpense)

	expenseCategories := rg.Group("/expense-categories")
	expenseCategories.POST("", h.CreateExpenseCategory)
	expenseCategories.GET("", h.ListExpenseCategories)

	reports := rg.Group("/reports")
	reports.GET("/summary", h.FinancialSummary)
}

// RecordDonation records a donation and posts it to the ledger
func (h *FinanceHandler) RecordDonation(c *gin.Context) {
	var req finance.RecordDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	donation, err := h.donationService.RecordDonation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, donation)
}

// GetDonation returns a single donation
func (h *FinanceHandler) GetDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	donation, err := h.donationService.GetDonation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, donation)
}

// ListDonations returns donations, newest first
func (h *FinanceHandler) ListDonations(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	donations, err := h.donationService.ListDonations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, donations)
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDonationCategory creates a donation category
func (h *FinanceHandler) CreateDonationCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.donationService.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListDonationCategories returns all donation categories
func (h *FinanceHandler) ListDonationCategories(c *gin.Context) {
	categories, err := h.donationService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// RecordExpense records an expense and posts it to the ledger
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	var req finance.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	expense, err := h.expenseService.RecordExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetExpense returns a single expense
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// ListExpenses returns expenses, newest first
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expenses)
}

// CreateExpenseCategory creates an expense category
func (h *FinanceHandler) CreateExpenseCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.expenseService.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListExpenseCategories returns all expense categories
func (h *FinanceHandler) ListExpenseCategories(c *gin.Context) {
	categories, err := h.expenseService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

type summaryQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// FinancialSummary returns donation and expense totals for a date range.
// Without a range, the current month is used.
func (h *FinanceHandler) FinancialSummary(c *gin.Context) {
	var query summaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	var from, to time.Time
	if query.From != "" {
		from, _ = time.Parse("2006-01-02", query.From)
	}
	if query.To != "" {
		to, _ = time.Parse("2006-01-02", query.To)
	}

	summary, err := h.summaryService.FinancialSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
