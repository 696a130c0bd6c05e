package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/ledger"
)

// LedgerHandler exposes the chart of accounts and the transaction log
type LedgerHandler struct {
	BaseHandler
	chartService *appledger.ChartOfAccountsService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(chartService *appledger.ChartOfAccountsService) *LedgerHandler {
	return &LedgerHandler{chartService: chartService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/ledger")
	group.GET("/accounts", h.ListAccounts)
	group.GET("/trial-balance", h.TrialBalance)
	group.GET("/transactions", h.ListTransactions)
	group.GET("/transactions/:id", h.GetTransaction)
}

// ListAccounts returns every account with its derived balance
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	accounts, err := h.chartService.Report(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}

// TrialBalance returns total debits and credits across all accounts
func (h *LedgerHandler) TrialBalance(c *gin.Context) {
	result, err := h.chartService.TrialBalance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

type listTransactionsQuery struct {
	Reference string `form:"reference"`
	FromDate  string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate    string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactions returns a paginated view of the transaction log
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	baseFilter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := ledger.TransactionFilter{Filter: baseFilter}
	if query.Reference != "" {
		filter.Reference = &query.Reference
	}
	if query.FromDate != "" {
		from, _ := time.Parse("2006-01-02", query.FromDate)
		filter.FromDate = &from
	}
	if query.ToDate != "" {
		to, _ := time.Parse("2006-01-02", query.ToDate)
		filter.ToDate = &to
	}

	page, err := h.chartService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetTransaction returns a single transaction with its journal entries
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.chartService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}
