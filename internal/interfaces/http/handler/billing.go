package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/mms/backend/internal/application/billing"
	"github.com/mms/backend/internal/domain/billing"
)

// BillingHandler exposes invoices, invoice payments and shops
type BillingHandler struct {
	BaseHandler
	invoiceService *appbilling.InvoiceService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(invoiceService *appbilling.InvoiceService) *BillingHandler {
	return &BillingHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.POST("", h.CreateInvoice)
	invoices.GET("", h.ListInvoices)
	invoices.GET("/:id", h.GetInvoice)
	invoices.POST("/:id/send", h.SendInvoice)
	invoices.POST("/:id/cancel", h.CancelInvoice)
	invoices.POST("/:id/payments", h.RecordPayment)
	invoices.GET("/:id/payments", h.ListPayments)

	shops := rg.Group("/shops")
	shops.POST("", h.CreateShop)
	shops.GET("", h.ListShops)
}

// CreateInvoice creates a draft invoice
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req appbilling.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetInvoice returns a single invoice
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

type listInvoicesQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=draft sent partially_paid paid cancelled"`
	HouseID string `form:"house_id" binding:"omitempty,uuid"`
	ShopID  string `form:"shop_id" binding:"omitempty,uuid"`
}

// ListInvoices returns a paginated, filterable invoice list
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	baseFilter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	var query listInvoicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := billing.InvoiceFilter{Filter: baseFilter}
	if query.Status != "" {
		status := billing.InvoiceStatus(query.Status)
		filter.Status = &status
	}
	if query.HouseID != "" {
		houseID, _ := uuid.Parse(query.HouseID)
		filter.HouseID = &houseID
	}
	if query.ShopID != "" {
		shopID, _ := uuid.Parse(query.ShopID)
		filter.ShopID = &shopID
	}

	page, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// SendInvoice marks a draft invoice as sent
func (h *BillingHandler) SendInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// CancelInvoice cancels an invoice that has no payments
func (h *BillingHandler) CancelInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// RecordPayment applies a payment to an invoice and posts it to the ledger
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req appbilling.RecordInvoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// ListPayments returns the payments recorded against an invoice
func (h *BillingHandler) ListPayments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

type createShopRequest struct {
	Name        string          `json:"name" binding:"required"`
	TenantName  string          `json:"tenant_name"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
}

// CreateShop registers a rentable shop
func (h *BillingHandler) CreateShop(c *gin.Context) {
	var req createShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.invoiceService.CreateShop(c.Request.Context(), req.Name, req.TenantName, req.MonthlyRent)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shop)
}

// ListShops returns registered shops
func (h *BillingHandler) ListShops(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	shops, err := h.invoiceService.ListShops(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shops)
}
