package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appmembership "github.com/mms/backend/internal/application/membership"
)

// MembershipHandler exposes houses, members and monthly dues
type MembershipHandler struct {
	BaseHandler
	houseService *appmembership.HouseService
	duesService  *appmembership.DuesService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(
	houseService *appmembership.HouseService,
	duesService *appmembership.DuesService,
) *MembershipHandler {
	return &MembershipHandler{
		houseService: houseService,
		duesService:  duesService,
	}
}

// RegisterRoutes registers membership routes
func (h *MembershipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	houses := rg.Group("/houses")
	houses.POST("", h.CreateHouse)
	houses.GET("", h.ListHouses)
	houses.GET("/:id", h.GetHouse)
	houses.DELETE("/:id", h.DeactivateHouse)
	houses.GET("/:id/members", h.ListHouseMembers)
	houses.GET("/:id/dues", h.ListHouseDues)

	members := rg.Group("/members")
	members.POST("", h.CreateMember)
	members.GET("", h.ListMembers)

	dues := rg.Group("/dues")
	dues.POST("/generate", h.GenerateMonthlyDues)
	dues.POST("/payments", h.RecordPayment)
	dues.POST("/payments/bulk", h.BulkApplyPayment)
	dues.GET("/overdue", h.OverdueReport)
}

// CreateHouse registers a house
func (h *MembershipHandler) CreateHouse(c *gin.Context) {
	var req appmembership.CreateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	house, err := h.houseService.CreateHouse(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, house)
}

// GetHouse returns a single house
func (h *MembershipHandler) GetHouse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid house ID")
		return
	}

	house, err := h.houseService.GetHouse(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, house)
}

// ListHouses returns registered houses
func (h *MembershipHandler) ListHouses(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	houses, err := h.houseService.ListHouses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, houses)
}

// DeactivateHouse removes a house from active membership
func (h *MembershipHandler) DeactivateHouse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid house ID")
		return
	}

	if err := h.houseService.DeactivateHouse(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListHouseMembers returns the members of a house
func (h *MembershipHandler) ListHouseMembers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid house ID")
		return
	}

	members, err := h.houseService.ListHouseMembers(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, members)
}

// ListHouseDues returns the dues history of a house
func (h *MembershipHandler) ListHouseDues(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid house ID")
		return
	}

	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	dues, err := h.houseService.ListHouseDues(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dues)
}

// CreateMember registers a member under a house
func (h *MembershipHandler) CreateMember(c *gin.Context) {
	var req appmembership.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.houseService.CreateMember(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, member)
}

// ListMembers returns registered members
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	members, err := h.houseService.ListMembers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, members)
}

// GenerateMonthlyDues creates one dues row per active house for a period
func (h *MembershipHandler) GenerateMonthlyDues(c *gin.Context) {
	var req appmembership.GenerateDuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.duesService.GenerateMonthlyDues(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// RecordPayment applies a house payment to its oldest unpaid dues
func (h *MembershipHandler) RecordPayment(c *gin.Context) {
	var req appmembership.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.duesService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// BulkApplyPayment applies payments from many houses in one batch
func (h *MembershipHandler) BulkApplyPayment(c *gin.Context) {
	var req appmembership.BulkApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payments, err := h.duesService.BulkApplyPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payments)
}

type overdueQuery struct {
	AsOf string `form:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// OverdueReport lists houses with unpaid dues as of a date
func (h *MembershipHandler) OverdueReport(c *gin.Context) {
	var query overdueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	asOf := time.Now()
	if query.AsOf != "" {
		asOf, _ = time.Parse("2006-01-02", query.AsOf)
	}

	report, err := h.duesService.OverdueReport(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
