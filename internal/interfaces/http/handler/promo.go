package handler

import (
	"github.com/gin-gonic/gin"
	promotionapp "github.com/storefront/backend/internal/application/promotion"
)

// PromoRequest is the body of a promo message create or update
type PromoRequest struct {
	Message  string `json:"message" binding:"required,max=500" example:"Free shipping over $50"`
	Theme    string `json:"theme" binding:"omitempty,oneof=primary secondary success warning danger info" example:"primary"`
	Color    string `json:"color" binding:"omitempty,hexcolor" example:"#ef4444"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (r PromoRequest) input() promotionapp.PromoInput {
	return promotionapp.PromoInput{Message: r.Message, Theme: r.Theme, Color: r.Color, IsActive: r.IsActive}
}

// PromoHandler serves the promotional banner messages shown above the carousel
type PromoHandler struct {
	BaseHandler
	promos *promotionapp.PromoService
}

// NewPromoHandler creates a promo handler
func NewPromoHandler(promos *promotionapp.PromoService) *PromoHandler {
	return &PromoHandler{promos: promos}
}

// ListActive godoc
//
//	@ID			listActivePromos
//	@Summary	List active promo messages
//	@Tags		promos
//	@Produce	json
//	@Success	200	{object}	PromoListResponse
//	@Router		/promos/active [get]
func (h *PromoHandler) ListActive(c *gin.Context) {
	promos, err := h.promos.ListActive(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Active promotional messages retrieved successfully", promos)
}

// ListAll godoc
//
//	@ID			listPromos
//	@Summary	List all promo messages
//	@Tags		promos
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	PromoListResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/promos [get]
func (h *PromoHandler) ListAll(c *gin.Context) {
	promos, err := h.promos.ListAll(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "All promotional messages retrieved successfully", promos)
}

// Get godoc
//
//	@ID			getPromo
//	@Summary	Get a promo message
//	@Tags		promos
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Promo ID"
//	@Success	200	{object}	PromoItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/promos/{id} [get]
func (h *PromoHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid promo ID")
		return
	}
	promo, err := h.promos.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Promotional message retrieved successfully", promo)
}

// Create godoc
//
//	@ID			createPromo
//	@Summary	Create a promo message
//	@Tags		promos
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		PromoRequest	true	"Promo message"
//	@Success	201		{object}	PromoItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/promos [post]
func (h *PromoHandler) Create(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	promo, err := h.promos.Create(c.Request.Context(), req.input())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, "Promotional message created successfully", promo)
}

// Update godoc
//
//	@ID			updatePromo
//	@Summary	Update a promo message
//	@Tags		promos
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int				true	"Promo ID"
//	@Param		request	body		PromoRequest	true	"Promo message"
//	@Success	200		{object}	PromoItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/promos/{id} [put]
func (h *PromoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid promo ID")
		return
	}
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	promo, err := h.promos.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Promotional message updated successfully", promo)
}

// Delete godoc
//
//	@ID			deletePromo
//	@Summary	Delete a promo message
//	@Tags		promos
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Promo ID"
//	@Success	200	{object}	MessageResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/promos/{id} [delete]
func (h *PromoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid promo ID")
		return
	}
	if err := h.promos.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Promotional message deleted successfully", nil)
}

// Toggle godoc
//
//	@ID			togglePromo
//	@Summary	Activate or deactivate a promo message
//	@Tags		promos
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Promo ID"
//	@Success	200	{object}	PromoItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/promos/{id}/toggle [patch]
func (h *PromoHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid promo ID")
		return
	}
	promo, err := h.promos.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	state := "deactivated"
	if promo.IsActive {
		state = "activated"
	}
	h.Success(c, "Promotional message "+state+" successfully", promo)
}
