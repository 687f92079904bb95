package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/domain"
	"doorsteps/internal/pkg/response"
	"doorsteps/internal/pkg/validator"
)

type OrderSubmitter interface {
	CreateOrder(ctx context.Context, details domain.BookingDetails) (*domain.Order, error)
}

type Handler struct {
	api OrderSubmitter
}

func NewHandler(api OrderSubmitter) *Handler {
	return &Handler{api: api}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Confirm)
}

type confirmRequest struct {
	ServiceID       int64   `json:"professional_service_id" validate:"required,gt=0"`
	ProfessionalID  int64   `json:"professional_id" validate:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	DiscountedPrice float64 `json:"discounted_price" validate:"gte=0"`
	Quantity        int     `json:"quantity"`
	ScheduledDate   string  `json:"scheduled_date"`
	ScheduledTime   string  `json:"scheduled_time"`
	Address         string  `json:"address"`
	Notes           string  `json:"notes"`
}

// Confirm runs the booking form through the composer and submits the
// resulting order.
func (h *Handler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid booking", fields)
		return
	}

	details, err := NewComposer().
		SelectPrice(PriceSelection{
			ServiceID:       req.ServiceID,
			ProfessionalID:  req.ProfessionalID,
			UnitPrice:       req.UnitPrice,
			DiscountedPrice: req.DiscountedPrice,
		}).
		SetQuantity(req.Quantity).
		SetSchedule(req.ScheduledDate, req.ScheduledTime).
		SetAddress(req.Address).
		SetNotes(req.Notes).
		Confirm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_PRICE_SELECTED", err.Error())
		return
	}

	order, err := h.api.CreateOrder(c.Request.Context(), *details)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}
