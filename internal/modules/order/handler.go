package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/domain"
	"doorsteps/internal/middleware"
	"doorsteps/internal/pkg/response"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/orders")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Detail)
		g.PATCH("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) List(c *gin.Context) {
	view := c.DefaultQuery("view", c.GetString("user_mode"))
	if view != ViewCustomer && view != ViewProfessional {
		view = ViewCustomer
	}
	force := c.Query("force") == "true"

	var (
		orders []domain.Order
		err    error
	)
	if view == ViewProfessional {
		orders, err = h.store.FetchProfessionalOrders(c.Request.Context(), force)
	} else {
		orders, err = h.store.FetchCustomerOrders(c.Request.Context(), force)
	}
	if err != nil && len(orders) == 0 {
		response.FromUpstream(c, err)
		return
	}

	resp := ToOrderListResponse(orders, view, h.store.LastError(view), h.store.UnpaidCount(view), middleware.LocaleFrom(c))
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}
	view := c.DefaultQuery("view", ViewCustomer)

	o, err := h.store.OrderByID(c.Request.Context(), view, id)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToOrderResponse(o, middleware.LocaleFrom(c)))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}
	view := c.DefaultQuery("view", ViewCustomer)

	if err := h.store.Cancel(c.Request.Context(), view, id); err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "cancelled"})
}

