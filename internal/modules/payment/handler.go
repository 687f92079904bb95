package payment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/pkg/response"
	"doorsteps/internal/pkg/validator"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/payments")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
	}
	w := rg.Group("/withdrawals")
	{
		w.GET("", h.Withdrawals)
		w.GET("/:id/receipt", h.Receipt)
	}
}

type createRequest struct {
	OrderID int64   `json:"order_id" validate:"required,gt=0"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Method  string  `json:"method" validate:"required,oneof=cash esewa khalti bank"`
}

func (h *Handler) List(c *gin.Context) {
	force := c.Query("force") == "true"
	items, err := h.store.FetchPayments(c.Request.Context(), force)
	if err != nil && len(items) == 0 {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": items})
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid payment", fields)
		return
	}

	p, err := h.store.Create(c.Request.Context(), req.OrderID, req.Amount, req.Method)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Withdrawals(c *gin.Context) {
	force := c.Query("force") == "true"
	items, err := h.store.FetchWithdrawals(c.Request.Context(), force)
	if err != nil && len(items) == 0 {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"withdrawals":   items,
		"pending_count": len(h.store.PendingWithdrawals()),
	})
}

// Receipt proxies the document bytes as-is.
func (h *Handler) Receipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid withdrawal id")
		return
	}
	body, contentType, err := h.store.Receipt(c.Request.Context(), id)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, body)
}
