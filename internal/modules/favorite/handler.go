package favorite

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
	g := rg.Group("/favorites")
	{
		g.GET("", h.List)
		g.POST("", h.Add)
		g.DELETE("/:id", h.Remove)
		g.GET("/check", h.Check)
	}
}

type addRequest struct {
	ProfessionalID        *int64 `json:"professional_id" validate:"required_without=ProfessionalServiceID"`
	ProfessionalServiceID *int64 `json:"professional_service_id"`
}

func (h *Handler) List(c *gin.Context) {
	force := c.Query("force") == "true"
	items, err := h.store.Fetch(c.Request.Context(), force)
	if err != nil && len(items) == 0 {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"favorites":  items,
		"last_error": h.store.LastError(),
	})
}

func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid favorite target", fields)
		return
	}

	f, err := h.store.Add(c.Request.Context(), req.ProfessionalID, req.ProfessionalServiceID)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid favorite id")
		return
	}
	if err := h.store.Remove(c.Request.Context(), id); err != nil {
		response.FromUpstream(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Check answers the "is this favorited" heart-icon query.
func (h *Handler) Check(c *gin.Context) {
	professionalID, err := strconv.ParseInt(c.Query("professional_id"), 10, 64)
	if err != nil || professionalID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid professional id")
		return
	}
	var serviceID *int64
	if raw := c.Query("professional_service_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid professional service id")
			return
		}
		serviceID = &v
	}
	response.Success(c, http.StatusOK, gin.H{
		"is_favorite": h.store.IsFavorite(professionalID, serviceID),
	})
}
