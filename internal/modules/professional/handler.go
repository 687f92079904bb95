package professional

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/middleware"
	"doorsteps/internal/pkg/l10n"
	"doorsteps/internal/pkg/response"
	"doorsteps/internal/pkg/validator"
	"doorsteps/internal/upstream"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/professionals")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.GET("/:id/services", h.Services)
		g.POST("/register", h.Register)
		g.PUT("/me/service-areas", h.SetServiceAreas)
	}
}

type registerRequest struct {
	Profession string  `json:"profession" validate:"required,min=2,max=100"`
	Bio        string  `json:"bio" validate:"omitempty,max=1000"`
	AreaIDs    []int64 `json:"area_ids" validate:"omitempty,dive,gt=0"`
}

type serviceAreasRequest struct {
	AreaIDs []int64 `json:"area_ids" validate:"required,min=1,dive,gt=0"`
}

func (h *Handler) List(c *gin.Context) {
	force := c.Query("force") == "true"
	items, err := h.store.FetchDirectory(c.Request.Context(), force)
	if err != nil && len(items) == 0 {
		response.FromUpstream(c, err)
		return
	}
	if c.Query("verified") == "true" {
		items = h.store.Verified()
	}

	loc := middleware.LocaleFrom(c)
	out := make([]ProfessionalResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p, loc))
	}
	response.Success(c, http.StatusOK, gin.H{
		"professionals": out,
		"last_error":    h.store.LastError(),
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid professional id")
		return
	}
	p, err := h.store.ByID(c.Request.Context(), id)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(*p, middleware.LocaleFrom(c)))
}

func (h *Handler) Services(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid professional id")
		return
	}
	force := c.Query("force") == "true"
	items, err := h.store.FetchServices(c.Request.Context(), id, force)
	if err != nil && len(items) == 0 {
		response.FromUpstream(c, err)
		return
	}

	loc := middleware.LocaleFrom(c)
	out := make([]ServiceResponse, 0, len(items))
	for _, s := range items {
		out = append(out, ServiceResponse{
			ID:              s.ID,
			ProfessionalID:  s.ProfessionalID,
			Name:            l10n.Pick(loc, s.NameEN, s.NameNP),
			Price:           s.Price,
			DiscountedPrice: s.DiscountedPrice,
			Unit:            s.Unit,
		})
	}
	response.Success(c, http.StatusOK, gin.H{"services": out})
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid registration", fields)
		return
	}

	p, err := h.store.Register(c.Request.Context(), upstream.RegisterProfessionalRequest{
		Profession: req.Profession,
		Bio:        req.Bio,
		AreaIDs:    req.AreaIDs,
	})
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(*p, middleware.LocaleFrom(c)))
}

func (h *Handler) SetServiceAreas(c *gin.Context) {
	var req serviceAreasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid service areas", fields)
		return
	}

	p, err := h.store.SetServiceAreas(c.Request.Context(), req.AreaIDs)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(*p, middleware.LocaleFrom(c)))
}
