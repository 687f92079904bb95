package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/domain"
	"doorsteps/internal/middleware"
	"doorsteps/internal/pkg/l10n"
	"doorsteps/internal/pkg/response"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	{
		g.GET("", h.List)
		g.PATCH("/:id/read", h.MarkAsRead)
		g.PATCH("/read-all", h.MarkAllAsRead)
		g.DELETE("/:id", h.Delete)
	}
}

type notificationResponse struct {
	ID          int64          `json:"id"`
	Type        string         `json:"type"`
	Message     string         `json:"message"`
	IsRead      bool           `json:"is_read"`
	ActionRoute string         `json:"action_route,omitempty"`
	CustomData  map[string]any `json:"custom_data,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

func toResponse(n *domain.Notification, loc l10n.Locale) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		Type:        n.Type,
		Message:     l10n.Pick(loc, n.MessageEN, n.MessageNP),
		IsRead:      n.IsRead,
		ActionRoute: n.ActionRoute,
		CustomData:  n.CustomData,
		CreatedAt:   n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) List(c *gin.Context) {
	force := c.Query("force") == "true"
	items, err := h.store.Fetch(c.Request.Context(), force)
	if err != nil && len(items) == 0 {
		response.FromUpstream(c, err)
		return
	}

	loc := middleware.LocaleFrom(c)
	list := make([]notificationResponse, len(items))
	for i := range items {
		list[i] = toResponse(&items[i], loc)
	}

	professionalActive := c.GetString("user_mode") == string(domain.ModeProfessional)
	response.Success(c, http.StatusOK, gin.H{
		"notifications":    list,
		"unread_count":     h.store.UnreadCount(),
		"other_mode_count": h.store.HasOtherModeNotifications(professionalActive),
		"last_error":       h.store.LastError(),
	})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}
	if err := h.store.MarkAsRead(c.Request.Context(), id); err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "read"})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	if err := h.store.MarkAllAsRead(c.Request.Context()); err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "all_read"})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		response.FromUpstream(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
