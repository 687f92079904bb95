package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/domain"
	"doorsteps/internal/pkg/response"
	"doorsteps/internal/pkg/validator"
	"doorsteps/internal/upstream"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// RegisterPublicRoutes mounts the pre-auth endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/session")
	{
		g.POST("/login", h.Login)
		g.POST("/verify-otp", h.VerifyOTP)
	}
}

// RegisterProtectedRoutes mounts the endpoints needing a session.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/session")
	{
		g.GET("", h.Current)
		g.POST("/setup-profile", h.SetupProfile)
		g.POST("/refresh", h.Refresh)
		g.PATCH("/mode", h.SwitchMode)
		g.POST("/logout", h.Logout)
	}
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=7"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=7"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
}

type setupProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"omitempty,email"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	AgeGroup string `json:"age_group"`
	Mode     string `json:"mode" validate:"omitempty,oneof=customer professional"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid phone number", fields)
		return
	}

	if err := h.manager.Login(c.Request.Context(), req.PhoneNumber); err != nil {
		response.FromUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": h.manager.State().String()})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid OTP request", fields)
		return
	}

	user, err := h.manager.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		response.FromUpstream(c, err)
		return
	}

	h.setCookies(c)
	response.Success(c, http.StatusOK, gin.H{
		"user":  user,
		"state": h.manager.State().String(),
	})
}

func (h *Handler) SetupProfile(c *gin.Context) {
	var req setupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid profile", fields)
		return
	}

	user, err := h.manager.SetupProfile(c.Request.Context(), upstream.SetupProfileRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Gender:   req.Gender,
		AgeGroup: req.AgeGroup,
		Mode:     domain.UserMode(req.Mode),
	})
	if err != nil {
		response.FromUpstream(c, err)
		return
	}

	h.setCookies(c)
	response.Success(c, http.StatusOK, gin.H{
		"user":  user,
		"state": h.manager.State().String(),
	})
}

func (h *Handler) Current(c *gin.Context) {
	user := h.manager.User()
	if user == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "No active session")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":  user,
		"state": h.manager.State().String(),
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	user, err := h.manager.RefreshUser(c.Request.Context())
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	h.setCookies(c)
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) SwitchMode(c *gin.Context) {
	var req struct {
		Mode string `json:"mode" validate:"required,oneof=customer professional"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION", "Invalid mode", fields)
		return
	}

	user, err := h.manager.SwitchMode(c.Request.Context(), domain.UserMode(req.Mode))
	if err != nil {
		response.FromUpstream(c, err)
		return
	}
	h.setCookies(c)
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Logout clears the session and instructs the client to fully reload
// the landing route, discarding any view state it still holds.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.manager.Logout(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to clear session")
		return
	}
	for _, ck := range h.manager.ExpiredCookies() {
		http.SetCookie(c.Writer, ck)
	}
	response.Success(c, http.StatusOK, gin.H{"redirect": "/", "reload": true})
}

func (h *Handler) setCookies(c *gin.Context) {
	for _, ck := range h.manager.Cookies() {
		http.SetCookie(c.Writer, ck)
	}
}
