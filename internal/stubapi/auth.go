package stubapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"doorsteps/internal/domain"
)

const (
	otpTTL   = 5 * time.Minute
	tokenTTL = 7 * 24 * time.Hour

	// devOTP is the fixed code every login receives. There is no SMS
	// provider behind the stub.
	devOTP = "123456"
)

type tokenClaims struct {
	UserID int64  `json:"user_id"`
	Mode   string `json:"mode,omitempty"`
	jwtlib.RegisteredClaims
}

func (s *Server) issueToken(u *userRow) (string, error) {
	claims := tokenClaims{
		UserID: u.ID,
		Mode:   u.Mode,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			raw = "Bearer " + c.Query("token")
		}
		tokenStr := strings.TrimPrefix(raw, "Bearer ")
		if tokenStr == "" {
			fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing access token")
			c.Abort()
			return
		}

		claims := &tokenClaims{}
		_, err := jwtlib.ParseWithClaims(tokenStr, claims, func(*jwtlib.Token) (any, error) {
			return s.secret, nil
		}, jwtlib.WithValidMethods([]string{"HS256"}))
		if err != nil {
			fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid access token")
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func (s *Server) currentUser(c *gin.Context) (*userRow, bool) {
	id := c.GetInt64("user_id")
	var u userRow
	if err := s.db.First(&u, id).Error; err != nil {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unknown user")
		return nil, false
	}
	return &u, true
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION", "phone_number is required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(devOTP), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not issue OTP")
		return
	}

	s.db.Where("phone_number = ?", req.PhoneNumber).Delete(&otpRow{})
	s.db.Create(&otpRow{
		PhoneNumber: req.PhoneNumber,
		CodeHash:    string(hash),
		ExpiresAt:   time.Now().Add(otpTTL),
	})

	s.log.Info("otp issued", zap.String("phone", req.PhoneNumber))
	ok(c, http.StatusOK, gin.H{"message": "OTP sent"})
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

func (s *Server) verifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION", "phone_number and otp are required")
		return
	}

	var otp otpRow
	err := s.db.Where("phone_number = ?", req.PhoneNumber).
		Order("created_at desc").First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || time.Now().After(otp.ExpiresAt) {
		fail(c, http.StatusUnauthorized, "OTP_EXPIRED", "OTP expired or never requested")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(req.OTP)) != nil {
		fail(c, http.StatusUnauthorized, "OTP_INVALID", "Incorrect OTP")
		return
	}
	s.db.Delete(&otp)

	// First login creates a bare account; setup completes later.
	var u userRow
	err = s.db.Where("phone_number = ?", req.PhoneNumber).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = userRow{PhoneNumber: req.PhoneNumber, Mode: string(domain.ModeCustomer)}
		if err := s.db.Create(&u).Error; err != nil {
			fail(c, http.StatusInternalServerError, "INTERNAL", "Could not create user")
			return
		}
	} else if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Lookup failed")
		return
	}

	token, err := s.issueToken(&u)
	if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not sign token")
		return
	}
	ok(c, http.StatusOK, gin.H{"token": token, "user": u.toDomain()})
}

type setupProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	AgeGroup string `json:"age_group"`
	Mode     string `json:"mode"`
}

func (s *Server) setupProfile(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var req setupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION", "full_name is required")
		return
	}

	u.FullName = req.FullName
	u.Email = req.Email
	u.Gender = req.Gender
	u.AgeGroup = req.AgeGroup
	if req.Mode != "" && domain.UserMode(req.Mode).Valid() {
		u.Mode = req.Mode
	}
	u.IsSetupComplete = true

	if err := s.db.Save(u).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not save profile")
		return
	}
	ok(c, http.StatusOK, u.toDomain())
}

func (s *Server) me(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	ok(c, http.StatusOK, u.toDomain())
}

type switchModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (s *Server) switchMode(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var req switchModeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !domain.UserMode(req.Mode).Valid() {
		fail(c, http.StatusBadRequest, "VALIDATION", "mode must be customer or professional")
		return
	}
	if req.Mode == string(domain.ModeProfessional) && u.ProfessionalID == nil {
		fail(c, http.StatusBadRequest, "NO_PROFESSIONAL_PROFILE", "Register as a professional first")
		return
	}

	u.Mode = req.Mode
	if err := s.db.Save(u).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not switch mode")
		return
	}
	ok(c, http.StatusOK, u.toDomain())
}
