// Package stubapi is a self-contained stand-in for the Doorsteps
// backend, used for local development and end-to-end tests. It speaks
// the same envelope and routes as the real API, backed by sqlite.
package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	db     *gorm.DB
	log    *zap.Logger
	secret []byte
	hub    *hub
}

func New(db *gorm.DB, secret []byte, log *zap.Logger) (*Server, error) {
	if err := db.AutoMigrate(
		&userRow{}, &otpRow{}, &orderRow{}, &notificationRow{},
		&favoriteRow{}, &professionalRow{}, &serviceAreaRow{},
		&serviceRow{}, &paymentRow{}, &withdrawalRow{},
	); err != nil {
		return nil, err
	}
	s := &Server{db: db, log: log, secret: secret, hub: newHub(log)}
	go s.hub.run()
	return s, nil
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws/notifications", s.serveWS)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", s.login)
			auth.POST("/verify-otp", s.verifyOTP)
			auth.POST("/setup-profile", s.authRequired(), s.setupProfile)
		}

		users := v1.Group("/users", s.authRequired())
		{
			users.GET("/me", s.me)
			users.PATCH("/me/mode", s.switchMode)
		}

		api := v1.Group("", s.authRequired())
		{
			api.GET("/orders", s.listOrders)
			api.GET("/orders/:id", s.getOrder)
			api.POST("/orders", s.createOrder)
			api.PATCH("/orders/:id/cancel", s.cancelOrder)

			api.GET("/notifications", s.listNotifications)
			api.PATCH("/notifications/:id/read", s.markNotificationRead)
			api.PATCH("/notifications/read-all", s.markAllNotificationsRead)
			api.DELETE("/notifications/:id", s.deleteNotification)

			api.GET("/favorites", s.listFavorites)
			api.POST("/favorites", s.addFavorite)
			api.DELETE("/favorites/:id", s.removeFavorite)

			api.GET("/professionals", s.listProfessionals)
			api.GET("/professionals/:id", s.getProfessional)
			api.GET("/professionals/:id/services", s.listServices)
			api.POST("/professionals/register", s.registerProfessional)
			api.PUT("/professionals/me/service-areas", s.updateServiceAreas)

			api.GET("/payments", s.listPayments)
			api.POST("/payments", s.createPayment)
			api.GET("/withdrawals", s.listWithdrawals)
			api.GET("/withdrawals/:id/receipt", s.withdrawalReceipt)
		}
	}
	return r
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func notFound(c *gin.Context, what string) {
	fail(c, http.StatusNotFound, "NOT_FOUND", what+" not found")
}
