package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"doorsteps/internal/config"
	"doorsteps/internal/domain"
	"doorsteps/internal/localstore"
	"doorsteps/internal/middleware"
	"doorsteps/internal/modules/booking"
	"doorsteps/internal/modules/favorite"
	"doorsteps/internal/modules/notification"
	"doorsteps/internal/modules/order"
	"doorsteps/internal/modules/payment"
	"doorsteps/internal/modules/professional"
	"doorsteps/internal/modules/session"
	"doorsteps/internal/pkg/l10n"
	"doorsteps/internal/pkg/logger"
	"doorsteps/internal/store"
	"doorsteps/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	snapshots, err := localstore.Open(cfg.SnapshotDSN, zl)
	if err != nil {
		zl.Fatal("open snapshot store", zap.Error(err))
	}

	// The client reads the token from the session manager, which in
	// turn calls the client; the closure breaks the construction cycle.
	var manager *session.Manager
	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, func() string {
		if manager == nil {
			return ""
		}
		return manager.Token()
	}, zl)
	manager = session.NewManager(client, snapshots, cfg.Cookie, zl)

	orders := order.NewStore(client, zl, store.WithTTL[domain.Order](cfg.CacheTTL))
	notifications := notification.NewStore(client, snapshots, zl, store.WithTTL[domain.Notification](cfg.CacheTTL))
	favorites := favorite.NewStore(client, zl, store.WithTTL[domain.Favorite](cfg.CacheTTL))
	payments := payment.NewStore(client, zl, store.WithTTL[domain.Payment](cfg.CacheTTL))
	professionals := professional.NewStore(client, zl, store.WithTTL[domain.Professional](cfg.CacheTTL))
	manager.AttachStores(orders, notifications, favorites, payments, professionals)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifications.Restore()
	if err := manager.Bootstrap(ctx); err != nil {
		zl.Warn("session bootstrap", zap.Error(err))
	}

	if cfg.StreamEnabled {
		stream := notification.NewStream(client.NotificationStreamURL, notifications, zl)
		go stream.Run(ctx)
	}

	sessionHandler := session.NewHandler(manager)
	orderHandler := order.NewHandler(orders)
	notificationHandler := notification.NewHandler(notifications)
	favoriteHandler := favorite.NewHandler(favorites)
	paymentHandler := payment.NewHandler(payments)
	professionalHandler := professional.NewHandler(professionals)
	bookingHandler := booking.NewHandler(client)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.Locale(l10n.Parse(cfg.DefaultLocale)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "session": manager.State().String()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		sessionHandler.RegisterPublicRoutes(api)

		authed := api.Group("", middleware.RequireSession())
		sessionHandler.RegisterProtectedRoutes(authed)
		professionalHandler.RegisterRoutes(authed)

		// Dashboards stay locked until profile setup finishes.
		dash := authed.Group("", middleware.RequireSetupComplete())
		orderHandler.RegisterRoutes(dash)
		notificationHandler.RegisterRoutes(dash)
		favoriteHandler.RegisterRoutes(dash)
		paymentHandler.RegisterRoutes(dash)
		bookingHandler.RegisterRoutes(dash)
	}

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		zl.Info("gateway listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
