package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/storefront/docs"
	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/tracing"
	"github.com/aaravmahajanofficial/storefront/pkg/payfast"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Storefront API
//	@version					1.0
//	@description				Cart, checkout and payment notification service for the storefront.
//	@host						localhost:8080
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	healthChecks, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	allowGateway, err := middleware.AllowNetworks(cfg.PayFast.AllowedNetworks)
	if err != nil {
		slog.Error("❌ Invalid gateway network allowlist", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// External clients
	gateway := payfast.NewClient(payfast.Config{
		MerchantID:  cfg.PayFast.MerchantID,
		MerchantKey: cfg.PayFast.MerchantKey,
		Passphrase:  cfg.PayFast.Passphrase,
		Sandbox:     cfg.PayFast.Sandbox,
	})
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	// Services
	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, tokenTTL)
	cartService := service.NewCartService(repos.Cart, cfg.Checkout.TaxRateBasisPoints)
	checkoutService := service.NewCheckoutService(repos.Cart, repos.Order, gateway, cfg.PayFast, cfg.Checkout)
	orderService := service.NewOrderService(repos.Order, redisCache, cfg.Cache.DefaultTTL)
	notificationService := service.NewNotificationService(repos.Notification, repos.User, emailService, cfg.Checkout.StoreName)
	paymentService := service.NewPaymentService(repos.Order, repos.Transaction, gateway, redisCache, notificationService, service.PaymentOptions{
		ValidateWithGateway: cfg.PayFast.ValidateWithGateway,
		MarkerTTL:           cfg.Cache.NotificationTTL,
	})
	wishlistService := service.NewWishlistService(repos.Wishlist)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	cartHandler := handlers.NewCartHandler(cartService)
	paymentHandler := handlers.NewPaymentHandler(checkoutService, paymentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	adminHandler := handlers.NewAdminHandler(orderService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Cart: guests identify with sessionId, signed in users with the bearer token
	routerMux.HandleFunc("GET /cart", authMiddleware.OptionalAuthenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /cart", authMiddleware.OptionalAuthenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /cart/{id}", authMiddleware.OptionalAuthenticate(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /cart/{id}", authMiddleware.OptionalAuthenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /cart", authMiddleware.OptionalAuthenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /cart/merge", authMiddleware.Authenticate(cartHandler.MergeCart()))

	routerMux.HandleFunc("GET /wishlist", authMiddleware.OptionalAuthenticate(wishlistHandler.GetWishlist()))
	routerMux.HandleFunc("POST /wishlist", authMiddleware.OptionalAuthenticate(wishlistHandler.AddItem()))
	routerMux.HandleFunc("DELETE /wishlist/{productId}", authMiddleware.OptionalAuthenticate(wishlistHandler.RemoveItem()))

	routerMux.HandleFunc("POST /payment/process", authMiddleware.Authenticate(paymentHandler.Process()))
	routerMux.HandleFunc("POST /payment/notify", allowGateway(paymentHandler.Notify()))

	routerMux.HandleFunc("GET /orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))

	routerMux.HandleFunc("POST /users/register", userHandler.Register())
	routerMux.HandleFunc("POST /users/login", userHandler.Login())
	routerMux.HandleFunc("GET /users/profile", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("GET /admin/orders", authMiddleware.Authenticate(middleware.RequireAdmin(adminHandler.ListOrders())))
	routerMux.HandleFunc("PATCH /admin/orders/{id}/status", authMiddleware.Authenticate(middleware.RequireAdmin(adminHandler.UpdateOrderStatus())))
	routerMux.HandleFunc("POST /admin/orders/{id}/confirmation", authMiddleware.Authenticate(middleware.RequireAdmin(notificationHandler.ResendOrderConfirmation())))
	routerMux.HandleFunc("GET /admin/users", authMiddleware.Authenticate(middleware.RequireAdmin(adminHandler.ListUsers())))
	routerMux.HandleFunc("POST /admin/notifications/email", authMiddleware.Authenticate(middleware.RequireAdmin(notificationHandler.SendEmail())))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthChecks.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
