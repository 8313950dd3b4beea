package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sharescribe/docs"
	"sharescribe/internal/auth"
	"sharescribe/internal/cache"
	"sharescribe/internal/config"
	"sharescribe/internal/database"
	"sharescribe/internal/database/migration"
	handlers "sharescribe/internal/http/handler"
	"sharescribe/internal/http/middleware"
	"sharescribe/internal/logger"
	appotel "sharescribe/internal/otel"
	"sharescribe/internal/ratelimit"
	"sharescribe/internal/razorpay"
	"sharescribe/internal/repository/postgres"
	"sharescribe/internal/service"
	"sharescribe/internal/storage"
	"sharescribe/internal/validation"
)

const (
	shutdownTimeout  = 10 * time.Second
	limiterIdle      = 10 * time.Minute
	bodyLimitHeadway = 1 << 20
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Location())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server_failed", zap.Error(err))
		return err
	}
	return nil
}

func serve(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) error {
	shutdownTracing, err := appotel.Init(ctx, log, "sharescribe")
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	// A nil interface value disables analytics caching.
	var analyticsCache cache.Cache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis_unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			defer rc.Close()
			analyticsCache = rc
		}
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth_secret_missing", zap.String("detail", "every authenticated request will be rejected"))
	}
	if cfg.Razorpay.KeySecret == "" {
		log.Warn("payment_secret_missing", zap.String("detail", "every payment verification will be rejected"))
	}
	verifier := auth.NewJWT(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLSec)*time.Second)

	docRepo := postgres.NewDocumentPostgres(db)
	accountRepo := postgres.NewAccountPostgres(db)
	eventRepo := postgres.NewEventPostgres(db)
	qrRepo := postgres.NewQRCodePostgres(db)

	plans := service.Plans{
		FreeMaxDocuments: cfg.Plans.FreeMaxDocuments,
		FreeStorageBytes: cfg.Plans.FreeStorageBytes,
		ProStorageBytes:  cfg.Plans.ProStorageBytes,
	}

	limiter := ratelimit.NewKeyed(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdle)
	go sweepLimiter(ctx, limiter, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		// Headroom above the upload limit so oversize files get FILE_TOO_LARGE rather than 413.
		BodyLimit:             int(cfg.MaxUploadBytes) + bodyLimitHeadway,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	app.Use(prom.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:             db,
		Storage:        store,
		Verifier:       verifier,
		CookieName:     cfg.Auth.CookieName,
		PublicLimiter:  limiter,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Validator:      validation.New(),
		Documents: service.NewDocumentService(store, docRepo, accountRepo, service.DocumentOptions{
			PublicURL:      cfg.PublicURL,
			MaxUploadBytes: cfg.MaxUploadBytes,
			Plans:          plans,
		}, log),
		Public: service.NewPublicService(store, docRepo, eventRepo, cfg.PublicURL,
			time.Duration(cfg.MinIO.PresignExpirySec)*time.Second, log),
		Analytics: service.NewAnalyticsService(eventRepo, analyticsCache,
			time.Duration(cfg.Redis.TTLSec)*time.Second, log),
		Payments: service.NewPaymentService(
			razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.BaseURL),
			accountRepo,
			service.PaymentOptions{
				KeySecret:   cfg.Razorpay.KeySecret,
				AmountPaise: cfg.Razorpay.AmountPaise,
				Currency:    cfg.Razorpay.Currency,
			}, log),
		QRCodes:  service.NewQRCodeService(qrRepo, docRepo, eventRepo, cfg.PublicURL, log),
		Accounts: service.NewAccountService(accountRepo, docRepo, plans),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_started", zap.String("addr", addr), zap.String("public_url", cfg.PublicURL))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func sweepLimiter(ctx context.Context, l *ratelimit.Keyed, log *zap.Logger) {
	t := time.NewTicker(limiterIdle)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			removed := l.Sweep()
			log.Debug("rate_limiter_swept", zap.Int("removed", removed), zap.Int("active", l.Len()))
		}
	}
}
