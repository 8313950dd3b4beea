package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/auth"
	"sharescribe/internal/http/middleware"
	"sharescribe/internal/ratelimit"
	"sharescribe/internal/service"
	"sharescribe/internal/storage"
	"sharescribe/internal/validation"
)

// Deps carries everything RegisterRoutes wires into handlers.
type Deps struct {
	DB      *sql.DB
	Storage storage.Storage

	Verifier   auth.Verifier
	CookieName string
	// PublicLimiter throttles anonymous endpoints per client IP. Nil disables it.
	PublicLimiter  *ratelimit.Keyed
	MaxUploadBytes int64
	Validator      *validation.Validator

	Documents service.DocumentService
	Public    service.PublicService
	Analytics service.AnalyticsService
	Payments  service.PaymentService
	QRCodes   service.QRCodeService
	Accounts  service.AccountService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Validator == nil {
		d.Validator = validation.New()
	}

	session := middleware.Session(d.Verifier, d.CookieName)
	optional := middleware.OptionalSession(d.Verifier, d.CookieName)
	limited := func(c *fiber.Ctx) error { return c.Next() }
	if d.PublicLimiter != nil {
		limited = middleware.RateLimit(d.PublicLimiter, 1)
	}

	app.Get("/health", HealthCheck(d.DB, d.Storage))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Get("/me", session, Me(d.Accounts))

	api.Post("/pdfs", session, UploadDocument(d.Documents, d.MaxUploadBytes))
	api.Get("/pdfs", session, ListDocuments(d.Documents))
	api.Get("/pdfs/:id", optional, GetDocument(d.Documents))
	api.Patch("/pdfs/:id", session, UpdateDocument(d.Documents, d.Validator))
	api.Delete("/pdfs/:id", session, DeleteDocument(d.Documents))
	api.Post("/pdfs/:id/view", limited, RecordView(d.Public))

	api.Get("/p/:slug", limited, optional, ResolvePublic(d.Public))
	api.Post("/p/:slug/unlock", limited, optional, UnlockPublic(d.Public, d.Validator))
	api.Get("/p/:slug/download", limited, optional, DownloadPublic(d.Public))
	api.Get("/p/:slug/qr.png", limited, PublicQR(d.Public))

	api.Get("/analytics", session, Analytics(d.Analytics))

	api.Post("/payments/order", session, CreatePaymentOrder(d.Payments))
	api.Post("/payments/verify", session, VerifyPayment(d.Payments, d.Validator))

	api.Get("/qr-codes", session, ListQRCodes(d.QRCodes))
	api.Post("/qr-codes", session, CreateQRCode(d.QRCodes, d.Validator))
	api.Delete("/qr-codes/:id", session, DeleteQRCode(d.QRCodes))
	api.Get("/qr-codes/:id/image.png", session, QRCodeImage(d.QRCodes))

	app.Get("/q/:id", limited, ScanQRCode(d.QRCodes))
}
