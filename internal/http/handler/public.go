package handler

import (
	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/http/middleware"
	"sharescribe/internal/service"
	"sharescribe/internal/validation"
)

// PasswordHeader carries the password of a protected share link.
const PasswordHeader = "X-Document-Password"

func resolveInput(c *fiber.Ctx, password string) service.ResolveInput {
	return service.ResolveInput{
		Slug:     c.Params("slug"),
		ViewerID: middleware.UserID(c),
		Password: password,
		ClientIP: clientIP(c),
	}
}

// ResolvePublic opens a share link. The password, if any, comes from X-Document-Password.
//
// @Summary Open a share link
// @Tags public
// @Produce json
// @Param slug path string true "slug"
// @Success 200 {object} service.PublicDocument
// @Failure 400,401,403,404 {object} errorPayload
// @Router /api/p/{slug} [get]
func ResolvePublic(svc service.PublicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Resolve(c.UserContext(), resolveInput(c, c.Get(PasswordHeader)))
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(res)
	}
}

type unlockRequest struct {
	Password string `json:"password" validate:"required,max=128"`
}

// UnlockPublic opens a protected share link with a JSON {"password": "..."} body.
//
// @Summary Unlock a protected share link
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "slug"
// @Success 200 {object} service.PublicDocument
// @Failure 400,401,403,404 {object} errorPayload
// @Router /api/p/{slug}/unlock [post]
func UnlockPublic(svc service.PublicService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req unlockRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if err := v.Validate(req); err != nil {
			return respondError(c, err)
		}

		res, err := svc.Resolve(c.UserContext(), resolveInput(c, req.Password))
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(res)
	}
}

// DownloadPublic records a download and redirects to a short-lived object URL.
//
// @Summary Download through a share link
// @Tags public
// @Produce json
// @Param slug path string true "slug"
// @Success 302
// @Failure 400,401,403,404 {object} errorPayload
// @Router /api/p/{slug}/download [get]
func DownloadPublic(svc service.PublicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.Download(c.UserContext(), resolveInput(c, c.Get(PasswordHeader)))
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Redirect(url, fiber.StatusFound)
	}
}

// PublicQR renders the share link of a public document as a PNG. ?size= is clamped.
//
// @Summary QR code of a share link
// @Tags public
// @Produce png
// @Param slug path string true "slug"
// @Success 200 {file} binary
// @Failure 400,401,403,404 {object} errorPayload
// @Router /api/p/{slug}/qr.png [get]
func PublicQR(svc service.PublicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		size, err := queryInt(c, "size", 0)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "invalid size")
		}
		png, err := svc.ShareQR(c.UserContext(), c.Params("slug"), size)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderCacheControl, "public, max-age=300")
		c.Type("png")
		return c.Send(png)
	}
}
