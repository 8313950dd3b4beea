package handler

import (
	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/model"
	"sharescribe/internal/service"
	"sharescribe/internal/validation"
)

type createQRRequest struct {
	Type       string `json:"type" validate:"required,oneof=pdf_url custom_url text vcard"`
	Data       string `json:"data" validate:"max=2048"`
	DocumentID string `json:"pdf_id" validate:"omitempty,uuid"`
	FgColor    string `json:"fg_color" validate:"omitempty,hexcolor"`
	BgColor    string `json:"bg_color" validate:"omitempty,hexcolor"`
	Size       int    `json:"size" validate:"gte=0"`
	Name       string `json:"name" validate:"max=100"`
}

// ListQRCodes lists the caller's saved QR codes.
//
// @Summary List saved QR codes
// @Tags qr-codes
// @Produce json
// @Success 200 {object} map[string][]model.QRCode
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/qr-codes [get]
func ListQRCodes(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}
		codes, err := svc.List(c.UserContext(), user.UserID)
		if err != nil {
			return respondError(c, err)
		}
		if codes == nil {
			codes = []model.QRCode{}
		}
		return c.JSON(fiber.Map{"data": codes})
	}
}

// CreateQRCode saves a QR code configuration.
//
// @Summary Save a QR code
// @Tags qr-codes
// @Accept json
// @Produce json
// @Success 201 {object} map[string]model.QRCode
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/qr-codes [post]
func CreateQRCode(svc service.QRCodeService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}

		var req createQRRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if err := v.Validate(req); err != nil {
			return respondError(c, err)
		}

		qr, err := svc.Create(c.UserContext(), service.CreateQRInput{
			OwnerID:    user.UserID,
			Kind:       model.QRKind(req.Type),
			Payload:    req.Data,
			DocumentID: req.DocumentID,
			Style: model.QRStyle{
				Foreground: req.FgColor,
				Background: req.BgColor,
				Size:       req.Size,
				Name:       req.Name,
			},
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"qr_code": qr})
	}
}

// DeleteQRCode removes a QR code the caller owns.
//
// @Summary Delete a QR code
// @Tags qr-codes
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/qr-codes/{id} [delete]
func DeleteQRCode(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), c.Params("id"), user.UserID); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// QRCodeImage renders a QR code the caller owns as a PNG.
//
// @Summary Render a saved QR code
// @Tags qr-codes
// @Produce png
// @Param id path string true "id"
// @Success 200 {file} binary
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/qr-codes/{id}/image.png [get]
func QRCodeImage(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}
		png, err := svc.Image(c.UserContext(), c.Params("id"), user.UserID)
		if err != nil {
			return respondError(c, err)
		}
		c.Type("png")
		return c.Send(png)
	}
}

// ScanQRCode counts a scan, then redirects to URL payloads or prints anything else.
//
// @Summary Scan a QR code
// @Tags qr-codes
// @Produce json
// @Param id path string true "id"
// @Success 302
// @Failure 400,401,403,404 {object} errorPayload
// @Router /q/{id} [get]
func ScanQRCode(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		qr, err := svc.Scan(c.UserContext(), c.Params("id"), clientIP(c))
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderCacheControl, "no-store")

		switch {
		case qr.Kind.IsURL():
			return c.Redirect(qr.Payload, fiber.StatusFound)
		case qr.Kind == model.QRKindVCard:
			c.Set(fiber.HeaderContentType, "text/vcard; charset=utf-8")
		default:
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		}
		return c.SendString(qr.Payload)
	}
}
