package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/model"
	"sharescribe/internal/service"
	"sharescribe/internal/validation"
)

// UploadDocument handles multipart uploads. Field "file" carries the PDF; title,
// description, tags (comma separated), visibility, password, expiry and folder are plain fields.
// The size is checked against maxBytes before the file is opened.
//
// @Summary Upload a PDF
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} map[string]model.Document
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/pdfs [post]
func UploadDocument(svc service.DocumentService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if fh.Size > maxBytes {
			return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE",
				fmt.Sprintf("file exceeds the %d MB upload limit", maxBytes>>20))
		}
		if strings.TrimSpace(c.FormValue("title")) == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "title is required")
		}
		expiresAt, err := parseExpiry(c.FormValue("expiry"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := svc.Upload(c.UserContext(), service.UploadInput{
			OwnerID:     user.UserID,
			OwnerEmail:  user.Email,
			Body:        f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Tags:        splitTags(c.FormValue("tags")),
			Visibility:  model.Visibility(c.FormValue("visibility")),
			Password:    c.FormValue("password"),
			ExpiresAt:   expiresAt,
			Folder:      strings.TrimSpace(c.FormValue("folder")),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"pdf": doc})
	}
}

// ListDocuments lists the caller's documents with limit & offset.
//
// @Summary List own documents
// @Tags documents
// @Produce json
// @Param limit query int false "page size"
// @Param offset query int false "offset"
// @Success 200 {object} service.DocumentListResult
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/pdfs [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}
		limit, err := queryInt(c, "limit", 20)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := queryInt(c, "offset", 0)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), user.UserID, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// GetDocument returns one document. Private documents are visible to their owner only.
//
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} map[string]model.Document
// @Failure 400,401,403,404 {object} errorPayload
// @Router /api/pdfs/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var viewer string
		if id, err := requireUser(c); err == nil {
			viewer = id.UserID
		}
		doc, err := svc.Get(c.UserContext(), c.Params("id"), viewer)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"pdf": doc})
	}
}

type updateDocumentRequest struct {
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=20"`
	Visibility  *string   `json:"visibility" validate:"omitempty,oneof=public private"`
	Password    *string   `json:"password" validate:"omitempty,max=128"`
	// ExpiresAt of "" removes the expiry.
	ExpiresAt *string `json:"expires_at"`
	Folder    *string `json:"folder" validate:"omitempty,max=100"`
}

func (r updateDocumentRequest) toInput() (service.UpdateInput, error) {
	in := service.UpdateInput{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		Password:    r.Password,
		Folder:      r.Folder,
	}
	if r.Visibility != nil {
		v := model.Visibility(*r.Visibility)
		in.Visibility = &v
	}
	if r.ExpiresAt != nil {
		t, err := parseExpiry(*r.ExpiresAt)
		if err != nil {
			return in, err
		}
		in.ExpiresAt = t
		in.ClearExpiry = t == nil
	}
	return in, nil
}

// UpdateDocument applies a partial JSON update to a document the caller owns.
//
// @Summary Update document metadata
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} map[string]model.Document
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/pdfs/{id} [patch]
func UpdateDocument(svc service.DocumentService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}

		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if err := v.Validate(req); err != nil {
			return respondError(c, err)
		}
		in, err := req.toInput()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		doc, err := svc.Update(c.UserContext(), c.Params("id"), user.UserID, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"pdf": doc})
	}
}

// DeleteDocument removes a document the caller owns.
//
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/pdfs/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
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

// RecordView counts an anonymous view of a public document.
//
// @Summary Record a view
// @Tags public
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} map[string]bool
// @Failure 400,401,403,404 {object} errorPayload
// @Router /api/pdfs/{id}/view [post]
func RecordView(svc service.PublicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.RecordView(c.UserContext(), c.Params("id"), clientIP(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
