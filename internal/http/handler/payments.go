package handler

import (
	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/service"
	"sharescribe/internal/validation"
)

// CreatePaymentOrder opens a checkout order for the pro plan.
//
// @Summary Create a pro plan order
// @Tags payments
// @Produce json
// @Success 200 {object} service.OrderResult
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/payments/order [post]
func CreatePaymentOrder(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}
		order, err := svc.CreateOrder(c.UserContext(), user.UserID, user.Email)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(order)
	}
}

// VerifyPayment checks the checkout callback and upgrades the caller.
//
// @Summary Verify a payment
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/payments/verify [post]
func VerifyPayment(svc service.PaymentService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}

		var in service.VerifyInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if err := v.Validate(in); err != nil {
			return respondError(c, err)
		}

		if err := svc.Verify(c.UserContext(), user.UserID, user.Email, in); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "plan": service.PlanPro})
	}
}
