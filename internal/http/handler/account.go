package handler

import (
	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/service"
)

// Me returns the caller's account, plan limits and document count.
//
// @Summary Current account
// @Tags account
// @Produce json
// @Success 200 {object} service.AccountView
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/me [get]
func Me(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}
		view, err := svc.Me(c.UserContext(), user.UserID, user.Email)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(view)
	}
}

// Analytics returns the caller's summary for ?range=7d|30d|90d.
//
// @Summary Analytics summary
// @Tags analytics
// @Produce json
// @Param range query string false "7d, 30d or 90d"
// @Success 200 {object} model.AnalyticsSummary
// @Failure 400,401,403,404 {object} errorPayload
// @Security SessionToken
// @Router /api/analytics [get]
func Analytics(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := requireUser(c)
		if err != nil {
			return err
		}
		summary, err := svc.Summary(c.UserContext(), user.UserID, c.Query("range"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(summary)
	}
}
