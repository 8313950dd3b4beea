package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/auth"
)

// IdentityLocalKey is the key under which the authenticated caller is stored in locals.
const IdentityLocalKey = "identity"

// tokenFrom reads the session token from the cookie, falling back to a Bearer header.
func tokenFrom(c *fiber.Ctx, cookieName string) string {
	if tok := c.Cookies(cookieName); tok != "" {
		return tok
	}
	scheme, tok, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(tok)
	}
	return ""
}

// Session rejects requests without a valid session token with 401.
func Session(v auth.Verifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := v.Verify(tokenFrom(c, cookieName))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals(IdentityLocalKey, id)
		return c.Next()
	}
}

// OptionalSession stores the caller when a valid token is present and never rejects.
// Public routes use it so owners can open their own private documents.
func OptionalSession(v auth.Verifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := tokenFrom(c, cookieName); tok != "" {
			if id, err := v.Verify(tok); err == nil {
				c.Locals(IdentityLocalKey, id)
			}
		}
		return c.Next()
	}
}

// CurrentIdentity returns the caller stored by Session or OptionalSession, or nil.
func CurrentIdentity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(IdentityLocalKey).(*auth.Identity)
	return id
}

// UserID returns the caller's id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	if id := CurrentIdentity(c); id != nil {
		return id.UserID
	}
	return ""
}
