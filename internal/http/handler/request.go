package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"sharescribe/internal/auth"
	"sharescribe/internal/http/middleware"
)

var errBadExpiry = errors.New("expiry must be RFC3339 or YYYY-MM-DD")

// Layouts accepted for expiry values, including the HTML datetime-local format.
var expiryLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// requireUser returns the caller set by the session middleware, or a 401.
func requireUser(c *fiber.Ctx) (*auth.Identity, error) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return nil, fiber.ErrUnauthorized
	}
	return id, nil
}

// clientIP prefers the first X-Forwarded-For hop.
func clientIP(c *fiber.Ctx) string {
	if ips := c.IPs(); len(ips) > 0 && ips[0] != "" {
		return ips[0]
	}
	return c.IP()
}

func parseExpiry(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errBadExpiry
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
