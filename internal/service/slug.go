package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"sharescribe/internal/repository"
)

const (
	slugAlphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	slugSuffixLen  = 8
	slugMaxAttempt = 3
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases title, collapses every run of other characters into one hyphen and
// trims hyphens at the edges. An empty result becomes "document".
func Slugify(title string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "document"
	}
	return s
}

// MintSlug returns <slugified title>-<8 random chars>-<unix ms>.
func MintSlug(title string, now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(slugAlphabet, slugSuffixLen)
	if err != nil {
		return "", fmt.Errorf("generate slug suffix: %w", err)
	}
	return Slugify(title) + "-" + suffix + "-" + strconv.FormatInt(now.UnixMilli(), 10), nil
}

// uniqueSlug mints slugs until one is unused, giving up after slugMaxAttempt tries.
func uniqueSlug(ctx context.Context, docs repository.DocumentRepository, title string, now time.Time) (string, error) {
	for range slugMaxAttempt {
		slug, err := MintSlug(title, now)
		if err != nil {
			return "", err
		}
		taken, err := docs.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
	}
	return "", ErrSlugExhausted
}
