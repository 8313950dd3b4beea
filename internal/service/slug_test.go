package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharescribe/internal/model"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":           "hello-world",
		"  --Q3 Report!!  ":     "q3-report",
		"Ünïcode & Stuff 2024":  "n-code-stuff-2024",
		"!!!":                   "document",
		"":                      "document",
		"already-a-slug":        "already-a-slug",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestMintSlug(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	slug, err := MintSlug("My Deck", now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^my-deck-[0-9a-z]{8}-1700000000123$`), slug)

	other, err := MintSlug("My Deck", now)
	require.NoError(t, err)
	assert.NotEqual(t, slug, other)
}

func TestPlans(t *testing.T) {
	p := Plans{FreeMaxDocuments: 5, FreeStorageBytes: 100, ProStorageBytes: 1000}

	free := p.For(nil)
	assert.Equal(t, PlanFree, free.Plan)
	assert.Equal(t, 5, free.MaxDocuments)

	assert.True(t, p.Allows(nil, 4, 100))
	assert.False(t, p.Allows(nil, 5, 1))
	assert.False(t, p.Allows(nil, 0, 101))

	acc := &model.Account{IsPro: true, StorageUsed: 100}
	pro := p.For(acc)
	assert.Equal(t, PlanPro, pro.Plan)
	assert.Zero(t, pro.MaxDocuments)
	assert.True(t, p.Allows(acc, 500, 900))
	assert.False(t, p.Allows(acc, 500, 901))
}
