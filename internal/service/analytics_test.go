package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sharescribe/internal/cache"
	"sharescribe/internal/config"
	"sharescribe/internal/model"
	repoMocks "sharescribe/internal/repository/mocks"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in        string
		wantLabel string
		wantDays  int
	}{
		{"7d", "7d", 7},
		{"30d", "30d", 30},
		{"90d", "90d", 90},
		{"", "7d", 7},
		{"365d", "7d", 7},
	}
	for _, tt := range tests {
		label, days := ParseRange(tt.in)
		assert.Equal(t, tt.wantLabel, label, tt.in)
		assert.Equal(t, tt.wantDays, days, tt.in)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	start := WindowStart(now, 7)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), start)
}

func TestBucketByDay_ZeroFills(t *testing.T) {
	start := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	events := []model.Event{
		{Kind: model.EventView, CreatedAt: start.Add(2 * time.Hour)},
		{Kind: model.EventView, CreatedAt: start.Add(3 * time.Hour)},
		{Kind: model.EventDownload, CreatedAt: start.AddDate(0, 0, 3).Add(time.Hour)},
		{Kind: model.EventQRScan, CreatedAt: start.AddDate(0, 0, 6).Add(23 * time.Hour)},
		{Kind: model.EventView, CreatedAt: start.AddDate(0, 0, 7)},
		{Kind: model.EventView, CreatedAt: start.Add(-time.Second)},
	}

	buckets, totals := BucketByDay(events, start, 7)

	require.Len(t, buckets, 7)
	assert.Equal(t, model.DayBucket{Date: "2025-03-04", Day: "Tue", Views: 2}, buckets[0])
	assert.Equal(t, model.DayBucket{Date: "2025-03-05", Day: "Wed"}, buckets[1])
	assert.Equal(t, 1, buckets[3].Downloads)
	assert.Equal(t, model.DayBucket{Date: "2025-03-10", Day: "Mon", Scans: 1}, buckets[6])
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Date, buckets[i].Date)
	}
	assert.Equal(t, model.DayBucket{Views: 2, Downloads: 1, Scans: 1}, totals)
}

func TestBucketByDay_NoEvents(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	buckets, totals := BucketByDay(nil, start, 90)

	require.Len(t, buckets, 90)
	assert.Equal(t, "2025-01-01", buckets[0].Date)
	assert.Equal(t, "2025-03-31", buckets[89].Date)
	assert.Zero(t, totals.Views+totals.Downloads+totals.Scans)
}

func TestAnalyticsService_Summary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	start := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)

	mEvents := new(repoMocks.MockEventRepository)
	svc := NewAnalyticsService(mEvents, nil, time.Minute, zap.NewNop()).(*analyticsService)
	svc.now = func() time.Time { return now }

	mEvents.On("ListForOwnerSince", ctx, ownerID, start).Return([]model.Event{
		{Kind: model.EventView, CreatedAt: now},
	}, nil)
	mEvents.On("TopDocuments", ctx, ownerID, 5).Return([]model.DocumentStats{{ID: docID, ViewCount: 9}}, nil)

	sum, err := svc.Summary(ctx, ownerID, "30d")

	require.NoError(t, err)
	assert.Equal(t, "30d", sum.Range)
	assert.Len(t, sum.ChartData, 30)
	assert.Equal(t, "2025-03-10", sum.ChartData[29].Date)
	assert.Equal(t, 1, sum.ChartData[29].Views)
	assert.Equal(t, 1, sum.Totals.Views)
	assert.Len(t, sum.TopPDFs, 1)
	mEvents.AssertExpectations(t)
}

func TestAnalyticsService_Summary_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mEvents := new(repoMocks.MockEventRepository)
	svc := NewAnalyticsService(mEvents, nil, time.Minute, zap.NewNop())

	mEvents.On("ListForOwnerSince", ctx, ownerID, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.Summary(ctx, ownerID, "7d")
	assert.ErrorContains(t, err, "list events: db down")
}

func TestAnalyticsService_Summary_Cached(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.NewRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)

	mEvents := new(repoMocks.MockEventRepository)
	svc := NewAnalyticsService(mEvents, c, time.Minute, zap.NewNop()).(*analyticsService)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	mEvents.On("ListForOwnerSince", ctx, ownerID, mock.Anything).Return([]model.Event{}, nil).Once()
	mEvents.On("TopDocuments", ctx, ownerID, 5).Return([]model.DocumentStats{}, nil).Once()

	first, err := svc.Summary(ctx, ownerID, "7d")
	require.NoError(t, err)
	second, err := svc.Summary(ctx, ownerID, "7d")
	require.NoError(t, err)

	assert.Equal(t, first.ChartData, second.ChartData)
	assert.True(t, mr.Exists("analytics:user-1:7:2025-03-04"))
	mEvents.AssertExpectations(t)
}

func TestAnalyticsService_Summary_CacheRollsOverAtMidnight(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.NewRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)

	mEvents := new(repoMocks.MockEventRepository)
	svc := NewAnalyticsService(mEvents, c, time.Hour, zap.NewNop()).(*analyticsService)

	beforeMidnight := time.Date(2025, 3, 10, 23, 59, 30, 0, time.UTC)
	afterMidnight := time.Date(2025, 3, 11, 0, 0, 30, 0, time.UTC)

	mEvents.On("ListForOwnerSince", ctx, ownerID, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)).Return([]model.Event{}, nil).Once()
	mEvents.On("ListForOwnerSince", ctx, ownerID, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)).Return([]model.Event{}, nil).Once()
	mEvents.On("TopDocuments", ctx, ownerID, 5).Return([]model.DocumentStats{}, nil).Twice()

	svc.now = func() time.Time { return beforeMidnight }
	first, err := svc.Summary(ctx, ownerID, "7d")
	require.NoError(t, err)

	svc.now = func() time.Time { return afterMidnight }
	second, err := svc.Summary(ctx, ownerID, "7d")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", first.ChartData[6].Date)
	assert.Equal(t, "2025-03-11", second.ChartData[6].Date)
	mEvents.AssertExpectations(t)
}
