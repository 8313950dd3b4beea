package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"sharescribe/internal/cache"
	"sharescribe/internal/model"
	"sharescribe/internal/repository"
)

const (
	dayLayout   = "2006-01-02"
	topDocLimit = 5
)

// AnalyticsService builds the per-owner analytics summary.
type AnalyticsService interface {
	Summary(ctx context.Context, ownerID, rangeParam string) (*model.AnalyticsSummary, error)
}

type analyticsService struct {
	events repository.EventRepository
	cache  cache.Cache
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService returns the analytics use case. c may be nil to disable caching.
func NewAnalyticsService(events repository.EventRepository, c cache.Cache, ttl time.Duration, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		events: events,
		cache:  c,
		ttl:    ttl,
		log:    log.Named("analytics"),
		now:    time.Now,
	}
}

// ParseRange maps "7d", "30d" and "90d" to their day counts. Anything else is "7d".
func ParseRange(s string) (string, int) {
	switch s {
	case "30d":
		return s, 30
	case "90d":
		return s, 90
	default:
		return "7d", 7
	}
}

// WindowStart is 00:00 UTC of the first of the last days calendar days ending on now's date.
func WindowStart(now time.Time, days int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}

// BucketByDay counts events per UTC date for every day starting at start, oldest first.
// Days without events are present with zero counts. Events outside the window are ignored.
func BucketByDay(events []model.Event, start time.Time, days int) ([]model.DayBucket, model.DayBucket) {
	buckets := make([]model.DayBucket, days)
	index := make(map[string]int, days)
	for i := range days {
		day := start.AddDate(0, 0, i)
		key := day.Format(dayLayout)
		buckets[i] = model.DayBucket{Date: key, Day: day.Weekday().String()[:3]}
		index[key] = i
	}

	var totals model.DayBucket
	for _, ev := range events {
		i, ok := index[ev.CreatedAt.UTC().Format(dayLayout)]
		if !ok {
			continue
		}
		switch ev.Kind {
		case model.EventView:
			buckets[i].Views++
			totals.Views++
		case model.EventDownload:
			buckets[i].Downloads++
			totals.Downloads++
		case model.EventQRScan:
			buckets[i].Scans++
			totals.Scans++
		}
	}
	return buckets, totals
}

// cacheKey includes the window start so a cached summary stops matching once the day rolls over.
func cacheKey(ownerID string, days int, start time.Time) string {
	return "analytics:" + ownerID + ":" + strconv.Itoa(days) + ":" + start.Format(dayLayout)
}

func (s *analyticsService) Summary(ctx context.Context, ownerID, rangeParam string) (*model.AnalyticsSummary, error) {
	label, days := ParseRange(rangeParam)
	start := WindowStart(s.now(), days)
	key := cacheKey(ownerID, days, start)

	if s.cache != nil {
		var cached model.AnalyticsSummary
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("analytics_cache_get_failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	events, err := s.events.ListForOwnerSince(ctx, ownerID, start)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	top, err := s.events.TopDocuments(ctx, ownerID, topDocLimit)
	if err != nil {
		return nil, fmt.Errorf("top documents: %w", err)
	}

	chart, totals := BucketByDay(events, start, days)
	summary := &model.AnalyticsSummary{
		Range:     label,
		Days:      days,
		ChartData: chart,
		Totals:    totals,
		TopPDFs:   top,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
			s.log.Warn("analytics_cache_set_failed", zap.String("key", key), zap.Error(err))
		}
	}
	return summary, nil
}
