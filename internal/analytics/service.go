package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"voicebilling-platform/internal/billing"
	"voicebilling-platform/internal/calls"
	"voicebilling-platform/pkg/logger"
	"voicebilling-platform/pkg/utils"
)

const summaryCacheTTL = 60 * time.Second

// Service serves the dashboard read endpoints. The redis client is optional;
// with a nil client every read goes straight to the repository.
type Service struct {
	repo Repository
	rdb  *redis.Client
	calc billing.Calculator

	defaultRateMinor int64
	clock            func() time.Time
}

func NewService(repo Repository, rdb *redis.Client, defaultRateMinor int64) *Service {
	return &Service{
		repo:             repo,
		rdb:              rdb,
		calc:             billing.MinuteProrated{},
		defaultRateMinor: defaultRateMinor,
		clock:            time.Now,
	}
}

// CallLogs returns the paginated call history for a tenant.
func (s *Service) CallLogs(ctx context.Context, tenantID string, q CallQuery) ([]CallLogEntry, error) {
	recs, err := s.repo.ListCalls(ctx, tenantID, q)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}

	out := make([]CallLogEntry, 0, len(recs))
	for _, c := range recs {
		out = append(out, CallLogEntry{
			CallID:          c.SessionID,
			AgentID:         c.AgentID,
			DurationDisplay: c.DurationDisplay(),
			DurationSeconds: c.DurationSeconds,
			CostEuros:       billing.EurosFromMinor(c.CostMinor),
			Status:          c.Status,
			StartTime:       c.StartTime.UTC().Format(time.RFC3339),
			TTFTMs:          c.TTFTMs,
			Signals:         c.Signals,
		})
	}
	return out, nil
}

// Summary aggregates today's calls for a tenant. Results are cached in redis
// for 60 seconds per tenant/agent pair; cache failures fall back to the
// repository and never surface to the caller.
func (s *Service) Summary(ctx context.Context, tenantID, agentID string) (Summary, error) {
	key := fmt.Sprintf("analytics:summary:%s:%s", tenantID, agentID)
	if s.rdb != nil {
		var cached Summary
		if err := utils.CacheGetJSON(ctx, s.rdb, key, &cached); err == nil {
			return cached, nil
		} else if err != utils.ErrCacheMiss {
			logger.From(ctx).Warn("summary cache read failed", "error", err)
		}
	}

	now := s.clock().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	recs, err := s.repo.ListCallsSince(ctx, tenantID, dayStart, agentID)
	if err != nil {
		return Summary{}, fmt.Errorf("list calls since: %w", err)
	}
	active, err := s.repo.ListActiveCalls(ctx, tenantID, now.Add(-time.Hour), agentID)
	if err != nil {
		return Summary{}, fmt.Errorf("list active calls: %w", err)
	}

	sum := aggregate(recs, len(active))

	if s.rdb != nil {
		if err := utils.CacheSetJSON(ctx, s.rdb, key, sum, summaryCacheTTL); err != nil {
			logger.From(ctx).Warn("summary cache write failed", "error", err)
		}
	}
	return sum, nil
}

// Realtime lists currently in-progress calls with a running cost estimate at
// the tenant's default rate.
func (s *Service) Realtime(ctx context.Context, tenantID, agentID string) ([]LiveCall, error) {
	now := s.clock().UTC()
	recs, err := s.repo.ListActiveCalls(ctx, tenantID, now.Add(-time.Hour), agentID)
	if err != nil {
		return nil, fmt.Errorf("list active calls: %w", err)
	}

	out := make([]LiveCall, 0, len(recs))
	for _, c := range recs {
		elapsed := int(now.Sub(c.StartTime).Seconds())
		if elapsed < 0 {
			elapsed = 0
		}
		out = append(out, LiveCall{
			CallID:          c.SessionID,
			AgentID:         c.AgentID,
			DurationSeconds: elapsed,
			EstimatedCost:   billing.EurosFromMinor(s.calc.CallCost(elapsed, s.defaultRateMinor)),
			Status:          c.Status,
		})
	}
	return out, nil
}

func aggregate(recs []calls.CallRecord, activeCount int) Summary {
	sum := Summary{
		ActiveCalls:     activeCount,
		CallVolumeTrend: make([]TrendPoint, 0, 12),
		CostBreakdown: map[string]BucketStat{
			"0-1min":  {},
			"1-5min":  {},
			"5min...": {},
		},
	}

	trend := make(map[int]int, 12)
	var totalSeconds, completed int
	var totalCostMinor int64
	var iqSum float64
	var iqCount int

	for _, c := range recs {
		sum.TotalCallsToday++
		totalSeconds += c.DurationSeconds
		totalCostMinor += c.CostMinor
		if c.Status == calls.StatusCompleted {
			completed++
		}

		trend[(c.StartTime.UTC().Hour()/2)*2]++

		bucket := "5min..."
		switch {
		case c.DurationSeconds < 60:
			bucket = "0-1min"
		case c.DurationSeconds < 300:
			bucket = "1-5min"
		}
		stat := sum.CostBreakdown[bucket]
		stat.Calls++
		stat.Cost += billing.EurosFromMinor(c.CostMinor)
		sum.CostBreakdown[bucket] = stat

		if c.Signals.IsHotLead {
			sum.LeadsToday++
		}
		if c.Signals.IsChurnRisk {
			sum.ChurnRisksToday++
		}
		if c.Signals.AgentIQ != nil {
			iqSum += *c.Signals.AgentIQ
			iqCount++
		}
	}

	sum.TotalMinutes = totalSeconds / 60
	sum.TotalCostEuros = billing.EurosFromMinor(totalCostMinor)
	if sum.TotalCallsToday > 0 {
		sum.SuccessRate = math.Round(float64(completed)/float64(sum.TotalCallsToday)*1000) / 10
		sum.AvgCallDuration = totalSeconds / sum.TotalCallsToday
	}
	if iqCount > 0 {
		sum.AvgAgentIQ = math.Round(iqSum/float64(iqCount)*10) / 10
	}

	for h := 0; h < 24; h += 2 {
		sum.CallVolumeTrend = append(sum.CallVolumeTrend, TrendPoint{
			Hour:  fmt.Sprintf("%02d:00", h),
			Calls: trend[h],
		})
	}
	return sum
}
