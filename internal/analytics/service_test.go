package analytics

import (
	"context"
	"testing"
	"time"

	"voicebilling-platform/internal/calls"
	"voicebilling-platform/internal/signals"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func floatPtr(v float64) *float64 { return &v }

func newTestService(repo *MemoryRepo, now time.Time) *Service {
	svc := NewService(repo, nil, 25)
	svc.clock = fixedClock(now)
	return svc
}

func completedCall(sessionID, agentID string, start time.Time, secs int, costMinor int64, sig signals.Signals) calls.CallRecord {
	end := start.Add(time.Duration(secs) * time.Second)
	return calls.CallRecord{
		SessionID:       sessionID,
		AgentID:         agentID,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: secs,
		Status:          calls.StatusCompleted,
		Signals:         sig,
		CostMinor:       costMinor,
		CreatedAt:       end,
	}
}

func TestSummary_Aggregates(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	repo.AddAgent("agent-1", "tenant-1")
	repo.AddAgent("agent-x", "tenant-other")

	hot := signals.Defaults()
	hot.IsHotLead = true
	hot.AgentIQ = floatPtr(80)

	churn := signals.Defaults()
	churn.IsChurnRisk = true
	churn.AgentIQ = floatPtr(60)

	failed := signals.Defaults()

	repo.AddCall(completedCall("s1", "agent-1", now.Add(-2*time.Hour), 45, 19, hot))
	repo.AddCall(completedCall("s2", "agent-1", now.Add(-time.Hour), 240, 100, churn))
	rec := completedCall("s3", "agent-1", now.Add(-30*time.Minute), 600, 250, failed)
	rec.Status = calls.StatusFailed
	repo.AddCall(rec)
	// Different tenant, must not leak into the summary.
	repo.AddCall(completedCall("sx", "agent-x", now.Add(-time.Hour), 300, 125, signals.Defaults()))
	// Yesterday, outside the daily window.
	repo.AddCall(completedCall("s0", "agent-1", now.Add(-24*time.Hour), 60, 25, signals.Defaults()))

	svc := newTestService(repo, now)
	sum, err := svc.Summary(context.Background(), "tenant-1", "")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if sum.TotalCallsToday != 3 {
		t.Errorf("TotalCallsToday = %d, want 3", sum.TotalCallsToday)
	}
	if sum.TotalMinutes != 14 { // 885s
		t.Errorf("TotalMinutes = %d, want 14", sum.TotalMinutes)
	}
	if sum.TotalCostEuros != 3.69 {
		t.Errorf("TotalCostEuros = %v, want 3.69", sum.TotalCostEuros)
	}
	if sum.SuccessRate != 66.7 {
		t.Errorf("SuccessRate = %v, want 66.7", sum.SuccessRate)
	}
	if sum.AvgCallDuration != 295 {
		t.Errorf("AvgCallDuration = %d, want 295", sum.AvgCallDuration)
	}
	if sum.LeadsToday != 1 || sum.ChurnRisksToday != 1 {
		t.Errorf("leads/churn = %d/%d, want 1/1", sum.LeadsToday, sum.ChurnRisksToday)
	}
	if sum.AvgAgentIQ != 70 {
		t.Errorf("AvgAgentIQ = %v, want 70", sum.AvgAgentIQ)
	}

	if got := sum.CostBreakdown["0-1min"]; got.Calls != 1 {
		t.Errorf("0-1min calls = %d, want 1", got.Calls)
	}
	if got := sum.CostBreakdown["1-5min"]; got.Calls != 1 {
		t.Errorf("1-5min calls = %d, want 1", got.Calls)
	}
	if got := sum.CostBreakdown["5min..."]; got.Calls != 1 {
		t.Errorf("5min... calls = %d, want 1", got.Calls)
	}

	if len(sum.CallVolumeTrend) != 12 {
		t.Fatalf("trend points = %d, want 12", len(sum.CallVolumeTrend))
	}
	// 12:30 and 13:30 both land in the 12:00 bucket, 14:00 in its own.
	var at12, at14 int
	for _, p := range sum.CallVolumeTrend {
		switch p.Hour {
		case "12:00":
			at12 = p.Calls
		case "14:00":
			at14 = p.Calls
		}
	}
	if at12 != 2 || at14 != 1 {
		t.Errorf("trend 12:00=%d 14:00=%d, want 2 and 1", at12, at14)
	}
}

func TestSummary_EmptyDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	repo.AddAgent("agent-1", "tenant-1")

	svc := newTestService(repo, now)
	sum, err := svc.Summary(context.Background(), "tenant-1", "")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalCallsToday != 0 || sum.SuccessRate != 0 || sum.AvgCallDuration != 0 {
		t.Errorf("empty summary has non-zero aggregates: %+v", sum)
	}
	if len(sum.CallVolumeTrend) != 12 {
		t.Errorf("trend points = %d, want 12", len(sum.CallVolumeTrend))
	}
}

func TestCallLogs_FiltersAndPaginates(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	repo.AddAgent("agent-1", "tenant-1")
	repo.AddAgent("agent-2", "tenant-1")

	for i := 0; i < 5; i++ {
		agent := "agent-1"
		if i%2 == 1 {
			agent = "agent-2"
		}
		repo.AddCall(completedCall("s"+string(rune('a'+i)), agent, now.Add(time.Duration(-i)*time.Minute), 90, 38, signals.Defaults()))
	}

	svc := newTestService(repo, now)

	all, err := svc.CallLogs(context.Background(), "tenant-1", CallQuery{})
	if err != nil {
		t.Fatalf("CallLogs: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	if all[0].CallID != "sa" {
		t.Errorf("newest first: got %s, want sa", all[0].CallID)
	}
	if all[0].DurationDisplay != "1:30" {
		t.Errorf("DurationDisplay = %s, want 1:30", all[0].DurationDisplay)
	}

	byAgent, err := svc.CallLogs(context.Background(), "tenant-1", CallQuery{AgentID: "agent-2"})
	if err != nil {
		t.Fatalf("CallLogs: %v", err)
	}
	if len(byAgent) != 2 {
		t.Errorf("agent-2 calls = %d, want 2", len(byAgent))
	}

	page, err := svc.CallLogs(context.Background(), "tenant-1", CallQuery{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("CallLogs: %v", err)
	}
	if len(page) != 2 || page[0].CallID != "sc" {
		t.Errorf("page = %+v, want 2 entries starting at sc", page)
	}
}

func TestRealtime_EstimatesRunningCost(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	repo.AddAgent("agent-1", "tenant-1")

	repo.AddCall(calls.CallRecord{
		SessionID: "live-1",
		AgentID:   "agent-1",
		StartTime: now.Add(-125 * time.Second),
		Status:    calls.StatusInProgress,
		Signals:   signals.Defaults(),
	})

	svc := newTestService(repo, now)
	live, err := svc.Realtime(context.Background(), "tenant-1", "")
	if err != nil {
		t.Fatalf("Realtime: %v", err)
	}
	if len(live) != 1 {
		t.Fatalf("len = %d, want 1", len(live))
	}
	if live[0].DurationSeconds != 125 {
		t.Errorf("DurationSeconds = %d, want 125", live[0].DurationSeconds)
	}
	// 125s at 25 minor/min prorates to 52 minor.
	if live[0].EstimatedCost != 0.52 {
		t.Errorf("EstimatedCost = %v, want 0.52", live[0].EstimatedCost)
	}
}
