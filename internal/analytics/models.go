package analytics

import "voicebilling-platform/internal/signals"

// Read-side response models for the dashboard. Aggregation happens over
// immutable call records; this package never writes.

type CallLogEntry struct {
	CallID          string `json:"call_id"`
	AgentID         string `json:"agent_id"`
	DurationDisplay string `json:"duration_display"`
	DurationSeconds int    `json:"duration_seconds"`
	CostEuros       float64 `json:"cost_euros"`
	Status          string  `json:"status"`
	StartTime       string  `json:"start_time"`
	TTFTMs          *int    `json:"ttft_ms,omitempty"`

	Signals signals.Signals `json:"signals"`
}

type CallQuery struct {
	AgentID string
	Status  string
	Limit   int
	Offset  int
}

// Summary is the daily analytics block, cached for 60 seconds.
type Summary struct {
	TotalCallsToday int     `json:"total_calls_today"`
	TotalMinutes    int     `json:"total_minutes_today"`
	TotalCostEuros  float64 `json:"total_cost_today"`
	SuccessRate     float64 `json:"success_rate"`
	AvgCallDuration int     `json:"avg_call_duration"`
	ActiveCalls     int     `json:"active_calls"`

	// CallVolumeTrend buckets today's calls into 2-hour slots.
	CallVolumeTrend []TrendPoint `json:"call_volume_trend"`

	// CostBreakdown groups calls by duration bucket.
	CostBreakdown map[string]BucketStat `json:"cost_breakdown"`

	LeadsToday      int     `json:"leads_today"`
	ChurnRisksToday int     `json:"churn_risks_today"`
	AvgAgentIQ      float64 `json:"avg_agent_iq"`
}

type TrendPoint struct {
	Hour  string `json:"hour"`
	Calls int    `json:"calls"`
}

type BucketStat struct {
	Calls int     `json:"calls"`
	Cost  float64 `json:"cost"`
}

// LiveCall is one currently active call for the realtime view.
type LiveCall struct {
	CallID          string  `json:"call_id"`
	AgentID         string  `json:"agent_id"`
	DurationSeconds int     `json:"duration_seconds"`
	EstimatedCost   float64 `json:"estimated_cost"`
	Status          string  `json:"status"`
}
