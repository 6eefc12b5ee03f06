package signals

import (
	"encoding/json"
	"testing"
)

func TestExtractFullPayload(t *testing.T) {
	raw := `{
		"metrics": {
			"frustration_velocity": "RISING",
			"agent_iq": 87.5,
			"avg_sentiment": 0.42,
			"correction_count": 3
		},
		"business_signals": {
			"sentiment_score": 0.8,
			"is_churn_risk": true,
			"is_hot_lead": true,
			"priority_level": "HIGH"
		}
	}`
	var analysis map[string]any
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	s := Extract(analysis)
	if s.FrustrationVelocity == nil || *s.FrustrationVelocity != "RISING" {
		t.Fatalf("frustration_velocity: %+v", s.FrustrationVelocity)
	}
	if s.AgentIQ == nil || *s.AgentIQ != 87.5 {
		t.Fatalf("agent_iq: %+v", s.AgentIQ)
	}
	if s.AvgSentiment == nil || *s.AvgSentiment != 0.42 {
		t.Fatalf("avg_sentiment: %+v", s.AvgSentiment)
	}
	if s.CorrectionCount != 3 {
		t.Fatalf("correction_count: %d", s.CorrectionCount)
	}
	if s.SentimentScore == nil || *s.SentimentScore != 0.8 {
		t.Fatalf("sentiment_score: %+v", s.SentimentScore)
	}
	if !s.IsChurnRisk || !s.IsHotLead || s.PriorityLevel != "HIGH" {
		t.Fatalf("business signals: %+v", s)
	}
}

func TestExtractDegradesToDefaults(t *testing.T) {
	cases := map[string]map[string]any{
		"nil analysis":               nil,
		"empty analysis":             {},
		"business_signals null":      {"business_signals": nil},
		"business_signals a number":  {"business_signals": 42.0},
		"business_signals a string":  {"business_signals": "oops"},
		"metrics an array":           {"metrics": []any{1, 2}},
		"mistyped leaf fields":       {"metrics": map[string]any{"agent_iq": "high", "correction_count": "three"}, "business_signals": map[string]any{"is_churn_risk": "yes", "priority_level": 5.0}},
		"unrecognized keys ignored":  {"something_else": map[string]any{"x": 1}},
	}

	for name, analysis := range cases {
		s := Extract(analysis)
		if s.SentimentScore != nil || s.FrustrationVelocity != nil || s.AgentIQ != nil || s.AvgSentiment != nil {
			t.Fatalf("%s: expected absent optionals, got %+v", name, s)
		}
		if s.CorrectionCount != 0 || s.IsChurnRisk || s.IsHotLead || s.PriorityLevel != DefaultPriorityLevel {
			t.Fatalf("%s: expected defaults, got %+v", name, s)
		}
	}
}

func TestExtractPartialMetricsOnly(t *testing.T) {
	s := Extract(map[string]any{
		"metrics": map[string]any{"correction_count": 2.0},
	})
	if s.CorrectionCount != 2 {
		t.Fatalf("correction_count: %d", s.CorrectionCount)
	}
	if s.PriorityLevel != DefaultPriorityLevel {
		t.Fatalf("priority_level: %q", s.PriorityLevel)
	}
}
