package signals

// Signals is the fixed set of behavioral/business indicators derived from a
// session's analysis payload. The inbound payload is open-ended and untyped;
// this package parses it permissively into this shape and discards everything
// it does not recognize.
//
// Pointer fields distinguish "absent" from zero. Value fields carry defaults.
type Signals struct {
	SentimentScore      *float64 `json:"sentiment_score,omitempty"`
	FrustrationVelocity *string  `json:"frustration_velocity,omitempty"`
	AgentIQ             *float64 `json:"agent_iq,omitempty"`
	AvgSentiment        *float64 `json:"avg_sentiment,omitempty"`
	CorrectionCount     int      `json:"correction_count"`
	IsChurnRisk         bool     `json:"is_churn_risk"`
	IsHotLead           bool     `json:"is_hot_lead"`
	PriorityLevel       string   `json:"priority_level"`
}

const DefaultPriorityLevel = "NORMAL"

// Defaults returns a Signals with every field at its default.
func Defaults() Signals {
	return Signals{PriorityLevel: DefaultPriorityLevel}
}

// Extract reads the expected "metrics" and "business_signals" sub-objects out
// of an analysis payload. Every field degrades to its default when the parent
// is absent, not an object, or the key is missing or mistyped. It never fails.
func Extract(analysis map[string]any) Signals {
	out := Defaults()
	if analysis == nil {
		return out
	}

	if metrics, ok := analysis["metrics"].(map[string]any); ok {
		out.FrustrationVelocity = optString(metrics, "frustration_velocity")
		out.AgentIQ = optFloat(metrics, "agent_iq")
		out.AvgSentiment = optFloat(metrics, "avg_sentiment")
		out.CorrectionCount = intOr(metrics, "correction_count", 0)
	}

	if biz, ok := analysis["business_signals"].(map[string]any); ok {
		out.SentimentScore = optFloat(biz, "sentiment_score")
		out.IsChurnRisk = boolOr(biz, "is_churn_risk", false)
		out.IsHotLead = boolOr(biz, "is_hot_lead", false)
		if s := optString(biz, "priority_level"); s != nil && *s != "" {
			out.PriorityLevel = *s
		}
	}

	return out
}

func optFloat(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

func optString(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

// intOr tolerates the float64 that encoding/json produces for all numbers.
func intOr(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func boolOr(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}
