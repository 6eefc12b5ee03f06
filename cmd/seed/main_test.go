package main

import (
	"strings"
	"testing"
)

func callLogsDDL(t *testing.T) string {
	t.Helper()
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS call_logs") {
			return stmt
		}
	}
	t.Fatal("no call_logs statement in schema")
	return ""
}

// Column types must line up with what calls.Insert binds: the frustration
// trend is a text label ("STABLE", "RISING"), not a number.
func TestSchema_CallLogColumnTypes(t *testing.T) {
	ddl := callLogsDDL(t)

	for col, typ := range map[string]string{
		"frustration_velocity": "TEXT",
		"sentiment_score":      "DOUBLE PRECISION",
		"agent_iq":             "DOUBLE PRECISION",
		"avg_sentiment":        "DOUBLE PRECISION",
		"priority_level":       "TEXT",
		"cost_minor":           "BIGINT",
		"duration_seconds":     "INTEGER",
	} {
		found := false
		for _, line := range strings.Split(ddl, "\n") {
			fields := strings.Fields(line)
			if len(fields) >= 2 && fields[0] == col {
				found = true
				if !strings.HasPrefix(strings.Join(fields[1:], " "), typ) {
					t.Errorf("%s declared as %q, want %s", col, strings.Join(fields[1:], " "), typ)
				}
			}
		}
		if !found {
			t.Errorf("column %s missing from call_logs DDL", col)
		}
	}
}

func TestSchema_EveryTablePresent(t *testing.T) {
	var all strings.Builder
	for _, stmt := range schema {
		all.WriteString(stmt)
		all.WriteString("\n")
	}
	for _, table := range []string{"tenants", "wallets", "agents", "transactions", "call_logs", "audit_events"} {
		if !strings.Contains(all.String(), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("schema missing table %s", table)
		}
	}
}
