package utils

import (
	"testing"
	"time"
)

func TestPoolConfig_Defaults(t *testing.T) {
	got := PostgresPoolConfig{}.withDefaults()

	if got.MaxOpenConns != 25 || got.MaxIdleConns != 25 {
		t.Errorf("conns = %d/%d, want 25/25", got.MaxOpenConns, got.MaxIdleConns)
	}
	if got.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 30m", got.ConnMaxLifetime)
	}
	if got.PingTimeout != 5*time.Second {
		t.Errorf("PingTimeout = %v, want 5s", got.PingTimeout)
	}
}

func TestPoolConfig_ExplicitValuesKept(t *testing.T) {
	in := PostgresPoolConfig{
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
		PingTimeout:     time.Second,
	}
	if got := in.withDefaults(); got != in {
		t.Errorf("withDefaults() = %+v, want unchanged %+v", got, in)
	}
}
