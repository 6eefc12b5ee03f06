package utils

import (
	"testing"
	"time"
)

func TestRedisConfig_Defaults(t *testing.T) {
	got := RedisConfig{Addr: "localhost:6379"}.withDefaults()

	if got.DialTimeout != 3*time.Second {
		t.Errorf("DialTimeout = %v, want 3s", got.DialTimeout)
	}
	if got.ReadTimeout != 2*time.Second || got.WriteTimeout != 2*time.Second {
		t.Errorf("r/w timeouts = %v/%v, want 2s/2s", got.ReadTimeout, got.WriteTimeout)
	}
	if got.PoolSize != 20 {
		t.Errorf("PoolSize = %d, want 20", got.PoolSize)
	}
	if got.Addr != "localhost:6379" {
		t.Errorf("Addr changed: %q", got.Addr)
	}
}

func TestCacheMissSentinel(t *testing.T) {
	if ErrCacheMiss == nil || ErrCacheMiss.Error() != "cache miss" {
		t.Fatalf("unexpected sentinel: %v", ErrCacheMiss)
	}
}
