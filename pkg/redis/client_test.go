package redis

import (
	"testing"
	"time"

	"github.com/solvitek/quoteline-backend/pkg/config"
)

func TestKeyBuilding(t *testing.T) {
	c := &Client{}
	if got := c.DraftKey("abc"); got != "ql:draft:abc" {
		t.Fatalf("unexpected draft key: %s", got)
	}
	if got := c.CacheKey("matrix", "group-1"); got != "ql:cache:matrix:group-1" {
		t.Fatalf("unexpected cache key: %s", got)
	}
	if got := c.CacheKey("matrix", "  "); got != "ql:cache:matrix" {
		t.Fatalf("blank parts should be dropped: %s", got)
	}
}

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		Address:      "localhost:6379",
		DB:           2,
		PoolSize:     5,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 2 || opts.PoolSize != 5 {
		t.Fatalf("options not applied: %+v", opts)
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@localhost:6380/3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 3 {
		t.Fatalf("url not parsed: %+v", opts)
	}
}
