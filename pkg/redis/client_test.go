package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yukselticaret/trendyshop-backend/pkg/config"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.TierCacheKey("p-1")
	if err := client.Set(ctx, key, `[{"min_quantity":1}]`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if mock.ttls[key] != time.Minute {
		t.Fatalf("expected ttl to be forwarded, got %v", mock.ttls[key])
	}
	got, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != `[{"min_quantity":1}]` {
		t.Fatalf("unexpected value %q", got)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	_, err = client.Get(ctx, key)
	if !IsMiss(err) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestUninitializedClient(t *testing.T) {
	var client *Client
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := (&Client{}).Get(context.Background(), "k"); err == nil || IsMiss(err) {
		t.Fatalf("expected not-initialized error, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil client should be a no-op, got %v", err)
	}
}

func TestTierCacheKey(t *testing.T) {
	client := &Client{}
	if got := client.TierCacheKey("abc"); got != "ts:price_tiers:abc" {
		t.Fatalf("unexpected tier key %s", got)
	}
	if got := client.TierCacheKey(" "); got != "ts:price_tiers" {
		t.Fatalf("blank ids should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@localhost:6380/2", PoolSize: 7, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("unexpected parsed options %+v", opts)
	}
	if opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("expected config defaults applied, got pool=%d dial=%v", opts.PoolSize, opts.DialTimeout)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.DB != 3 {
		t.Fatalf("unexpected address options %+v", opts)
	}
}

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
