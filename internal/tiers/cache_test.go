package tiers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
	pkgredis "github.com/yukselticaret/trendyshop-backend/pkg/redis"
)

type stubCacheStore struct {
	values  map[string]string
	getErr  error
	setErr  error
	deleted []string
	ttl     time.Duration
}

func newStubCacheStore() *stubCacheStore {
	return &stubCacheStore{values: map[string]string{}}
}

func (s *stubCacheStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", pkgredis.ErrMiss
	}
	return v, nil
}

func (s *stubCacheStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = string(value.([]byte))
	s.ttl = ttl
	return nil
}

func (s *stubCacheStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
		s.deleted = append(s.deleted, key)
	}
	return nil
}

func (s *stubCacheStore) TierCacheKey(productID string) string {
	return "ts:price_tiers:" + productID
}

type stubReader struct {
	tiers []models.PriceTier
	err   error
	calls int
}

func (s *stubReader) TiersForProduct(context.Context, uuid.UUID) ([]models.PriceTier, error) {
	s.calls++
	return s.tiers, s.err
}

func TestCachedReaderMissThenHit(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	next := &stubReader{tiers: []models.PriceTier{
		{ID: uuid.New(), ProductID: productID, MinQuantity: 10, Price: decimal.RequireFromString("89.90")},
	}}
	store := newStubCacheStore()
	reader := NewCachedReader(next, store, 5*time.Minute, logger.Nop(), nil)

	first, err := reader.TiersForProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := reader.TiersForProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.calls != 1 {
		t.Fatalf("expected one store read, got %d", next.calls)
	}
	if store.ttl != 5*time.Minute {
		t.Fatalf("expected ttl 5m, got %v", store.ttl)
	}
	if len(first) != 1 || len(second) != 1 || !second[0].Price.Equal(first[0].Price) || second[0].MinQuantity != 10 {
		t.Fatalf("cached tiers differ: %+v vs %+v", first, second)
	}
}

func TestCachedReaderFallsThroughOnCacheErrors(t *testing.T) {
	t.Parallel()

	next := &stubReader{tiers: []models.PriceTier{}}
	store := newStubCacheStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	reader := NewCachedReader(next, store, time.Minute, logger.Nop(), nil)

	if _, err := reader.TiersForProduct(context.Background(), uuid.New()); err != nil {
		t.Fatalf("cache failure must not surface: %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected store read, got %d", next.calls)
	}
}

func TestCachedReaderIgnoresCorruptEntry(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	next := &stubReader{tiers: []models.PriceTier{}}
	store := newStubCacheStore()
	store.values[store.TierCacheKey(productID.String())] = "{not json"
	reader := NewCachedReader(next, store, time.Minute, logger.Nop(), nil)

	if _, err := reader.TiersForProduct(context.Background(), productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.calls != 1 {
		t.Fatalf("expected fallthrough to store, got %d calls", next.calls)
	}
}

func TestCachedReaderPropagatesStoreError(t *testing.T) {
	t.Parallel()

	next := &stubReader{err: errors.New("db down")}
	reader := NewCachedReader(next, newStubCacheStore(), time.Minute, logger.Nop(), nil)

	if _, err := reader.TiersForProduct(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected store error")
	}
}

func TestCachedReaderInvalidate(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	store := newStubCacheStore()
	key := store.TierCacheKey(productID.String())
	store.values[key] = "[]"
	reader := NewCachedReader(&stubReader{}, store, time.Minute, logger.Nop(), nil)

	if err := reader.Invalidate(context.Background(), productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.values[key]; ok {
		t.Fatal("expected key to be removed")
	}
}
