package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"currency-wallet/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// OrderStore implements ports.DepositOrderStore using Redis. Orders are
// keyed by gateway order ID and expire with the configured TTL; a claim
// removes the key atomically so an order confirms at most once.
type OrderStore struct {
	client *goredis.Client
	prefix string
}

// NewOrderStore creates a Redis-backed deposit order store.
func NewOrderStore(client *goredis.Client) *OrderStore {
	return &OrderStore{
		client: client,
		prefix: "deposit_order:",
	}
}

// Save stores a pending order with TTL.
func (s *OrderStore) Save(ctx context.Context, order *domain.DepositOrder, ttl time.Duration) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal deposit order: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+order.OrderID, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis order save: %w", err)
	}
	return nil
}

// Get retrieves a pending order. Returns nil, nil if absent or expired.
func (s *OrderStore) Get(ctx context.Context, orderID string) (*domain.DepositOrder, error) {
	data, err := s.client.Get(ctx, s.prefix+orderID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis order get: %w", err)
	}
	return unmarshalOrder(data)
}

// Claim atomically fetches and removes a pending order via GETDEL.
// Returns nil, nil if absent or expired.
func (s *OrderStore) Claim(ctx context.Context, orderID string) (*domain.DepositOrder, error) {
	data, err := s.client.GetDel(ctx, s.prefix+orderID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis order claim: %w", err)
	}
	return unmarshalOrder(data)
}

func unmarshalOrder(data []byte) (*domain.DepositOrder, error) {
	order := &domain.DepositOrder{}
	if err := json.Unmarshal(data, order); err != nil {
		return nil, fmt.Errorf("unmarshal deposit order: %w", err)
	}
	return order, nil
}
