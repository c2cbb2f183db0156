package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is a read-side stock cache. Reservation decisions never consult
// it; the database transaction is the only stock authority.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func stockKey(productID int64) string {
	return fmt.Sprintf("stock:%d", productID)
}

// SetStock caches a product's current stock level
func (c *Client) SetStock(ctx context.Context, productID int64, stock int) error {
	return c.rdb.Set(ctx, stockKey(productID), stock, 0).Err()
}

// GetStock reads a product's cached stock level. Returns an error on a
// cache miss so callers can fall back to the database.
func (c *Client) GetStock(ctx context.Context, productID int64) (int, error) {
	stock, err := c.rdb.Get(ctx, stockKey(productID)).Int()
	if err == redis.Nil {
		return 0, fmt.Errorf("stock not cached for product %d", productID)
	}
	if err != nil {
		return 0, err
	}
	return stock, nil
}

// DeleteStock evicts a product's cached stock level
func (c *Client) DeleteStock(ctx context.Context, productID int64) error {
	return c.rdb.Del(ctx, stockKey(productID)).Err()
}

// CacheDashboardStats caches serialized dashboard stats with a TTL
func (c *Client) CacheDashboardStats(ctx context.Context, date string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("dashboard:%s", date), payload, ttl).Err()
}

// GetDashboardStats reads cached dashboard stats; nil on a miss
func (c *Client) GetDashboardStats(ctx context.Context, date string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, fmt.Sprintf("dashboard:%s", date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}
