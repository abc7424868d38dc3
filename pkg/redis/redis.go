package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis connection used for the quiz result archive.
type Client struct {
	client *redis.Client
	ctx    context.Context
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connecting to Redis at %s: %w", addr, err)
	}

	log.Println("✅ Connected to Redis")

	return &Client{
		client: rdb,
		ctx:    ctx,
	}, nil
}

// Set stores a value under key with the given TTL (0 means no expiry).
func (c *Client) Set(key, value string, ttl time.Duration) error {
	return c.client.Set(c.ctx, key, value, ttl).Err()
}

// Get returns the value stored under key.
func (c *Client) Get(key string) (string, error) {
	val, err := c.client.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("key %s not found", key)
	}
	if err != nil {
		return "", fmt.Errorf("getting key %s: %w", key, err)
	}
	return val, nil
}

// AddToSet adds a member to the set stored under key.
func (c *Client) AddToSet(key string, member string) error {
	return c.client.SAdd(c.ctx, key, member).Err()
}

// GetSetMembers returns all members of the set stored under key.
func (c *Client) GetSetMembers(key string) ([]string, error) {
	members, err := c.client.SMembers(c.ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("getting members of %s: %w", key, err)
	}
	return members, nil
}

// RemoveFromSet removes a member from the set stored under key.
func (c *Client) RemoveFromSet(key string, member string) error {
	return c.client.SRem(c.ctx, key, member).Err()
}

// HealthCheck verifies that Redis is reachable.
func (c *Client) HealthCheck() error {
	if _, err := c.client.Ping(c.ctx).Result(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}
