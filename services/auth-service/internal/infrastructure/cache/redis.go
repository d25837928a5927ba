package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshTTL  = 7 * 24 * time.Hour
	sessionTTL  = 30 * 24 * time.Hour
	redirectTTL = 5 * time.Minute
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("cache: not found")

type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) SaveRefresh(ctx context.Context, userID string, refreshToken string) error {
	return c.client.Set(ctx, "refresh_token:"+refreshToken, userID, refreshTTL).Err()
}

func (c *TokenCache) CheckRefresh(ctx context.Context, refreshToken string) (string, error) {
	return c.get(ctx, "refresh_token:"+refreshToken)
}

func (c *TokenCache) DeleteRefresh(ctx context.Context, refreshToken string) error {
	return c.client.Del(ctx, "refresh_token:"+refreshToken).Err()
}

// SetDeviceSession records which user is signed in on deviceID.
func (c *TokenCache) SetDeviceSession(ctx context.Context, deviceID, userID string) error {
	return c.client.Set(ctx, "device_session:"+deviceID, userID, sessionTTL).Err()
}

func (c *TokenCache) DeviceSession(ctx context.Context, deviceID string) (string, error) {
	return c.get(ctx, "device_session:"+deviceID)
}

func (c *TokenCache) ClearDeviceSession(ctx context.Context, deviceID string) error {
	return c.client.Del(ctx, "device_session:"+deviceID).Err()
}

// SaveRedirectResult parks the outcome of a redirect sign-in until the device
// loads again.
func (c *TokenCache) SaveRedirectResult(ctx context.Context, deviceID string, result []byte) error {
	return c.client.Set(ctx, "redirect_result:"+deviceID, result, redirectTTL).Err()
}

// TakeRedirectResult returns the parked result once and deletes it.
func (c *TokenCache) TakeRedirectResult(ctx context.Context, deviceID string) ([]byte, error) {
	val, err := c.client.GetDel(ctx, "redirect_result:"+deviceID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return val, err
}

func (c *TokenCache) get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}
