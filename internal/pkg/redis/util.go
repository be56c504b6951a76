package redis

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// SetJSON stores v as JSON with a ttl
func SetJSON(ctx context.Context, key string, v any, expiration time.Duration) error {
	if Rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Rdb.Set(ctx, key, b, expiration).Err()
}

// GetJSON decodes the value at key into v, hit is false on a miss
func GetJSON(ctx context.Context, key string, v any) (bool, error) {
	if Rdb == nil {
		return false, nil
	}
	b, err := Rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err = json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}

// TryLock SET NX with expiration, retried every 200ms up to retryTimes (-1 forever)
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if Rdb == nil {
		return true, nil
	}
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return false, nil
}

// UnLock deletes key only if it still holds value
func UnLock(ctx context.Context, key string, value interface{}) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Eval(ctx, unlockScript, []string{key}, value).Err()
}

// DeleteKey removes keys
func DeleteKey(ctx context.Context, keys ...string) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Del(ctx, keys...).Err()
}
