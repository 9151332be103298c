package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 获取整数类型的值，键不存在时返回错误
func GetInt64(ctx context.Context, key string) (int64, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// IncrBy 原子增减计数器
func IncrBy(ctx context.Context, key string, delta int64) error {
	return Rdb.IncrBy(ctx, key, delta).Err()
}

// SAdd 向集合添加成员
func SAdd(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SAdd(ctx, key, members...).Err()
}

// GetSet 获取集合
func GetSet(ctx context.Context, key string) ([]string, error) {
	value, err := Rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return value, nil
}

// TryLock 以 SetNX 抢占分布式锁，retryTimes 为 -1 时无限重试
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

func Rename(ctx context.Context, oldKey string, newKey string) error {
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}

// SetWithMidnightExpiration 设置键值并在次日零点前 5 分钟过期
func SetWithMidnightExpiration(ctx context.Context, key string, value interface{}) error {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	expiration := time.Until(midnight) - time.Minute*5
	if expiration <= 0 {
		return nil
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}
