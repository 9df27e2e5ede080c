package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// tokenKeyPrefix is the Redis key prefix for token -> user lookups
	tokenKeyPrefix = "session:"
	// userKeyPrefix is the Redis key prefix for the user -> token index
	userKeyPrefix = "user_session:"
)

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// across replicas. Keys carry no TTL; sessions live until revoked.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at the given URL and verifies the
// connection before returning.
func NewRedisStore(redisURL, password string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, token, userID string) (string, error) {
	// SETNX on the user index makes the first writer win, so concurrent
	// logins converge on one token.
	set, err := s.client.SetNX(ctx, userKeyPrefix+userID, token, 0).Result()
	if err != nil {
		return "", err
	}
	if !set {
		existing, err := s.client.Get(ctx, userKeyPrefix+userID).Result()
		if err == nil && existing != "" {
			return existing, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			return "", err
		}
		// index vanished between SETNX and GET, retry once
		return s.Save(ctx, token, userID)
	}

	if err := s.client.Set(ctx, tokenKeyPrefix+token, userID, 0).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) UserID(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisStore) TokenForUser(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, userKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) (bool, error) {
	userID, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.client.Del(ctx, tokenKeyPrefix+token).Err(); err != nil {
		return false, err
	}
	// Drop the user index only when it still points at this token.
	current, err := s.client.Get(ctx, userKeyPrefix+userID).Result()
	if err == nil && current == token {
		if err := s.client.Del(ctx, userKeyPrefix+userID).Err(); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *RedisStore) DeleteAllForUser(ctx context.Context, userID string) (int, error) {
	token, err := s.client.Get(ctx, userKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if err := s.client.Del(ctx, tokenKeyPrefix+token, userKeyPrefix+userID).Err(); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
