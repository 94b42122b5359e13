package checkpoint

import (
	"context"
	stderrors "errors"
	"net"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/coachmark/pkg/errors"
)

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix namespaces keys. Defaults to "coachmark:checkpoint".
	Prefix string

	// TTL expires checkpoints. Zero keeps them forever.
	TTL time.Duration
}

// RedisStore keeps checkpoints as JSON strings in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to redis at %s", cfg.Addr)
	}
	return newRedisStore(client, cfg), nil
}

func newRedisStore(client *redis.Client, cfg RedisConfig) *RedisStore {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "coachmark:checkpoint"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: cfg.TTL}
}

func (s *RedisStore) key(tourID string) string { return redisKey(s.prefix, tourID) }

func redisKey(prefix, tourID string) string { return prefix + ":" + tourID }

func (s *RedisStore) Load(ctx context.Context, tourID string) (Checkpoint, bool, error) {
	if err := errors.ValidateTourID(tourID); err != nil {
		return Checkpoint{}, false, err
	}
	var data []byte
	err := withRetry(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.key(tourID)).Bytes()
		return classifyRedis(err)
	})
	if stderrors.Is(err, redis.Nil) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, errors.Wrap(errors.ErrCodeStore, err, "load checkpoint %s", tourID)
	}

	var c Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return Checkpoint{}, false, errors.Wrap(errors.ErrCodeStore, err, "parse checkpoint %s", tourID)
	}
	return c, true, nil
}

func (s *RedisStore) Save(ctx context.Context, c Checkpoint) error {
	if err := errors.ValidateTourID(c.TourID); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "marshal checkpoint")
	}
	err = withRetry(ctx, func() error {
		return classifyRedis(s.client.Set(ctx, s.key(c.TourID), data, s.ttl).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save checkpoint %s", c.TourID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, tourID string) error {
	if err := errors.ValidateTourID(tourID); err != nil {
		return err
	}
	err := withRetry(ctx, func() error {
		return classifyRedis(s.client.Del(ctx, s.key(tourID)).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete checkpoint %s", tourID)
	}
	return nil
}

// List scans the key space under the store prefix.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, redisKey(s.prefix, "*"), 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), redisKey(s.prefix, "")))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "scan checkpoints")
	}
	return ids, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

// classifyRedis marks network failures as retryable.
func classifyRedis(err error) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return retryable(err)
	}
	return err
}

var _ Store = (*RedisStore)(nil)
