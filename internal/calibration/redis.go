package calibration

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding the calibration fields.
const DefaultRedisKey = "blockassist:calibration"

// RedisStore keeps the calibration mapping in a Redis hash, one field per key.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore creates a store using the hash at key.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load reads the hash. An empty or missing hash means not calibrated.
func (s *RedisStore) Load(ctx context.Context) (Calibration, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Calibration{}, fmt.Errorf("failed to read calibration hash %s: %w", s.key, err)
	}
	values, err := parseHash(fields)
	if err != nil {
		return Calibration{}, fmt.Errorf("calibration hash %s: %w", s.key, err)
	}
	return Decode(values)
}

// Save replaces the hash atomically so stale piece fields do not survive.
func (s *RedisStore) Save(ctx context.Context, c Calibration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	fields := make(map[string]any)
	for k, v := range Encode(c) {
		fields[k] = v
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	pipe.HSet(ctx, s.key, fields)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write calibration hash %s: %w", s.key, err)
	}
	return nil
}

// parseHash converts Redis string fields to integers.
func parseHash(fields map[string]string) (map[string]int, error) {
	values := make(map[string]int, len(fields))
	for k, raw := range fields {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		values[k] = n
	}
	return values, nil
}

var _ Store = (*RedisStore)(nil)
