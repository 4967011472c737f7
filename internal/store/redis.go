package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotKeyPrefix = "deal-viability:snapshot:"
	snapshotIndexKey  = "deal-viability:snapshots"
)

// RedisStore is a Repository backed by Redis. Snapshots are stored as JSON
// strings and indexed in a sorted set scored by creation time.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb}
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping checks the connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Save writes the snapshot and its index entry in one transaction.
func (r *RedisStore) Save(ctx context.Context, snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snapshot.ID, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, snapshotKeyPrefix+snapshot.ID, data, 0)
		pipe.ZAdd(ctx, snapshotIndexKey, redis.Z{
			Score:  float64(snapshot.CreatedAt.UnixNano()),
			Member: snapshot.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

// Get returns the snapshot with the given ID.
func (r *RedisStore) Get(ctx context.Context, id string) (Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}
	return decodeSnapshot(data)
}

// List returns all indexed snapshots, oldest first. Index entries whose
// value has disappeared are skipped.
func (r *RedisStore) List(ctx context.Context) ([]Snapshot, error) {
	ids, err := r.client.ZRange(ctx, snapshotIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot index: %w", err)
	}
	if len(ids) == 0 {
		return []Snapshot{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = snapshotKeyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	out := make([]Snapshot, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		snapshot, err := decodeSnapshot([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, snapshot)
	}
	return out, nil
}

func decodeSnapshot(data []byte) (Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot, nil
}
