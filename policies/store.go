package policies

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/harmonlab/harmony-rl/rl"
)

// Store persists learner snapshots by name.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
}

// FileStore keeps snapshots as files under a directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

func (s *FileStore) Save(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0644)
}

func (s *FileStore) Load(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(s.path(name))
}

// RedisStore keeps snapshots in Redis, for sharing checkpoints between
// training workers on different hosts.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(addr, prefix string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + ":checkpoint:" + name
}

func (s *RedisStore) Save(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.key(name), data, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("no checkpoint named %q", name)
	}
	return data, err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// SaveLearner snapshots a checkpointable learner into a store.
func SaveLearner(ctx context.Context, store Store, name string, learner rl.Learner) error {
	cp, ok := learner.(rl.Checkpointer)
	if !ok {
		return fmt.Errorf("learner does not support checkpointing")
	}
	data, err := cp.Snapshot()
	if err != nil {
		return err
	}
	return store.Save(ctx, name, data)
}

// LoadLearner restores a learner from a stored snapshot.
func LoadLearner(ctx context.Context, store Store, name string, learner rl.Learner) error {
	cp, ok := learner.(rl.Checkpointer)
	if !ok {
		return fmt.Errorf("learner does not support checkpointing")
	}
	data, err := store.Load(ctx, name)
	if err != nil {
		return err
	}
	return cp.Restore(data)
}
