package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

// changeChannel mirrors the browser storage event: every key write is
// announced here so carts mutated by another process are picked up by
// mounted surfaces.
const changeChannel = "storefront:key-changes"

type KVStore struct {
	client *redis.Client
	log    *logger.Logger
}

func NewKVStore(conn *Connection, log *logger.Logger) *KVStore {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &KVStore{
		client: client,
		log:    log,
	}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ports.ErrKeyNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}

	// Best effort; a missed announcement only delays badge refresh.
	if err := s.client.Publish(ctx, changeChannel, key).Err(); err != nil {
		s.log.Warn("Failed to announce key change", "key", key, "error", err.Error())
	}

	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}

	if err := s.client.Publish(ctx, changeChannel, key).Err(); err != nil {
		s.log.Warn("Failed to announce key change", "key", key, "error", err.Error())
	}

	return nil
}

// WatchChanges forwards key-change announcements from other processes onto
// the local change bus until ctx is cancelled.
func (s *KVStore) WatchChanges(ctx context.Context, changes *notifier.Bus[notifier.KeyChange]) {
	pubsub := s.client.Subscribe(ctx, changeChannel)

	go func() {
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				changes.Publish(notifier.KeyChange{Key: msg.Payload})
			}
		}
	}()
}
