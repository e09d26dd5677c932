package repositories

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/civicgate/email-validation/internal/core/ports"
)

const (
	// validationTokenPrefix prefixes Redis keys for validation tokens.
	// It's a static prefix and not a credential; silence gosec G101 here.
	validationTokenPrefix = "app:validation_token" //nolint:gosec
)

// TokenStoreRedisRepository reads validation token records from Redis.
// Records are minted (and expired) by the profile-change service; this
// repository is strictly read-only.
type TokenStoreRedisRepository struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

func NewTokenStoreRedisRepository(redisClient *redis.Client, logger *logrus.Logger) *TokenStoreRedisRepository {
	return &TokenStoreRedisRepository{redisClient: redisClient, logger: logger}
}

// Ensure TokenStoreRedisRepository implements ports.TokenStore
var _ ports.TokenStore = (*TokenStoreRedisRepository)(nil)

func (r *TokenStoreRedisRepository) key(partitionKey, rowKey string) string {
	return fmt.Sprintf("%s:%s:%s", validationTokenPrefix, partitionKey, rowKey)
}

// Get implements TokenStore.Get. A missing key and a validator-hash
// mismatch are indistinguishable: both come back as not found.
func (r *TokenStoreRedisRepository) Get(ctx context.Context, partitionKey, rowKey string) ([]byte, bool, error) {
	b, err := r.redisClient.Get(ctx, r.key(partitionKey, rowKey)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"partition_key": partitionKey}).WithError(err).Error("redis: failed to get validation token")
		}
		return nil, false, fmt.Errorf("failed to get validation token from redis: %w", err)
	}
	return b, true, nil
}
