package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vv-pms/pms-backend/internal/availability/domain"
)

const availKeyPrefix = "avail:" // Key layout: avail:{kind}:{user_id}

// AvailabilityRepository handles Redis operations for user availability grids
type AvailabilityRepository struct {
	client *redis.Client
}

// NewAvailabilityRepository creates a new AvailabilityRepository
func NewAvailabilityRepository(client *redis.Client) *AvailabilityRepository {
	return &AvailabilityRepository{client: client}
}

// Get returns the stored availability for (userID, kind), or
// domain.ErrNotSet when none was ever written.
func (r *AvailabilityRepository) Get(ctx context.Context, userID int64, kind domain.UserKind) (*domain.Availability, error) {
	data, err := r.client.Get(ctx, r.key(userID, kind)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotSet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	var avail domain.Availability
	if err := json.Unmarshal([]byte(data), &avail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal availability: %w", err)
	}
	return &avail, nil
}

// Set stores the availability grid for (userID, kind).
func (r *AvailabilityRepository) Set(ctx context.Context, avail *domain.Availability) error {
	data, err := json.Marshal(avail)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}

	if err := r.client.Set(ctx, r.key(avail.UserID, avail.Kind), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	return nil
}

// Delete removes the stored grid for (userID, kind).
func (r *AvailabilityRepository) Delete(ctx context.Context, userID int64, kind domain.UserKind) error {
	if err := r.client.Del(ctx, r.key(userID, kind)).Err(); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) key(userID int64, kind domain.UserKind) string {
	return fmt.Sprintf("%s%s:%d", availKeyPrefix, kind, userID)
}
