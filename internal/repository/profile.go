package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profiles are redis hashes under player:<client-id> with a single name field.
const (
	profileKeyPrefix = "player:"
	nameField        = "name"
)

type ProfileRepository interface {
	CreateOrUpdate(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, clientID string) (*entity.Profile, error)
}

type hashProfile struct {
	client *redis.Client
}

func NewProfileRepository(client *redis.Client) ProfileRepository {
	return &hashProfile{
		client: client,
	}
}

func profileKey(clientID string) string {
	return profileKeyPrefix + clientID
}

func (that *hashProfile) CreateOrUpdate(ctx context.Context, profile *entity.Profile) error {
	if err := that.client.HSet(ctx, profileKey(profile.ClientID), nameField, profile.Name).Err(); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.ClientID, err)
	}

	return nil
}

// GetByID returns ErrProfileNotFound when no name was ever saved for the client.
func (that *hashProfile) GetByID(ctx context.Context, clientID string) (*entity.Profile, error) {
	name, err := that.client.HGet(ctx, profileKey(clientID), nameField).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrProfileNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", clientID, err)
	}

	return &entity.Profile{ClientID: clientID, Name: name}, nil
}
