package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ConfirmationCodeRepository holds the one-time codes issued on sign-up.
// Each user has at most one live code; storing a new one supersedes the
// previous, and a successful verification consumes it.
type ConfirmationCodeRepository interface {
	Store(ctx context.Context, username, code string) error
	// VerifyAndConsume reports whether the code matches the stored one and,
	// if so, deletes it. A missing or expired code is a mismatch, not an
	// error.
	VerifyAndConsume(ctx context.Context, username, code string) (bool, error)
}

type confirmationCodeRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewConfirmationCodeRepository(client *redis.Client, ttl time.Duration) ConfirmationCodeRepository {
	return &confirmationCodeRepository{client: client, ttl: ttl}
}

func codeKey(username string) string {
	return "confirm:" + username
}

// Store keeps only a bcrypt hash in redis, so a dump of the store does not
// leak usable codes.
func (r *confirmationCodeRepository) Store(ctx context.Context, username, code string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}
	if err := r.client.Set(ctx, codeKey(username), hash, r.ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

func (r *confirmationCodeRepository) VerifyAndConsume(ctx context.Context, username, code string) (bool, error) {
	hash, err := r.client.Get(ctx, codeKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load confirmation code: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return false, nil
	}

	// single-use: the code dies with this exchange
	if err := r.client.Del(ctx, codeKey(username)).Err(); err != nil {
		return false, fmt.Errorf("consume confirmation code: %w", err)
	}
	return true, nil
}
