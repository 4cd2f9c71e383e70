package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/mailer"
)

var ErrInvalidToken = errors.New("invalid token")

const confirmationMailSubject = "confirmation code"

// AuthService implements the passwordless two-step flow: SignUp emails a
// one-time confirmation code, IssueToken exchanges it for a signed access
// token.
type AuthService interface {
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims is the payload carried by access tokens. Only the user ID is
// trusted downstream; role and the rest are re-read from the database per
// request so they cannot go stale.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type authService struct {
	users     repository.UserRepository
	codes     repository.ConfirmationCodeRepository
	mail      mailer.Mailer
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	codes repository.ConfirmationCodeRepository,
	mail mailer.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:     users,
		codes:     codes,
		mail:      mail,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.AccessTokenTTL,
	}
}

// SignUp registers the username/email pair (or re-requests a code for an
// existing pair) and emails a fresh confirmation code. The pair must not
// collide with a different counterpart on either side: a taken username
// with another email, or a taken email under another username, is rejected.
// Resubmitting the exact same pair just issues a new code.
func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	if err := models.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	byName, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byName != nil && byName.Email != email {
		return nil, fmt.Errorf("%w: username %q is already registered with a different email", ErrValidation, username)
	}

	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byEmail != nil && byEmail.Username != username {
		return nil, fmt.Errorf("%w: email %q is already registered by another user", ErrValidation, email)
	}

	user := byName
	if user == nil {
		user = &models.User{Username: username, Email: email}
		if err := s.users.Create(ctx, user); err != nil {
			// the pre-checks above raced a concurrent sign-up; the unique
			// indexes are authoritative
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
			}
			return nil, err
		}
	}

	code := uuid.New().String()
	if err := s.codes.Store(ctx, username, code); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Use this code to request your access token: %s", code)
	if err := s.mail.Send(ctx, user.Email, confirmationMailSubject, body); err != nil {
		// mail failure is fatal to the sign-up call, never swallowed
		return nil, err
	}

	return user, nil
}

// IssueToken verifies the confirmation code and, on match, consumes it and
// returns a signed time-bound access token. A wrong code is a normal
// rejection; an unknown username is not found.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return "", err
	}

	ok, err := s.codes.VerifyAndConsume(ctx, username, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCode
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}

	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
