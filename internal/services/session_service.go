package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/rs/zerolog/log"
)

// SessionServiceProvider defines the interface for login and session lookups.
type SessionServiceProvider interface {
	Login(ctx context.Context, email, password string) (models.Token, error)
	CurrentUser(ctx context.Context) (models.User, error)
}

// SessionService logs users in against the backend and throttles repeated failures.
type SessionService struct {
	client      *backend.Client
	db          *sql.DB
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

// NewSessionService creates a new SessionService.
func NewSessionService(client *backend.Client, db *sql.DB, maxAttempts int, lockout time.Duration) *SessionService {
	return &SessionService{
		client:      client,
		db:          db,
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Login exchanges credentials for a token. After maxAttempts consecutive rejections the email
// is locked out for the lockout period without contacting the backend.
func (s *SessionService) Login(ctx context.Context, email, password string) (models.Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	verr := &ValidationError{}
	if email == "" {
		verr.add("email", "Email is required")
	}
	if password == "" {
		verr.add("password", "Password is required")
	}
	if err := verr.orNil(); err != nil {
		return models.Token{}, err
	}

	now := s.now()
	locked, err := s.isLocked(email, now)
	if err != nil {
		return models.Token{}, fmt.Errorf("failed to read login attempts: %w", err)
	}
	if locked {
		return models.Token{}, ErrAccountLocked
	}

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		if backend.IsUnauthorized(err) {
			lockedNow, ferr := s.recordFailure(email, now)
			if ferr != nil {
				log.Error().Err(ferr).Str("email", email).Msg("Failed to record login failure")
			}
			if lockedNow {
				return models.Token{}, ErrAccountLocked
			}
		}
		return models.Token{}, err
	}

	if _, err := s.db.Exec("DELETE FROM login_attempts WHERE email = ?", email); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to reset login attempts")
	}
	return token, nil
}

// CurrentUser returns the account behind the token in ctx.
func (s *SessionService) CurrentUser(ctx context.Context) (models.User, error) {
	return s.client.Me(ctx)
}

func (s *SessionService) isLocked(email string, now time.Time) (bool, error) {
	var lockedUntil sql.NullTime
	err := s.db.QueryRow("SELECT locked_until FROM login_attempts WHERE email = ?", email).Scan(&lockedUntil)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return lockedUntil.Valid && lockedUntil.Time.After(now), nil
}

// recordFailure counts a rejected attempt and reports whether it triggered a lockout.
func (s *SessionService) recordFailure(email string, now time.Time) (bool, error) {
	_, err := s.db.Exec(`
		INSERT INTO login_attempts(email, failures, updated_at) VALUES(?, 1, ?)
		ON CONFLICT(email) DO UPDATE SET failures = failures + 1, updated_at = excluded.updated_at`,
		email, now.UTC())
	if err != nil {
		return false, err
	}

	var failures int
	if err := s.db.QueryRow("SELECT failures FROM login_attempts WHERE email = ?", email).Scan(&failures); err != nil {
		return false, err
	}
	if failures < s.maxAttempts {
		return false, nil
	}

	// The counter restarts once the lockout expires.
	_, err = s.db.Exec("UPDATE login_attempts SET failures = 0, locked_until = ? WHERE email = ?", now.Add(s.lockout).UTC(), email)
	if err != nil {
		return false, err
	}
	log.Warn().Str("email", email).Dur("lockout", s.lockout).Msg("Login locked after repeated failures")
	return true, nil
}
