package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/blogapi/shared/domain"
	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts an account. The unique index on email decides between
// concurrent inserts; the loser gets ErrDuplicateEmail.
func (s *Storage) SaveUser(ctx context.Context, data domain.UserCreationData) (domain.User, error) {
	var user domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		user, err = s.saveUser(ctx, tx, data)
		return err
	})
	return user, err
}

// User fetches an account by its normalized email.
func (s *Storage) User(ctx context.Context, email domain.Email) (domain.User, error) {
	return s.user(ctx, s.db, email)
}

// =========================================================================
// Internal Methods (accept a Querier for transactional/non-transactional use)
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, data domain.UserCreationData) (domain.User, error) {
	user := domain.User{Name: data.Name, Email: data.Email, PassHash: data.PassHash}
	err := q.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		data.Name, data.Email, data.PassHash,
	).Scan(&user.Id, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.User{}, internal_errors.ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) user(ctx context.Context, q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.Id, &user.Name, &user.Email, &user.PassHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
