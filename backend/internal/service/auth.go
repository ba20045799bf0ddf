package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/itchan-dev/blogapi/shared/domain"
	"github.com/itchan-dev/blogapi/shared/errors"
	"github.com/itchan-dev/blogapi/shared/logger"
	"github.com/itchan-dev/blogapi/shared/passwords"
)

type AuthService interface {
	Register(ctx context.Context, data domain.SignupData) (domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	Signin(ctx context.Context, creds domain.Credentials) (string, error)
}

type Auth struct {
	storage   AuthStorage
	hasher    passwords.Hasher
	jwt       Jwt
	dummyHash string
}

type AuthStorage interface {
	// SaveUser must return errors.ErrDuplicateEmail when the email is taken,
	// including when a concurrent insert wins the race.
	SaveUser(ctx context.Context, data domain.UserCreationData) (domain.User, error)
	User(ctx context.Context, email domain.Email) (domain.User, error)
}

type Jwt interface {
	NewToken(principal domain.Principal) (string, error)
}

func NewAuth(storage AuthStorage, hasher passwords.Hasher, jwt Jwt) *Auth {
	// Signin verifies against this when the account doesn't exist, so both
	// failure paths cost one bcrypt comparison.
	dummyHash, err := hasher.Hash("dummy-password-for-timing-1")
	if err != nil {
		logger.Log.Warn("failed to prepare dummy password hash", "error", err)
	}
	return &Auth{
		storage:   storage,
		hasher:    hasher,
		jwt:       jwt,
		dummyHash: dummyHash,
	}
}

// Register creates an account. The email is normalized and checked for
// uniqueness before the password is hashed.
func (a *Auth) Register(ctx context.Context, data domain.SignupData) (domain.User, error) {
	name := strings.TrimSpace(data.Name)
	email := domain.NormalizeEmail(data.Email)
	if name == "" {
		return domain.User{}, &errors.ValidationError{Fields: []errors.FieldError{{Field: "name", Message: "Name is required"}}}
	}
	if !domain.IsValidEmail(email) {
		return domain.User{}, &errors.ValidationError{Fields: []errors.FieldError{{Field: "email", Message: "Enter a valid email"}}}
	}

	_, err := a.FindByEmail(ctx, email)
	if err == nil {
		signupsTotal.WithLabelValues(resultDuplicate).Inc()
		return domain.User{}, errors.ErrDuplicateEmail
	}
	if !errors.IsNotFound(err) {
		signupsTotal.WithLabelValues(resultError).Inc()
		return domain.User{}, err
	}

	passHash, err := a.hasher.Hash(data.Password)
	if err != nil {
		logger.FromContext(ctx).Error("failed to hash password", "error", err)
		signupsTotal.WithLabelValues(resultError).Inc()
		return domain.User{}, fmt.Errorf("register: %w", err)
	}

	user, err := a.storage.SaveUser(ctx, domain.UserCreationData{Name: name, Email: email, PassHash: passHash})
	if err != nil {
		if stderrors.Is(err, errors.ErrDuplicateEmail) {
			signupsTotal.WithLabelValues(resultDuplicate).Inc()
		} else {
			signupsTotal.WithLabelValues(resultError).Inc()
		}
		return domain.User{}, err
	}

	signupsTotal.WithLabelValues(resultSuccess).Inc()
	logger.FromContext(ctx).Info("user registered", "user_id", user.Id)
	return user, nil
}

// FindByEmail looks an account up by its normalized email.
func (a *Auth) FindByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	return a.storage.User(ctx, domain.NormalizeEmail(email))
}

// Signin returns an access token for valid credentials. An unknown email and
// a wrong password both yield ErrInvalidCredentials.
func (a *Auth) Signin(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := a.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			a.hasher.Verify(creds.Password, a.dummyHash)
			signinsTotal.WithLabelValues(resultInvalid).Inc()
			return "", errors.ErrInvalidCredentials
		}
		signinsTotal.WithLabelValues(resultError).Inc()
		return "", err
	}

	if !a.hasher.Verify(creds.Password, user.PassHash) {
		signinsTotal.WithLabelValues(resultInvalid).Inc()
		return "", errors.ErrInvalidCredentials
	}

	token, err := a.jwt.NewToken(domain.Principal{Id: user.Id, Email: user.Email})
	if err != nil {
		logger.FromContext(ctx).Error("failed to create jwt token", "user_id", user.Id, "error", err)
		signinsTotal.WithLabelValues(resultError).Inc()
		return "", err
	}

	signinsTotal.WithLabelValues(resultSuccess).Inc()
	return token, nil
}
