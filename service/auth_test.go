package service

import (
	"io"
	"sync"
	"testing"

	"github.com/emzola/recensio/config"
	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/internal/jsonlog"
	"github.com/emzola/recensio/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo overrides just the repository methods a test needs. Calling an
// un-stubbed method panics through the embedded nil interface, which makes
// unexpected repository traffic loud.
type stubRepo struct {
	repository.Repository
	getUserByID         func(ID int64) (*data.User, error)
	getUserByUsername   func(username string) (*data.User, error)
	getUserByEmail      func(email string) (*data.User, error)
	createUser          func(user *data.User) error
	updateUser          func(user *data.User) error
	getTitle            func(ID int64) (*data.Title, error)
	getReview           func(reviewID int64) (*data.Review, error)
	createReview        func(review *data.Review) error
	updateReview        func(review *data.Review) error
	reviewExistsForUser func(titleID, userID int64) (bool, error)
}

func (s *stubRepo) GetUserByID(ID int64) (*data.User, error) {
	return s.getUserByID(ID)
}

func (s *stubRepo) GetUserByUsername(username string) (*data.User, error) {
	return s.getUserByUsername(username)
}

func (s *stubRepo) GetUserByEmail(email string) (*data.User, error) {
	return s.getUserByEmail(email)
}

func (s *stubRepo) CreateUser(user *data.User) error {
	return s.createUser(user)
}

func (s *stubRepo) UpdateUser(user *data.User) error {
	return s.updateUser(user)
}

func (s *stubRepo) GetTitle(ID int64) (*data.Title, error) {
	return s.getTitle(ID)
}

func (s *stubRepo) GetReview(reviewID int64) (*data.Review, error) {
	return s.getReview(reviewID)
}

func (s *stubRepo) CreateReview(review *data.Review) error {
	return s.createReview(review)
}

func (s *stubRepo) UpdateReview(review *data.Review) error {
	return s.updateReview(review)
}

func (s *stubRepo) ReviewExistsForUser(titleID, userID int64) (bool, error) {
	return s.reviewExistsForUser(titleID, userID)
}

func newTestService(t *testing.T, repo repository.Repository) (*service, *sync.WaitGroup) {
	t.Helper()
	var cfg config.Config
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "recensio-test"
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	return New(cfg, &wg, logger, repo), &wg
}

func TestSignupCreatesUserWithConfirmationCode(t *testing.T) {
	var created *data.User
	repo := &stubRepo{
		getUserByUsername: func(username string) (*data.User, error) {
			return nil, repository.ErrRecordNotFound
		},
		getUserByEmail: func(email string) (*data.User, error) {
			return nil, repository.ErrRecordNotFound
		},
		createUser: func(user *data.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	svc, wg := newTestService(t, repo)
	user, err := svc.Signup("alice", "alice@example.com")
	require.NoError(t, err)
	wg.Wait()

	require.NotNil(t, created)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, data.RoleUser, created.Role)
	assert.NotEmpty(t, created.ConfirmationCodeHash)
	assert.Equal(t, created, user)
}

func TestSignupRotatesConfirmationCodeForExistingUser(t *testing.T) {
	oldHash := []byte("previous-hash")
	existing := &data.User{
		ID:                   1,
		Username:             "alice",
		Email:                "alice@example.com",
		Role:                 data.RoleUser,
		ConfirmationCodeHash: oldHash,
	}
	var updated *data.User
	repo := &stubRepo{
		getUserByUsername: func(username string) (*data.User, error) {
			return existing, nil
		},
		updateUser: func(user *data.User) error {
			updated = user
			return nil
		},
	}
	svc, wg := newTestService(t, repo)
	_, err := svc.Signup("alice", "alice@example.com")
	require.NoError(t, err)
	wg.Wait()

	require.NotNil(t, updated)
	assert.NotEqual(t, oldHash, updated.ConfirmationCodeHash)
}

func TestSignupRejectsMismatchedEmail(t *testing.T) {
	repo := &stubRepo{
		getUserByUsername: func(username string) (*data.User, error) {
			return &data.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil
		},
	}
	svc, _ := newTestService(t, repo)
	_, err := svc.Signup("alice", "other@example.com")
	assert.ErrorIs(t, err, ErrFailedValidation)
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	svc, _ := newTestService(t, &stubRepo{})
	_, err := svc.Signup("me", "me@example.com")
	assert.ErrorIs(t, err, ErrFailedValidation)
}

func TestSignupRejectsEmailOwnedByAnotherUser(t *testing.T) {
	repo := &stubRepo{
		getUserByUsername: func(username string) (*data.User, error) {
			return nil, repository.ErrRecordNotFound
		},
		getUserByEmail: func(email string) (*data.User, error) {
			return &data.User{ID: 2, Username: "bob", Email: email}, nil
		},
	}
	svc, _ := newTestService(t, repo)
	_, err := svc.Signup("alice", "bob@example.com")
	assert.ErrorIs(t, err, ErrFailedValidation)
}

func TestExchangeToken(t *testing.T) {
	plaintext, hash, err := data.GenerateConfirmationCode()
	require.NoError(t, err)
	alice := &data.User{
		ID:                   1,
		Username:             "alice",
		Email:                "alice@example.com",
		Role:                 data.RoleUser,
		ConfirmationCodeHash: hash,
	}
	repo := &stubRepo{
		getUserByUsername: func(username string) (*data.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return nil, repository.ErrRecordNotFound
		},
	}
	svc, _ := newTestService(t, repo)

	t.Run("valid code issues a signed token", func(t *testing.T) {
		token, err := svc.ExchangeToken("alice", plaintext)
		require.NoError(t, err)
		claims := jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, "1", claims.Subject)
		assert.Equal(t, "recensio-test", claims.Issuer)
	})

	t.Run("code stays valid after a successful exchange", func(t *testing.T) {
		_, err := svc.ExchangeToken("alice", plaintext)
		assert.NoError(t, err)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		other, _, err := data.GenerateConfirmationCode()
		require.NoError(t, err)
		_, err = svc.ExchangeToken("nobody", other)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("wrong code is indistinguishable from unknown username", func(t *testing.T) {
		wrong, _, err := data.GenerateConfirmationCode()
		require.NoError(t, err)
		_, err = svc.ExchangeToken("alice", wrong)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("malformed code is a bad request", func(t *testing.T) {
		_, err := svc.ExchangeToken("alice", "too-short")
		assert.ErrorIs(t, err, ErrBadRequest)
	})
}

func TestGetUserForSessionToken(t *testing.T) {
	plaintext, hash, err := data.GenerateConfirmationCode()
	require.NoError(t, err)
	alice := &data.User{
		ID:                   1,
		Username:             "alice",
		Email:                "alice@example.com",
		Role:                 data.RoleUser,
		ConfirmationCodeHash: hash,
	}
	repo := &stubRepo{
		getUserByUsername: func(username string) (*data.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return nil, repository.ErrRecordNotFound
		},
		getUserByID: func(ID int64) (*data.User, error) {
			if ID == alice.ID {
				return alice, nil
			}
			return nil, repository.ErrRecordNotFound
		},
	}
	svc, _ := newTestService(t, repo)
	token, err := svc.ExchangeToken("alice", plaintext)
	require.NoError(t, err)

	user, err := svc.GetUserForSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, alice, user)

	_, err = svc.GetUserForSessionToken("not.a.token")
	assert.ErrorIs(t, err, ErrFailedValidation)
}
