package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/internal/mailer"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/repository"
	"github.com/golang-jwt/jwt/v5"
)

type auth interface {
	Signup(username string, email string) (*data.User, error)
	ExchangeToken(username string, confirmationCode string) (string, error)
	GetUserForSessionToken(tokenPlaintext string) (*data.User, error)
}

// Signup creates or reuses the user identified by (username, email) and
// rotates its confirmation code. The plaintext code is only ever sent
// through the email side channel, never returned to the HTTP client.
// Repeating signup for the same user invalidates the previous code.
func (s *service) Signup(username string, email string) (*data.User, error) {
	v := validator.New()
	data.ValidateUsername(v, username)
	data.ValidateEmail(v, email)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	plaintext, hash, err := data.GenerateConfirmationCode()
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetUserByUsername(username)
	switch {
	case err == nil:
		// Existing user: the email must match the registered one before
		// the code is rotated.
		if user.Email != email {
			v.AddError("email", "does not match the registered email for this username")
			return nil, s.failedValidation(v.Errors)
		}
		user.ConfirmationCodeHash = hash
		err = s.repo.UpdateUser(user)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrEditConflict):
				return nil, ErrEditConflict
			default:
				return nil, err
			}
		}
	case errors.Is(err, repository.ErrRecordNotFound):
		// The email must not belong to a different username.
		_, err = s.repo.GetUserByEmail(email)
		if err == nil {
			v.AddError("email", "a user with this email address already exists")
			return nil, s.failedValidation(v.Errors)
		}
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return nil, err
		}
		user = &data.User{
			Username:             username,
			Email:                email,
			Role:                 data.RoleUser,
			ConfirmationCodeHash: hash,
		}
		user.Normalize()
		if data.ValidateUser(v, user); !v.Valid() {
			return nil, s.failedValidation(v.Errors)
		}
		err = s.repo.CreateUser(user)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicateRecord):
				return nil, ErrDuplicateRecord
			default:
				return nil, err
			}
		}
	default:
		return nil, err
	}
	// Deliver the code in a background goroutine. Delivery failure is
	// logged and otherwise ignored: the signup record stands either way.
	s.background(func() {
		payload := map[string]string{
			"username":         user.Username,
			"confirmationCode": plaintext,
		}
		m := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
		err := m.Send(user.Email, "confirmation_code.tmpl", payload)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}

// ExchangeToken swaps a (username, confirmation code) pair for a signed
// session token. An unknown username and a code mismatch both surface
// ErrRecordNotFound so the HTTP layer cannot be used to probe which
// usernames exist. A malformed code is the only bad-request case.
// The confirmation code stays valid after a successful exchange until the
// next signup rotates it.
func (s *service) ExchangeToken(username string, confirmationCode string) (string, error) {
	v := validator.New()
	if data.ValidateUsername(v, username); !v.Valid() {
		return "", ErrBadRequest
	}
	if data.ValidateConfirmationCodePlaintext(v, confirmationCode); !v.Valid() {
		return "", ErrBadRequest
	}
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return "", ErrRecordNotFound
		default:
			return "", err
		}
	}
	if !user.MatchesConfirmationCode(confirmationCode) {
		return "", ErrRecordNotFound
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		Issuer:    s.config.JWT.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWT.Secret))
}

// GetUserForSessionToken verifies a session token and loads the user it was
// issued to. Used by the authentication middleware.
func (s *service) GetUserForSessionToken(tokenPlaintext string) (*data.User, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenPlaintext, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWT.Secret), nil
	}, jwt.WithIssuer(s.config.JWT.Issuer))
	if err != nil || !token.Valid {
		return nil, ErrFailedValidation
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrFailedValidation
	}
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrFailedValidation
		default:
			return nil, err
		}
	}
	return user, nil
}
