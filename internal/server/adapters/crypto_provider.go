package adapters

import (
	"errors"
	"fmt"

	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/server/entities"
	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// PlainProvider keeps passwords verbatim, so the login query compares them
// directly.
type PlainProvider struct{}

func (PlainProvider) HashPassword(password string) (string, error) {
	return password, nil
}

func (PlainProvider) CheckPassword(password string, stored string) error {
	if password != stored {
		return ErrPasswordMismatch
	}
	return nil
}

func (PlainProvider) Deterministic() bool {
	return true
}

type BcryptProvider struct {
	Logger logging.ILogger
}

func (cr *BcryptProvider) HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		cr.Logger.Errorf("Failed to hash password: %s", err.Error())
		return "", err
	}
	return string(hashedPassword), nil
}

func (cr *BcryptProvider) CheckPassword(password string, stored string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

func (cr *BcryptProvider) Deterministic() bool {
	return false
}

func NewCryptoProvider(logger logging.ILogger, mode string) (entities.ICryptoProvider, error) {
	switch mode {
	case "plain":
		return PlainProvider{}, nil
	case "bcrypt":
		return &BcryptProvider{Logger: logger}, nil
	}
	return nil, fmt.Errorf("%w: %s", entities.ErrUnknownHashing, mode)
}
