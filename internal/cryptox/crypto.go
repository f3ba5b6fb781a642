// Package cryptox wraps the password hashing used for admin accounts.
package cryptox

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
var ErrPasswordTooLong = errors.New("password too long")

// Cost is the bcrypt work factor. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches hash. A malformed hash is
// treated the same as a mismatch.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
