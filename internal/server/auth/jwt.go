// Package auth issues and verifies the admin bearer tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the admin id.
type Claims struct {
	jwt.RegisteredClaims
	AdminID string `json:"aid"`
}

// GenerateToken signs an HS256 token for adminID that expires after validityDuration.
func GenerateToken(adminID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AdminID: adminID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAdminIDFromToken verifies tokenString and returns the admin id it was
// issued for. Expired tokens yield common.ErrTokenExpired, anything else that
// fails verification yields common.ErrInvalidToken.
func GetAdminIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.AdminID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.AdminID, nil
}
