// Package auth signs the client cookie that selects a storage namespace.
// The token proves the server issued the client id; it identifies a browser,
// not a person.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/revoshop/config"
)

// ClientTTL is how long an issued client token stays valid.
const ClientTTL = 365 * 24 * time.Hour

var ErrInvalidClient = errors.New("auth: invalid client token")

func secret() []byte {
	return []byte(config.ClientSecret())
}

// NewClientID returns a fresh random client id.
func NewClientID() string {
	return uuid.NewString()
}

// IssueClientToken signs clientID as the token subject.
func IssueClientToken(clientID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   clientID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ClientTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ParseClientToken validates t and returns the client id it carries.
func ParseClientToken(t string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(t, claims, func(*jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Join(ErrInvalidClient, err)
	}
	if !token.Valid {
		return "", ErrInvalidClient
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidClient
	}
	return claims.Subject, nil
}
