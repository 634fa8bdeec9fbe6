package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshAudience marks refresh tokens so they are never accepted as access tokens.
const refreshAudience = "refresh"

// TokenPair is an access token together with the refresh token that can renew it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// GenerateJWT generates a new HS256 access token for userID.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiryDuration)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, expiresAt, err
}

// GenerateRefreshToken generates a long-lived token signed with its own secret.
func GenerateRefreshToken(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	id := make([]byte, 16)
	if _, err := rand.Read(id); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        hex.EncodeToString(id),
		Issuer:    issuer,
		Subject:   userID,
		Audience:  jwt.ClaimStrings{refreshAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GenerateTokenPair issues both tokens for userID.
func GenerateTokenPair(userID string, cfg TokenConfig) (*TokenPair, error) {
	access, expiresAt, err := GenerateJWT(userID, cfg.Secret, cfg.Expiry, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := GenerateRefreshToken(userID, cfg.RefreshSecret, cfg.RefreshExpiry, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

// TokenConfig holds the signing parameters for access and refresh tokens.
type TokenConfig struct {
	Secret        string
	Expiry        time.Duration
	Issuer        string
	RefreshSecret string
	RefreshExpiry time.Duration
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the RegisteredClaims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

// ParseRefreshToken validates a refresh token and returns the user id it was issued to.
func ParseRefreshToken(tokenString string, secretKey string) (string, error) {
	claims, err := ParseAndValidateJWT(tokenString, secretKey, jwt.WithAudience(refreshAudience))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
