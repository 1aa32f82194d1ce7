package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"food-delivery/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	TokenAccess  TokenType = "ACCESS"
	TokenRefresh TokenType = "REFRESH"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

type Claims struct {
	Role      models.Role `json:"role"`
	TokenType TokenType   `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

func (c *Claims) Actor() (models.Actor, error) {
	id, err := c.UserID()
	if err != nil {
		return models.Actor{}, err
	}
	return models.Actor{ID: id, Role: c.Role}, nil
}

type TokenIssuer struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewTokenIssuer(secret string, accessExpiry, refreshExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

func (t *TokenIssuer) AccessExpiry() time.Duration {
	return t.accessExpiry
}

func (t *TokenIssuer) RefreshExpiry() time.Duration {
	return t.refreshExpiry
}

func (t *TokenIssuer) GenerateAccessToken(userID int64, role models.Role) (string, error) {
	token, _, err := t.generate(userID, role, TokenAccess, t.accessExpiry)
	return token, err
}

// GenerateRefreshToken also returns the expiry so callers can persist it.
func (t *TokenIssuer) GenerateRefreshToken(userID int64, role models.Role) (string, time.Time, error) {
	return t.generate(userID, role, TokenRefresh, t.refreshExpiry)
}

func (t *TokenIssuer) generate(userID int64, role models.Role, tokenType TokenType, ttl time.Duration) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature, expiry and the expected token type.
func (t *TokenIssuer) ValidateToken(tokenString string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != want {
		return nil, ErrWrongTokenType
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
