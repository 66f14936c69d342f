package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sa-academy/cms-backend/internal/core/domain"
)

const (
	DefaultIssuer   = "cms-backend"
	DefaultTokenTTL = 30 * 24 * time.Hour
)

var errMissingSecret = errors.New("jwt secret is not configured")

// Claims is the session token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer with HS256 tokens. The secret is
// fixed for the lifetime of the issuer.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer returns an issuer signing with secret. An empty secret is an
// error so a misconfigured process refuses to start.
func NewJWTIssuer(secret, issuer string, ttl time.Duration) (*JWTIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errMissingSecret
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token asserting accountID and role until now+ttl.
func (j *JWTIssuer) Issue(accountID string, role domain.Role) (string, error) {
	if accountID == "" || role == "" {
		return "", errors.New("issue token: account id and role are required")
	}

	now := j.now().UTC()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm, issuer and expiry. The cause of a
// failure is never surfaced.
func (j *JWTIssuer) Validate(token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{AccountID: claims.Subject, Role: domain.Role(claims.Role)}, nil
}
