package jwtauth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrEmptySecret is returned when an Issuer is created without a signing secret.
	ErrEmptySecret = errors.New("jwt secret must not be empty")

	// ErrInvalidTTL is returned when the token lifetime is not positive.
	ErrInvalidTTL = errors.New("jwt ttl must be positive")

	// ErrInvalidToken is returned for tokens that are malformed, expired or signed with another key.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the claims of a library access token. The subject is the user id.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the subject back into the user id.
func (c Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Token is a signed access token with its expiry.
type Token struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Issuer signs and verifies tokens with one shared secret. The audience equals the issuer.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock replaces time.Now, tests use it to issue tokens at a fixed time.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an Issuer.
func NewIssuer(secret string, issuer string, ttl time.Duration, opts ...Option) (Issuer, error) {
	if secret == "" {
		return Issuer{}, ErrEmptySecret
	}

	if ttl <= 0 {
		return Issuer{}, ErrInvalidTTL
	}

	i := Issuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(&i)
	}

	return i, nil
}

// Issue signs a token for the user.
func (i Issuer) Issue(userID int64, username string) (Token, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, err
	}

	return Token{AccessToken: signed, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// Verify checks signature, issuer, audience and lifetime of a token and returns its claims.
func (i Issuer) Verify(tokenString string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if _, err = claims.UserID(); err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	return claims, nil
}
