package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec issues and verifies signed access tokens. The signing
// secret and TTL are fixed at construction and never change for the
// process lifetime, so a single codec is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec signing with HMAC-SHA256.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// Issue signs a token carrying the identity's claims, stamped with the
// current time and the codec's TTL.
func (c *TokenCodec) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(identity.UserID, 10),
		"email": identity.Email,
		"role":  string(identity.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a token string and returns the identity it carries.
// Any failure — bad signature, wrong algorithm, malformed structure,
// missing claims, expiry — yields ErrInvalidToken. Decode performs no
// I/O; verification is entirely stateless.
func (c *TokenCodec) Decode(tokenString string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if email == "" || !role.Valid() {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{UserID: userID, Email: email, Role: role}, nil
}
