package fakebackend

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/nuur-client/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type tokenKind string

const (
	accessToken  tokenKind = "access"
	refreshToken tokenKind = "refresh"
)

// TokenPair is the raw body of /auth/login and /auth/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Claims are the fields the backend reads back from a verified token.
type Claims struct {
	UserID    string
	ID        string
	ExpiresAt time.Time
}

// Tokens issues and verifies HS256 tokens carrying "sub" and "type" claims.
type Tokens struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration

	revoked map[string]time.Time // jti to expiry
	lock    sync.RWMutex
}

func NewTokens(secret string, accessExpiry, refreshExpiry time.Duration) *Tokens {
	return &Tokens{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		revoked:       make(map[string]time.Time),
	}
}

// Issue creates a fresh access/refresh pair for userID.
func (t *Tokens) Issue(userID string) (TokenPair, error) {
	access, err := t.sign(userID, accessToken, t.accessExpiry)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.sign(userID, refreshToken, t.refreshExpiry)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

func (t *Tokens) sign(userID string, kind tokenKind, expiry time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := jwt.MapClaims{
		"sub":  userID,
		"type": string(kind),
		"iat":  now.Unix(),
		"exp":  now.Add(expiry).Unix(),
		"jti":  uuid.New().String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", errors.Wrapf(err, "sign %s token", kind)
	}
	return signed, nil
}

// Verify checks signature, expiry, kind and revocation of raw.
func (t *Tokens) Verify(raw string, kind tokenKind) (Claims, error) {
	token, err := jwt.Parse(raw, t.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(NowTimeFunc),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Claims{}, errors.ErrTokenExpired
	}
	if err != nil || !token.Valid {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "verify %s token: %v", kind, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.ErrInvalidToken
	}
	if typ, _ := mc["type"].(string); typ != string(kind) {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "expected %s token", kind)
	}
	sub, _ := mc.GetSubject()
	if sub == "" {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "token has no subject")
	}
	exp, _ := mc.GetExpirationTime()
	jti, _ := mc["jti"].(string)

	c := Claims{UserID: sub, ID: jti}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	if t.isRevoked(jti) {
		return Claims{}, errors.Wrapf(errors.ErrInvalidToken, "token revoked")
	}
	return c, nil
}

func (t *Tokens) verificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Invalidf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.secret, nil
}

// Revoke blacklists c until it would have expired anyway.
func (t *Tokens) Revoke(c Claims) {
	if c.ID == "" {
		return
	}
	t.lock.Lock()
	defer t.lock.Unlock()

	now := NowTimeFunc()
	for jti, exp := range t.revoked {
		if exp.Before(now) {
			delete(t.revoked, jti)
		}
	}
	t.revoked[c.ID] = c.ExpiresAt
}

func (t *Tokens) isRevoked(jti string) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	_, ok := t.revoked[jti]
	return ok
}
