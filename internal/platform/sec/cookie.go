// Copyright (c) 2026 SkillHub. All rights reserved.

// Package sec provides the signed browser-identity cookie.
//
// # Architecture
//
// The front end never verifies the upstream bearer token — it is opaque by
// contract. What it does protect is the browser's own identity: the cookie
// that keys the durable session record is an HS256-signed JWT, so a client
// cannot forge another browser's session ID.
package sec

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// browserClaims is the payload embedded inside the session cookie.
type browserClaims struct {
	jwt.RegisteredClaims

	// SID is the browser-session identifier that keys the durable record.
	SID string `json:"sid"`
}

// CookieSigner issues and verifies the signed session cookie.
type CookieSigner struct {
	secret []byte
	issuer string
	name   string
	path   string
	secure bool
}

// NewCookieSigner creates a CookieSigner.
//
// # Parameters
//   - secret: HMAC key, from SESSION_SECRET.
//   - issuer: the 'iss' claim stamped into every cookie.
//   - name, path: cookie attributes.
//   - secure: whether to set the Secure attribute (production only).
func NewCookieSigner(secret, issuer, name, path string, secure bool) *CookieSigner {
	return &CookieSigner{
		secret: []byte(secret),
		issuer: issuer,
		name:   name,
		path:   path,
		secure: secure,
	}
}

// Issue signs the given session ID into a Set-Cookie-ready [http.Cookie].
//
// The cookie itself never expires client-side: session staleness is only ever
// discovered when the upstream rejects the bearer token.
func (signer *CookieSigner) Issue(sid string) (*http.Cookie, error) {
	claims := browserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   signer.issuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		SID: sid,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signer.secret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     signer.name,
		Value:    signed,
		Path:     signer.path,
		HttpOnly: true,
		Secure:   signer.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Verify extracts the session ID from a cookie value.
//
// Tampered, malformed, or foreign-issuer cookies are rejected; the caller
// responds by minting a fresh anonymous session.
func (signer *CookieSigner) Verify(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &browserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return signer.secret, nil
	}, jwt.WithIssuer(signer.issuer))
	if err != nil {
		return "", fmt.Errorf("sec: invalid session cookie: %w", err)
	}

	claims, ok := token.Claims.(*browserClaims)
	if !ok || !token.Valid || claims.SID == "" {
		return "", fmt.Errorf("sec: invalid session cookie claims")
	}

	return claims.SID, nil
}

// Name returns the cookie name the signer reads and writes.
func (signer *CookieSigner) Name() string {
	return signer.name
}
