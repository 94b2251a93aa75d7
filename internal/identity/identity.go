// Package identity is the client side of the external identity
// provider contract: it verifies session tokens the provider issued and
// exposes the authenticated user to the rest of the application. It
// never creates users or checks passwords.
package identity

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// Session is the authenticated user attached to a request.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// Verifier validates session tokens signed with the HMAC secret shared
// with the identity provider.
type Verifier struct {
	secret     []byte
	cookieName string
}

func NewVerifier(secret, cookieName string) *Verifier {
	return &Verifier{secret: []byte(secret), cookieName: cookieName}
}

// CookieName returns the session cookie name.
func (v *Verifier) CookieName() string {
	return v.cookieName
}

// SessionFromRequest extracts and verifies the session from the request:
// session cookie first, Authorization bearer token as a fallback.
// Returns ErrNoSession when neither is present.
func (v *Verifier) SessionFromRequest(r *http.Request) (Session, error) {
	if c, err := r.Cookie(v.cookieName); err == nil && c.Value != "" {
		return v.Parse(c.Value)
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return Session{}, ErrNoSession
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == "" {
		return Session{}, ErrNoSession
	}
	return v.Parse(token)
}

// Parse validates a session token and extracts the user identity and
// profile claims. Only HMAC signing is accepted; expiry is honored.
func (v *Verifier) Parse(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return Session{}, errors.Join(ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, ErrInvalidSession
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Session{}, errors.Join(ErrInvalidSession, errors.New("'sub' claim missing or not a string"))
	}

	s := Session{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		s.Name = name
	}
	return s, nil
}

// Issue signs a session token for the given session. Used by tests and
// local development, where this process stands in for the provider.
func (v *Verifier) Issue(s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": s.UserID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if s.Email != "" {
		claims["email"] = s.Email
	}
	if s.Name != "" {
		claims["name"] = s.Name
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ClearCookie returns an expired cookie that removes the session on
// sign-out; the caller then redirects to the login surface.
func (v *Verifier) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     v.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
