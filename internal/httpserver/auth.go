package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ctxSubjectKey is the context key type for the token subject.
type ctxSubjectKey struct{}

// SignToken creates an HS256 JWT for subject, valid for ttl.
func SignToken(secret, subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("token subject is empty")
	}
	now := time.Now()
	exp := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(secret))
	return ss, exp, err
}

// parseSubject validates tokenStr and returns its subject.
func parseSubject(secret, tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// withOptionalAuth decorates requests with the token subject if a valid JWT
// is present. It never 401s.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := bearer(r); tok != "" {
			if sub, err := parseSubject(s.cfg.JWTSecret, tok); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxSubjectKey{}, sub))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests that withOptionalAuth could not identify.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bearer(r) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if subject(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// subject returns the authenticated subject, or "" for guests.
func subject(ctx context.Context) string {
	sub, _ := ctx.Value(ctxSubjectKey{}).(string)
	return sub
}
