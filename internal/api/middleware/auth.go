package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type subjectKeyType string

const SubjectKey subjectKeyType = "subject"

// Auth validates a Bearer JWT signed with the HMAC secret and stores its
// subject in the request context.
func Auth(hmacSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			tokenStr := strings.TrimSpace(ah[len("Bearer "):])
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				return hmacSecret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				writeError(w, http.StatusUnauthorized, "invalid token subject")
				return
			}
			ctx := context.WithValue(r.Context(), SubjectKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject returns the authenticated subject, or "" on open routes.
func GetSubject(ctx context.Context) string {
	if v := ctx.Value(SubjectKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
