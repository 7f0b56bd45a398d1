package catalog

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the access token issued by the auth service.
type TokenClaims struct {
	UserID        string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	TokenType     string `json:"typ"`
	jwt.RegisteredClaims
}

type ctxUserIDKey struct{}

// UserIDFrom returns the authenticated caller, or "" outside AuthMiddleware.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserIDKey{}).(string)
	return id
}

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxUserIDKey{}, id)
}

// AuthMiddleware identifies the caller. With a secret it requires an HS256
// bearer access token; without one it trusts the X-User-Id header set by
// the gateway.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var userID string
			if len(secret) > 0 {
				claims, status, msg := parseBearer(r, secret)
				if claims == nil {
					writeError(w, status, msg)
					return
				}
				userID = claims.UserID
			} else {
				userID = r.Header.Get("X-User-Id")
				if userID == "" {
					writeError(w, http.StatusUnauthorized, "missing user context")
					return
				}
			}
			if !IsValidID(userID) {
				writeError(w, http.StatusUnauthorized, "invalid user id")
				return
			}
			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

func parseBearer(r *http.Request, secret []byte) (*TokenClaims, int, string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return nil, http.StatusUnauthorized, "missing Authorization header"
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, http.StatusUnauthorized, "invalid Authorization header"
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.TokenType != "access" {
		return nil, http.StatusUnauthorized, "invalid token"
	}
	return claims, 0, ""
}

func CORSMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-User-Id")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
