package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wifidesa/voucher-api/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// AgentIDKey is the context key for the authenticated agent ID
	AgentIDKey ContextKey = "agent_id"
	// RoleKey is the context key for the authenticated role (agent or admin)
	RoleKey ContextKey = "role"
)

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Auth validates the Bearer token and stores the agent identity on the context
func Auth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Unauthorized(w, "Invalid token claims")
				return
			}

			sub, _ := claims.GetSubject()
			agentID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil || agentID <= 0 {
				response.Unauthorized(w, "Invalid subject claim")
				return
			}

			role := RoleAgent
			if v, ok := claims["role"].(string); ok && v != "" {
				role = v
			}

			ctx := context.WithValue(r.Context(), AgentIDKey, agentID)
			ctx = context.WithValue(ctx, RoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AgentIDFromContext extracts the authenticated agent ID from the context
func AgentIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AgentIDKey).(int64)
	return id, ok
}

// RoleFromContext extracts the authenticated role from the context
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}
