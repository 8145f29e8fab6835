package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxAPIKey = "api_key"

	RoleAdmin = "admin"

	limiterIdleTTL = time.Hour
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func abort(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

// JWTAuthMiddleware validates HMAC-signed bearer tokens and exposes the
// caller's user id and role. An empty issuer disables the issuer check.
func JWTAuthMiddleware(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header required", "UNAUTHORIZED")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format", "UNAUTHORIZED")
			return
		}
		tokenString := parts[1]

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, "Invalid or expired token", "UNAUTHORIZED")
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			userID, _ = claims.GetSubject()
		}
		if userID == "" {
			abort(c, http.StatusUnauthorized, "Token carries no user id", "UNAUTHORIZED")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, role)
		if apiKey, ok := claims["api_key"].(string); ok && apiKey != "" {
			c.Set(ctxAPIKey, apiKey)
		} else {
			c.Set(ctxAPIKey, userID)
		}

		c.Next()
	}
}

// AdminOnly rejects callers whose token role is not admin
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != RoleAdmin {
			abort(c, http.StatusForbidden, "Admin role required", "FORBIDDEN")
			return
		}
		c.Next()
	}
}

// RateLimiter manages rate limiting per API key
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rps      float64
	burst    int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// GetLimiter gets or creates a limiter for an API key
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(rl.rps), rl.burst)
	rl.limiters[key] = limiter

	time.AfterFunc(limiterIdleTTL, func() {
		rl.mu.Lock()
		delete(rl.limiters, key)
		rl.mu.Unlock()
	})

	return limiter
}

// RateLimitMiddleware limits by API key, falling back to the client IP
func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(ctxAPIKey)
		if key == "" {
			key = c.ClientIP()
		}

		if !limiter.GetLimiter(key).Allow() {
			abort(c, http.StatusTooManyRequests, "Rate limit exceeded", "RATE_LIMIT_EXCEEDED")
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request with zerolog
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("user_id", c.GetString(ctxUserID)).
			Msg("Request handled")
	}
}

// ErrorHandlerMiddleware turns errors attached with c.Error into a 500
// when the handler has not written a response
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			log.Error().Err(err).Msg("Request error")

			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Internal server error",
				Code:  "INTERNAL_ERROR",
			})
		}
	}
}
