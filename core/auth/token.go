package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CreateAccessToken issues a signed HS256 token carrying the given claims
// plus an expiry derived from the configured TTL.
func CreateAccessToken(cfg Config, claims map[string]any) (string, error) {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// DecodeToken validates a token's signature and expiry and returns its claims.
func DecodeToken(cfg Config, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SubjectID extracts the numeric subject ("sub") claim.
func SubjectID(claims jwt.MapClaims) (int, bool) {
	switch v := claims["sub"].(type) {
	case string:
		id, err := strconv.Atoi(v)
		return id, err == nil
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// ClaimString extracts a string claim, returning "" when absent.
func ClaimString(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}

// ClaimInt extracts an integer claim, reporting whether it was present.
func ClaimInt(claims jwt.MapClaims, key string) (int, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
