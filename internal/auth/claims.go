package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/models"
)

var ErrNoToken = errors.New("auth: session has no token")

// Claims is what the dashboard shows about a JWT session token. Nothing
// here is verified: the client does not hold the signing secret.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// ParseClaims decodes the session token when it is a JWT.
func ParseClaims(session *models.Session) (*Claims, error) {
	if session == nil || session.Token == "" {
		return nil, ErrNoToken
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.Token, mc); err != nil {
		return nil, fmt.Errorf("auth: token is not a JWT: %w", err)
	}

	claims := &Claims{
		UserID: claimString(mc, "user_id"),
		Email:  claimString(mc, "email"),
		Role:   claimString(mc, "role"),
	}
	if claims.UserID == "" {
		claims.UserID, _ = mc.GetSubject()
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		claims.ExpiresAt = &t
	}
	return claims, nil
}

func claimString(mc jwt.MapClaims, name string) string {
	switch v := mc[name].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
