package auth

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"assetboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "assetboard_session"

// Claims are the session token claims; Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// Sessions issues and validates the signed tokens that back browser
// sessions. Tokens are HS256 JWTs stored in an HttpOnly cookie; the cookie
// lifetime mirrors the token expiry.
type Sessions struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

// NewSessions creates a session service. ttl bounds ordinary sessions,
// rememberTTL the "remember me" ones.
func NewSessions(secret []byte, ttl, rememberTTL time.Duration) *Sessions {
	return &Sessions{secret: secret, ttl: ttl, rememberTTL: rememberTTL}
}

// Issue creates a signed token for the user and returns it with the TTL it
// was issued for.
func (s *Sessions) Issue(userID uint, remember bool) (string, time.Duration, error) {
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, ttl, nil
}

// Parse validates a token and returns the user ID it was issued for.
func (s *Sessions) Parse(tokenString string) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid session subject %q", claims.Subject)
	}
	return uint(id), nil
}

// Login establishes a session for the user on the response.
func (s *Sessions) Login(c *gin.Context, user *models.User, remember bool) error {
	token, ttl, err := s.Issue(user.ID, remember)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(ttl.Seconds()), "/", "", false, true)
	return nil
}

// Logout clears the session cookie.
func (s *Sessions) Logout(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// CurrentUserID resolves the user ID from the request's session cookie.
// Anonymous requests, and invalid or expired tokens, return (0, false).
func (s *Sessions) CurrentUserID(c *gin.Context) (uint, bool) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return 0, false
	}
	id, err := s.Parse(token)
	if err != nil {
		return 0, false
	}
	return id, true
}
