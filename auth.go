package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	authCookieName = "fittrack_auth"
	sessionTTL     = 30 * 24 * time.Hour
)

// dummyHash is a pre-computed bcrypt hash used when no user row exists yet.
// Running bcrypt against it keeps the failure path as slow as a real mismatch.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// issueSessionToken signs an HS256 token naming userID as subject.
func issueSessionToken(secret, userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseSessionToken validates signature, algorithm and expiry and returns the
// user ID.
func parseSessionToken(secret, token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

func (h *Handler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, maxAge, "/", "", h.cfg.IsProduction(), true)
}

// verifyPin checks the PIN against the owner's bcrypt hash and sets the
// session cookie.
// POST /api/auth/verify (public, rate limited).
func (h *Handler) verifyPin(c *gin.Context) {
	var body struct {
		Pin string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Pin == "" {
		apiError(c, http.StatusBadRequest, "PIN is required")
		return
	}

	// Single-user app: the first user row is the owner.
	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users ORDER BY created_at LIMIT 1", pgx.NamedArgs{})

	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.PinHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Pin))

	if lookupErr != nil && !errors.Is(lookupErr, pgx.ErrNoRows) {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "Invalid PIN")
		return
	}

	token, err := issueSessionToken(h.cfg.SessionSecret, u.ID, time.Now())
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	h.setAuthCookie(c, token, int(sessionTTL/time.Second))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// logout clears the session cookie.
// POST /api/auth/logout.
func (h *Handler) logout(c *gin.Context) {
	h.setAuthCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// authMiddleware validates the session cookie and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(authCookieName)
		if err != nil || token == "" {
			apiError(c, http.StatusUnauthorized, "not authenticated")
			c.Abort()
			return
		}

		userID, err := parseSessionToken(h.cfg.SessionSecret, token)
		if err != nil {
			apiError(c, http.StatusUnauthorized, fmt.Sprintf("invalid session: %v", sessionErrorReason(err)))
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func sessionErrorReason(err error) string {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "expired"
	}
	return "bad token"
}
