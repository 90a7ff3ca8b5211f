// Package auth implements the clinic's session gate. Access is a simple
// boolean: a request either carries a valid session token or it does not.
// There are no roles or per-record permissions.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var ErrBadCredentials = errors.New("invalid username or password")

// Sessions issues and verifies session tokens for the single configured
// clinic account.
type Sessions struct {
	secret   []byte
	ttl      time.Duration
	user     string
	passHash [32]byte
}

// NewSessions builds a session manager. The password is kept only as a
// SHA-256 digest so comparisons run in constant time regardless of input.
func NewSessions(secret string, ttl time.Duration, user, password string) *Sessions {
	return &Sessions{
		secret:   []byte(secret),
		ttl:      ttl,
		user:     user,
		passHash: sha256.Sum256([]byte(password)),
	}
}

// Login checks credentials and returns a signed session token.
func (s *Sessions) Login(user, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.user)) == 1
	hash := sha256.Sum256([]byte(password))
	passOK := subtle.ConstantTimeCompare(hash[:], s.passHash[:]) == 1
	if !userOK || !passOK {
		return "", ErrBadCredentials
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	log.Info().Str("user", user).Msg("session opened")
	return signed, nil
}

// Verify checks a token's signature and expiry.
func (s *Sessions) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid session token")
	}
	return nil
}

// RequireSession rejects requests without a valid bearer token.
func (s *Sessions) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}
			if err := s.Verify(strings.TrimPrefix(header, "Bearer ")); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session token")
			}
			return next(c)
		}
	}
}

// Handler exposes the login endpoint.
type Handler struct {
	sessions *Sessions
}

func NewHandler(sessions *Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the login endpoint. It goes on the unauthenticated
// group: it is how a session is obtained in the first place.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/login", h.login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed login payload")
	}
	token, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
