package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionID"

	SessionCookieName = "pokedex_session"
)

// SessionManager issues and validates the signed cookie that identifies a
// browser session. The cookie has no expiry, so it ends with the browser
// session.
type SessionManager struct {
	secret []byte
	secure bool
}

func NewSessionManager(secret string, secure bool) *SessionManager {
	return &SessionManager{secret: []byte(secret), secure: secure}
}

func (m *SessionManager) Issue() (uuid.UUID, string, error) {
	sessionID := uuid.New()
	claims := jwt.MapClaims{
		"sid": sessionID.String(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return uuid.Nil, "", err
	}
	return sessionID, token, nil
}

func (m *SessionManager) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing 'sid' claim in token")
	}
	return uuid.Parse(sid)
}

func (m *SessionManager) cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Session attaches a session id to every request, issuing a new cookie
// when the request has none or carries one that fails validation.
func Session(m *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID uuid.UUID

			if c, err := r.Cookie(SessionCookieName); err == nil {
				sessionID, err = m.Parse(c.Value)
				if err != nil {
					log.Printf("ERROR [middleware.Session] session cookie rejected: %v", err)
				}
			}

			if sessionID == uuid.Nil {
				id, token, err := m.Issue()
				if err != nil {
					log.Printf("ERROR [middleware.Session] failed to issue session: %v", err)
					http.Error(w, "Failed to start session", http.StatusInternalServerError)
					return
				}
				sessionID = id
				http.SetCookie(w, m.cookie(token))
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSessionID(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}

// MustSessionID is for handlers mounted behind Session.
func MustSessionID(ctx context.Context) uuid.UUID {
	sessionID, ok := GetSessionID(ctx)
	if !ok {
		panic(fmt.Sprintf("%s missing from context; is the Session middleware mounted?", SessionIDKey))
	}
	return sessionID
}
