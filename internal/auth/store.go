package auth

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/jacobbria/AZ-webApp/internal/config"
	"gorm.io/gorm"
)

const (
	sessionMaxAge = 8 * 60 * 60

	// Encoded session rows hold the access token, which can exceed the
	// 4096 byte securecookie default.
	sessionMaxLength = 32 * 1024
)

// NewSessionStore keeps session data in the sessions table of db. The
// cookie carries only the signed session id.
func NewSessionStore(db *gorm.DB, cfg *config.Config, cleanupExpired bool) (sessions.Store, error) {
	store := gormsessions.NewStore(db, cleanupExpired, []byte(cfg.SecretKey))

	limited, ok := store.(interface{ MaxLength(int) })
	if !ok {
		return nil, errors.New("session store does not support MaxLength")
	}
	limited.MaxLength(sessionMaxLength)

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
