package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/dtos"
)

const (
	keyAccessToken = "access_token"
	keyUserID      = "user_id"
	keyUserName    = "user_name"
	keyState       = "oauth_state"

	contextKey = "auth_session"
)

// Session is the authentication state of one request.
type Session struct {
	AccessToken string
	UserID      string
	UserName    string
}

func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

// OwnerID returns the user id for ownership, or nil when unknown.
func (s Session) OwnerID() *string {
	if s.UserID == "" {
		return nil
	}
	id := s.UserID
	return &id
}

func (s Session) Status() dtos.AuthStatusResponse {
	resp := dtos.AuthStatusResponse{Authenticated: s.IsAuthenticated()}
	if s.UserName != "" {
		name := s.UserName
		resp.UserName = &name
	}
	resp.UserID = s.OwnerID()
	return resp
}

func loadSession(store sessions.Session) Session {
	str := func(key string) string {
		v, _ := store.Get(key).(string)
		return v
	}
	return Session{
		AccessToken: str(keyAccessToken),
		UserID:      str(keyUserID),
		UserName:    str(keyUserName),
	}
}

// LoadSession reads the cookie session once per request and places the
// result on the gin context.
func LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, loadSession(sessions.Default(c)))
		c.Next()
	}
}

// FromContext returns the request's Session. Requests that bypassed
// LoadSession are unauthenticated.
func FromContext(c *gin.Context) Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return Session{}
}

// SaveLogin stores the completed login in the server-side session.
func SaveLogin(c *gin.Context, accessToken string, user *UserInfo) error {
	store := sessions.Default(c)
	store.Delete(keyState)
	store.Set(keyAccessToken, accessToken)
	store.Set(keyUserID, user.ID)
	store.Set(keyUserName, user.DisplayName)
	return store.Save()
}

func SaveState(c *gin.Context, state string) error {
	store := sessions.Default(c)
	store.Set(keyState, state)
	return store.Save()
}

// TakeState returns and clears the pending OAuth state.
func TakeState(c *gin.Context) string {
	store := sessions.Default(c)
	state, _ := store.Get(keyState).(string)
	store.Delete(keyState)
	_ = store.Save()
	return state
}

func Clear(c *gin.Context) error {
	store := sessions.Default(c)
	store.Clear()
	store.Options(sessions.Options{Path: "/", MaxAge: -1})
	return store.Save()
}

// RequireAPI rejects unauthenticated API calls with 401.
func RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !FromContext(c).IsAuthenticated() {
			err := apperrors.Unauthenticated("Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dtos.ErrorResponse{
				Success: false,
				Error:   apperrors.PublicMessage(err),
				Code:    string(apperrors.CodeUnauthenticated),
			})
			return
		}
		c.Next()
	}
}

// RequirePage redirects unauthenticated page requests to the home page.
func RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !FromContext(c).IsAuthenticated() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
