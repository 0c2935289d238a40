package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jacobbria/AZ-webApp/internal/auth"
	"go.uber.org/zap"
)

// AuthHandler drives the login flow. Failures are logged and the user is
// sent back to the home page.
type AuthHandler struct {
	Provider *auth.Provider
	logger   *zap.Logger
}

func NewAuthHandler(p *auth.Provider, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Provider: p, logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	if err := auth.SaveState(c, state); err != nil {
		h.logger.Error("Failed to store login state", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, h.Provider.AuthURL(state))
}

func (h *AuthHandler) Callback(c *gin.Context) {
	expected := auth.TakeState(c)

	if e := c.Query("error"); e != "" {
		h.logger.Warn("Identity provider returned an error",
			zap.String("error", e),
			zap.String("description", c.Query("error_description")))
		c.Redirect(http.StatusFound, "/")
		return
	}
	if expected == "" || c.Query("state") != expected {
		h.logger.Warn("Login callback state mismatch")
		c.Redirect(http.StatusFound, "/")
		return
	}
	code := c.Query("code")
	if code == "" {
		h.logger.Warn("Login callback without authorization code")
		c.Redirect(http.StatusFound, "/")
		return
	}

	tok, user, err := h.Provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("Error acquiring token", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := auth.SaveLogin(c, tok.AccessToken, user); err != nil {
		h.logger.Error("Failed to store login session", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID))
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := auth.Clear(c); err != nil {
		h.logger.Error("Failed to clear session", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, auth.FromContext(c).Status())
}
