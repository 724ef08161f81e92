// Package session manages the login state of a request.
// The session keeps the identity captured at login; the admin flag is not
// re-read from the database, so a role change applies from the next login.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/tiendaweb/tienda/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginIdentity = "LOGIN_IDENTITY"
	contextKey    = "identity"
	CookieName    = "tienda"
)

// Identity is the snapshot of a user stored in the session.
type Identity struct {
	ID       int
	Username string
	Admin    bool
}

func init() {
	gob.Register(Identity{})
}

// Login records the user's identity in the session and keeps it for maxAge seconds.
func Login(c *gin.Context, user *model.User, maxAge int) error {
	identity := Identity{
		ID:       user.Id,
		Username: user.Username,
		Admin:    user.Admin,
	}
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.Set(loginIdentity, identity)
	if err := s.Save(); err != nil {
		return err
	}
	c.Set(contextKey, &identity)
	return nil
}

// Logout clears the session. Calling it without a session is a no-op.
func Logout(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	c.Set(contextKey, (*Identity)(nil))
	return s.Save()
}

// Current returns the identity of the request, nil when nobody is logged in.
func Current(c *gin.Context) *Identity {
	if v, ok := c.Get(contextKey); ok {
		identity, _ := v.(*Identity)
		return identity
	}
	return load(c)
}

func IsLogin(c *gin.Context) bool {
	return Current(c) != nil
}

// IsAdmin reports the admin flag captured at login time.
func IsAdmin(c *gin.Context) bool {
	identity := Current(c)
	return identity != nil && identity.Admin
}

func load(c *gin.Context) *Identity {
	s := sessions.Default(c)
	if obj := s.Get(loginIdentity); obj != nil {
		if identity, ok := obj.(Identity); ok {
			return &identity
		}
	}
	return nil
}

// Middleware reads the session once per request and places the identity in the gin context.
// It must run after the sessions middleware.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, load(c))
		c.Next()
	}
}
