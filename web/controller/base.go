// Package controller holds the HTTP handlers of the shop and the access gate
// that runs before them: public, logged-in and admin-only routes.
package controller

import (
	"net/http"
	"net/url"

	"github.com/tiendaweb/tienda/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the access checks shared by all controllers.
type BaseController struct{}

// checkLogin sends anonymous callers to the login page, remembering where they were going.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Tienes que iniciar sesión.")
		} else {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		}
		c.Abort()
		return
	}
	c.Next()
}

// checkAdmin must run after checkLogin. Non-admins get a 403 page, not a redirect.
func (a *BaseController) checkAdmin(c *gin.Context) {
	if !session.IsAdmin(c) {
		renderError(c, http.StatusForbidden)
		c.Abort()
		return
	}
	c.Next()
}

// redirectLoggedIn keeps logged-in users away from the login and sign-up pages.
func (a *BaseController) redirectLoggedIn(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}
