package controller

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tiendaweb/tienda/config"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/web/entity"
	"github.com/tiendaweb/tienda/web/middleware"
	"github.com/tiendaweb/tienda/web/session"

	"github.com/gin-gonic/gin"
)

var errorMessages = map[int]string{
	http.StatusNotFound:            "Página no encontrada",
	http.StatusForbidden:           "No tienes permisos para acceder aquí",
	http.StatusTooManyRequests:     "Demasiados intentos. Inténtalo de nuevo más tarde.",
	http.StatusInternalServerError: "Se ha producido un error interno",
}

// getRemoteIp returns the client IP. Forwarding headers count only from trusted proxies.
func getRemoteIp(c *gin.Context) string {
	return c.ClientIP()
}

func jsonMsg(c *gin.Context, msg string, err error) {
	m := entity.Msg{}
	if err == nil {
		m.Success = true
		m.Msg = msg
	} else {
		m.Msg = msg + " (" + err.Error() + ")"
		logger.Warning(msg+": ", err)
	}
	c.JSON(http.StatusOK, m)
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a page with status 200.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

// htmlStatus renders a page with the login state every template expects.
func htmlStatus(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string{}
	}
	data["title"] = title
	data["request_uri"] = c.Request.RequestURI
	identity := session.Current(c)
	data["is_login"] = identity != nil
	data["is_admin"] = identity != nil && identity.Admin
	if identity != nil {
		data["username"] = identity.Username
	}
	c.HTML(status, name, getContext(data))
}

func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver":  config.GetVersion(),
		"app_name": config.GetName(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// renderError answers with the error page, or a JSON message for AJAX callers.
func renderError(c *gin.Context, status int) {
	msg, ok := errorMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	if isAjax(c) {
		pureJsonMsg(c, status, false, msg)
		return
	}
	htmlStatus(c, status, "error.html", msg, gin.H{"error": msg, "status": status})
}

// serverError logs err and renders a 500 page.
func serverError(c *gin.Context, msg string, err error) {
	logger.Errorf("[%s] %s %s: %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, msg, err)
	renderError(c, http.StatusInternalServerError)
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func isPost(c *gin.Context) bool {
	return c.Request.Method == http.MethodPost
}

// paramID parses a non-negative integer path parameter.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// safeNext accepts only local absolute paths as post-login targets.
func safeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return raw
}

// NotFound renders the 404 page for unknown routes.
func NotFound(c *gin.Context) {
	renderError(c, http.StatusNotFound)
}

// TooManyRequests renders the 429 page for rate-limited callers.
func TooManyRequests(c *gin.Context) {
	renderError(c, http.StatusTooManyRequests)
}
