package controller

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/tiendaweb/tienda/database/model"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/web/entity"
	"github.com/tiendaweb/tienda/web/service"
	"github.com/tiendaweb/tienda/web/session"

	"github.com/gin-gonic/gin"
)

// UserController serves profiles and password changes to logged-in users.
type UserController struct {
	BaseController

	userService service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/", a.checkLogin)

	g.GET("/perfil/:username", a.profile)
	g.POST("/perfil/:username", a.profile)
	g.GET("/changepassword/:username", a.changePassword)
	g.POST("/changepassword/:username", a.changePassword)
}

func (a *UserController) lookup(c *gin.Context) (*model.User, bool) {
	user, err := a.userService.GetByUsername(c.Param("username"))
	if errors.Is(err, service.ErrNotFound) {
		renderError(c, http.StatusNotFound)
		return nil, false
	} else if err != nil {
		serverError(c, "get user", err)
		return nil, false
	}
	return user, true
}

// profile shows any existing user; the password form is offered on one's own profile only.
func (a *UserController) profile(c *gin.Context) {
	user, ok := a.lookup(c)
	if !ok {
		return
	}
	html(c, "perfil.html", "Perfil", gin.H{
		"user": user,
		"own":  isOwner(c, user),
		"form": &entity.ChangePasswordForm{},
	})
}

// changePassword lets the owner replace the password after proving the current one.
func (a *UserController) changePassword(c *gin.Context) {
	user, ok := a.lookup(c)
	if !ok {
		return
	}
	if !isOwner(c, user) {
		renderError(c, http.StatusForbidden)
		return
	}

	form := &entity.ChangePasswordForm{}
	errs := map[string]string{}
	if isPost(c) {
		if err := c.ShouldBind(form); err != nil {
			errs = entity.FieldErrors(err, form)
		} else {
			err := a.userService.ChangePassword(user.Username, form.OldPassword, form.Password)
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				errs["antigua_password"] = "La contraseña actual no es correcta."
			case err != nil:
				serverError(c, "change password", err)
				return
			default:
				logger.Infof("%s changed the password, IP: %s", user.Username, getRemoteIp(c))
				c.Redirect(http.StatusFound, "/perfil/"+url.PathEscape(user.Username))
				return
			}
		}
	}

	html(c, "changepassword.html", "Cambiar contraseña", gin.H{
		"user":   user,
		"form":   &entity.ChangePasswordForm{},
		"errors": errs,
	})
}

// isOwner reports whether the logged-in identity is user. Routes are behind checkLogin,
// so a missing identity only happens if the group middleware is removed.
func isOwner(c *gin.Context, user *model.User) bool {
	identity := session.Current(c)
	return identity != nil && identity.ID == user.Id
}
