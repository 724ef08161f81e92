package controller

import (
	"errors"
	"io"
	"net/http"
	"text/template"

	"github.com/tiendaweb/tienda/config"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/web/entity"
	"github.com/tiendaweb/tienda/web/middleware"
	"github.com/tiendaweb/tienda/web/service"
	"github.com/tiendaweb/tienda/web/session"
	"github.com/tiendaweb/tienda/web/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// IndexController serves the catalog front page, images and the login, sign-up and logout routes.
type IndexController struct {
	BaseController

	userService     service.UserService
	categoryService service.CategoryService
	articleService  *service.ArticleService
	images          *service.ImageService
}

// NewIndexController registers the public routes. loginLimiter guards POST /login.
func NewIndexController(g *gin.RouterGroup, images *service.ImageService, loginLimiter gin.HandlerFunc) *IndexController {
	a := &IndexController{
		articleService: service.NewArticleService(images),
		images:         images,
	}
	a.initRouter(g, loginLimiter)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup, loginLimiter gin.HandlerFunc) {
	g.GET("/", a.index)
	g.GET("/categoria/:id", a.index)
	g.GET("/static/img/:name", a.image)

	g.GET("/login", a.redirectLoggedIn, a.login)
	g.POST("/login", a.redirectLoggedIn, loginLimiter, a.login)
	g.GET("/registro", a.redirectLoggedIn, a.register)
	g.POST("/registro", a.redirectLoggedIn, a.register)
	g.GET("/logout", a.checkLogin, a.logout)
}

// index lists the articles, all of them or those of one category.
func (a *IndexController) index(c *gin.Context) {
	categoryID := 0
	if c.Param("id") != "" {
		id, ok := paramID(c, "id")
		if !ok {
			renderError(c, http.StatusNotFound)
			return
		}
		categoryID = id
	}

	data := gin.H{"cart": &entity.CartForm{Quantity: 1}}
	if categoryID != 0 {
		category, err := a.categoryService.Get(categoryID)
		if errors.Is(err, service.ErrNotFound) {
			renderError(c, http.StatusNotFound)
			return
		} else if err != nil {
			serverError(c, "get category", err)
			return
		}
		data["category"] = category
	}

	articles, err := a.articleService.List(categoryID)
	if err != nil {
		serverError(c, "list articles", err)
		return
	}
	categories, err := a.categoryService.List()
	if err != nil {
		serverError(c, "list categories", err)
		return
	}
	data["articles"] = articles
	data["categories"] = categories
	html(c, "inicio.html", "Tienda", data)
}

func (a *IndexController) image(c *gin.Context) {
	rc, err := a.images.Open(c.Request.Context(), c.Param("name"))
	if errors.Is(err, storage.ErrNotExist) {
		renderError(c, http.StatusNotFound)
		return
	} else if err != nil {
		serverError(c, "open image", err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		serverError(c, "read image", err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}

func (a *IndexController) login(c *gin.Context) {
	form := &entity.LoginForm{}
	errs := map[string]string{}

	if isPost(c) {
		if err := c.ShouldBind(form); err != nil {
			errs = entity.FieldErrors(err, form)
		} else {
			safeUser := template.HTMLEscapeString(form.Username)
			user := a.userService.CheckUser(form.Username, form.Password)
			if user == nil {
				logger.Warningf("[%s] wrong username or password for \"%s\", IP: \"%s\"", middleware.GetRequestID(c), safeUser, getRemoteIp(c))
				errs["username"] = "Usuario o contraseña incorrectos."
			} else {
				if err := session.Login(c, user, config.GetSessionMaxAge()*60); err != nil {
					serverError(c, "save session", err)
					return
				}
				logger.Infof("[%s] %s logged in successfully, Ip Address: %s", middleware.GetRequestID(c), safeUser, getRemoteIp(c))
				c.Redirect(http.StatusFound, safeNext(c.Query("next")))
				return
			}
		}
	}

	form.Password = ""
	html(c, "login.html", "Iniciar sesión", gin.H{
		"form":   form,
		"errors": errs,
		"next":   c.Query("next"),
	})
}

// register creates a regular account and logs it in.
func (a *IndexController) register(c *gin.Context) {
	form := &entity.RegisterForm{}
	errs := map[string]string{}

	if isPost(c) {
		if err := c.ShouldBind(form); err != nil {
			errs = entity.FieldErrors(err, form)
		} else {
			if form.AdminToken != "" {
				logger.Infof("registration of %s carried an admin code; ignored", template.HTMLEscapeString(form.Username))
			}
			user, err := a.userService.Register(form.Username, form.Password, form.Name, form.Email)
			switch {
			case errors.Is(err, service.ErrUsernameTaken):
				errs["username"] = "El nombre de usuario ya existe."
			case errors.Is(err, service.ErrEmptyUsername):
				errs["username"] = "Tienes que poner un nombre de usuario"
			case errors.Is(err, service.ErrEmptyName):
				errs["nombre"] = "Tienes que poner un nombre completo"
			case err != nil:
				serverError(c, "register user", err)
				return
			default:
				if err := session.Login(c, user, config.GetSessionMaxAge()*60); err != nil {
					serverError(c, "save session", err)
					return
				}
				c.Redirect(http.StatusFound, "/")
				return
			}
		}
	}

	form.Password = ""
	form.AdminToken = ""
	html(c, "usuarios_new.html", "Registro", gin.H{"form": form, "errors": errs})
}

func (a *IndexController) logout(c *gin.Context) {
	if identity := session.Current(c); identity != nil {
		logger.Infof("%s logged out successfully", identity.Username)
	}
	if err := session.Logout(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusFound, "/")
}
