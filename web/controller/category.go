package controller

import (
	"errors"
	"net/http"

	"github.com/tiendaweb/tienda/database/model"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/web/entity"
	"github.com/tiendaweb/tienda/web/service"
	"github.com/tiendaweb/tienda/web/session"

	"github.com/gin-gonic/gin"
)

// CategoryController is the admin-only category management.
type CategoryController struct {
	BaseController

	categoryService service.CategoryService
}

func NewCategoryController(g *gin.RouterGroup) *CategoryController {
	a := &CategoryController{}
	a.initRouter(g)
	return a
}

func (a *CategoryController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/categorias", a.checkLogin, a.checkAdmin)

	g.GET("", a.list)
	g.GET("/new", a.create)
	g.POST("/new", a.create)
	g.GET("/edit/:id", a.edit)
	g.POST("/edit/:id", a.edit)
	g.GET("/delete/:id", a.delete)
	g.POST("/delete/:id", a.delete)
}

func (a *CategoryController) lookup(c *gin.Context) (*model.Category, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound)
		return nil, false
	}
	category, err := a.categoryService.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		renderError(c, http.StatusNotFound)
		return nil, false
	} else if err != nil {
		serverError(c, "get category", err)
		return nil, false
	}
	return category, true
}

func (a *CategoryController) list(c *gin.Context) {
	categories, err := a.categoryService.List()
	if err != nil {
		serverError(c, "list categories", err)
		return
	}
	html(c, "categorias.html", "Categorías", gin.H{"categories": categories})
}

func (a *CategoryController) create(c *gin.Context) {
	form := &entity.CategoryForm{}
	errs := map[string]string{}
	if isPost(c) {
		if err := c.ShouldBind(form); err != nil {
			errs = entity.FieldErrors(err, form)
		} else {
			category, err := a.categoryService.Create(form.Name)
			if errors.Is(err, service.ErrEmptyName) {
				errs["nombre"] = "Tienes que poner un nombre"
				html(c, "categorias_new.html", "Nueva categoría", gin.H{"form": form, "errors": errs})
				return
			}
			if err != nil {
				serverError(c, "create category", err)
				return
			}
			logger.Infof("category %d (%s) created by %s", category.Id, category.Name, session.Current(c).Username)
			c.Redirect(http.StatusFound, "/categorias")
			return
		}
	}
	html(c, "categorias_new.html", "Nueva categoría", gin.H{"form": form, "errors": errs})
}

func (a *CategoryController) edit(c *gin.Context) {
	category, ok := a.lookup(c)
	if !ok {
		return
	}
	form := &entity.CategoryForm{Name: category.Name}
	errs := map[string]string{}
	if isPost(c) {
		form = &entity.CategoryForm{}
		if err := c.ShouldBind(form); err != nil {
			errs = entity.FieldErrors(err, form)
		} else {
			err := a.categoryService.Rename(category.Id, form.Name)
			if errors.Is(err, service.ErrEmptyName) {
				errs["nombre"] = "Tienes que poner un nombre"
			} else if err != nil {
				serverError(c, "rename category", err)
				return
			} else {
				c.Redirect(http.StatusFound, "/categorias")
				return
			}
		}
	}
	html(c, "categorias_new.html", "Editar categoría", gin.H{"form": form, "errors": errs, "category": category})
}

// delete asks for confirmation before removing an empty category.
// A category that still has articles is never offered for deletion.
func (a *CategoryController) delete(c *gin.Context) {
	category, ok := a.lookup(c)
	if !ok {
		return
	}
	inUse, err := a.categoryService.HasArticles(category.Id)
	if err != nil {
		serverError(c, "check category articles", err)
		return
	}
	if inUse {
		c.Redirect(http.StatusFound, "/categorias")
		return
	}

	form := &entity.DeleteForm{}
	if isPost(c) {
		_ = c.ShouldBind(form)
	}
	switch service.ResolveDeletion(c.Request.Method, form.Affirmative()) {
	case service.DeletePending:
		html(c, "categorias_delete.html", "Borrar categoría", gin.H{"category": category})
		return
	case service.DeleteConfirmed:
		err := a.categoryService.Delete(category.Id)
		if err != nil && !errors.Is(err, service.ErrCategoryInUse) {
			serverError(c, "delete category", err)
			return
		}
		if err == nil {
			logger.Infof("category %d deleted by %s", category.Id, session.Current(c).Username)
		}
	}
	c.Redirect(http.StatusFound, "/categorias")
}
