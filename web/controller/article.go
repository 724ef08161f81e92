package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tiendaweb/tienda/database/model"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/web/entity"
	"github.com/tiendaweb/tienda/web/service"
	"github.com/tiendaweb/tienda/web/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ArticleController is the admin-only article management.
type ArticleController struct {
	BaseController

	categoryService service.CategoryService
	articleService  *service.ArticleService
	images          *service.ImageService
}

func NewArticleController(g *gin.RouterGroup, images *service.ImageService) *ArticleController {
	a := &ArticleController{
		articleService: service.NewArticleService(images),
		images:         images,
	}
	a.initRouter(g)
	return a
}

func (a *ArticleController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/articulos", a.checkLogin, a.checkAdmin)

	g.GET("/new", a.create)
	g.POST("/new", a.create)
	g.GET("/edit/:id", a.edit)
	g.POST("/edit/:id", a.edit)
	g.GET("/delete/:id", a.delete)
	g.POST("/delete/:id", a.delete)
}

func (a *ArticleController) lookup(c *gin.Context) (*model.Article, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		renderError(c, http.StatusNotFound)
		return nil, false
	}
	article, err := a.articleService.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		renderError(c, http.StatusNotFound)
		return nil, false
	} else if err != nil {
		serverError(c, "get article", err)
		return nil, false
	}
	return article, true
}

func (a *ArticleController) create(c *gin.Context) {
	a.save(c, nil)
}

func (a *ArticleController) edit(c *gin.Context) {
	article, ok := a.lookup(c)
	if !ok {
		return
	}
	a.save(c, article)
}

// save renders the article form and stores a valid submission; article nil creates a new one.
func (a *ArticleController) save(c *gin.Context, article *model.Article) {
	categories, err := a.categoryService.List()
	if err != nil {
		serverError(c, "list categories", err)
		return
	}

	form := articleForm(article)
	errs := map[string]string{}
	if isPost(c) {
		form = &entity.ArticleForm{}
		if err := c.ShouldBind(form); err != nil {
			errs = entity.FieldErrors(err, form)
		} else if image, err := a.upload(c); err != nil {
			errs["photo"] = uploadMessage(err)
			if !errors.Is(err, service.ErrNotImage) && !errors.Is(err, service.ErrInvalidFilename) {
				logger.Warning("image upload failed:", err)
			}
		} else {
			var saved *model.Article
			if article == nil {
				saved, err = a.articleService.Create(articleInput(form), image)
			} else {
				saved, err = a.articleService.Update(article.Id, articleInput(form), image)
			}
			switch {
			case errors.Is(err, service.ErrCategoryMissing):
				errs["CategoriaId"] = "La categoría no existe."
			case errors.Is(err, service.ErrEmptyName):
				errs["nombre"] = "Tienes que poner un nombre"
			case errors.Is(err, service.ErrInvalidPrice):
				errs["precio"] = "Introduce un precio válido."
			case err != nil:
				serverError(c, "save article", err)
				return
			default:
				logger.Infof("article %d (%s) saved by %s", saved.Id, saved.Name, session.Current(c).Username)
				c.Redirect(http.StatusFound, "/")
				return
			}
		}
	}

	title := "Nuevo artículo"
	if article != nil {
		title = "Editar artículo"
	}
	html(c, "articulos_new.html", title, gin.H{
		"form":       form,
		"errors":     errs,
		"article":    article,
		"categories": categories,
	})
}

// upload stores the submitted photo, if any, and returns its name.
func (a *ArticleController) upload(c *gin.Context) (string, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return "", nil
	}
	header, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	if header.Filename == "" || header.Size == 0 {
		return "", nil
	}
	return a.images.Save(c.Request.Context(), header)
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotImage):
		return "El fichero no es una imagen."
	case errors.Is(err, service.ErrInvalidFilename):
		return "El nombre del fichero no es válido."
	}
	return "No se ha podido guardar la imagen."
}

func articleForm(article *model.Article) *entity.ArticleForm {
	if article == nil {
		return &entity.ArticleForm{Price: "0", Tax: "21", Stock: "1", CategoryId: "0"}
	}
	return &entity.ArticleForm{
		Name:        article.Name,
		Price:       strconv.FormatFloat(article.Price, 'f', 2, 64),
		Tax:         strconv.Itoa(article.Tax),
		Description: article.Description,
		Stock:       strconv.Itoa(article.Stock),
		CategoryId:  strconv.Itoa(article.CategoryID()),
	}
}

// articleInput converts a validated form.
func articleInput(form *entity.ArticleForm) service.ArticleInput {
	price, _ := entity.ParsePrice(form.Price)
	tax, _ := strconv.Atoi(form.Tax)
	stock, _ := strconv.Atoi(form.Stock)
	categoryID, _ := strconv.Atoi(form.CategoryId)
	return service.ArticleInput{
		Name:        form.Name,
		Price:       price,
		Tax:         tax,
		Description: form.Description,
		Stock:       stock,
		CategoryId:  categoryID,
	}
}

// delete asks for confirmation, then removes the article and, best-effort, its image.
func (a *ArticleController) delete(c *gin.Context) {
	article, ok := a.lookup(c)
	if !ok {
		return
	}

	form := &entity.DeleteForm{}
	if isPost(c) {
		_ = c.ShouldBind(form)
	}
	switch service.ResolveDeletion(c.Request.Method, form.Affirmative()) {
	case service.DeletePending:
		html(c, "articulos_delete.html", "Borrar artículo", gin.H{"article": article})
		return
	case service.DeleteConfirmed:
		if err := a.articleService.Delete(c.Request.Context(), article.Id); err != nil && !errors.Is(err, service.ErrNotFound) {
			serverError(c, "delete article", err)
			return
		}
		logger.Infof("article %d deleted by %s", article.Id, session.Current(c).Username)
	}
	c.Redirect(http.StatusFound, "/")
}
