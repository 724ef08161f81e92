package controller

import (
	"net/http"

	"github.com/tiendaweb/tienda/web/entity"
	"github.com/tiendaweb/tienda/web/service"
	"github.com/tiendaweb/tienda/web/session"

	"github.com/gin-gonic/gin"
)

// CartController accepts cart additions. Nothing is stored yet.
type CartController struct {
	BaseController

	cartService service.CartService
}

func NewCartController(g *gin.RouterGroup) *CartController {
	a := &CartController{}
	a.initRouter(g)
	return a
}

func (a *CartController) initRouter(g *gin.RouterGroup) {
	g.POST("/carrito/add", a.checkLogin, a.add)
}

func (a *CartController) add(c *gin.Context) {
	form := &entity.CartForm{}
	if err := c.ShouldBind(form); err != nil {
		a.reject(c, entity.FieldErrors(err, form))
		return
	}
	if err := a.cartService.Add(session.Current(c).Username, form.Id, form.Quantity); err != nil {
		a.reject(c, map[string]string{entity.FormError: err.Error()})
		return
	}
	if isAjax(c) {
		jsonMsg(c, "Artículo añadido al carrito", nil)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *CartController) reject(c *gin.Context, errs map[string]string) {
	if isAjax(c) {
		c.JSON(http.StatusBadRequest, entity.Msg{Success: false, Msg: "Datos del carrito no válidos.", Obj: errs})
		return
	}
	c.Redirect(http.StatusFound, "/")
}
