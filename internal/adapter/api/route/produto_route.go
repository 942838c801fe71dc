package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterProdutoRoutes registra as rotas do módulo de produtos
func RegisterProdutoRoutes(r *gin.RouterGroup, produtoController *controller.ProdutoController) {
	produtos := r.Group("/produtos")
	produtos.Use(middleware.AuthMiddleware())
	{
		produtos.POST("", produtoController.Create)
		produtos.GET("", produtoController.List)
		produtos.GET("/:id", produtoController.Get)
		produtos.PATCH("/:id", produtoController.Update)
		produtos.DELETE("/:id", produtoController.Delete)
	}
}
