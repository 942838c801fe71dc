package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterCompraRoutes registra as rotas do módulo de compras
func RegisterCompraRoutes(r *gin.RouterGroup, compraController *controller.CompraController) {
	compras := r.Group("/compras")
	compras.Use(middleware.AuthMiddleware())
	{
		compras.POST("", compraController.Create)
		compras.GET("", compraController.List)
		compras.GET("/:id", compraController.Get)
		compras.PUT("/:id", compraController.Update)
		compras.DELETE("/:id", compraController.Delete)
	}
}
