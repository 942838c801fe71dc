package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterVendaRoutes registra as rotas do módulo de vendas
func RegisterVendaRoutes(r *gin.RouterGroup, vendaController *controller.VendaController) {
	vendas := r.Group("/vendas")
	vendas.Use(middleware.AuthMiddleware())
	{
		vendas.POST("", vendaController.Create)
		vendas.GET("", vendaController.List)
		vendas.GET("/:id", vendaController.Get)
		vendas.PATCH("/:id/cancelar", vendaController.Cancel)
	}
}
