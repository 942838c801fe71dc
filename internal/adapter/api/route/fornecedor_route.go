package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterFornecedorRoutes registra as rotas do módulo de fornecedores
func RegisterFornecedorRoutes(r *gin.RouterGroup, fornecedorController *controller.FornecedorController) {
	fornecedores := r.Group("/fornecedores")
	fornecedores.Use(middleware.AuthMiddleware())
	{
		fornecedores.POST("", fornecedorController.Create)
		fornecedores.GET("", fornecedorController.List)
		fornecedores.GET("/:id", fornecedorController.Get)
		fornecedores.PATCH("/:id", fornecedorController.Update)
		fornecedores.DELETE("/:id", fornecedorController.Delete)
	}
}
