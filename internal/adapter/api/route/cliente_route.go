package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterClienteRoutes registra as rotas do módulo de clientes
func RegisterClienteRoutes(r *gin.RouterGroup, clienteController *controller.ClienteController) {
	clientes := r.Group("/clientes")
	clientes.Use(middleware.AuthMiddleware())
	{
		clientes.POST("", clienteController.Create)
		clientes.GET("", clienteController.List)
		clientes.GET("/:id", clienteController.Get)
		clientes.PATCH("/:id", clienteController.Update)
		clientes.DELETE("/:id", clienteController.Delete)
		clientes.GET("/:id/credito", clienteController.Credito)
		clientes.POST("/:id/credito", clienteController.AjustarCredito)
		clientes.GET("/:id/fidelidade", clienteController.Fidelidade)
	}
}
