package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterFinanceiroRoutes registra as rotas do módulo financeiro
func RegisterFinanceiroRoutes(r *gin.RouterGroup, financeiroController *controller.FinanceiroController) {
	financeiro := r.Group("/financeiro")
	financeiro.Use(middleware.AuthMiddleware())
	{
		financeiro.POST("", financeiroController.Create)
		financeiro.GET("", financeiroController.List)
		financeiro.GET("/:id", financeiroController.Get)
		financeiro.GET("/:id/historico", financeiroController.History)
		financeiro.PATCH("/:id/pagar", financeiroController.Pay)
		financeiro.POST("/clientes/:cliente_id/pagar", financeiroController.PayAll)
	}
}
