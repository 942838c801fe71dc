package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterCaixaRoutes registra as rotas do módulo de caixa
func RegisterCaixaRoutes(r *gin.RouterGroup, caixaController *controller.CaixaController) {
	caixa := r.Group("/caixa")
	caixa.Use(middleware.AuthMiddleware())
	{
		caixa.POST("/abrir", caixaController.Open)
		caixa.GET("/status", caixaController.Status)
		caixa.POST("/movimentacao", caixaController.Move)
		caixa.POST("/fechar", caixaController.Close)
	}
}
