package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterNotificacaoRoutes registra as rotas do módulo de notificações
func RegisterNotificacaoRoutes(r *gin.RouterGroup, notificacaoController *controller.NotificacaoController) {
	notificacoes := r.Group("/notificacoes")
	notificacoes.Use(middleware.AuthMiddleware())
	{
		notificacoes.GET("", notificacaoController.List)
		notificacoes.POST("/:id/lida", notificacaoController.MarkRead)
	}
}
