package route

import (
	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/controller"
	"github.com/matheusprado/erp-suplementos/pkg/middleware"
)

// RegisterAuthRoutes registra as rotas de autenticação
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController) {
	auth := r.Group("/auth")
	{
		// Login e renovação de token não exigem autenticação
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)

		auth.GET("/me", middleware.AuthMiddleware(), authController.Me)
		auth.POST("/registrar", middleware.AuthMiddleware(), authController.Register)
	}
}
