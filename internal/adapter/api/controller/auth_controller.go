package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matheusprado/erp-suplementos/internal/adapter/api/dto"
	"github.com/matheusprado/erp-suplementos/internal/adapter/repository"
	usuariodomain "github.com/matheusprado/erp-suplementos/internal/domain/usuario"
	usecase "github.com/matheusprado/erp-suplementos/internal/usecase/usuario"
	"github.com/matheusprado/erp-suplementos/pkg/logger"
)

// AuthController gerencia a autenticação e o cadastro de operadores
type AuthController struct {
	auth   *usecase.AutenticarUsuarioUseCase
	logger logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(auth *usecase.AutenticarUsuarioUseCase, logger logger.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

// Login autentica um usuário
// @Summary Login
// @Description Autentica o usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credenciais body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	output, err := c.auth.Login(ctx, req.Email, req.Senha)
	if err != nil {
		switch {
		case errors.Is(err, usuariodomain.ErrCredenciaisInvalidas),
			errors.Is(err, usecase.ErrUsuarioInativo):
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "não autorizado", err.Error()))
		default:
			c.logger.Error("erro ao autenticar usuário", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao autenticar", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token:   output.Token,
		Usuario: dto.ToUsuarioResponse(output.Usuario),
	})
}

// RefreshToken renova um token JWT
// @Summary Renovar token
// @Description Gera um novo token a partir de um token válido ou expirado há pouco
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.RefreshTokenRequest true "Token atual"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	token, err := c.auth.Renovar(ctx, req.Token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "token inválido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// Register cadastra um novo operador
// @Summary Cadastrar usuário
// @Description Cadastra um novo operador; somente administradores podem cadastrar
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param usuario body dto.UsuarioRequest true "Dados do usuário"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/registrar [post]
func (c *AuthController) Register(ctx *gin.Context) {
	if ctx.GetString("perfil") != string(usuariodomain.PerfilAdmin) {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "acesso negado", "apenas administradores podem cadastrar usuários"))
		return
	}

	var req dto.UsuarioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := c.auth.Registrar(ctx, req.Nome, req.Email, req.Senha, usuariodomain.Perfil(req.Perfil))
	if err != nil {
		switch {
		case errors.Is(err, usuariodomain.ErrNomeVazio),
			errors.Is(err, usuariodomain.ErrEmailVazio),
			errors.Is(err, usuariodomain.ErrSenhaCurta):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "usuário inválido", err.Error()))
		default:
			c.logger.Error("erro ao cadastrar usuário", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao cadastrar usuário", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUsuarioResponse(u))
}

// Me retorna o usuário autenticado
// @Summary Usuário atual
// @Description Retorna os dados do usuário do token
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	id := ctx.GetString("user_id")

	u, err := c.auth.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNaoEncontrado) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "usuário não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar usuário", "usuario_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUsuarioResponse(u))
}
